package expander

import "github.com/goliatone/go-i18n-fields/schema"

// InheritedFields aggregates the translatable-fields registries of a model's
// abstract ancestors, deduplicated by first occurrence, in base declaration
// order. The walk stops at concrete ancestors unless includeConcrete is set,
// which mirrors hosts that fold ancestor columns into the current table.
func InheritedFields(bases []*schema.Model, includeConcrete bool) []string {
	out := make([]string, 0)
	seen := map[string]struct{}{}
	visited := map[*schema.Model]struct{}{}
	collectInherited(bases, includeConcrete, seen, visited, &out)
	return out
}

// AllTranslatableFields returns every translatable field visible on a model,
// its own registry first, then the inherited ones.
func AllTranslatableFields(model *schema.Model, includeConcrete bool) []string {
	if model == nil {
		return nil
	}
	out := make([]string, 0, len(model.TranslatableFields))
	seen := map[string]struct{}{}
	for _, name := range model.TranslatableFields {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	visited := map[*schema.Model]struct{}{model: {}}
	collectInherited(model.Bases, includeConcrete, seen, visited, &out)
	return out
}

func collectInherited(bases []*schema.Model, includeConcrete bool, seen map[string]struct{}, visited map[*schema.Model]struct{}, out *[]string) {
	for _, base := range bases {
		if base == nil {
			continue
		}
		if _, done := visited[base]; done {
			continue
		}
		visited[base] = struct{}{}
		if !base.Abstract && !includeConcrete {
			continue
		}
		for _, name := range base.TranslatableFields {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			*out = append(*out, name)
		}
		collectInherited(base.Bases, includeConcrete, seen, visited, out)
	}
}
