package expander

import (
	"fmt"

	"github.com/goliatone/go-i18n-fields/internal/catalog"
	"github.com/goliatone/go-i18n-fields/pkg/interfaces"
	"github.com/goliatone/go-i18n-fields/schema"
)

// Meta keys consumed by the expansion pass.
const (
	MetaTranslate          = "translate"
	MetaTranslateMandatory = "translate_mandatory"
)

// Expander runs the definition-time expansion pass: it rewrites a model's
// field list so every translatable field becomes one concrete field per
// catalog language plus a virtual fallback accessor.
type Expander struct {
	catalog *catalog.View
	logger  interfaces.Logger
}

// New constructs an expander over the given catalog view.
func New(view *catalog.View, logger interfaces.Logger) *Expander {
	return &Expander{
		catalog: view,
		logger:  logger,
	}
}

// Expand transforms a model definition. The model is updated in place the way
// hosts observe it afterwards: translation declarations are consumed from
// Meta and the translatable-fields registry is recorded on the model. Models
// declaring no translation lists keep their fields untouched and inherit the
// registry from abstract bases.
func (e *Expander) Expand(model *schema.Model) (*schema.Expanded, error) {
	if model == nil {
		return nil, schema.ErrModelNameRequired
	}

	plain, declaredPlain, err := e.extractDeclaration(model, MetaTranslate)
	if err != nil {
		return nil, err
	}
	mandatory, declaredMandatory, err := e.extractDeclaration(model, MetaTranslateMandatory)
	if err != nil {
		return nil, err
	}

	if !declaredPlain && !declaredMandatory {
		registry := InheritedFields(model.Bases, false)
		model.TranslatableFields = registry
		e.logger.Debug("schema.expand.inherit",
			"model", model.Name,
			"inherited", len(registry))
		return &schema.Expanded{
			Model:              model.Name,
			Fields:             append([]schema.Field(nil), model.Fields...),
			TranslatableFields: registry,
		}, nil
	}

	if err := e.checkDeclarations(model, plain, mandatory); err != nil {
		return nil, err
	}

	translated := make(map[string]bool, len(plain)+len(mandatory))
	for _, name := range mandatory {
		translated[name] = true
	}
	relaxed := make(map[string]bool, len(plain))
	for _, name := range plain {
		translated[name] = true
		relaxed[name] = true
	}

	languages := e.catalog.Languages()
	fields := make([]schema.Field, 0, len(model.Fields)+len(translated)*(len(languages)-1))
	accessors := make([]schema.Accessor, 0, len(translated))

	for _, original := range model.Fields {
		if !translated[original.Name] {
			fields = append(fields, original)
			continue
		}
		for _, lang := range languages {
			fields = append(fields, e.generateField(original, lang, relaxed[original.Name]))
		}
		accessors = append(accessors, schema.Accessor{
			Field:       original.Name,
			VerboseName: original.VerboseName,
			Variants:    e.catalog.RealFieldNameAll(original.Name),
		})
	}

	registry := make([]string, 0, len(mandatory)+len(plain))
	registry = append(registry, mandatory...)
	registry = append(registry, plain...)
	model.TranslatableFields = registry

	e.logger.Debug("schema.expand",
		"model", model.Name,
		"translatable", len(registry),
		"languages", len(languages),
		"generated", len(registry)*len(languages))

	return &schema.Expanded{
		Model:              model.Name,
		Fields:             fields,
		Accessors:          accessors,
		TranslatableFields: registry,
	}, nil
}

// generateField builds the per-language copy of an original descriptor.
// Fields from the plain translate list lose their required/not-null
// constraint for every language but the mandatory one, unless an explicit
// default was declared. Mandatory-list fields keep their declared strictness
// in every language.
func (e *Expander) generateField(original schema.Field, lang catalog.Language, relax bool) schema.Field {
	generated := original
	generated.Name = e.catalog.RealFieldName(original.Name, lang.Code)
	generated.Language = lang.Code
	generated.Original = original.Name

	if relax && lang.Code != e.catalog.Mandatory() {
		if generated.NotNull && !generated.HasDefault {
			generated.NotNull = false
		}
		generated.Blank = true
	}
	if original.VerboseName != "" {
		generated.VerboseName = fmt.Sprintf("%s (%s)", original.VerboseName, lang.Label)
	}
	return generated
}

// extractDeclaration pulls a translation list out of the model's Meta,
// deleting the key. Lists arrive either as []string or, when the definition
// round-tripped through JSON, as []any of strings.
func (e *Expander) extractDeclaration(model *schema.Model, attribute string) ([]string, bool, error) {
	if model.Meta == nil {
		return nil, false, nil
	}
	raw, ok := model.Meta[attribute]
	if !ok {
		return nil, false, nil
	}
	delete(model.Meta, attribute)

	switch value := raw.(type) {
	case []string:
		return append([]string(nil), value...), true, nil
	case []any:
		names := make([]string, 0, len(value))
		for _, item := range value {
			name, ok := item.(string)
			if !ok {
				return nil, false, &schema.ConfigurationError{
					Model:     model.Name,
					Attribute: attribute,
					Reason:    schema.ErrDeclarationNotList,
				}
			}
			names = append(names, name)
		}
		return names, true, nil
	default:
		return nil, false, &schema.ConfigurationError{
			Model:     model.Name,
			Attribute: attribute,
			Reason:    schema.ErrDeclarationNotList,
		}
	}
}

// checkDeclarations enforces that every declared name exists on the model,
// that the two lists are disjoint, and that no generated name collides with
// an already declared field.
func (e *Expander) checkDeclarations(model *schema.Model, plain, mandatory []string) error {
	inMandatory := make(map[string]struct{}, len(mandatory))
	for _, name := range mandatory {
		inMandatory[name] = struct{}{}
	}

	check := func(attribute string, names []string) error {
		for _, name := range names {
			if name == "" {
				return &schema.ConfigurationError{
					Model:     model.Name,
					Attribute: attribute,
					Reason:    schema.ErrDeclarationEmptyName,
				}
			}
			field, ok := model.Field(name)
			if !ok || !schema.KnownKind(field.Kind) {
				return &schema.ConfigurationError{
					Model:     model.Name,
					Attribute: attribute,
					Field:     name,
					Reason:    schema.ErrDeclarationUnknownField,
				}
			}
			for _, derived := range e.catalog.RealFieldNameAll(name) {
				if _, taken := model.Field(derived); taken {
					return &schema.ConfigurationError{
						Model:     model.Name,
						Attribute: attribute,
						Field:     derived,
						Reason:    schema.ErrGeneratedNameUnavailable,
					}
				}
			}
		}
		return nil
	}

	if err := check(MetaTranslateMandatory, mandatory); err != nil {
		return err
	}
	if err := check(MetaTranslate, plain); err != nil {
		return err
	}
	for _, name := range plain {
		if _, dup := inMandatory[name]; dup {
			return &schema.ConfigurationError{
				Model:     model.Name,
				Attribute: MetaTranslate,
				Field:     name,
				Reason:    schema.ErrDeclarationDuplicate,
			}
		}
	}
	return nil
}
