package catalog

import (
	"strings"

	"github.com/goliatone/go-i18n-fields/internal/runtimeconfig"
)

// Language is one catalog entry.
type Language struct {
	Code  string
	Label string
}

// View is an immutable snapshot of the language catalog plus the resolution
// settings derived from configuration. It is built once at module start and
// shared; concurrent reads are safe because nothing mutates it afterwards.
type View struct {
	languages []Language
	index     map[string]Language
	defaults  string
	fallback  string
	mandatory string
}

// NewView builds a catalog view from validated configuration.
func NewView(cfg runtimeconfig.Config) *View {
	view := &View{
		languages: make([]Language, 0, len(cfg.Languages)),
		index:     make(map[string]Language, len(cfg.Languages)),
		defaults:  strings.TrimSpace(cfg.DefaultLanguage),
		fallback:  cfg.Fallback(),
		mandatory: cfg.Mandatory(),
	}
	for _, lang := range cfg.Languages {
		entry := Language{
			Code:  strings.TrimSpace(lang.Code),
			Label: lang.Label,
		}
		if entry.Code == "" {
			continue
		}
		if _, dup := view.index[entry.Code]; dup {
			continue
		}
		view.languages = append(view.languages, entry)
		view.index[entry.Code] = entry
	}
	return view
}

// Languages returns the catalog in declaration order.
func (v *View) Languages() []Language {
	out := make([]Language, len(v.languages))
	copy(out, v.languages)
	return out
}

// Contains reports whether the catalog carries the given code.
func (v *View) Contains(code string) bool {
	_, ok := v.index[strings.TrimSpace(code)]
	return ok
}

// Label returns the human label registered for a code.
func (v *View) Label(code string) (string, bool) {
	entry, ok := v.index[strings.TrimSpace(code)]
	return entry.Label, ok
}

// Default returns the global default language code.
func (v *View) Default() string { return v.defaults }

// Fallback returns the configured fallback language code.
func (v *View) Fallback() string { return v.fallback }

// Mandatory returns the language whose generated fields stay strict.
func (v *View) Mandatory() string { return v.mandatory }

// SanitizeCode maps a locale code onto its physical-name form: subtag
// separators become underscores so "en-US" yields "en_US".
func SanitizeCode(code string) string {
	return strings.ReplaceAll(strings.TrimSpace(code), "-", "_")
}

// PrimarySubtag truncates a locale code to its 2-letter primary subtag, the
// second step of the fallback chain ("en-US" -> "en").
func PrimarySubtag(code string) string {
	code = strings.TrimSpace(code)
	if len(code) <= 2 {
		return code
	}
	return code[:2]
}

// RealFieldName derives the physical name for a field in a language:
// "<field>_<code>" with the code in sanitized form.
func (v *View) RealFieldName(field, code string) string {
	return field + "_" + SanitizeCode(code)
}

// RealFieldNameAll derives the physical name for every catalog language, in
// catalog order.
func (v *View) RealFieldNameAll(field string) []string {
	names := make([]string, 0, len(v.languages))
	for _, lang := range v.languages {
		names = append(names, v.RealFieldName(field, lang.Code))
	}
	return names
}

// FallbackFieldName derives the physical name for the fallback language.
func (v *View) FallbackFieldName(field string) string {
	return v.RealFieldName(field, v.fallback)
}

// MandatoryFieldName derives the physical name for the mandatory language.
func (v *View) MandatoryFieldName(field string) string {
	return v.RealFieldName(field, v.mandatory)
}

// FieldLanguage recovers the language code a derived name represents.
// Catalog codes are matched longest-first so "title_en_US" resolves to
// "en-US" rather than "US"; names outside the catalog fall back to the last
// underscore-delimited segment.
func (v *View) FieldLanguage(derived string) string {
	if code, _, ok := v.splitDerived(derived); ok {
		return code
	}
	idx := strings.LastIndex(derived, "_")
	if idx < 0 {
		return ""
	}
	return derived[idx+1:]
}

// CanonicalFieldName recovers the original field name from a derived name.
// Names that match no catalog language are returned unchanged.
func (v *View) CanonicalFieldName(derived string) string {
	if _, field, ok := v.splitDerived(derived); ok {
		return field
	}
	return derived
}

func (v *View) splitDerived(derived string) (code, field string, ok bool) {
	best := ""
	bestSuffix := ""
	for _, lang := range v.languages {
		suffix := "_" + SanitizeCode(lang.Code)
		if !strings.HasSuffix(derived, suffix) || len(derived) == len(suffix) {
			continue
		}
		if len(suffix) > len(bestSuffix) {
			best, bestSuffix = lang.Code, suffix
		}
	}
	if best == "" {
		return "", "", false
	}
	return best, strings.TrimSuffix(derived, bestSuffix), true
}
