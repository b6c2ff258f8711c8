package resolver

import (
	"reflect"

	"github.com/goliatone/go-i18n-fields/internal/catalog"
	"github.com/goliatone/go-i18n-fields/internal/logging"
	"github.com/goliatone/go-i18n-fields/pkg/interfaces"
)

// Resolver implements the read path of a virtual translated field: given the
// current UI language it walks the fallback chain over the concrete
// per-language values and returns the first non-empty one. It holds no state
// beyond the immutable catalog view, so concurrent use is safe, and it never
// fails: incomplete translations yield an empty value, not an error.
type Resolver struct {
	catalog *catalog.View
	logger  interfaces.Logger
}

// New constructs a resolver over the given catalog view.
func New(view *catalog.View, logger interfaces.Logger) *Resolver {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Resolver{catalog: view, logger: logger}
}

// Chain returns the derived names consulted for a field under the given
// current language, in consultation order: the full current code, its
// primary subtag, the fallback language, the default language. Steps that
// collapse onto the same name appear once.
func (r *Resolver) Chain(field, currentLanguage string) []string {
	codes := []string{
		currentLanguage,
		catalog.PrimarySubtag(currentLanguage),
		r.catalog.Fallback(),
		r.catalog.Default(),
	}
	names := make([]string, 0, len(codes))
	seen := map[string]struct{}{}
	for _, code := range codes {
		if code == "" {
			continue
		}
		name := r.catalog.RealFieldName(field, code)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Resolve walks the fallback chain and returns the first non-empty value.
// When every step is empty or absent it returns the value of the last step,
// the default language, which may be nil.
func (r *Resolver) Resolve(src interfaces.ValueSource, field, currentLanguage string) any {
	if src == nil {
		return nil
	}
	for _, name := range r.Chain(field, currentLanguage) {
		if value, ok := src.FieldValue(name); ok && truthy(value) {
			return value
		}
	}
	r.logger.Trace("resolver.exhausted",
		"field", field,
		"language", currentLanguage)
	if code := r.catalog.Default(); code != "" {
		value, _ := src.FieldValue(r.catalog.RealFieldName(field, code))
		return value
	}
	return nil
}

// ResolveString resolves a field and coerces the result to a string; non
// string values and empty results yield "".
func (r *Resolver) ResolveString(src interfaces.ValueSource, field, currentLanguage string) string {
	switch value := r.Resolve(src, field, currentLanguage).(type) {
	case string:
		return value
	case *string:
		if value != nil {
			return *value
		}
	case []byte:
		return string(value)
	}
	return ""
}

// truthy mirrors the emptiness test of the read path: nil values, nil
// pointers, empty strings and collections, and zero scalars all fall through
// to the next step of the chain.
func truthy(value any) bool {
	if value == nil {
		return false
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	default:
		return !rv.IsZero()
	}
}
