package interfaces

// ValueSource exposes the concrete per-language values of a record to the
// fallback resolver. Implementations report ok=false for names they do not
// carry; the resolver treats those the same as empty values.
type ValueSource interface {
	FieldValue(name string) (any, bool)
}

// MapSource adapts a plain map to the ValueSource contract. Useful for
// decoded rows and for tests.
type MapSource map[string]any

// FieldValue implements ValueSource.
func (m MapSource) FieldValue(name string) (any, bool) {
	value, ok := m[name]
	return value, ok
}
