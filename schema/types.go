package schema

// FieldKind identifies the storage type a field descriptor maps to. The kind
// carries over verbatim onto every generated per-language field.
type FieldKind string

const (
	KindText    FieldKind = "text"
	KindChar    FieldKind = "char"
	KindInteger FieldKind = "integer"
	KindFloat   FieldKind = "float"
	KindBoolean FieldKind = "boolean"
	KindTime    FieldKind = "time"
	KindJSON    FieldKind = "json"
)

var fieldKinds = map[FieldKind]struct{}{
	KindText:    {},
	KindChar:    {},
	KindInteger: {},
	KindFloat:   {},
	KindBoolean: {},
	KindTime:    {},
	KindJSON:    {},
}

// KnownKind reports whether kind is one of the recognized field kinds.
func KnownKind(kind FieldKind) bool {
	_, ok := fieldKinds[kind]
	return ok
}

// Field is an immutable field descriptor. Generated per-language fields are
// new Field values derived from the original with explicit overrides applied;
// the original descriptor is never mutated.
type Field struct {
	Name        string    `json:"name"`
	Kind        FieldKind `json:"kind"`
	MaxLength   int       `json:"max_length,omitempty"`
	NotNull     bool      `json:"not_null,omitempty"`
	Blank       bool      `json:"blank,omitempty"`
	Default     any       `json:"default,omitempty"`
	HasDefault  bool      `json:"has_default,omitempty"`
	VerboseName string    `json:"verbose_name,omitempty"`

	// Language and Original are set on generated fields only. Original is the
	// canonical (language-agnostic) field name the generated field belongs to.
	Language string `json:"language,omitempty"`
	Original string `json:"original_fieldname,omitempty"`
}

// Generated reports whether the field was synthesized by expansion.
func (f Field) Generated() bool {
	return f.Original != ""
}

// Canonical returns the language-agnostic name for the field: the original
// back-reference for generated fields, the field's own name otherwise.
func (f Field) Canonical() string {
	if f.Original != "" {
		return f.Original
	}
	return f.Name
}

// Model is a declarative model definition as supplied by the host, prior to
// expansion. Translation declarations travel in Meta under the "translate"
// and "translate_mandatory" keys and are consumed by the expansion pass.
type Model struct {
	Name     string         `json:"name"`
	Abstract bool           `json:"abstract,omitempty"`
	Fields   []Field        `json:"fields"`
	Meta     map[string]any `json:"meta,omitempty"`

	// Bases lists the definitions this model derives from. Abstract bases
	// contribute their translatable-field registries when the model declares
	// no translation lists of its own.
	Bases []*Model `json:"-"`

	// TranslatableFields is the registry recorded by expansion. It is the
	// mandatory list followed by the plain list when the model declares its
	// own, or the aggregate inherited from abstract bases otherwise.
	TranslatableFields []string `json:"translatable_fields,omitempty"`
}

// Field returns the declared field with the given name.
func (m *Model) Field(name string) (Field, bool) {
	if m == nil {
		return Field{}, false
	}
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Accessor describes the virtual read rule left behind for an expanded field:
// reads of Field resolve over the per-language Variants via the fallback
// chain. Variants follow catalog order.
type Accessor struct {
	Field       string   `json:"field"`
	VerboseName string   `json:"verbose_name,omitempty"`
	Variants    []string `json:"variants"`
}

// Expanded is the result of running a model definition through the expansion
// pass: per-language concrete fields, one accessor per translated field, and
// the translatable-fields registry.
type Expanded struct {
	Model              string     `json:"model"`
	Fields             []Field    `json:"fields"`
	Accessors          []Accessor `json:"accessors,omitempty"`
	TranslatableFields []string   `json:"translatable_fields,omitempty"`
}

// Field returns the expanded field with the given name.
func (e *Expanded) Field(name string) (Field, bool) {
	if e == nil {
		return Field{}, false
	}
	for _, field := range e.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Accessor returns the accessor registered for the given virtual field name.
func (e *Expanded) Accessor(name string) (Accessor, bool) {
	if e == nil {
		return Accessor{}, false
	}
	for _, accessor := range e.Accessors {
		if accessor.Field == name {
			return accessor, true
		}
	}
	return Accessor{}, false
}
