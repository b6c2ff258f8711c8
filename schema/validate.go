package schema

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks a model declaration before it is handed to the expansion
// pass. Translation-declaration semantics (list shape, field references) are
// enforced by the expander itself; Validate covers the declaration surface.
func (m Model) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Name, validation.Required.Error(ErrModelNameRequired.Error())),
		validation.Field(&m.Fields, validation.By(validateFields)),
	)
}

func validateFields(value any) error {
	fields, ok := value.([]Field)
	if !ok {
		return validation.NewError("schema.fields_invalid", "fields must be a field list")
	}
	seen := map[string]struct{}{}
	for idx, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return validation.NewError("schema.field_name_required",
				fmt.Sprintf("field %d: %s", idx, ErrFieldNameRequired.Error()))
		}
		if _, dup := seen[name]; dup {
			return validation.NewError("schema.field_name_duplicate",
				fmt.Sprintf("field %q declared more than once", name))
		}
		seen[name] = struct{}{}
		if !KnownKind(field.Kind) {
			return validation.NewError("schema.field_kind_unknown",
				fmt.Sprintf("field %q: kind %q is not recognized", name, field.Kind))
		}
		if field.MaxLength < 0 {
			return validation.NewError("schema.field_max_length_invalid",
				fmt.Sprintf("field %q: max length must be zero or positive", name))
		}
	}
	return nil
}
