package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrModelNameRequired        = errors.New("schema: model name is required")
	ErrFieldNameRequired        = errors.New("schema: field name is required")
	ErrFieldKindUnknown         = errors.New("schema: field kind is unknown")
	ErrDeclarationNotList       = errors.New("schema: translate declaration must be a list of field names")
	ErrDeclarationUnknownField  = errors.New("schema: translate declaration references an unknown field")
	ErrDeclarationDuplicate     = errors.New("schema: field declared in both translate and translate_mandatory")
	ErrDeclarationEmptyName     = errors.New("schema: translate declaration contains an empty field name")
	ErrGeneratedNameUnavailable = errors.New("schema: generated field name collides with a declared field")
)

// ConfigurationError reports an invalid translation declaration detected at
// definition time. It unwraps to the sentinel describing the violation so
// callers can branch with errors.Is.
type ConfigurationError struct {
	Model     string
	Attribute string
	Field     string
	Reason    error
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return "schema: configuration error"
	}
	reason := "configuration error"
	if e.Reason != nil {
		reason = strings.TrimPrefix(e.Reason.Error(), "schema: ")
	}
	parts := make([]string, 0, 3)
	if model := strings.TrimSpace(e.Model); model != "" {
		parts = append(parts, fmt.Sprintf("model %q", model))
	}
	if attr := strings.TrimSpace(e.Attribute); attr != "" {
		parts = append(parts, fmt.Sprintf("attribute %q", attr))
	}
	if field := strings.TrimSpace(e.Field); field != "" {
		parts = append(parts, fmt.Sprintf("field %q", field))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("schema: %s", reason)
	}
	return fmt.Sprintf("schema: %s: %s", strings.Join(parts, ", "), reason)
}

func (e *ConfigurationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Reason
}
