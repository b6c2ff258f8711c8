package schema

import "fmt"

// Column is the storage-level projection of an expanded field: what the host
// persistence layer must materialize as a physical column. Producing DDL or
// migrations from it is left to the host.
type Column struct {
	Name       string
	SQLType    string
	NotNull    bool
	Default    any
	HasDefault bool
}

// Columns maps every concrete field of an expanded model onto a column
// definition, preserving field order. Virtual accessors contribute nothing.
func Columns(expanded *Expanded) []Column {
	if expanded == nil {
		return nil
	}
	columns := make([]Column, 0, len(expanded.Fields))
	for _, field := range expanded.Fields {
		columns = append(columns, Column{
			Name:       field.Name,
			SQLType:    sqlType(field),
			NotNull:    field.NotNull,
			Default:    field.Default,
			HasDefault: field.HasDefault,
		})
	}
	return columns
}

func sqlType(field Field) string {
	switch field.Kind {
	case KindChar:
		if field.MaxLength > 0 {
			return fmt.Sprintf("varchar(%d)", field.MaxLength)
		}
		return "varchar"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "real"
	case KindBoolean:
		return "boolean"
	case KindTime:
		return "timestamp"
	case KindJSON:
		return "jsonb"
	default:
		return "text"
	}
}
