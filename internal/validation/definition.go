package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-i18n-fields/schema"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrDocumentInvalid indicates a definition document failed schema validation.
var ErrDocumentInvalid = errors.New("validation: definition document invalid")

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// DocumentValidationError surfaces validation issues with document-aware context.
type DocumentValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *DocumentValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrDocumentInvalid.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *DocumentValidationError) Unwrap() error {
	return ErrDocumentInvalid
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var docErr *DocumentValidationError
	if errors.As(err, &docErr) && docErr != nil {
		return docErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// definitionSchema constrains the JSON document form of a model declaration:
// model name, ordered field descriptors, and the meta block carrying the
// translate and translate_mandatory lists.
var definitionSchema = map[string]any{
	"type":     "object",
	"required": []string{"name", "fields"},
	"properties": map[string]any{
		"name":     map[string]any{"type": "string", "minLength": 1},
		"abstract": map[string]any{"type": "boolean"},
		"fields": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"name", "kind"},
				"properties": map[string]any{
					"name": map[string]any{"type": "string", "minLength": 1},
					"kind": map[string]any{
						"type": "string",
						"enum": []any{"text", "char", "integer", "float", "boolean", "time", "json"},
					},
					"max_length":   map[string]any{"type": "integer", "minimum": 0},
					"not_null":     map[string]any{"type": "boolean"},
					"blank":        map[string]any{"type": "boolean"},
					"default":      map[string]any{},
					"has_default":  map[string]any{"type": "boolean"},
					"verbose_name": map[string]any{"type": "string"},
				},
				"additionalProperties": false,
			},
		},
		"meta": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"translate": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"translate_mandatory": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"additionalProperties": true,
		},
	},
	"additionalProperties": false,
}

var (
	compileOnce      sync.Once
	compiledSchema   *jsonschema.Schema
	compileSchemaErr error
)

func documentSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		encoded, err := json.Marshal(definitionSchema)
		if err != nil {
			compileSchemaErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("definition.json", bytes.NewReader(encoded)); err != nil {
			compileSchemaErr = err
			return
		}
		compiledSchema, compileSchemaErr = compiler.Compile("definition.json")
	})
	return compiledSchema, compileSchemaErr
}

// ValidateDocument checks a raw JSON definition document against the
// definition schema without decoding it into a model.
func ValidateDocument(data []byte) error {
	compiled, err := documentSchema()
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return &DocumentValidationError{Cause: err}
	}
	if err := compiled.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &DocumentValidationError{Issues: collectValidationIssues(validationErr), Cause: err}
		}
		return &DocumentValidationError{Cause: err}
	}
	return nil
}

// DecodeModel validates a JSON definition document and decodes it into a
// model declaration ready for the expansion pass.
func DecodeModel(data []byte) (*schema.Model, error) {
	if err := ValidateDocument(data); err != nil {
		return nil, err
	}
	var model schema.Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, &DocumentValidationError{Cause: err}
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return &model, nil
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
