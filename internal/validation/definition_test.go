package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-i18n-fields/schema"
)

const articleDocument = `{
	"name": "Article",
	"fields": [
		{"name": "slug", "kind": "char", "max_length": 100, "not_null": true},
		{"name": "title", "kind": "char", "max_length": 255, "not_null": true, "verbose_name": "Title"},
		{"name": "body", "kind": "text"}
	],
	"meta": {
		"translate": ["body"],
		"translate_mandatory": ["title"]
	}
}`

func TestValidateDocument(t *testing.T) {
	if err := ValidateDocument([]byte(articleDocument)); err != nil {
		t.Fatalf("ValidateDocument() error = %v", err)
	}
}

func TestValidateDocumentRejectsMalformedJSON(t *testing.T) {
	err := ValidateDocument([]byte(`{"name": "Article"`))
	if !errors.Is(err, ErrDocumentInvalid) {
		t.Fatalf("expected ErrDocumentInvalid, got %v", err)
	}
}

func TestValidateDocumentReportsIssues(t *testing.T) {
	cases := []struct {
		name     string
		document string
		location string
	}{
		{
			name:     "missing fields",
			document: `{"name": "Article"}`,
			location: "",
		},
		{
			name:     "empty model name",
			document: `{"name": "", "fields": []}`,
			location: "/name",
		},
		{
			name:     "unknown field kind",
			document: `{"name": "Article", "fields": [{"name": "title", "kind": "decimal"}]}`,
			location: "/fields/0/kind",
		},
		{
			name:     "translate entries must be strings",
			document: `{"name": "Article", "fields": [{"name": "title", "kind": "char"}], "meta": {"translate": ["title", 42]}}`,
			location: "/meta/translate/1",
		},
		{
			name:     "unexpected top level key",
			document: `{"name": "Article", "fields": [], "extra": true}`,
			location: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDocument([]byte(tc.document))
			if !errors.Is(err, ErrDocumentInvalid) {
				t.Fatalf("expected ErrDocumentInvalid, got %v", err)
			}
			issues := Issues(err)
			if len(issues) == 0 {
				t.Fatal("expected validation issues")
			}
			if tc.location == "" {
				return
			}
			found := false
			for _, issue := range issues {
				if issue.Location == tc.location {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("expected an issue at %q, got %v", tc.location, issues)
			}
		})
	}
}

func TestValidateDocumentAllowsExtraMetaKeys(t *testing.T) {
	document := `{
		"name": "Article",
		"fields": [{"name": "title", "kind": "char"}],
		"meta": {"translate": ["title"], "ordering": ["title"]}
	}`
	if err := ValidateDocument([]byte(document)); err != nil {
		t.Fatalf("ValidateDocument() error = %v", err)
	}
}

func TestDecodeModel(t *testing.T) {
	model, err := DecodeModel([]byte(articleDocument))
	if err != nil {
		t.Fatalf("DecodeModel() error = %v", err)
	}
	if model.Name != "Article" {
		t.Fatalf("model name = %q", model.Name)
	}
	if len(model.Fields) != 3 {
		t.Fatalf("decoded %d fields", len(model.Fields))
	}
	title, ok := model.Field("title")
	if !ok {
		t.Fatal("expected decoded title field")
	}
	if title.Kind != schema.KindChar || title.MaxLength != 255 || !title.NotNull {
		t.Fatalf("title decoded as %+v", title)
	}
	translate, ok := model.Meta["translate"].([]any)
	if !ok || len(translate) != 1 || translate[0] != "body" {
		t.Fatalf("meta translate = %v", model.Meta["translate"])
	}
}

func TestDecodeModelRunsModelValidation(t *testing.T) {
	document := `{
		"name": "Article",
		"fields": [
			{"name": "title", "kind": "char"},
			{"name": "title", "kind": "char"}
		]
	}`
	_, err := DecodeModel([]byte(document))
	if err == nil {
		t.Fatal("expected duplicate field names to fail validation")
	}
	if !strings.Contains(err.Error(), "title") {
		t.Fatalf("error should name the duplicate field, got %v", err)
	}
}

func TestIssuesFallsBackToErrorMessage(t *testing.T) {
	issues := Issues(errors.New("boom"))
	if len(issues) != 1 || issues[0].Message != "boom" {
		t.Fatalf("Issues() = %v", issues)
	}
}
