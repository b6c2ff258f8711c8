package expander

import (
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-i18n-fields/internal/catalog"
	"github.com/goliatone/go-i18n-fields/internal/logging"
	"github.com/goliatone/go-i18n-fields/internal/runtimeconfig"
	"github.com/goliatone/go-i18n-fields/schema"
)

func newTestExpander() *Expander {
	view := catalog.NewView(runtimeconfig.Config{
		Languages: []runtimeconfig.LanguageConfig{
			{Code: "en", Label: "English"},
			{Code: "es", Label: "Spanish"},
			{Code: "fr", Label: "French"},
		},
		DefaultLanguage: "en",
	})
	return New(view, logging.NoOp())
}

func articleModel(meta map[string]any) *schema.Model {
	return &schema.Model{
		Name: "Article",
		Fields: []schema.Field{
			{Name: "slug", Kind: schema.KindChar, MaxLength: 64, NotNull: true},
			{Name: "title", Kind: schema.KindChar, MaxLength: 255, NotNull: true, VerboseName: "Title"},
			{Name: "body", Kind: schema.KindText},
		},
		Meta: meta,
	}
}

func TestExpandGeneratesFieldPerLanguage(t *testing.T) {
	exp := newTestExpander()
	model := articleModel(map[string]any{"translate": []string{"title", "body"}})

	expanded, err := exp.Expand(model)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	names := make([]string, 0, len(expanded.Fields))
	for _, field := range expanded.Fields {
		names = append(names, field.Name)
	}
	want := []string{
		"slug",
		"title_en", "title_es", "title_fr",
		"body_en", "body_es", "body_fr",
	}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expanded field names = %v, want %v", names, want)
	}

	if _, ok := expanded.Field("title"); ok {
		t.Fatal("original field title must not remain as a stored field")
	}
	accessor, ok := expanded.Accessor("title")
	if !ok {
		t.Fatal("expected accessor for title")
	}
	if !reflect.DeepEqual(accessor.Variants, []string{"title_en", "title_es", "title_fr"}) {
		t.Fatalf("accessor variants = %v", accessor.Variants)
	}
	if !reflect.DeepEqual(expanded.TranslatableFields, []string{"title", "body"}) {
		t.Fatalf("registry = %v", expanded.TranslatableFields)
	}
	if !reflect.DeepEqual(model.TranslatableFields, expanded.TranslatableFields) {
		t.Fatalf("model registry = %v", model.TranslatableFields)
	}
}

func TestExpandRelaxesNonMandatoryLanguages(t *testing.T) {
	exp := newTestExpander()
	model := articleModel(map[string]any{"translate": []string{"title"}})

	expanded, err := exp.Expand(model)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	mandatory, _ := expanded.Field("title_en")
	if !mandatory.NotNull {
		t.Fatal("mandatory-language field must keep its not-null constraint")
	}
	if mandatory.Blank {
		t.Fatal("mandatory-language field must keep its blank constraint")
	}

	for _, name := range []string{"title_es", "title_fr"} {
		field, ok := expanded.Field(name)
		if !ok {
			t.Fatalf("missing generated field %s", name)
		}
		if field.NotNull {
			t.Fatalf("%s must have a relaxed not-null constraint", name)
		}
		if !field.Blank {
			t.Fatalf("%s must allow blank values", name)
		}
		if field.Original != "title" || field.Language == "" {
			t.Fatalf("%s missing original/language metadata: %+v", name, field)
		}
	}
}

func TestExpandKeepsStrictnessWithExplicitDefault(t *testing.T) {
	exp := newTestExpander()
	model := &schema.Model{
		Name: "Page",
		Fields: []schema.Field{
			{Name: "heading", Kind: schema.KindChar, MaxLength: 100, NotNull: true, Default: "untitled", HasDefault: true},
		},
		Meta: map[string]any{"translate": []string{"heading"}},
	}

	expanded, err := exp.Expand(model)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	field, _ := expanded.Field("heading_es")
	if !field.NotNull {
		t.Fatal("defaulted field must keep not-null for non-mandatory languages")
	}
	if !field.Blank {
		t.Fatal("non-mandatory languages still allow blank values")
	}
}

func TestExpandMandatoryListStaysStrictEverywhere(t *testing.T) {
	exp := newTestExpander()
	model := articleModel(map[string]any{"translate_mandatory": []string{"title"}})

	expanded, err := exp.Expand(model)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	for _, name := range []string{"title_en", "title_es", "title_fr"} {
		field, _ := expanded.Field(name)
		if !field.NotNull {
			t.Fatalf("%s must keep its declared not-null constraint", name)
		}
		if field.Blank {
			t.Fatalf("%s must keep its declared blank constraint", name)
		}
	}
}

func TestExpandDecoratesVerboseName(t *testing.T) {
	exp := newTestExpander()
	model := articleModel(map[string]any{"translate": []string{"title"}})

	expanded, err := exp.Expand(model)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	field, _ := expanded.Field("title_es")
	if field.VerboseName != "Title (Spanish)" {
		t.Fatalf("verbose name = %q, want %q", field.VerboseName, "Title (Spanish)")
	}

	body, _ := expanded.Field("body_es")
	if body.VerboseName != "" {
		t.Fatalf("body has no verbose name to decorate, got %q", body.VerboseName)
	}
}

func TestExpandRegistryOrderMandatoryFirst(t *testing.T) {
	exp := newTestExpander()
	model := articleModel(map[string]any{
		"translate":           []string{"body"},
		"translate_mandatory": []string{"title"},
	})

	expanded, err := exp.Expand(model)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if !reflect.DeepEqual(expanded.TranslatableFields, []string{"title", "body"}) {
		t.Fatalf("registry = %v, want mandatory first", expanded.TranslatableFields)
	}
}

func TestExpandConsumesMetaKeys(t *testing.T) {
	exp := newTestExpander()
	model := articleModel(map[string]any{
		"translate": []string{"title"},
		"ordering":  []string{"slug"},
	})

	if _, err := exp.Expand(model); err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if _, ok := model.Meta["translate"]; ok {
		t.Fatal("translate key must be removed from meta")
	}
	if _, ok := model.Meta["ordering"]; !ok {
		t.Fatal("unrelated meta keys must survive")
	}
}

func TestExpandAcceptsJSONDecodedDeclarations(t *testing.T) {
	exp := newTestExpander()
	model := articleModel(map[string]any{"translate": []any{"title"}})

	expanded, err := exp.Expand(model)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if _, ok := expanded.Field("title_fr"); !ok {
		t.Fatal("expected title_fr from []any declaration")
	}
}

func TestExpandRejectsNonListDeclaration(t *testing.T) {
	exp := newTestExpander()

	for _, value := range []any{"title", 42, map[string]any{}, []any{"title", 1}} {
		model := articleModel(map[string]any{"translate": value})
		_, err := exp.Expand(model)
		if !errors.Is(err, schema.ErrDeclarationNotList) {
			t.Fatalf("declaration %v: expected ErrDeclarationNotList, got %v", value, err)
		}
		var cfgErr *schema.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected *schema.ConfigurationError, got %T", err)
		}
		if cfgErr.Attribute != MetaTranslate || cfgErr.Model != "Article" {
			t.Fatalf("configuration error context = %+v", cfgErr)
		}
	}
}

func TestExpandRejectsUnknownField(t *testing.T) {
	exp := newTestExpander()
	model := articleModel(map[string]any{"translate": []string{"missing"}})

	_, err := exp.Expand(model)
	if !errors.Is(err, schema.ErrDeclarationUnknownField) {
		t.Fatalf("expected ErrDeclarationUnknownField, got %v", err)
	}
	var cfgErr *schema.ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "missing" || cfgErr.Model != "Article" {
		t.Fatalf("configuration error context = %v", err)
	}
}

func TestExpandRejectsFieldInBothLists(t *testing.T) {
	exp := newTestExpander()
	model := articleModel(map[string]any{
		"translate":           []string{"title"},
		"translate_mandatory": []string{"title"},
	})

	_, err := exp.Expand(model)
	if !errors.Is(err, schema.ErrDeclarationDuplicate) {
		t.Fatalf("expected ErrDeclarationDuplicate, got %v", err)
	}
}

func TestExpandRejectsGeneratedNameCollision(t *testing.T) {
	exp := newTestExpander()
	model := &schema.Model{
		Name: "Clash",
		Fields: []schema.Field{
			{Name: "title", Kind: schema.KindChar, MaxLength: 100},
			{Name: "title_en", Kind: schema.KindChar, MaxLength: 100},
		},
		Meta: map[string]any{"translate": []string{"title"}},
	}

	_, err := exp.Expand(model)
	if !errors.Is(err, schema.ErrGeneratedNameUnavailable) {
		t.Fatalf("expected ErrGeneratedNameUnavailable, got %v", err)
	}
}

func TestExpandWithoutDeclarationsInheritsRegistry(t *testing.T) {
	exp := newTestExpander()

	base := &schema.Model{
		Name:               "TranslatableBase",
		Abstract:           true,
		TranslatableFields: []string{"title"},
	}
	model := &schema.Model{
		Name: "Post",
		Fields: []schema.Field{
			{Name: "slug", Kind: schema.KindChar, MaxLength: 64},
		},
		Bases: []*schema.Model{base},
	}

	expanded, err := exp.Expand(model)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if !reflect.DeepEqual(expanded.TranslatableFields, []string{"title"}) {
		t.Fatalf("inherited registry = %v, want [title]", expanded.TranslatableFields)
	}
	if len(expanded.Fields) != 1 || expanded.Fields[0].Name != "slug" {
		t.Fatalf("fields must stay untouched, got %v", expanded.Fields)
	}
	if len(expanded.Accessors) != 0 {
		t.Fatalf("no accessors expected, got %v", expanded.Accessors)
	}
}
