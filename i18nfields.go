// Package i18nfields augments declarative model definitions with
// multi-language field translation: every field marked translatable expands
// into one concrete field per configured language plus a virtual accessor
// that resolves the current language's value through a deterministic
// fallback chain.
package i18nfields

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-i18n-fields/internal/catalog"
	"github.com/goliatone/go-i18n-fields/internal/definitions"
	"github.com/goliatone/go-i18n-fields/internal/expander"
	"github.com/goliatone/go-i18n-fields/internal/logging"
	"github.com/goliatone/go-i18n-fields/internal/logging/console"
	"github.com/goliatone/go-i18n-fields/internal/logging/gologger"
	"github.com/goliatone/go-i18n-fields/internal/resolver"
	"github.com/goliatone/go-i18n-fields/internal/validation"
	"github.com/goliatone/go-i18n-fields/pkg/interfaces"
	"github.com/goliatone/go-i18n-fields/schema"
)

const (
	textCodeDeclarationInvalid = "MODEL_DECLARATION_INVALID"
	textCodeRegisterFailed     = "MODEL_REGISTER_FAILED"
)

// Language re-exports the catalog entry type.
type Language = catalog.Language

// DefinitionRecord re-exports the persisted model-definition record.
type DefinitionRecord = definitions.Record

// DefinitionRepository re-exports the definition persistence contract.
type DefinitionRepository = definitions.Repository

// DefinitionChangeEvent re-exports definition change notifications.
type DefinitionChangeEvent = definitions.ChangeEvent

// ValidationIssue re-exports document validation issues.
type ValidationIssue = validation.ValidationIssue

// ErrDefinitionNotFound re-exports the missing-definition sentinel.
var ErrDefinitionNotFound = definitions.ErrDefinitionNotFound

// Module is the top level runtime façade: an immutable language catalog plus
// the expansion pass, the fallback read path, and definition storage.
type Module struct {
	config            Config
	catalog           *catalog.View
	expander          *expander.Expander
	resolver          *resolver.Resolver
	definitions       definitions.Repository
	definitionsLogger interfaces.Logger
	loggerProvider    interfaces.LoggerProvider
	db                *bun.DB
}

// Option overrides module wiring.
type Option func(*Module)

// WithLoggerProvider injects a host logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.loggerProvider = provider
	}
}

// WithDefinitionsRepository injects a definition store, replacing the default
// in-memory repository.
func WithDefinitionsRepository(repo definitions.Repository) Option {
	return func(m *Module) {
		m.definitions = repo
	}
}

// WithBunDB backs definition storage with a Bun database.
func WithBunDB(db *bun.DB) Option {
	return func(m *Module) {
		m.db = db
	}
}

// New constructs a module from validated configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{config: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.loggerProvider == nil {
		provider, err := buildLoggerProvider(cfg)
		if err != nil {
			return nil, err
		}
		m.loggerProvider = provider
	}
	if m.definitions == nil {
		if m.db != nil {
			m.definitions = definitions.NewBunRepository(m.db)
		} else {
			m.definitions = definitions.NewMemoryRepository()
		}
	}

	m.catalog = catalog.NewView(cfg)
	m.expander = expander.New(m.catalog, logging.SchemaLogger(m.loggerProvider))
	m.resolver = resolver.New(m.catalog, logging.ResolverLogger(m.loggerProvider))
	m.definitionsLogger = logging.DefinitionsLogger(m.loggerProvider)
	return m, nil
}

// Expand runs the definition-time expansion pass over a model declaration.
// Configuration errors surface as *schema.ConfigurationError.
func (m *Module) Expand(model *schema.Model) (*schema.Expanded, error) {
	if model != nil {
		if err := model.Validate(); err != nil {
			return nil, wrapDeclarationError(err)
		}
	}
	return m.expander.Expand(model)
}

// Register expands a model declaration and persists the result in the
// definition store.
func (m *Module) Register(ctx context.Context, model *schema.Model) (*definitions.Record, error) {
	expanded, err := m.Expand(model)
	if err != nil {
		return nil, err
	}
	record := &definitions.Record{
		Name:               model.Name,
		Abstract:           model.Abstract,
		TranslatableFields: expanded.TranslatableFields,
		Definition:         *expanded,
	}
	stored, err := m.definitions.Upsert(ctx, record)
	if err != nil {
		return nil, wrapRegisterError(err)
	}
	m.definitionsLogger.Debug("definitions.register",
		"model", stored.Name,
		"translatable", len(stored.TranslatableFields))
	return stored, nil
}

// RegisterDocument decodes a JSON definition document, expands it, and
// persists the result.
func (m *Module) RegisterDocument(ctx context.Context, document []byte) (*definitions.Record, error) {
	model, err := validation.DecodeModel(document)
	if err != nil {
		return nil, wrapDeclarationError(err)
	}
	return m.Register(ctx, model)
}

// Resolve returns the current-language value of a virtual translated field,
// walking the fallback chain over the source's concrete values.
func (m *Module) Resolve(src interfaces.ValueSource, field, currentLanguage string) any {
	return m.resolver.Resolve(src, field, currentLanguage)
}

// ResolveString resolves a field and coerces the result to a string.
func (m *Module) ResolveString(src interfaces.ValueSource, field, currentLanguage string) string {
	return m.resolver.ResolveString(src, field, currentLanguage)
}

// FallbackChain returns the derived names consulted for a field under the
// given current language, in consultation order.
func (m *Module) FallbackChain(field, currentLanguage string) []string {
	return m.resolver.Chain(field, currentLanguage)
}

// RealFieldName derives the per-language physical name of a field.
func (m *Module) RealFieldName(field, language string) string {
	return m.catalog.RealFieldName(field, language)
}

// RealFieldNameAll derives the physical name for every configured language.
func (m *Module) RealFieldNameAll(field string) []string {
	return m.catalog.RealFieldNameAll(field)
}

// FallbackFieldName derives the physical name for the fallback language.
func (m *Module) FallbackFieldName(field string) string {
	return m.catalog.FallbackFieldName(field)
}

// MandatoryFieldName derives the physical name for the mandatory language.
func (m *Module) MandatoryFieldName(field string) string {
	return m.catalog.MandatoryFieldName(field)
}

// FieldLanguage recovers the language code a derived name represents.
func (m *Module) FieldLanguage(derived string) string {
	return m.catalog.FieldLanguage(derived)
}

// CanonicalFieldName recovers the original field name from a derived name.
func (m *Module) CanonicalFieldName(derived string) string {
	return m.catalog.CanonicalFieldName(derived)
}

// Languages returns the configured catalog in declaration order.
func (m *Module) Languages() []Language {
	return m.catalog.Languages()
}

// AllTranslatableFields returns every translatable field visible on a model,
// including those inherited from abstract bases. Concrete ancestors are
// included only when includeConcrete is set.
func (m *Module) AllTranslatableFields(model *schema.Model, includeConcrete bool) []string {
	return expander.AllTranslatableFields(model, includeConcrete)
}

// Definitions exposes the definition store.
func (m *Module) Definitions() definitions.Repository {
	return m.definitions
}

// LoggerProvider exposes the logger provider for host integrations.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.loggerProvider
}

func buildLoggerProvider(cfg Config) (interfaces.LoggerProvider, error) {
	if !cfg.Features.Logger {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)) {
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
	default:
		return console.NewProvider(console.Options{
			MinLevel: console.ParseLevel(cfg.Logging.Level),
		}), nil
	}
}

func wrapDeclarationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "model declaration is invalid").
		WithTextCode(textCodeDeclarationInvalid)
}

func wrapRegisterError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "model registration failed").
		WithTextCode(textCodeRegisterFailed)
}
