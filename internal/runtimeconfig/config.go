package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLanguagesRequired indicates the language catalog is empty.
var ErrLanguagesRequired = errors.New("i18nfields config: at least one language is required")

// ErrLanguageCodeRequired indicates a catalog entry without a code.
var ErrLanguageCodeRequired = errors.New("i18nfields config: language code is required")

// ErrLanguageCodeDuplicate indicates the same code appears twice in the catalog.
var ErrLanguageCodeDuplicate = errors.New("i18nfields config: language code is duplicated")

// ErrDefaultLanguageUnknown indicates the default language is not in the catalog.
var ErrDefaultLanguageUnknown = errors.New("i18nfields config: default language is not in the language catalog")

// ErrFallbackLanguageUnknown indicates the fallback language is not in the catalog.
var ErrFallbackLanguageUnknown = errors.New("i18nfields config: fallback language is not in the language catalog")

// ErrMandatoryLanguageUnknown indicates the mandatory language is not in the catalog.
var ErrMandatoryLanguageUnknown = errors.New("i18nfields config: mandatory language is not in the language catalog")

var ErrLoggingProviderRequired = errors.New("i18nfields config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("i18nfields config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("i18nfields config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("i18nfields config: logging format is invalid")

// LanguageConfig is one catalog entry: a short locale code plus a human label.
type LanguageConfig struct {
	Code  string
	Label string
}

// Config aggregates the language catalog and resolution settings for the
// module. Catalog order is declaration order; it only affects iteration.
type Config struct {
	// Languages is the ordered catalog of languages fields expand into.
	Languages []LanguageConfig
	// DefaultLanguage is the process-wide default code, the last resort of
	// every fallback chain.
	DefaultLanguage string
	// FallbackLanguage is consulted after the current language fails to
	// yield a value. Empty means DefaultLanguage.
	FallbackLanguage string
	// MandatoryLanguage is the one language whose generated fields keep the
	// original required/not-null constraint. Empty means FallbackLanguage.
	MandatoryLanguage string

	Features Features
	Logging  LoggingConfig
}

// Features toggles module functionality.
type Features struct {
	Logger bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns an English-only catalog with every resolution
// setting pointed at "en".
func DefaultConfig() Config {
	return Config{
		Languages: []LanguageConfig{
			{Code: "en", Label: "English"},
		},
		DefaultLanguage: "en",
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Fallback returns the effective fallback language code.
func (cfg Config) Fallback() string {
	if code := strings.TrimSpace(cfg.FallbackLanguage); code != "" {
		return code
	}
	return strings.TrimSpace(cfg.DefaultLanguage)
}

// Mandatory returns the effective mandatory language code.
func (cfg Config) Mandatory() string {
	if code := strings.TrimSpace(cfg.MandatoryLanguage); code != "" {
		return code
	}
	return cfg.Fallback()
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if len(cfg.Languages) == 0 {
		return ErrLanguagesRequired
	}
	seen := map[string]struct{}{}
	for _, lang := range cfg.Languages {
		code := strings.TrimSpace(lang.Code)
		if code == "" {
			return ErrLanguageCodeRequired
		}
		if _, dup := seen[code]; dup {
			return fmt.Errorf("%w: %s", ErrLanguageCodeDuplicate, code)
		}
		seen[code] = struct{}{}
	}
	if code := strings.TrimSpace(cfg.DefaultLanguage); code != "" {
		if _, ok := seen[code]; !ok {
			return fmt.Errorf("%w: %s", ErrDefaultLanguageUnknown, code)
		}
	}
	if code := strings.TrimSpace(cfg.FallbackLanguage); code != "" {
		if _, ok := seen[code]; !ok {
			return fmt.Errorf("%w: %s", ErrFallbackLanguageUnknown, code)
		}
	}
	if code := strings.TrimSpace(cfg.MandatoryLanguage); code != "" {
		if _, ok := seen[code]; !ok {
			return fmt.Errorf("%w: %s", ErrMandatoryLanguageUnknown, code)
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
