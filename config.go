package i18nfields

import "github.com/goliatone/go-i18n-fields/internal/runtimeconfig"

var (
	ErrLanguagesRequired        = runtimeconfig.ErrLanguagesRequired
	ErrLanguageCodeRequired     = runtimeconfig.ErrLanguageCodeRequired
	ErrLanguageCodeDuplicate    = runtimeconfig.ErrLanguageCodeDuplicate
	ErrDefaultLanguageUnknown   = runtimeconfig.ErrDefaultLanguageUnknown
	ErrFallbackLanguageUnknown  = runtimeconfig.ErrFallbackLanguageUnknown
	ErrMandatoryLanguageUnknown = runtimeconfig.ErrMandatoryLanguageUnknown
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	LanguageConfig = runtimeconfig.LanguageConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	Features       = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
