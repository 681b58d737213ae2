package medium

import "github.com/goliatone/go-cms-medium/internal/runtimeconfig"

var (
	ErrTemplateIDInvalid      = runtimeconfig.ErrTemplateIDInvalid
	ErrParentIDInvalid        = runtimeconfig.ErrParentIDInvalid
	ErrAuthorIDInvalid        = runtimeconfig.ErrAuthorIDInvalid
	ErrPostsFolderRequired    = runtimeconfig.ErrPostsFolderRequired
	ErrPatternInvalid         = runtimeconfig.ErrPatternInvalid
	ErrStorageDriverUnknown   = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired     = runtimeconfig.ErrStorageDSNRequired
	ErrSelectorRequired       = runtimeconfig.ErrSelectorRequired
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
	ErrCommandTimeoutInvalid  = runtimeconfig.ErrCommandTimeoutInvalid
)

type (
	Config         = runtimeconfig.Config
	ImportConfig   = runtimeconfig.ImportConfig
	StorageConfig  = runtimeconfig.StorageConfig
	ParserConfig   = runtimeconfig.ParserConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	CommandsConfig = runtimeconfig.CommandsConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML configuration file layered over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
