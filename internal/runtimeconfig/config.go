package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrTemplateIDInvalid      = errors.New("medium config: template id must be zero or positive")
	ErrParentIDInvalid        = errors.New("medium config: parent id must be zero or positive")
	ErrAuthorIDInvalid        = errors.New("medium config: author id must be zero or positive")
	ErrPostsFolderRequired    = errors.New("medium config: posts folder is required")
	ErrPatternInvalid         = errors.New("medium config: post pattern is invalid")
	ErrStorageDriverUnknown   = errors.New("medium config: storage driver is invalid")
	ErrStorageDSNRequired     = errors.New("medium config: storage dsn is required")
	ErrSelectorRequired       = errors.New("medium config: parser selector is required")
	ErrLoggingProviderUnknown = errors.New("medium config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("medium config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("medium config: logging format is invalid")
	ErrCommandTimeoutInvalid  = errors.New("medium config: command timeout must be zero or positive")
)

// Config is the immutable configuration of one importer instance.
type Config struct {
	Import   ImportConfig   `yaml:"import"`
	Storage  StorageConfig  `yaml:"storage"`
	Parser   ParserConfig   `yaml:"parser"`
	Logging  LoggingConfig  `yaml:"logging"`
	Commands CommandsConfig `yaml:"commands"`
}

// ImportConfig carries the import target and the reporting toggles.
type ImportConfig struct {
	// EnableLogging routes per-post outcomes to the structured logger.
	EnableLogging bool `yaml:"enable_logging"`
	// EnablePrinting writes one line per outcome to stdout.
	EnablePrinting bool  `yaml:"enable_printing"`
	Overwrite      bool  `yaml:"overwrite"`
	TemplateID     int64 `yaml:"template_id"`
	ParentID       int64 `yaml:"parent_id"`
	// AuthorID is stored as createdby on every imported resource.
	AuthorID    int64  `yaml:"author_id"`
	PostsFolder string `yaml:"posts_folder"`
	Pattern     string `yaml:"pattern"`
}

// StorageConfig selects the resource database.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	// AutoMigrate creates the resources table on startup.
	AutoMigrate bool `yaml:"auto_migrate"`
}

// ParserConfig holds the selectors used to pull fields out of a post.
type ParserConfig struct {
	TitleSelector     string `yaml:"title_selector"`
	SummarySelector   string `yaml:"summary_selector"`
	BodySelector      string `yaml:"body_selector"`
	PublishedSelector string `yaml:"published_selector"`
	PublishedAttr     string `yaml:"published_attr"`
}

// LoggingConfig selects the logger provider. Provider is console or
// gologger; Format only applies to gologger.
type LoggingConfig struct {
	Provider  string `yaml:"provider"`
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"add_source"`
}

// CommandsConfig tunes the command handler wrapping an import run.
type CommandsConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Import: ImportConfig{
			AuthorID:    1,
			PostsFolder: "posts",
			Pattern:     "*.html",
		},
		Storage: StorageConfig{
			Driver:      "sqlite3",
			DSN:         "file:medium.db?cache=shared",
			AutoMigrate: true,
		},
		Parser: DefaultParserConfig(),
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Commands: CommandsConfig{
			Timeout: 30 * time.Second,
		},
	}
}

// DefaultParserConfig returns the selectors matching Medium's export markup.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		TitleSelector:     "title",
		SummarySelector:   `section[data-field="summary"]`,
		BodySelector:      `section[data-field="body"]`,
		PublishedSelector: "time.dt-published",
		PublishedAttr:     "datetime",
	}
}

// LoadFile reads a YAML file on top of DefaultConfig. Keys absent from the
// file keep their defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("medium config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("medium config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	if cfg.Import.TemplateID < 0 {
		return ErrTemplateIDInvalid
	}
	if cfg.Import.ParentID < 0 {
		return ErrParentIDInvalid
	}
	if cfg.Import.AuthorID < 0 {
		return ErrAuthorIDInvalid
	}
	if strings.TrimSpace(cfg.Import.PostsFolder) == "" {
		return ErrPostsFolderRequired
	}
	if err := validatePattern(cfg.Import.Pattern); err != nil {
		return err
	}

	switch normalize(cfg.Storage.Driver) {
	case "", "sqlite", "sqlite3", "postgres", "postgresql", "pg":
	default:
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
	}
	if strings.TrimSpace(cfg.Storage.DSN) == "" {
		return ErrStorageDSNRequired
	}

	selectors := map[string]string{
		"title":     cfg.Parser.TitleSelector,
		"summary":   cfg.Parser.SummarySelector,
		"body":      cfg.Parser.BodySelector,
		"published": cfg.Parser.PublishedSelector,
	}
	for _, name := range []string{"title", "summary", "body", "published"} {
		if strings.TrimSpace(selectors[name]) == "" {
			return fmt.Errorf("%w: %s", ErrSelectorRequired, name)
		}
	}

	provider := normalize(cfg.Logging.Provider)
	if provider != "console" && provider != "gologger" {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Logging.Provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}

	if cfg.Commands.Timeout < 0 {
		return ErrCommandTimeoutInvalid
	}
	return nil
}

func validatePattern(pattern string) error {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" || strings.ContainsAny(pattern, `/\`) {
		return fmt.Errorf("%w: %q", ErrPatternInvalid, pattern)
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
