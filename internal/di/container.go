package di

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-cms-medium/internal/commands"
	mediumcmd "github.com/goliatone/go-cms-medium/internal/commands/medium"
	"github.com/goliatone/go-cms-medium/internal/logging"
	"github.com/goliatone/go-cms-medium/internal/logging/console"
	"github.com/goliatone/go-cms-medium/internal/logging/gologger"
	"github.com/goliatone/go-cms-medium/internal/medium"
	"github.com/goliatone/go-cms-medium/internal/resources"
	"github.com/goliatone/go-cms-medium/internal/runtimeconfig"
	"github.com/goliatone/go-cms-medium/internal/storage"
	"github.com/goliatone/go-cms-medium/pkg/interfaces"
)

// Container wires the importer and its collaborators from configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	stdout         io.Writer
	now            func() time.Time
	htmlParser     medium.HTMLParser

	bunDB  *bun.DB
	ownsDB bool
	repo   resources.Repository

	hooks    *medium.Hooks
	importer *medium.Importer
	commands *mediumcmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by Logging.Provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies an open database. The container does not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithRepository bypasses storage entirely.
func WithRepository(repo resources.Repository) Option {
	return func(c *Container) {
		c.repo = repo
	}
}

// WithStdout redirects the console sink used when EnablePrinting is set.
func WithStdout(w io.Writer) Option {
	return func(c *Container) {
		c.stdout = w
	}
}

// WithClock overrides the run time source.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		c.now = now
	}
}

// WithHTMLParser overrides the goquery document parser.
func WithHTMLParser(parser medium.HTMLParser) Option {
	return func(c *Container) {
		c.htmlParser = parser
	}
}

// NewContainer validates cfg and builds every collaborator. Storage is opened
// unless a repository or database was supplied.
func NewContainer(ctx context.Context, cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	c := &Container{
		Config: cfg,
		stdout: os.Stdout,
		hooks:  &medium.Hooks{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureRepository(ctx); err != nil {
		return nil, err
	}
	if err := c.configureImporter(); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.configureCommands(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		level, _ := console.ParseLevel(c.Config.Logging.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
	}
	return nil
}

func (c *Container) configureRepository(ctx context.Context) error {
	if c.repo != nil {
		return nil
	}

	logger := logging.StorageLogger(c.loggerProvider)
	if c.bunDB == nil {
		db, err := storage.Open(ctx, storage.Config{
			Driver: c.Config.Storage.Driver,
			DSN:    c.Config.Storage.DSN,
		})
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
		logger.Info("medium.storage.opened", "driver", storage.NormalizeDriver(c.Config.Storage.Driver))
	}

	if c.Config.Storage.AutoMigrate {
		if err := resources.CreateSchema(ctx, c.bunDB); err != nil {
			_ = c.Close()
			return fmt.Errorf("medium container: create schema: %w", err)
		}
		logger.Debug("medium.storage.schema_ready")
	}

	c.repo = resources.NewBunRepository(c.bunDB)
	return nil
}

func (c *Container) configureImporter() error {
	parser, err := medium.NewParser(c.Config.Parser, c.htmlParser)
	if err != nil {
		return err
	}

	importLogger := logging.ImportLogger(c.loggerProvider)
	var sinks []medium.Sink
	if c.Config.Import.EnableLogging {
		sinks = append(sinks, medium.NewLogSink(importLogger))
	}
	if c.Config.Import.EnablePrinting {
		sinks = append(sinks, medium.NewConsoleSink(c.stdout))
	}

	importer, err := medium.NewImporter(medium.ImporterConfig{
		Repository: c.repo,
		Locator: medium.NewLocator(medium.LocatorConfig{
			PostsFolder: c.Config.Import.PostsFolder,
			Pattern:     c.Config.Import.Pattern,
		}),
		Parser:   parser,
		Hooks:    c.hooks,
		Reporter: medium.NewReporter(sinks...),
		Logger:   importLogger,
		AuthorID: c.Config.Import.AuthorID,
		Now:      c.now,
	})
	if err != nil {
		return err
	}
	c.importer = importer
	return nil
}

func (c *Container) configureCommands() error {
	set, err := mediumcmd.RegisterMediumCommands(nil, c.importer, c.loggerProvider, mediumcmd.FeatureGates{},
		mediumcmd.WithImportHandlerOptions(
			commands.WithTimeout[mediumcmd.ImportExportCommand](c.Config.Commands.Timeout),
		),
	)
	if err != nil {
		return err
	}
	c.commands = set
	return nil
}

// LoggerProvider returns the provider shared by every module logger.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Repository returns the resource repository.
func (c *Container) Repository() resources.Repository {
	return c.repo
}

// BunDB returns the database handle, or nil when a repository was injected.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// Hooks returns the hook slots shared with the importer.
func (c *Container) Hooks() *medium.Hooks {
	return c.hooks
}

// Importer returns the configured importer.
func (c *Container) Importer() *medium.Importer {
	return c.importer
}

// ImportHandler returns the command handler wrapping the importer.
func (c *Container) ImportHandler() *mediumcmd.ImportExportHandler {
	if c.commands == nil {
		return nil
	}
	return c.commands.Import
}

// Close releases the database when the container opened it.
func (c *Container) Close() error {
	if c == nil || !c.ownsDB || c.bunDB == nil {
		return nil
	}
	err := c.bunDB.Close()
	c.ownsDB = false
	if err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return nil
}
