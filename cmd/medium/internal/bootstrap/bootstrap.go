package bootstrap

import (
	"fmt"
	"io"
	"strings"

	medium "github.com/goliatone/go-cms-medium"
	mediumcmd "github.com/goliatone/go-cms-medium/internal/commands/medium"
	"github.com/goliatone/go-cms-medium/internal/di"
	"github.com/goliatone/go-cms-medium/internal/logging"
	"github.com/goliatone/go-cms-medium/pkg/interfaces"
)

// Options captures the CLI inputs that shape the module configuration.
// Pointer fields are applied only when set.
type Options struct {
	ConfigPath     string
	Driver         string
	DSN            string
	PostsFolder    string
	Pattern        string
	AuthorID       *int64
	EnableLogging  *bool
	EnablePrinting *bool
	LoggerProvider interfaces.LoggerProvider
	Stdout         io.Writer
}

// Module bundles what the CLIs need from a bootstrapped importer.
type Module struct {
	Module   *medium.Module
	Importer mediumcmd.Importer
	Logger   interfaces.Logger
	Config   medium.Config
}

// Close releases the underlying module.
func (m *Module) Close() error {
	if m == nil || m.Module == nil {
		return nil
	}
	return m.Module.Close()
}

// Config resolves the configuration for opts: the file named by ConfigPath
// (or defaults) with explicit options layered on top.
func Config(opts Options) (medium.Config, error) {
	cfg := medium.DefaultConfig()
	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		loaded, err := medium.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if driver := strings.TrimSpace(opts.Driver); driver != "" {
		cfg.Storage.Driver = driver
	}
	if dsn := strings.TrimSpace(opts.DSN); dsn != "" {
		cfg.Storage.DSN = dsn
	}
	if folder := strings.TrimSpace(opts.PostsFolder); folder != "" {
		cfg.Import.PostsFolder = folder
	}
	if pattern := strings.TrimSpace(opts.Pattern); pattern != "" {
		cfg.Import.Pattern = pattern
	}
	if opts.AuthorID != nil {
		cfg.Import.AuthorID = *opts.AuthorID
	}
	if opts.EnableLogging != nil {
		cfg.Import.EnableLogging = *opts.EnableLogging
	}
	if opts.EnablePrinting != nil {
		cfg.Import.EnablePrinting = *opts.EnablePrinting
	}
	return cfg, cfg.Validate()
}

// BuildModule constructs a medium module configured from opts.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := Config(opts)
	if err != nil {
		return nil, fmt.Errorf("resolve config: %w", err)
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}
	if opts.Stdout != nil {
		diOpts = append(diOpts, di.WithStdout(opts.Stdout))
	}

	module, err := medium.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise medium module: %w", err)
	}

	return &Module{
		Module:   module,
		Importer: module.Container().Importer(),
		Logger:   logging.CommandsLogger(module.LoggerProvider()),
		Config:   cfg,
	}, nil
}
