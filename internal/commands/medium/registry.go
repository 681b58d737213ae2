package mediumcmd

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-cms-medium/internal/commands"
	"github.com/goliatone/go-cms-medium/pkg/interfaces"
)

// CommandRegistry is the registration contract used when wiring handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the handlers built by RegisterMediumCommands.
type HandlerSet struct {
	Import *ImportExportHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	importHandlerOpts []commands.HandlerOption[ImportExportCommand]
	onResult          ResultFunc
}

// WithImportHandlerOptions forwards options to NewImportExportHandler.
func WithImportHandlerOptions(opts ...commands.HandlerOption[ImportExportCommand]) Option {
	return func(cfg *options) {
		cfg.importHandlerOpts = append(cfg.importHandlerOpts, opts...)
	}
}

// WithResultFunc receives the result of every import run.
func WithResultFunc(fn ResultFunc) Option {
	return func(cfg *options) {
		cfg.onResult = fn
	}
}

// RegisterMediumCommands builds the import handler and registers it with reg
// when reg is not nil.
func RegisterMediumCommands(reg CommandRegistry, importer Importer, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if importer == nil {
		return nil, ErrImporterRequired
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "medium")
	importHandler := NewImportExportHandler(importer, logger, gates, cfg.onResult, cfg.importHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(importHandler); err != nil {
			return nil, err
		}
	}
	return &HandlerSet{Import: importHandler}, nil
}

// RegisterMediumCron schedules msg on reg using cfg. The handler runs with a
// background context.
func RegisterMediumCron(reg CronRegistrar, handler *ImportExportHandler, cfg command.HandlerConfig, msg ImportExportCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
