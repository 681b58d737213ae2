package medium

import (
	"context"

	mediumcmd "github.com/goliatone/go-cms-medium/internal/commands/medium"
	"github.com/goliatone/go-cms-medium/internal/di"
	pipeline "github.com/goliatone/go-cms-medium/internal/medium"
	"github.com/goliatone/go-cms-medium/internal/resources"
	"github.com/goliatone/go-cms-medium/pkg/interfaces"
)

type (
	Request     = pipeline.Request
	Result      = pipeline.Result
	Outcome     = pipeline.Outcome
	OutcomeKind = pipeline.OutcomeKind
	ParsedPost  = pipeline.ParsedPost
	Target      = pipeline.Target

	BeforeSaveFunc = pipeline.BeforeSaveFunc
	AfterSaveFunc  = pipeline.AfterSaveFunc

	Resource   = resources.Resource
	Repository = resources.Repository

	ImportExportCommand = mediumcmd.ImportExportCommand
)

const (
	OutcomeSkipped            = pipeline.OutcomeSkipped
	OutcomeCreated            = pipeline.OutcomeCreated
	OutcomeOverwritten        = pipeline.OutcomeOverwritten
	OutcomeBeforeSaveRejected = pipeline.OutcomeBeforeSaveRejected
	OutcomeSaveFailed         = pipeline.OutcomeSaveFailed
	OutcomeMalformed          = pipeline.OutcomeMalformed
)

var (
	ErrSourceNotFound        = pipeline.ErrSourceNotFound
	ErrPostsFolderNotFound   = pipeline.ErrPostsFolderNotFound
	ErrNoPostsFound          = pipeline.ErrNoPostsFound
	ErrParentNotFound        = pipeline.ErrParentNotFound
	ErrMalformedPost         = pipeline.ErrMalformedPost
	ErrSaveRejected          = pipeline.ErrSaveRejected
	ErrHookRequired          = pipeline.ErrHookRequired
	ErrHookAlreadyRegistered = pipeline.ErrHookAlreadyRegistered
)

// Module is the top level importer facade.
type Module struct {
	container *di.Container
}

// New builds a Module from cfg. Storage is opened from cfg.Storage unless a
// repository or database is supplied through opts. Call Close when done.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(context.Background(), cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Import runs one import with the target taken from the configuration.
func (m *Module) Import(ctx context.Context, exportPath string) (*Result, error) {
	cfg := m.container.Config.Import
	return m.ImportRequest(ctx, Request{
		ExportPath: exportPath,
		TemplateID: cfg.TemplateID,
		ParentID:   cfg.ParentID,
		Overwrite:  cfg.Overwrite,
	})
}

// ImportRequest runs one import with an explicit target.
func (m *Module) ImportRequest(ctx context.Context, req Request) (*Result, error) {
	return m.container.Importer().Import(ctx, req)
}

// Execute runs cmd through the command handler, which adds validation, the
// configured timeout and categorised errors.
func (m *Module) Execute(ctx context.Context, cmd ImportExportCommand) error {
	return m.container.ImportHandler().Execute(ctx, cmd)
}

// RegisterBeforeSave installs the before-save hook.
func (m *Module) RegisterBeforeSave(fn BeforeSaveFunc) error {
	return m.container.Hooks().RegisterBeforeSave(fn)
}

// RegisterAfterSave installs the after-save hook.
func (m *Module) RegisterAfterSave(fn AfterSaveFunc) error {
	return m.container.Hooks().RegisterAfterSave(fn)
}

// Repository returns the resource repository in use.
func (m *Module) Repository() Repository {
	return m.container.Repository()
}

// LoggerProvider returns the configured logger provider.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

// Close releases storage opened by New.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
