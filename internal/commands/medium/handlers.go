package mediumcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-cms-medium/internal/commands"
	"github.com/goliatone/go-cms-medium/internal/logging"
	"github.com/goliatone/go-cms-medium/internal/medium"
	"github.com/goliatone/go-cms-medium/pkg/interfaces"
)

const importOperation = "medium.import_export"

var (
	ErrImportFeatureDisabled = errors.New("medium command: import disabled")
	ErrImporterRequired      = errors.New("medium command: importer is required")
)

// Importer runs one import. *medium.Importer satisfies it.
type Importer interface {
	Import(ctx context.Context, req medium.Request) (*medium.Result, error)
}

// ResultFunc receives the result of every completed run.
type ResultFunc func(ctx context.Context, result *medium.Result)

var _ command.Commander[ImportExportCommand] = (*ImportExportHandler)(nil)

// ImportExportHandler runs ImportExportCommand through the shared handler.
type ImportExportHandler struct {
	inner *commands.Handler[ImportExportCommand]
}

// NewImportExportHandler binds importer to the command. onResult may be nil.
func NewImportExportHandler(importer Importer, logger interfaces.Logger, gates FeatureGates, onResult ResultFunc, opts ...commands.HandlerOption[ImportExportCommand]) *ImportExportHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, msg ImportExportCommand) error {
		if !gates.importEnabled() {
			return ErrImportFeatureDisabled
		}
		if importer == nil {
			return ErrImporterRequired
		}

		result, err := importer.Import(ctx, medium.Request{
			ExportPath: msg.ExportPath,
			TemplateID: msg.TemplateID,
			ParentID:   msg.ParentID,
			Overwrite:  msg.Overwrite,
			DryRun:     msg.DryRun,
		})
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"run_id":            result.RunID,
				"created_count":     result.Created,
				"overwritten_count": result.Overwritten,
				"skipped_count":     result.Skipped,
				"rejected_count":    result.Rejected,
				"failed_count":      result.Failed,
				"malformed_count":   result.Malformed,
				"dry_run":           msg.DryRun,
			}).Info("medium.command.import_export.completed")
			if onResult != nil {
				onResult(ctx, result)
			}
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[ImportExportCommand]{
		commands.WithLogger[ImportExportCommand](baseLogger),
		commands.WithOperation[ImportExportCommand](importOperation),
		commands.WithMessageFields[ImportExportCommand](func(msg ImportExportCommand) map[string]any {
			fields := map[string]any{
				"export_path": msg.ExportPath,
				"parent_id":   msg.ParentID,
				"template_id": msg.TemplateID,
			}
			if msg.Overwrite {
				fields["overwrite"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry[ImportExportCommand](commands.DefaultTelemetry[ImportExportCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportExportHandler{
		inner: commands.NewHandler[ImportExportCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportExportCommand].
func (h *ImportExportHandler) Execute(ctx context.Context, msg ImportExportCommand) error {
	return h.inner.Execute(ctx, msg)
}
