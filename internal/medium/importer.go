package medium

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-cms-medium/internal/logging"
	"github.com/goliatone/go-cms-medium/internal/resources"
	"github.com/goliatone/go-cms-medium/internal/runtimeconfig"
	"github.com/goliatone/go-cms-medium/pkg/interfaces"
)

const defaultAuthorID int64 = 1

// ImporterConfig encapsulates the collaborators of an Importer. Only
// Repository is required.
type ImporterConfig struct {
	Repository resources.Repository
	Locator    *Locator
	Parser     *Parser
	Hooks      *Hooks
	Reporter   *Reporter
	Logger     interfaces.Logger
	// AuthorID is stored as createdby. Values below 1 fall back to 1.
	AuthorID int64
	// Now supplies the run time. Defaults to time.Now.
	Now func() time.Time
	// RunID supplies the identifier attached to a run. Defaults to a UUID.
	RunID func() string
}

// Request describes one import run.
type Request struct {
	ExportPath string
	TemplateID int64
	ParentID   int64
	Overwrite  bool
	// DryRun resolves every outcome without running hooks or saving.
	DryRun bool
}

// Importer orchestrates discovery, parsing, mapping and persistence of posts.
type Importer struct {
	repo     resources.Repository
	locator  *Locator
	parser   *Parser
	hooks    *Hooks
	reporter *Reporter
	logger   interfaces.Logger
	authorID int64
	now      func() time.Time
	runID    func() string
}

// NewImporter builds an Importer from cfg.
func NewImporter(cfg ImporterConfig) (*Importer, error) {
	if cfg.Repository == nil {
		return nil, ErrRepositoryRequired
	}

	parser := cfg.Parser
	if parser == nil {
		var err error
		if parser, err = NewParser(runtimeconfig.DefaultParserConfig(), nil); err != nil {
			return nil, err
		}
	}
	locator := cfg.Locator
	if locator == nil {
		locator = NewLocator(LocatorConfig{})
	}
	hooks := cfg.Hooks
	if hooks == nil {
		hooks = &Hooks{}
	}
	reporter := cfg.Reporter
	if reporter == nil {
		reporter = NewReporter()
	}
	authorID := cfg.AuthorID
	if authorID < 1 {
		authorID = defaultAuthorID
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	runID := cfg.RunID
	if runID == nil {
		runID = uuid.NewString
	}

	return &Importer{
		repo:     cfg.Repository,
		locator:  locator,
		parser:   parser,
		hooks:    hooks,
		reporter: reporter,
		logger:   logging.Ensure(cfg.Logger),
		authorID: authorID,
		now:      now,
		runID:    runID,
	}, nil
}

// Hooks returns the hook slots consulted by every run.
func (i *Importer) Hooks() *Hooks {
	return i.hooks
}

// Import runs one import. Precondition failures are returned before any post
// is touched. Per-post failures are reported as outcomes and do not stop the
// run. When ctx is cancelled between posts the partial result is returned
// together with ctx.Err().
func (i *Importer) Import(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	paths, err := i.locator.Locate(req.ExportPath)
	if err != nil {
		return nil, err
	}

	parent, err := i.repo.FindParent(ctx, req.ParentID)
	if err != nil {
		if resources.IsNotFound(err) {
			return nil, fmt.Errorf("%w: id=%d", ErrParentNotFound, req.ParentID)
		}
		return nil, fmt.Errorf("medium importer: load parent %d: %w", req.ParentID, err)
	}

	runAt := i.now()
	runID := i.runID()
	ctx = logging.ContextWithFields(ctx, map[string]any{"run_id": runID})
	logger := i.logger.WithContext(ctx)

	target := Target{
		ParentID:   req.ParentID,
		TemplateID: req.TemplateID,
		Overwrite:  req.Overwrite,
		ContextKey: parent.ContextKey,
		AuthorID:   i.authorID,
	}

	logger.Info("medium.import.start",
		"export_path", req.ExportPath,
		"posts", len(paths),
		"parent_id", target.ParentID,
		"template_id", target.TemplateID,
		"overwrite", target.Overwrite,
		"dry_run", req.DryRun,
	)

	result := newResult(runID, runAt, req.DryRun)
	for _, path := range paths {
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Warn("medium.import.cancelled", "processed", result.Total(), "error", ctxErr)
			return result, ctxErr
		}
		outcome, ctxErr := i.importPost(ctx, path, target, runAt, req.DryRun)
		if ctxErr != nil {
			logger.Warn("medium.import.cancelled", "processed", result.Total(), "error", ctxErr)
			return result, ctxErr
		}
		result.add(outcome)
		i.reporter.Report(ctx, outcome)
	}

	logger.Info("medium.import.complete",
		"created", result.Created,
		"overwritten", result.Overwritten,
		"skipped", result.Skipped,
		"rejected", result.Rejected,
		"failed", result.Failed,
		"malformed", result.Malformed,
	)
	return result, nil
}

// importPost resolves one post. A non-nil error means ctx ended while the post
// was in flight; the outcome is then discarded.
func (i *Importer) importPost(ctx context.Context, path string, target Target, runAt time.Time, dryRun bool) (Outcome, error) {
	alias := aliasFromPath(path)
	outcome := Outcome{Alias: alias, SourcePath: path, DryRun: dryRun}

	var record *resources.Resource
	existing, err := i.repo.FindRecord(ctx, alias, target.ParentID, target.TemplateID)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return outcome, ctxErr
	}
	switch {
	case err == nil && existing != nil:
		outcome.RecordID = existing.ID
		if !target.Overwrite {
			outcome.Kind = OutcomeSkipped
			return outcome, nil
		}
		record = existing
		outcome.Kind = OutcomeOverwritten
	case err != nil && !resources.IsNotFound(err):
		outcome.Kind = OutcomeSaveFailed
		outcome.Err = fmt.Errorf("medium importer: lookup %s: %w", alias, err)
		return outcome, nil
	default:
		record = i.repo.NewRecord()
		outcome.Kind = OutcomeCreated
	}

	post, err := i.parser.ParseFile(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return outcome, ctxErr
		}
		outcome.Kind = OutcomeMalformed
		outcome.Err = err
		return outcome, nil
	}
	MapRecord(record, post, target, runAt)

	if dryRun {
		return outcome, nil
	}

	if err := i.hooks.runBeforeSave(ctx, record, path); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return outcome, ctxErr
		}
		outcome.Kind = OutcomeBeforeSaveRejected
		outcome.Err = err
		return outcome, nil
	}

	if err := i.repo.Save(ctx, record); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return outcome, ctxErr
		}
		outcome.Kind = OutcomeSaveFailed
		outcome.Err = fmt.Errorf("medium importer: save %s: %w", alias, err)
		return outcome, nil
	}
	outcome.RecordID = record.ID

	if err := i.hooks.runAfterSave(ctx, record, path); err != nil {
		logging.WithPostContext(i.logger, alias, path, string(outcome.Kind)).
			WithContext(ctx).
			Warn("medium.import.after_save_failed", "record_id", record.ID, "error", err)
	}
	return outcome, nil
}
