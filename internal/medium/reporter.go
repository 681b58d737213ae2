package medium

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-cms-medium/internal/logging"
	"github.com/goliatone/go-cms-medium/pkg/interfaces"
)

// Sink receives every outcome of a run.
type Sink interface {
	Report(ctx context.Context, outcome Outcome)
}

// Reporter fans outcomes out to its sinks.
type Reporter struct {
	sinks []Sink
}

// NewReporter builds a Reporter. Nil sinks are ignored.
func NewReporter(sinks ...Sink) *Reporter {
	filtered := make([]Sink, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			filtered = append(filtered, sink)
		}
	}
	return &Reporter{sinks: filtered}
}

// Report delivers outcome to every sink.
func (r *Reporter) Report(ctx context.Context, outcome Outcome) {
	if r == nil {
		return
	}
	for _, sink := range r.sinks {
		sink.Report(ctx, outcome)
	}
}

// Message renders outcome as a single human readable line.
func Message(outcome Outcome) string {
	var msg string
	switch outcome.Kind {
	case OutcomeCreated:
		msg = "Imported post: " + outcome.Alias
	case OutcomeOverwritten:
		msg = "Overwrote post: " + outcome.Alias
	case OutcomeSkipped:
		msg = "Skipped existing post: " + outcome.Alias
	case OutcomeBeforeSaveRejected:
		msg = fmt.Sprintf("Rejected post before save: %s: %v", outcome.Alias, outcome.Err)
	case OutcomeSaveFailed:
		msg = fmt.Sprintf("Failed to import post: %s: %v", outcome.Alias, outcome.Err)
	case OutcomeMalformed:
		msg = fmt.Sprintf("Malformed post: %s: %v", outcome.Alias, outcome.Err)
	default:
		msg = fmt.Sprintf("Processed post: %s", outcome.Alias)
	}
	if outcome.DryRun {
		msg += " (dry run)"
	}
	return msg
}

// LogSink writes outcomes as structured log entries.
type LogSink struct {
	logger interfaces.Logger
}

// NewLogSink wraps logger. A nil logger discards entries.
func NewLogSink(logger interfaces.Logger) *LogSink {
	return &LogSink{logger: logging.Ensure(logger)}
}

// Report implements Sink.
func (s *LogSink) Report(ctx context.Context, outcome Outcome) {
	logger := logging.WithPostContext(s.logger, outcome.Alias, outcome.SourcePath, string(outcome.Kind))
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}

	event := "medium.import." + string(outcome.Kind)
	args := []any{"message", Message(outcome)}
	if outcome.RecordID != 0 {
		args = append(args, "record_id", outcome.RecordID)
	}
	if outcome.DryRun {
		args = append(args, "dry_run", true)
	}
	if outcome.Err != nil {
		args = append(args, "error", outcome.Err)
	}

	switch outcome.Kind {
	case OutcomeBeforeSaveRejected:
		logger.Warn(event, args...)
	case OutcomeSaveFailed, OutcomeMalformed:
		logger.Error(event, args...)
	default:
		logger.Info(event, args...)
	}
}

// ConsoleSink writes one line per outcome.
type ConsoleSink struct {
	out io.Writer
}

// NewConsoleSink writes to out, or stdout when out is nil.
func NewConsoleSink(out io.Writer) *ConsoleSink {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleSink{out: out}
}

// Report implements Sink.
func (s *ConsoleSink) Report(_ context.Context, outcome Outcome) {
	fmt.Fprintln(s.out, Message(outcome))
}
