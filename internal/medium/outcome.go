package medium

import "time"

// OutcomeKind classifies what happened to one post.
type OutcomeKind string

const (
	OutcomeSkipped            OutcomeKind = "skipped"
	OutcomeCreated            OutcomeKind = "created"
	OutcomeOverwritten        OutcomeKind = "overwritten"
	OutcomeBeforeSaveRejected OutcomeKind = "before_save_rejected"
	OutcomeSaveFailed         OutcomeKind = "save_failed"
	OutcomeMalformed          OutcomeKind = "malformed"
)

// Failed reports whether the kind represents a post that was not stored
// because of an error.
func (k OutcomeKind) Failed() bool {
	switch k {
	case OutcomeBeforeSaveRejected, OutcomeSaveFailed, OutcomeMalformed:
		return true
	default:
		return false
	}
}

// Outcome is the per-post result of a run.
type Outcome struct {
	Kind       OutcomeKind
	Alias      string
	SourcePath string
	// RecordID is zero when no record was stored or matched.
	RecordID int64
	Err      error
	DryRun   bool
}

// Result aggregates the outcomes of one run.
type Result struct {
	RunID    string
	RunAt    time.Time
	DryRun   bool
	Outcomes []Outcome

	Created     int
	Overwritten int
	Skipped     int
	Rejected    int
	Failed      int
	Malformed   int
}

func newResult(runID string, runAt time.Time, dryRun bool) *Result {
	return &Result{RunID: runID, RunAt: runAt, DryRun: dryRun}
}

func (r *Result) add(outcome Outcome) {
	r.Outcomes = append(r.Outcomes, outcome)
	switch outcome.Kind {
	case OutcomeCreated:
		r.Created++
	case OutcomeOverwritten:
		r.Overwritten++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeBeforeSaveRejected:
		r.Rejected++
	case OutcomeSaveFailed:
		r.Failed++
	case OutcomeMalformed:
		r.Malformed++
	}
}

// Total returns the number of posts processed.
func (r *Result) Total() int {
	if r == nil {
		return 0
	}
	return len(r.Outcomes)
}

// Stored returns the number of posts written to the repository.
func (r *Result) Stored() int {
	if r == nil || r.DryRun {
		return 0
	}
	return r.Created + r.Overwritten
}

// Errors returns the errors of every failed outcome in processing order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, outcome := range r.Outcomes {
		if outcome.Err != nil {
			errs = append(errs, outcome.Err)
		}
	}
	return errs
}
