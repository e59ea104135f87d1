package types

import "time"

// RunRecord is the persisted outcome of one reconciliation run.
type RunRecord struct {
	ID         string
	Path       string
	Changed    bool
	DryRun     bool
	Summary    PlanSummary
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

func (r RunRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
