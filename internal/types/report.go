package types

import "time"

// TaskReport is the outcome of one task of a desired-state file.
type TaskReport struct {
	RunID   string
	Path    Path
	Changed bool
	DryRun  bool
	OldData []Entry
	NewData []Entry
	Plan    Plan
}

type SyncReport struct {
	GeneratedAt time.Time
	Device      string
	Version     string
	Tasks       []TaskReport
}

func (r SyncReport) Changed() bool {
	for _, task := range r.Tasks {
		if task.Changed {
			return true
		}
	}
	return false
}
