package app

import (
	"time"

	"rosync/internal/core"
	"rosync/internal/ports"
	"rosync/internal/types"
)

type SyncRequest struct {
	DesiredPath string
	Target      ports.DeviceTarget
	DryRun      bool
	// Paths limits the run to the tasks for these paths.
	Paths      []string
	ReportPath string
}

type TaskResult struct {
	RunID   string
	Path    types.Path
	Changed bool
	Summary types.PlanSummary
	Result  core.SyncResult
}

type SyncResult struct {
	Version string
	Changed bool
	Tasks   []TaskResult
}

type ValidateRequest struct {
	DesiredPath string
	Version     string
}

type ValidateResult struct {
	Tasks   int
	Entries int
	Paths   []string
}

type PathSummary struct {
	Path            string
	NeedsVersion    bool
	FullyUnderstood bool
}

type PathsResult struct {
	Paths []PathSummary
}

type DescribeRequest struct {
	Path    string
	Version string
}

type FieldSummary struct {
	Name        string
	Required    bool
	Default     string
	CanDisable  bool
	RemoveValue string
	ReadOnly    bool
	WriteOnly   bool
}

type DescribeResult struct {
	Path         string
	Version      string
	Supported    bool
	Message      string
	Mode         string
	Keys         []string
	FixedEntries bool
	Fields       []FieldSummary
}

type HistoryRequest struct {
	Limit int
}

type HistoryResult struct {
	Records []types.RunRecord
}

type WatchRequest struct {
	Sync SyncRequest
	// Debounce collapses bursts of file events into one run.
	Debounce time.Duration
	// OnRun is called after every run, including the initial one.
	OnRun func(SyncResult, error)
}
