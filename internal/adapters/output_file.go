package adapters

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"rosync/internal/ports"
	"rosync/internal/types"
)

// ReportFileAdapter writes sync reports as YAML documents.
type ReportFileAdapter struct{}

func NewReportFileAdapter() ReportFileAdapter {
	return ReportFileAdapter{}
}

type reportDocument struct {
	GeneratedAt string         `yaml:"generated_at"`
	Device      string         `yaml:"device"`
	Version     string         `yaml:"version,omitempty"`
	Changed     bool           `yaml:"changed"`
	Tasks       []taskDocument `yaml:"tasks"`
}

type taskDocument struct {
	RunID      string              `yaml:"run_id"`
	Path       string              `yaml:"path"`
	Changed    bool                `yaml:"changed"`
	DryRun     bool                `yaml:"dry_run"`
	Summary    types.PlanSummary   `yaml:"summary"`
	Operations []operationDocument `yaml:"operations,omitempty"`
	OldData    []types.Entry       `yaml:"old_data"`
	NewData    []types.Entry       `yaml:"new_data"`
}

type operationDocument struct {
	Op     types.OperationKind `yaml:"op"`
	ID     string              `yaml:"id,omitempty"`
	Before string              `yaml:"before,omitempty"`
	Fields *yaml.Node          `yaml:"fields,omitempty"`
}

// BuildReportDocument renders report in its file form.
func BuildReportDocument(report types.SyncReport) ([]byte, error) {
	doc := reportDocument{
		GeneratedAt: report.GeneratedAt.UTC().Format(time.RFC3339),
		Device:      report.Device,
		Version:     report.Version,
		Changed:     report.Changed(),
		Tasks:       make([]taskDocument, 0, len(report.Tasks)),
	}
	for _, task := range report.Tasks {
		doc.Tasks = append(doc.Tasks, taskDocument{
			RunID:      task.RunID,
			Path:       task.Path.String(),
			Changed:    task.Changed,
			DryRun:     task.DryRun,
			Summary:    task.Plan.Summary(),
			Operations: planOperations(task.Plan),
			OldData:    nonNilEntries(task.OldData),
			NewData:    nonNilEntries(task.NewData),
		})
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode sync report").
			WithCause(err)
	}
	return data, nil
}

func planOperations(plan types.Plan) []operationDocument {
	var out []operationDocument
	for _, op := range plan.Removals {
		out = append(out, operationDocument{Op: types.OperationRemove, ID: op.ID})
	}
	for _, op := range plan.Updates {
		out = append(out, operationDocument{Op: types.OperationUpdate, ID: op.ID, Fields: types.ChangesYAML(op.Changes)})
	}
	for _, op := range plan.Creations {
		fields := &yaml.Node{}
		if err := fields.Encode(op.Entry); err != nil {
			fields = nil
		}
		out = append(out, operationDocument{Op: types.OperationCreate, ID: op.Entry.ID, Fields: fields})
	}
	for _, op := range plan.Moves {
		out = append(out, operationDocument{Op: types.OperationMove, ID: op.Entry.ID, Before: op.Before.ID})
	}
	return out
}

func nonNilEntries(entries []types.Entry) []types.Entry {
	if entries == nil {
		return []types.Entry{}
	}
	return entries
}

func (a ReportFileAdapter) WriteReport(path string, report types.SyncReport) error {
	if path == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report path is empty")
	}
	data, err := BuildReportDocument(report)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create report directory").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write sync report").
			WithCause(err)
	}
	return nil
}

var _ ports.ReportPort = ReportFileAdapter{}
