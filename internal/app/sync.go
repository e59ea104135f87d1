package app

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rosync/internal/core"
	"rosync/internal/ports"
	"rosync/internal/types"
)

// Sync reconciles every selected task of a desired-state file against one
// device. Tasks run in file order; the first failing task ends the run.
func (s Service) Sync(ctx context.Context, req SyncRequest) (SyncResult, error) {
	desiredPath := strings.TrimSpace(req.DesiredPath)
	if desiredPath == "" {
		return SyncResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("desired state file is required")
	}
	state, err := s.Desired.Load(desiredPath)
	if err != nil {
		return SyncResult{}, err
	}
	tasks, err := selectTasks(state.Tasks, req.Paths)
	if err != nil {
		return SyncResult{}, err
	}

	device, err := s.Connector.Connect(ctx, req.Target)
	if err != nil {
		return SyncResult{}, err
	}
	version, err := device.Version(ctx)
	if err != nil {
		return SyncResult{}, err
	}
	log.Ctx(ctx).Info().
		Str("device", deviceName(req.Target)).
		Str("version", version).
		Int("tasks", len(tasks)).
		Bool("dry_run", req.DryRun).
		Msg("starting sync")

	engine := core.NewEngine(s.Registry, device)
	report := types.SyncReport{GeneratedAt: s.now(), Device: deviceName(req.Target), Version: version}
	result := SyncResult{Version: version}
	var runErr error
	for _, task := range tasks {
		taskResult, err := s.runTask(ctx, engine, task, req.DryRun)
		if err != nil {
			runErr = err
			break
		}
		result.Tasks = append(result.Tasks, taskResult)
		result.Changed = result.Changed || taskResult.Changed
		report.Tasks = append(report.Tasks, types.TaskReport{
			RunID:   taskResult.RunID,
			Path:    taskResult.Path,
			Changed: taskResult.Changed,
			DryRun:  req.DryRun,
			OldData: taskResult.Result.OldData,
			NewData: taskResult.Result.NewData,
			Plan:    taskResult.Result.Plan,
		})
	}

	if s.Metrics != nil {
		if err := s.Metrics.Flush(); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to write metrics")
		}
	}
	if reportPath := strings.TrimSpace(req.ReportPath); reportPath != "" {
		if err := s.Reports.WriteReport(reportPath, report); err != nil && runErr == nil {
			runErr = err
		}
	}
	if runErr != nil {
		return result, runErr
	}
	return result, nil
}

func (s Service) runTask(ctx context.Context, engine core.Engine, task types.Task, dryRun bool) (TaskResult, error) {
	runID := s.newRunID()
	logger := log.Ctx(ctx).With().Str("run_id", runID).Str("path", task.Path.String()).Logger()
	ctx = logger.WithContext(ctx)

	started := s.now()
	synced, err := engine.Reconcile(ctx, core.SyncRequest{
		Path:     task.Path,
		Data:     task.Data,
		Policies: task.Policies,
		Restrict: task.Restrict,
		DryRun:   dryRun,
	})
	record := types.RunRecord{
		ID:         runID,
		Path:       task.Path.String(),
		Changed:    synced.Changed,
		DryRun:     dryRun,
		Summary:    synced.Plan.Summary(),
		StartedAt:  started,
		FinishedAt: s.now(),
	}
	if err != nil {
		record.Error = err.Error()
	}
	s.observe(ctx, record)
	if err != nil {
		logger.Error().Err(err).Msg("task failed")
		return TaskResult{}, err
	}

	logger.Info().
		Bool("changed", synced.Changed).
		Int("removals", record.Summary.Removals).
		Int("updates", record.Summary.Updates).
		Int("creations", record.Summary.Creations).
		Int("moves", record.Summary.Moves).
		Msg("task synchronized")
	return TaskResult{
		RunID:   runID,
		Path:    task.Path,
		Changed: synced.Changed,
		Summary: record.Summary,
		Result:  synced,
	}, nil
}

func (s Service) observe(ctx context.Context, record types.RunRecord) {
	if s.Metrics != nil {
		s.Metrics.ObserveRun(record)
	}
	if s.History != nil {
		if err := s.History.Record(ctx, record); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to record run history")
		}
	}
}

func selectTasks(tasks []types.Task, paths []string) ([]types.Task, error) {
	if len(paths) == 0 {
		return tasks, nil
	}
	wanted := make([]string, 0, len(paths))
	for _, path := range paths {
		wanted = append(wanted, types.ParsePath(path).String())
	}
	var out []types.Task
	for _, task := range tasks {
		if slices.Contains(wanted, task.Path.String()) {
			out = append(out, task)
		}
	}
	if len(out) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no task for paths %s", strings.Join(wanted, ", ")))
	}
	return out, nil
}

func deviceName(target ports.DeviceTarget) string {
	if host := strings.TrimSpace(target.Host); host != "" {
		return host
	}
	if target.StateFile != "" {
		return "file:" + target.StateFile
	}
	return "device"
}
