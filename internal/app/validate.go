package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rosync/internal/core"
)

// Validate checks a desired-state file without contacting a device. Paths
// whose schema depends on the software version need req.Version.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	desiredPath := strings.TrimSpace(req.DesiredPath)
	if desiredPath == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("desired state file is required")
	}
	state, err := s.Desired.Load(desiredPath)
	if err != nil {
		return ValidateResult{}, err
	}
	version := strings.TrimSpace(req.Version)
	result := ValidateResult{}
	for i, task := range state.Tasks {
		if selector, ok := s.Registry.Lookup(task.Path); ok && selector.NeedsVersion() && version == "" {
			return ValidateResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("task %d: path %q depends on the device version, pass a version to validate it", i, task.Path.String()))
		}
		prepared, err := core.Prepare(ctx, s.Registry, version, core.SyncRequest{
			Path:     task.Path,
			Data:     task.Data,
			Policies: task.Policies,
			Restrict: task.Restrict,
		})
		if err != nil {
			log.Ctx(ctx).Error().Int("task", i).Str("path", task.Path.String()).Err(err).Msg("task is invalid")
			return ValidateResult{}, err
		}
		result.Tasks++
		result.Entries += len(prepared.Desired)
		result.Paths = append(result.Paths, task.Path.String())
	}
	return result, nil
}
