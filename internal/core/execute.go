package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rosync/internal/types"
)

// apply runs plan against the device: removals, updates, creations, then
// moves. The first failing operation stops the run; earlier operations
// stay applied.
func (e Engine) apply(ctx context.Context, path types.Path, plan types.Plan) error {
	logger := log.Ctx(ctx)
	if len(plan.Removals) > 0 {
		ids := make([]string, 0, len(plan.Removals))
		for _, op := range plan.Removals {
			ids = append(ids, op.ID)
		}
		if err := e.Device.Remove(ctx, path, ids...); err != nil {
			return deviceError(err, fmt.Sprintf("failed to remove %d entries at %q", len(ids), path.String()))
		}
		logger.Debug().Strs("ids", ids).Msg("removed entries")
	}
	for _, op := range plan.Updates {
		if err := e.Device.Update(ctx, path, op.ID, op.Changes); err != nil {
			return deviceError(err, fmt.Sprintf("failed to update entry %q at %q", op.ID, path.String()))
		}
		logger.Debug().Str("id", op.ID).Str("changes", types.FormatChanges(op.Changes)).Msg("updated entry")
	}
	for _, op := range plan.Creations {
		id, err := e.Device.Add(ctx, path, op.Entry.Fields)
		if err != nil {
			return deviceError(err, fmt.Sprintf("failed to create entry at %q", path.String()))
		}
		op.Entry.ID = id
		logger.Debug().Str("id", id).Str("fields", types.FormatFields(op.Entry.Fields)).Msg("created entry")
	}
	for _, op := range plan.Moves {
		args := types.FieldsOf("numbers", op.Entry.ID, "destination", op.Before.ID)
		if err := e.Device.Invoke(ctx, path, "move", args); err != nil {
			return deviceError(err, fmt.Sprintf("failed to move entry %q before %q at %q", op.Entry.ID, op.Before.ID, path.String()))
		}
		logger.Debug().Str("id", op.Entry.ID).Str("before", op.Before.ID).Msg("moved entry")
	}
	return nil
}

func deviceError(err error, msg string) error {
	code := errbuilder.CodeInternal
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) {
		code = errbuilder.CodeOf(err)
	}
	return errbuilder.New().
		WithCode(code).
		WithMsg(msg).
		WithCause(err)
}
