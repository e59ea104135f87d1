package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rosync/internal/types"
)

// planSingleValue updates the one entry of a single-value path in place.
func planSingleValue(p Prepared, current []types.Entry) (types.Plan, []*types.Entry, error) {
	if len(current) != 1 {
		return types.Plan{}, nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("Retrieving %q resulted in %d elements. Expected exactly 1.", p.Path.String(), len(current)))
	}
	calc := NewCalculator(p.Resource, p.Policies)
	mods, err := calc.Find(current[0].Fields, p.Desired[0], "", false)
	if err != nil {
		return types.Plan{}, nil, err
	}
	updated := &types.Entry{ID: current[0].ID, Fields: mods.Updated}
	plan := types.Plan{}
	if mods.Changes.Len() > 0 {
		plan.Updates = append(plan.Updates, types.UpdateOp{ID: current[0].ID, Changes: mods.Changes, Entry: updated})
	}
	return plan, []*types.Entry{updated}, nil
}
