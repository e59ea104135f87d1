package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rosync/internal/types"
)

// planKeyed pairs entries by primary key. The projected list keeps the
// device order with creations appended.
func planKeyed(p Prepared, current []types.Entry) (types.Plan, []*types.Entry, error) {
	keys := p.Resource.Keys
	calc := NewCalculator(p.Resource, p.Policies)

	desiredByKey := make(map[string]int, len(p.Desired))
	for i, entry := range p.Desired {
		desiredByKey[desiredKey(entry, keys)] = i
	}
	targets := make([]*types.Entry, len(p.Desired))

	plan := types.Plan{}
	var after []*types.Entry
	for _, entry := range current {
		idx, ok := desiredByKey[fieldsKey(entry.Fields, keys)]
		if ok && targets[idx] == nil {
			forText := " for " + formatKey(entry.Fields, keys)
			mods, err := calc.Find(entry.Fields, p.Desired[idx], forText, false)
			if err != nil {
				return types.Plan{}, nil, err
			}
			updated := &types.Entry{ID: entry.ID, Fields: mods.Updated}
			if mods.Changes.Len() > 0 {
				plan.Updates = append(plan.Updates, types.UpdateOp{ID: entry.ID, Changes: mods.Changes, Entry: updated})
			}
			targets[idx] = updated
			after = append(after, updated)
			continue
		}
		if p.Policies.AbsentEntries == types.AbsentEntriesRemove {
			if p.Resource.FixedEntries {
				return types.Plan{}, nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("Cannot remove entry %s: path %q has fixed entries.", formatKey(entry.Fields, keys), p.Path.String()))
			}
			plan.Removals = append(plan.Removals, types.RemoveOp{ID: entry.ID, Entry: entry})
			continue
		}
		kept := entry.Clone()
		after = append(after, &kept)
	}

	for i, entry := range p.Desired {
		if targets[i] != nil {
			continue
		}
		if p.Resource.FixedEntries {
			return types.Plan{}, nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("Cannot create entry %s: path %q has fixed entries.", formatKey(setFields(entry), keys), p.Path.String()))
		}
		fields, err := creationFields(p.Resource, entry, fmt.Sprintf(" at index %d", i))
		if err != nil {
			return types.Plan{}, nil, err
		}
		created := &types.Entry{Fields: fields}
		plan.Creations = append(plan.Creations, types.CreateOp{Entry: created})
		targets[i] = created
		after = append(after, created)
	}

	if p.Policies.EnsureOrder {
		after, plan.Moves = reorder(after, targets)
	}
	return plan, after, nil
}
