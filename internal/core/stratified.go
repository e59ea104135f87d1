package core

import (
	"fmt"
	"sort"

	"rosync/internal/types"
)

type stratum struct {
	desired []int
	current []int
}

// planStratified matches entries within buckets sharing the same stratify
// key values. Retained and updated entries keep their device order;
// creations follow in desired order.
func planStratified(p Prepared, current []types.Entry) (types.Plan, []*types.Entry, error) {
	keys := p.Resource.Keys
	calc := NewCalculator(p.Resource, p.Policies)

	var order []string
	strata := map[string]*stratum{}
	bucket := func(key string) *stratum {
		if s, ok := strata[key]; ok {
			return s
		}
		s := &stratum{}
		strata[key] = s
		order = append(order, key)
		return s
	}
	for i, entry := range p.Desired {
		s := bucket(desiredKey(entry, keys))
		s.desired = append(s.desired, i)
	}
	for i, entry := range current {
		s := bucket(fieldsKey(entry.Fields, keys))
		s.current = append(s.current, i)
	}

	targets := make([]*types.Entry, len(p.Desired))
	retained := make([]*types.Entry, len(current))
	updates := make([]*types.UpdateOp, len(current))
	removed := make([]bool, len(current))
	var creations []int

	for _, key := range order {
		s := strata[key]
		matches, err := matchEntries(calc, p.Desired, s.desired, current, s.current)
		if err != nil {
			return types.Plan{}, nil, err
		}
		claimed := map[int]bool{}
		for _, di := range s.desired {
			ci, ok := matches[di]
			if !ok {
				creations = append(creations, di)
				continue
			}
			claimed[ci] = true
			mods, err := calc.Find(current[ci].Fields, p.Desired[di], fmt.Sprintf(" at index %d", di), false)
			if err != nil {
				return types.Plan{}, nil, err
			}
			updated := &types.Entry{ID: current[ci].ID, Fields: mods.Updated}
			if mods.Changes.Len() > 0 {
				updates[ci] = &types.UpdateOp{ID: current[ci].ID, Changes: mods.Changes, Entry: updated}
			}
			retained[ci] = updated
			targets[di] = updated
		}
		for _, ci := range s.current {
			if claimed[ci] {
				continue
			}
			if p.Policies.AbsentEntries == types.AbsentEntriesRemove {
				removed[ci] = true
				continue
			}
			kept := current[ci].Clone()
			retained[ci] = &kept
		}
	}

	plan := types.Plan{}
	var after []*types.Entry
	for ci := range current {
		if removed[ci] {
			plan.Removals = append(plan.Removals, types.RemoveOp{ID: current[ci].ID, Entry: current[ci]})
			continue
		}
		if updates[ci] != nil {
			plan.Updates = append(plan.Updates, *updates[ci])
		}
		after = append(after, retained[ci])
	}
	sort.Ints(creations)
	for _, di := range creations {
		fields, err := creationFields(p.Resource, p.Desired[di], fmt.Sprintf(" at index %d", di))
		if err != nil {
			return types.Plan{}, nil, err
		}
		created := &types.Entry{Fields: fields}
		plan.Creations = append(plan.Creations, types.CreateOp{Entry: created})
		targets[di] = created
		after = append(after, created)
	}

	if p.Policies.EnsureOrder {
		after, plan.Moves = reorder(after, targets)
	}
	return plan, after, nil
}
