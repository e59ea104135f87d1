package core

import (
	"sort"

	"rosync/internal/schema"
	"rosync/internal/types"
)

type matchCandidate struct {
	cost    int
	desired int
	current int
}

// matchEntries pairs desired entries with current entries of one bucket.
// Compatible pairs are sorted by ascending cost (stable on desired index,
// then current index) and claimed greedily. The result maps desired index
// to current index; unmatched desired entries are absent from it.
func matchEntries(calc Calculator, desired []types.Desired, desiredIdx []int, current []types.Entry, currentIdx []int) (map[int]int, error) {
	var candidates []matchCandidate
	for _, di := range desiredIdx {
		for _, ci := range currentIdx {
			cost, ok, err := matchCost(calc, current[ci].Fields, desired[di])
			if err != nil {
				return nil, err
			}
			if ok {
				candidates = append(candidates, matchCandidate{cost: cost, desired: di, current: ci})
			}
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].cost < candidates[j].cost
	})
	matches := map[int]int{}
	claimed := map[int]bool{}
	for _, candidate := range candidates {
		if _, done := matches[candidate.desired]; done {
			continue
		}
		if claimed[candidate.current] {
			continue
		}
		matches[candidate.desired] = candidate.current
		claimed[candidate.current] = true
	}
	return matches, nil
}

// matchCost scores how far current is from desired. When extra fields are
// being removed the cost is the size of the change set; otherwise any
// difference on a desired field rules the pair out and the cost counts the
// extra fields the current entry carries.
func matchCost(calc Calculator, current types.Fields, desired types.Desired) (int, bool, error) {
	if calc.Policies.EntriesContent == types.EntriesContentIgnore {
		cost, ok := essentiallySameWeight(calc.Resource, current, desired)
		return cost, ok, nil
	}
	mods, err := calc.Find(current, desired, "", true)
	if err != nil {
		return 0, false, err
	}
	if !mods.Compatible {
		return 0, false, nil
	}
	return mods.Changes.Len(), true, nil
}

func essentiallySameWeight(resource schema.Resource, current types.Fields, desired types.Desired) (int, bool) {
	for _, name := range desired.Keys() {
		state, _ := desired.Get(name)
		field := resource.Fields[name]
		currentValue, has := current.Get(name)
		value, isSet := state.Value()
		if !isSet {
			if has && (field.RemoveValue == nil || !field.RemoveValue.Equal(currentValue)) {
				return 0, false
			}
			continue
		}
		if field.WriteOnly {
			continue
		}
		if !has {
			if field.Default != nil && field.Default.Equal(value) {
				continue
			}
			return 0, false
		}
		if !currentValue.Equal(value) {
			return 0, false
		}
	}
	weight := 0
	for _, name := range current.Keys() {
		if desired.Has(name) {
			continue
		}
		field, known := resource.Fields[name]
		if !known || field.ReadOnly || len(field.ComputedFrom) > 0 {
			continue
		}
		value, _ := current.Get(name)
		if field.IsNeutral(value) {
			continue
		}
		weight++
	}
	return weight, true
}
