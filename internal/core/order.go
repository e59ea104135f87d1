package core

import "rosync/internal/types"

// reorder moves every target to the position of its index, front to back,
// and returns the new order together with the moves that reproduce it on
// the device. Each move places an entry before the one currently holding
// its position.
func reorder(entries []*types.Entry, targets []*types.Entry) ([]*types.Entry, []types.MoveOp) {
	out := append([]*types.Entry(nil), entries...)
	var moves []types.MoveOp
	for i, target := range targets {
		if i >= len(out) {
			break
		}
		j := indexOfEntry(out, target)
		if j <= i {
			continue
		}
		moves = append(moves, types.MoveOp{Entry: target, Before: out[i]})
		copy(out[i+1:j+1], out[i:j])
		out[i] = target
	}
	return out, moves
}

func indexOfEntry(entries []*types.Entry, target *types.Entry) int {
	for i, entry := range entries {
		if entry == target {
			return i
		}
	}
	return -1
}
