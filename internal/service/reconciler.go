package service

import (
	apperrors "bandbook/internal/errors"
)

// ReconcileTracks computes the next favorite track set from the current
// set plus add/remove deltas.
//
// Rules:
//   - removals apply to the current set first, preserving the relative
//     order of survivors
//   - only novel additions (absent from the original current set) are
//     appended, in input order, at the end
//   - an id present in both add and remove is removed: remove wins
//   - the result carries no duplicates
//
// Both deltas empty is rejected rather than treated as a no-op write.
func ReconcileTracks(current, add, remove []string) ([]string, error) {
	if len(add) == 0 && len(remove) == 0 {
		return nil, apperrors.ErrNothingToChange
	}

	removed := make(map[string]struct{}, len(remove))
	for _, id := range remove {
		removed[id] = struct{}{}
	}
	inCurrent := make(map[string]struct{}, len(current))
	for _, id := range current {
		inCurrent[id] = struct{}{}
	}

	next := make([]string, 0, len(current)+len(add))
	seen := make(map[string]struct{}, len(current)+len(add))
	for _, id := range current {
		if _, drop := removed[id]; drop {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		next = append(next, id)
	}
	for _, id := range add {
		if _, exists := inCurrent[id]; exists {
			continue
		}
		if _, drop := removed[id]; drop {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		next = append(next, id)
	}
	return next, nil
}

// dedupeTracks drops duplicate ids, keeping first occurrences in order.
func dedupeTracks(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
