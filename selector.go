package edfsched

import (
	"iter"
	"slices"
)

// NotFound is the index reported when there is nothing to select.
const NotFound = -1

// Selection identifies the winning deadline of a [Select] call.
type Selection struct {
	Index     int
	Remaining int64
}

// Select scans deadlines once and returns the position of the one with the
// least remaining time as seen from now, interpreted under the policy of d.
// Ties go to the first deadline encountered. If deadlines is empty, Select
// returns a [Selection] with index [NotFound] and false.
//
// Select has no side effects.
func Select(d Domain, deadlines iter.Seq[Tick], now Tick) (Selection, bool) {
	best := Selection{Index: NotFound}

	i := 0
	for deadline := range deadlines {
		remaining := d.Remaining(deadline, now)
		if best.Index == NotFound || remaining < best.Remaining {
			best = Selection{Index: i, Remaining: remaining}
		}
		i++
	}

	return best, best.Index != NotFound
}

// SelectSlice is [Select] over a slice of absolute deadlines.
func SelectSlice(d Domain, deadlines []Tick, now Tick) (Selection, bool) {
	return Select(d, slices.Values(deadlines), now)
}
