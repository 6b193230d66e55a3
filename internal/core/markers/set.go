// Package markers implements the fixed-capacity, invariant-preserving
// collection of editable time intervals behind interactive sleep and nonwear
// annotation. Edits either commit whole or roll back whole: a rejected edit
// restores the touched slot to its pre-edit value and returns a typed error,
// leaving every other slot untouched
package markers

import (
	"errors"
	"time"
)

// Kind selects which invariant family a set enforces
type Kind string

const (
	// KindSleep sets allow overlapping intervals: naps legitimately overlap
	// the main sleep period, so sleep sets never run the overlap check
	KindSleep Kind = "sleep"
	// KindNonwear sets reject any two occupied slots whose intervals share
	// a minute
	KindNonwear Kind = "nonwear"
)

// Default capacities per kind
const (
	DefaultSleepCapacity   = 4
	DefaultNonwearCapacity = 10
)

// State is the per-slot lifecycle: Empty -> Partial (one endpoint placed)
// -> Complete (both placed, start < end); deleting frees the slot for reuse
type State uint8

const (
	// StateEmpty means the slot is unoccupied
	StateEmpty State = iota
	// StatePartial means exactly one endpoint is placed
	StatePartial
	// StateComplete means both endpoints are placed and ordered
	StateComplete
)

// Endpoint names which semantic role an edit targets
type Endpoint uint8

const (
	// Start is the interval's opening endpoint
	Start Endpoint = iota
	// End is the interval's closing endpoint
	End
)

// Typed edit errors; callers branch on these to warn without losing state
var (
	ErrCapacityExceeded = errors.New("markers: all slots occupied")
	ErrInvalidOrder     = errors.New("markers: start must precede end")
	ErrOverlap          = errors.New("markers: interval overlaps an occupied slot")
	ErrNoSuchMarker     = errors.New("markers: marker index out of range")
	ErrEmptySlot        = errors.New("markers: marker slot is empty")
)

// Update describes what an endpoint edit did to its slot
type Update struct {
	// Swapped is true when the edit crossed the sibling endpoint and the
	// two endpoints traded semantic roles; dependent views must relabel
	// which handle is "start" and which is "end"
	Swapped bool
	// State is the slot state after the edit
	State State
}

type slot struct {
	hasStart bool
	hasEnd   bool
	start    time.Time
	end      time.Time
}

func (sl slot) state() State {
	switch {
	case sl.hasStart && sl.hasEnd:
		return StateComplete
	case sl.hasStart || sl.hasEnd:
		return StatePartial
	default:
		return StateEmpty
	}
}

// Interval is a complete marker interval, reported by Complete for export
type Interval struct {
	Marker int
	Start  time.Time
	End    time.Time
}

// Set is a fixed-capacity slot array addressed by 1-based marker index,
// with a selected-slot index where 0 means no selection. Not safe for
// concurrent use; a caller must finish one edit, including any rollback,
// before starting the next
type Set struct {
	kind     Kind
	slots    []slot
	selected int
}

// NewSet returns an empty Set of the given kind. A non-positive capacity
// falls back to the kind's default
func NewSet(kind Kind, capacity int) *Set {
	if capacity <= 0 {
		if kind == KindSleep {
			capacity = DefaultSleepCapacity
		} else {
			capacity = DefaultNonwearCapacity
		}
	}
	return &Set{kind: kind, slots: make([]slot, capacity)}
}

// Kind returns the set's invariant family
func (s *Set) Kind() Kind { return s.kind }

// Capacity returns the fixed slot count
func (s *Set) Capacity() int { return len(s.slots) }

// Selected returns the selected marker index, 0 when none
func (s *Set) Selected() int { return s.selected }

// Select sets the selected marker; 0 clears the selection
func (s *Set) Select(marker int) error {
	if marker < 0 || marker > len(s.slots) {
		return ErrNoSuchMarker
	}
	s.selected = marker
	return nil
}

// State returns the lifecycle state of a marker slot; out-of-range indexes
// read as empty
func (s *Set) State(marker int) State {
	if marker < 1 || marker > len(s.slots) {
		return StateEmpty
	}
	return s.slots[marker-1].state()
}

// Interval returns the endpoints of a marker along with its state; the
// timestamps are only meaningful for the endpoints the state says are placed
func (s *Set) Interval(marker int) (start, end time.Time, state State) {
	if marker < 1 || marker > len(s.slots) {
		return time.Time{}, time.Time{}, StateEmpty
	}
	sl := s.slots[marker-1]
	return sl.start, sl.end, sl.state()
}

// Snap rounds a timestamp to the nearest minute boundary. The minute is the
// persistence unit; sub-minute precision is discarded on purpose
func Snap(t time.Time) time.Time { return t.Round(time.Minute) }

// Insert places a complete interval. With replace == 0 it takes the first
// empty slot and fails with ErrCapacityExceeded when none is free; a
// positive replace overwrites that slot instead. The returned index is the
// occupied marker
func (s *Set) Insert(start, end time.Time, replace int) (int, error) {
	start, end = Snap(start), Snap(end)
	if !start.Before(end) {
		return 0, ErrInvalidOrder
	}

	target := replace
	if target == 0 {
		for i := range s.slots {
			if s.slots[i].state() == StateEmpty {
				target = i + 1
				break
			}
		}
		if target == 0 {
			return 0, ErrCapacityExceeded
		}
	} else if target < 1 || target > len(s.slots) {
		return 0, ErrNoSuchMarker
	}

	if s.kind == KindNonwear && s.CheckOverlap(start, end, target) {
		return 0, ErrOverlap
	}

	s.slots[target-1] = slot{hasStart: true, hasEnd: true, start: start, end: end}
	return target, nil
}

// UpdateEndpoint moves one endpoint of a marker to a new (snapped)
// timestamp. Placing an endpoint on an empty or partial slot advances the
// slot's state machine; on a complete slot, moving an endpoint across its
// sibling swaps the two semantic roles instead of rejecting the edit and
// reports the swap so dependent views can relabel their handles. The swap is
// symmetric: crossing back swaps again.
//
// A resulting zero-length interval rolls back with ErrInvalidOrder; on
// nonwear sets a resulting interval that shares a minute with another
// occupied slot rolls back with ErrOverlap. Rollback restores the slot's
// exact pre-edit value
func (s *Set) UpdateEndpoint(marker int, ep Endpoint, at time.Time) (Update, error) {
	if marker < 1 || marker > len(s.slots) {
		return Update{}, ErrNoSuchMarker
	}
	at = Snap(at)

	prev := s.slots[marker-1]
	next := prev
	switch ep {
	case Start:
		next.hasStart = true
		next.start = at
	case End:
		next.hasEnd = true
		next.end = at
	default:
		return Update{}, ErrNoSuchMarker
	}

	up := Update{State: next.state()}
	if up.State == StateComplete {
		if next.start.Equal(next.end) {
			return Update{State: prev.state()}, ErrInvalidOrder
		}
		if next.start.After(next.end) {
			next.start, next.end = next.end, next.start
			up.Swapped = true
		}
		if s.kind == KindNonwear && s.CheckOverlap(next.start, next.end, marker) {
			return Update{State: prev.state()}, ErrOverlap
		}
	}

	s.slots[marker-1] = next
	return up, nil
}

// Validate reports whether a marker satisfies the ordering invariant; only
// complete slots can violate it
func (s *Set) Validate(marker int) error {
	if marker < 1 || marker > len(s.slots) {
		return ErrNoSuchMarker
	}
	sl := s.slots[marker-1]
	if sl.state() == StateComplete && !sl.start.Before(sl.end) {
		return ErrInvalidOrder
	}
	return nil
}

// Delete frees a marker slot for reuse and clears the selection when it
// pointed at the deleted marker
func (s *Set) Delete(marker int) error {
	if marker < 1 || marker > len(s.slots) {
		return ErrNoSuchMarker
	}
	s.slots[marker-1] = slot{}
	if s.selected == marker {
		s.selected = 0
	}
	return nil
}

// CheckOverlap reports whether the candidate interval shares at least one
// minute with any complete slot other than exclude. Intervals are half-open
// at minute granularity, so merely touching endpoints do not overlap.
// Nonwear edits call this before committing; sleep sets are exempt and
// never consult it during edits
func (s *Set) CheckOverlap(candStart, candEnd time.Time, exclude int) bool {
	for i := range s.slots {
		if i+1 == exclude || s.slots[i].state() != StateComplete {
			continue
		}
		if candStart.Before(s.slots[i].end) && s.slots[i].start.Before(candEnd) {
			return true
		}
	}
	return false
}

// CheckDurationTie reports whether two or more complete periods share an
// identical duration. Real data can legitimately tie, so this is a soft
// warning signal for the caller, never a validation failure
func (s *Set) CheckDurationTie() bool {
	seen := make(map[time.Duration]bool, len(s.slots))
	for i := range s.slots {
		if s.slots[i].state() != StateComplete {
			continue
		}
		d := s.slots[i].end.Sub(s.slots[i].start)
		if seen[d] {
			return true
		}
		seen[d] = true
	}
	return false
}

// Complete returns the complete intervals in marker order, for export-time
// iteration
func (s *Set) Complete() []Interval {
	var out []Interval
	for i := range s.slots {
		if s.slots[i].state() != StateComplete {
			continue
		}
		out = append(out, Interval{Marker: i + 1, Start: s.slots[i].start, End: s.slots[i].end})
	}
	return out
}
