// Package epoch defines the validated per-minute activity series that the
// nonwear scanner and classification mask operate on
package epoch

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Interval is the fixed epoch length; upstream loaders are responsible for
// collapsing raw sensor samples down to this cadence before handing data over
const Interval = time.Minute

// spacingJitter is how far an observed gap may drift from Interval before the
// series is rejected as mis-spaced
const spacingJitter = time.Second

// maxReportedIndexes caps how many offending indexes a ValidationError names
const maxReportedIndexes = 10

// Record is a single per-minute activity count
type Record struct {
	At       time.Time
	Activity float64
}

// Series is an immutable, validated sequence of Records at uniform
// one-minute spacing. The zero value is empty; use New to construct
type Series struct {
	recs []Record
}

// ValidationError reports why a raw record slice was rejected.
// Indexes names at most the first ten offending positions
type ValidationError struct {
	Reason  string
	Indexes []int
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Indexes) == 0 {
		return "epoch: " + e.Reason
	}
	parts := make([]string, 0, len(e.Indexes))
	for _, i := range e.Indexes {
		parts = append(parts, fmt.Sprintf("%d", i))
	}
	return fmt.Sprintf("epoch: %s at indexes [%s]", e.Reason, strings.Join(parts, " "))
}

// New validates recs and returns a Series over them.
// It rejects empty input, NaN/Inf/negative activity values, and any observed
// spacing that is not one minute; the scanner never resamples, so a spacing
// failure is a hard precondition error for the whole operation
func New(recs []Record) (*Series, error) {
	if len(recs) == 0 {
		return nil, &ValidationError{Reason: "empty series"}
	}

	var bad []int
	for i, r := range recs {
		v := r.Activity
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			if len(bad) < maxReportedIndexes {
				bad = append(bad, i)
			}
		}
	}
	if len(bad) > 0 {
		return nil, &ValidationError{Reason: "activity values must be finite and non-negative", Indexes: bad}
	}

	for i := 1; i < len(recs); i++ {
		gap := recs[i].At.Sub(recs[i-1].At)
		if gap < Interval-spacingJitter || gap > Interval+spacingJitter {
			return nil, &ValidationError{
				Reason:  fmt.Sprintf("epoch spacing must be 1m, observed %s", gap),
				Indexes: []int{i},
			}
		}
	}

	cp := make([]Record, len(recs))
	copy(cp, recs)
	return &Series{recs: cp}, nil
}

// Len returns the number of epochs
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.recs)
}

// At returns the timestamp of epoch i
func (s *Series) At(i int) time.Time { return s.recs[i].At }

// Activity returns the activity count of epoch i
func (s *Series) Activity(i int) float64 { return s.recs[i].Activity }

// Start returns the timestamp of the first epoch
func (s *Series) Start() time.Time { return s.recs[0].At }

// End returns the timestamp of the last epoch
func (s *Series) End() time.Time { return s.recs[len(s.recs)-1].At }

// IndexOf resolves a timestamp to its epoch index, false when t falls
// outside the series or off the minute grid
func (s *Series) IndexOf(t time.Time) (int, bool) {
	if s.Len() == 0 {
		return 0, false
	}
	d := t.Sub(s.Start())
	if d < 0 || d%Interval != 0 {
		return 0, false
	}
	i := int(d / Interval)
	if i >= s.Len() {
		return 0, false
	}
	return i, true
}
