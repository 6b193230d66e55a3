package nonwear

import (
	"errors"

	"github.com/rs/zerolog"

	"wearlog/internal/core/epoch"
)

// Params are the scan parameters. The defaults reproduce the published
// Choi (2011) algorithm exactly; anything else is an explicit deviation
// the caller owns
type Params struct {
	// MinPeriodLen is the minimum candidate length in minutes
	MinPeriodLen int
	// SpikeTolerance is how many nonzero minutes the window around a spike
	// may contain before the spike breaks the run
	SpikeTolerance int
	// WindowSize is the evaluation window in minutes on each side of a spike
	WindowSize int
	// MaxWindowSpan bounds a single window evaluation; a window wider than
	// this is truncated and logged rather than failing the scan
	MaxWindowSpan int
	// Log receives truncation warnings; nil means truncate silently
	Log *zerolog.Logger
}

// DefaultParams are the validated Choi (2011) constants
var DefaultParams = Params{
	MinPeriodLen:   90,
	SpikeTolerance: 2,
	WindowSize:     30,
	MaxWindowSpan:  1_000_000,
}

// ErrEmptySeries is returned when the scanner receives nothing to scan
var ErrEmptySeries = errors.New("nonwear: empty series")

// Scan runs a single left-to-right pass over s and returns candidate nonwear
// periods. A candidate opens on the first zero epoch and extends while epochs
// stay zero; a nonzero epoch is tolerated as a spike when the window
// [j-WindowSize, j+WindowSize) around it, clamped to the series, holds at
// most SpikeTolerance nonzero epochs. A closed candidate is kept when it
// spans at least MinPeriodLen minutes. Discarded candidates resume scanning
// at start+1, not past the candidate, so overlapping windows are not missed.
//
// The inner window check fires once per nonzero epoch met inside an open
// zero run and is bounded by WindowSize, so the whole scan is effectively
// linear in the series length
func Scan(s *epoch.Series, p Params) ([]Period, error) {
	n := s.Len()
	if n == 0 {
		return nil, ErrEmptySeries
	}
	if p.MinPeriodLen <= 0 {
		p.MinPeriodLen = DefaultParams.MinPeriodLen
	}
	if p.WindowSize <= 0 {
		p.WindowSize = DefaultParams.WindowSize
	}
	if p.MaxWindowSpan <= 0 {
		p.MaxWindowSpan = DefaultParams.MaxWindowSpan
	}

	var out []Period

	i := 0
	for i < n {
		if s.Activity(i) != 0 {
			i++
			continue
		}

		start := i
		lastZero := i
		j := i
		for j < n {
			if s.Activity(j) == 0 {
				lastZero = j
				j++
				continue
			}
			if countNonzeroAround(s, j, p) <= p.SpikeTolerance {
				// tolerable spike, extend through it
				j++
				continue
			}
			// disqualifying spike: close at the last confirmed zero
			break
		}

		end := lastZero
		if end-start+1 >= p.MinPeriodLen {
			out = append(out, Period{
				Start:           s.At(start),
				End:             s.At(end),
				StartIndex:      intPtr(start),
				EndIndex:        intPtr(end),
				DurationMinutes: intPtr(end - start + 1),
				Source:          SourceAlgorithm,
			})
			i = end + 1
		} else {
			i = start + 1
		}
	}

	return out, nil
}

// ScanAndMerge is the scan entry point most callers want: candidates from
// Scan folded into the canonical sorted, non-overlapping list
func ScanAndMerge(s *epoch.Series, p Params) ([]Period, error) {
	cands, err := Scan(s, p)
	if err != nil {
		return nil, err
	}
	return Merge(cands), nil
}

// countNonzeroAround counts nonzero epochs in the clamped window
// [j-WindowSize, j+WindowSize)
func countNonzeroAround(s *epoch.Series, j int, p Params) int {
	lo := j - p.WindowSize
	if lo < 0 {
		lo = 0
	}
	hi := j + p.WindowSize
	if hi > s.Len() {
		hi = s.Len()
	}
	if p.MaxWindowSpan > 0 && hi-lo > p.MaxWindowSpan {
		hi = lo + p.MaxWindowSpan
		if p.Log != nil {
			p.Log.Warn().
				Int("at", j).
				Int("cap", p.MaxWindowSpan).
				Msg("spike window truncated at safety cap")
		}
	}

	count := 0
	for k := lo; k < hi; k++ {
		if s.Activity(k) != 0 {
			count++
		}
	}
	return count
}
