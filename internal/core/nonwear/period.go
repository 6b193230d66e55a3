// Package nonwear implements the Choi (2011) wear/nonwear classification over
// a validated per-minute activity series, plus the canonical merge and the
// dense per-epoch classification mask derived from merged periods
package nonwear

import (
	"time"

	"wearlog/internal/core/epoch"
)

// Source records how a period came to exist
type Source string

const (
	// SourceAlgorithm marks periods produced by the scanner
	SourceAlgorithm Source = "algorithm"
	// SourceSensor marks periods reported by the device itself
	SourceSensor Source = "sensor"
	// SourceManual marks periods placed by hand
	SourceManual Source = "manual"
)

// Period is one detected or annotated nonwear interval.
// StartIndex/EndIndex/DurationMinutes are nil until the period is resolved
// against a concrete series; a period placed by timestamp alone stays valid
// for display and persistence, it just cannot contribute to a mask
type Period struct {
	Start           time.Time
	End             time.Time
	StartIndex      *int
	EndIndex        *int
	DurationMinutes *int
	Source          Source
	ParticipantID   string
}

// HasIndices reports whether both index endpoints are resolved
func (p Period) HasIndices() bool { return p.StartIndex != nil && p.EndIndex != nil }

// Resolve backfills the index fields against s, matching each endpoint to the
// minute grid. It is a no-op when either endpoint misses the series; callers
// re-resolve explicitly, masks never do it on their behalf
func (p *Period) Resolve(s *epoch.Series) bool {
	si, ok1 := s.IndexOf(p.Start)
	ei, ok2 := s.IndexOf(p.End)
	if !ok1 || !ok2 {
		return false
	}
	d := ei - si + 1
	p.StartIndex, p.EndIndex, p.DurationMinutes = &si, &ei, &d
	return true
}

func intPtr(v int) *int { return &v }
