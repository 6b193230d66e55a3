// Package domain defines the types and interfaces for the epochs service
package domain

import "time"

// Day identifies one participant-day of recorded activity from a source device
type Day struct {
	SourceID      string
	ParticipantID string
	Date          time.Time // UTC midnight
}

// Epoch is one stored per-minute activity count
type Epoch struct {
	At       time.Time
	Activity float64
}
