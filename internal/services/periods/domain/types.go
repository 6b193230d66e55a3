// Package domain defines the types and interfaces for the periods service
package domain

import (
	"time"

	"wearlog/internal/core/markers"
)

// DayKey identifies one participant-day of markers of one kind
type DayKey struct {
	SourceID      string
	ParticipantID string
	Date          time.Time // UTC midnight
	Kind          markers.Kind
}

// Row is one persisted marker interval for a participant-day
type Row struct {
	ID            string // uuid
	SourceID      string
	ParticipantID string
	AnalysisDate  time.Time
	Kind          markers.Kind
	MarkerIndex   int // 1-based slot index
	Start         time.Time
	End           time.Time
	Origin        string // algorithm | sensor | manual
	UpdatedAt     time.Time
}

// KeyInput is the wire form of DayKey shared by the edit endpoints
type KeyInput struct {
	SourceID      string `json:"source_id"      validate:"required"`
	ParticipantID string `json:"participant_id" validate:"required"`
	Date          string `json:"date"           validate:"required,datetime=2006-01-02"`
	Kind          string `json:"kind"           validate:"required,oneof=sleep nonwear"`
}

// ListInput selects a participant-day to view
type ListInput struct {
	KeyInput
}

// InsertInput places a complete marker interval
type InsertInput struct {
	KeyInput
	Start string `json:"start" validate:"required"`
	End   string `json:"end"   validate:"required"`
	// Replace targets an occupied slot instead of taking a free one; 0 means none
	Replace int `json:"replace" validate:"gte=0"`
}

// MoveInput drags one endpoint of an existing marker
type MoveInput struct {
	KeyInput
	Marker   int    `json:"marker"   validate:"required,gte=1"`
	Endpoint string `json:"endpoint" validate:"required,oneof=start end"`
	At       string `json:"at"       validate:"required"`
}

// DeleteInput frees a marker slot
type DeleteInput struct {
	KeyInput
	Marker int `json:"marker" validate:"required,gte=1"`
}

// RowView is the wire form of a stored marker interval
type RowView struct {
	Marker          int       `json:"marker"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"duration_minutes"`
	Origin          string    `json:"origin"`
}

// DayView is a participant-day of markers plus soft signals
type DayView struct {
	Rows []RowView `json:"rows"`
	// DurationTie is a soft warning: two complete markers share a duration
	DurationTie bool `json:"duration_tie"`
}

// EditResult reports what an accepted edit did
type EditResult struct {
	Marker int    `json:"marker"`
	State  string `json:"state"`
	// Swapped is true when a drag crossed the sibling endpoint and the
	// endpoint roles traded places
	Swapped     bool `json:"swapped"`
	DurationTie bool `json:"duration_tie"`
}

// MaskView is the dense per-minute classification for a participant-day
type MaskView struct {
	Minutes int     `json:"minutes"`
	Mask    []uint8 `json:"mask"`
}
