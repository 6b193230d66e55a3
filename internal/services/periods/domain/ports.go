package domain

import (
	"context"
	"time"

	"wearlog/internal/core/nonwear"
	epochsdom "wearlog/internal/services/epochs/domain"
)

// EditorPort is the interactive marker-editing surface
type EditorPort interface {
	ListDay(ctx context.Context, in ListInput) (DayView, error)
	Insert(ctx context.Context, in InsertInput) (EditResult, error)
	Move(ctx context.Context, in MoveInput) (EditResult, error)
	Delete(ctx context.Context, in DeleteInput) (EditResult, error)
	MaskDay(ctx context.Context, in ListInput) (MaskView, error)
}

// ReplacerPort full-replaces the algorithm-source nonwear markers for a
// participant-day; the scan job is its only caller
type ReplacerPort interface {
	ReplaceAlgorithmDay(
		ctx context.Context,
		sourceID, participantID string,
		date time.Time,
		periods []nonwear.Period,
	) (int, error)
}

// Ports are dependencies injected into the periods module
type Ports struct {
	Epochs epochsdom.ReaderPort // required, mask rendering reads the day's series
}
