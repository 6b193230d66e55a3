package domain

import "context"

// ReaderPort lists the stored epochs for one participant-day in ascending order
type ReaderPort interface {
	ListDay(ctx context.Context, day Day) ([]Epoch, error)
}
