// Package service contains epochs workflows
package service

import (
	"context"

	"wearlog/internal/modkit/repokit"
	perr "wearlog/internal/platform/errors"
	ptime "wearlog/internal/platform/time"
	"wearlog/internal/services/epochs/domain"
	"wearlog/internal/services/epochs/repo"
)

// Config for the epochs service
type Config struct {
	// MaxRows caps a single day read; a minute-cadence day holds 1440 rows,
	// more means the table carries duplicates for that key
	MaxRows int
}

// Svc implements domain.ReaderPort
type Svc struct {
	Repo   repo.Storage
	binder repokit.Binder[repo.Storage]
	db     repokit.TxRunner
	cfg    Config
}

// New creates a new epochs service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], cfg Config) *Svc {
	if db == nil {
		panic("epochs.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("epochs.Service requires a non nil Repo binder")
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = 2000
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, cfg: cfg}
}

// ListDay returns the stored epochs for day, ascending by timestamp
func (s *Svc) ListDay(ctx context.Context, day domain.Day) ([]domain.Epoch, error) {
	if day.SourceID == "" || day.ParticipantID == "" {
		return nil, perr.InvalidArgf("epochs: source and participant ids are required")
	}
	day.Date = ptime.Day(day.Date)

	rows, err := s.Repo.ListDay(ctx, day)
	if err != nil {
		return nil, err
	}
	if len(rows) > s.cfg.MaxRows {
		return nil, perr.InvalidArgf("epochs: day %s holds %d rows, cap is %d",
			day.Date.Format("2006-01-02"), len(rows), s.cfg.MaxRows)
	}
	return rows, nil
}
