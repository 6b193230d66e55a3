// Package repo provides the epochs repository implementation
package repo

import (
	"context"
	"time"

	"wearlog/internal/modkit/repokit"
	"wearlog/internal/services/epochs/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the epochs repository
type Storage interface {
	ListDay(ctx context.Context, day domain.Day) ([]domain.Epoch, error)
}

// ListDay implements Storage
func (s *pg) ListDay(ctx context.Context, day domain.Day) ([]domain.Epoch, error) {
	const sql = `
		SELECT at, activity
		FROM epochs
		WHERE source_id = $1 AND participant_id = $2
			AND at >= $3 AND at < $4
		ORDER BY at`

	from := day.Date
	rows, err := s.q.Query(ctx, sql, day.SourceID, day.ParticipantID, from, from.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Epoch, 0, 1440)
	for rows.Next() {
		var e domain.Epoch
		if err := rows.Scan(&e.At, &e.Activity); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
