// Package repo provides the periods repository implementation
package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"wearlog/internal/core/markers"
	"wearlog/internal/modkit/repokit"
	"wearlog/internal/services/periods/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the periods repository
type Storage interface {
	ListDay(ctx context.Context, k domain.DayKey) ([]domain.Row, error)
	ReplaceDay(ctx context.Context, k domain.DayKey, rows []domain.Row) error
	UpsertOne(ctx context.Context, r domain.Row) error
	DeleteOne(ctx context.Context, k domain.DayKey, marker int) error
}

// tableFor maps a marker kind to its table; kinds are a closed enum so this
// never interpolates caller input
func tableFor(kind markers.Kind) string {
	if kind == markers.KindSleep {
		return "sleep_periods"
	}
	return "nonwear_periods"
}

// ListDay implements Storage
func (s *pg) ListDay(ctx context.Context, k domain.DayKey) ([]domain.Row, error) {
	sql := fmt.Sprintf(`
		SELECT id::text, marker_index, start_at, end_at, origin, updated_at
		FROM %s
		WHERE source_id = $1 AND participant_id = $2 AND analysis_date = $3
		ORDER BY marker_index`, tableFor(k.Kind))

	rows, err := s.q.Query(ctx, sql, k.SourceID, k.ParticipantID, k.Date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Row
	for rows.Next() {
		r := domain.Row{
			SourceID:      k.SourceID,
			ParticipantID: k.ParticipantID,
			AnalysisDate:  k.Date,
			Kind:          k.Kind,
		}
		if err := rows.Scan(&r.ID, &r.MarkerIndex, &r.Start, &r.End, &r.Origin, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReplaceDay implements Storage; run it inside a transaction so readers never
// observe the day half-swapped
func (s *pg) ReplaceDay(ctx context.Context, k domain.DayKey, rows []domain.Row) error {
	del := fmt.Sprintf(`
		DELETE FROM %s
		WHERE source_id = $1 AND participant_id = $2 AND analysis_date = $3
			AND origin = 'algorithm'`, tableFor(k.Kind))
	if _, err := s.q.Exec(ctx, del, k.SourceID, k.ParticipantID, k.Date); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `INSERT INTO %s
		(id, source_id, participant_id, analysis_date, marker_index, start_at, end_at, origin)
		VALUES `, tableFor(k.Kind))

	args := make([]any, 0, len(rows)*8)
	for i, r := range rows {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*8 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5, base+6, base+7)

		id := r.ID
		if id == "" {
			id = uuid.NewString()
		}
		args = append(args,
			id, k.SourceID, k.ParticipantID, k.Date,
			r.MarkerIndex, r.Start, r.End, r.Origin,
		)
	}
	sb.WriteString(` ON CONFLICT (source_id, participant_id, analysis_date, marker_index)
		DO UPDATE SET start_at = EXCLUDED.start_at, end_at = EXCLUDED.end_at,
			origin = EXCLUDED.origin, updated_at = now()`)

	_, err := s.q.Exec(ctx, sb.String(), args...)
	return err
}

// UpsertOne implements Storage
func (s *pg) UpsertOne(ctx context.Context, r domain.Row) error {
	sql := fmt.Sprintf(`
		INSERT INTO %s
			(id, source_id, participant_id, analysis_date, marker_index, start_at, end_at, origin)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (source_id, participant_id, analysis_date, marker_index)
		DO UPDATE SET start_at = EXCLUDED.start_at, end_at = EXCLUDED.end_at,
			origin = EXCLUDED.origin, updated_at = now()`, tableFor(r.Kind))

	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := s.q.Exec(ctx, sql,
		id, r.SourceID, r.ParticipantID, r.AnalysisDate,
		r.MarkerIndex, r.Start, r.End, r.Origin,
	)
	return err
}

// DeleteOne implements Storage
func (s *pg) DeleteOne(ctx context.Context, k domain.DayKey, marker int) error {
	sql := fmt.Sprintf(`
		DELETE FROM %s
		WHERE source_id = $1 AND participant_id = $2 AND analysis_date = $3
			AND marker_index = $4`, tableFor(k.Kind))
	_, err := s.q.Exec(ctx, sql, k.SourceID, k.ParticipantID, k.Date, marker)
	return err
}
