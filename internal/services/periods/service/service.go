// Package service contains the marker-editing workflows for stored
// sleep and nonwear periods
package service

import (
	"context"
	"errors"
	"time"

	"wearlog/internal/core/epoch"
	"wearlog/internal/core/markers"
	"wearlog/internal/core/nonwear"
	"wearlog/internal/modkit/repokit"
	perr "wearlog/internal/platform/errors"
	"wearlog/internal/platform/logger"
	ptime "wearlog/internal/platform/time"
	epochsdom "wearlog/internal/services/epochs/domain"
	"wearlog/internal/services/periods/domain"
	"wearlog/internal/services/periods/repo"
)

// Config for the periods service
type Config struct {
	SleepCapacity   int
	NonwearCapacity int
}

// Svc implements domain.EditorPort and domain.ReplacerPort
type Svc struct {
	Epochs epochsdom.ReaderPort
	Repo   repo.Storage
	binder repokit.Binder[repo.Storage]
	db     repokit.TxRunner
	cfg    Config
}

// New creates a new periods service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], epochs epochsdom.ReaderPort, cfg Config) *Svc {
	if db == nil {
		panic("periods.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("periods.Service requires a non nil Repo binder")
	}
	if epochs == nil {
		panic("periods.Service requires the epochs reader port")
	}
	if cfg.SleepCapacity <= 0 {
		cfg.SleepCapacity = markers.DefaultSleepCapacity
	}
	if cfg.NonwearCapacity <= 0 {
		cfg.NonwearCapacity = markers.DefaultNonwearCapacity
	}
	return &Svc{Epochs: epochs, Repo: binder.Bind(db), binder: binder, db: db, cfg: cfg}
}

func (s *Svc) capacityFor(kind markers.Kind) int {
	if kind == markers.KindSleep {
		return s.cfg.SleepCapacity
	}
	return s.cfg.NonwearCapacity
}

func parseKey(in domain.KeyInput) (domain.DayKey, error) {
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return domain.DayKey{}, perr.InvalidArgf("periods: bad date %q", in.Date)
	}
	return domain.DayKey{
		SourceID:      in.SourceID,
		ParticipantID: in.ParticipantID,
		Date:          ptime.Day(date),
		Kind:          markers.Kind(in.Kind),
	}, nil
}

func parseAt(field, v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, perr.WithField(perr.InvalidArgf("periods: bad timestamp %q", v), field)
	}
	return t, nil
}

// hydrate rebuilds the in-memory marker set from stored rows. Stored rows
// are complete by construction; a row that does not hydrate means the table
// was written outside the edit path
func (s *Svc) hydrate(k domain.DayKey, rows []domain.Row) (*markers.Set, error) {
	set := markers.NewSet(k.Kind, s.capacityFor(k.Kind))
	for _, r := range rows {
		if _, err := set.Insert(r.Start, r.End, r.MarkerIndex); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeDB,
				"periods: stored marker %d for %s does not hydrate", r.MarkerIndex, k.Date.Format("2006-01-02"))
		}
	}
	return set, nil
}

// mapEditErr translates core marker errors into the wire taxonomy
func mapEditErr(err error) error {
	switch {
	case errors.Is(err, markers.ErrCapacityExceeded):
		return perr.CapacityExceededf("all marker slots are occupied")
	case errors.Is(err, markers.ErrInvalidOrder):
		return perr.InvalidOrderf("start must precede end")
	case errors.Is(err, markers.ErrOverlap):
		return perr.Overlapf("interval overlaps another marker")
	case errors.Is(err, markers.ErrNoSuchMarker), errors.Is(err, markers.ErrEmptySlot):
		return perr.NotFoundf("no such marker")
	default:
		return err
	}
}

func stateString(st markers.State) string {
	switch st {
	case markers.StateComplete:
		return "complete"
	case markers.StatePartial:
		return "partial"
	default:
		return "empty"
	}
}

// ListDay returns the stored markers for a participant-day plus soft signals
func (s *Svc) ListDay(ctx context.Context, in domain.ListInput) (domain.DayView, error) {
	k, err := parseKey(in.KeyInput)
	if err != nil {
		return domain.DayView{}, err
	}
	rows, err := s.Repo.ListDay(ctx, k)
	if err != nil {
		return domain.DayView{}, err
	}
	set, err := s.hydrate(k, rows)
	if err != nil {
		return domain.DayView{}, err
	}

	view := domain.DayView{Rows: make([]domain.RowView, 0, len(rows)), DurationTie: set.CheckDurationTie()}
	for _, r := range rows {
		view.Rows = append(view.Rows, domain.RowView{
			Marker:          r.MarkerIndex,
			Start:           r.Start,
			End:             r.End,
			DurationMinutes: ptime.Minutes(r.End.Sub(r.Start)),
			Origin:          r.Origin,
		})
	}
	return view, nil
}

// Insert places a complete manual marker, honoring capacity and, for nonwear
// sets, the overlap rule
func (s *Svc) Insert(ctx context.Context, in domain.InsertInput) (domain.EditResult, error) {
	k, err := parseKey(in.KeyInput)
	if err != nil {
		return domain.EditResult{}, err
	}
	start, err := parseAt("start", in.Start)
	if err != nil {
		return domain.EditResult{}, err
	}
	end, err := parseAt("end", in.End)
	if err != nil {
		return domain.EditResult{}, err
	}

	var out domain.EditResult
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		rows, err := r.ListDay(ctx, k)
		if err != nil {
			return err
		}
		set, err := s.hydrate(k, rows)
		if err != nil {
			return err
		}

		marker, err := set.Insert(start, end, in.Replace)
		if err != nil {
			return mapEditErr(err)
		}

		snapStart, snapEnd, _ := set.Interval(marker)
		row := domain.Row{
			SourceID:      k.SourceID,
			ParticipantID: k.ParticipantID,
			AnalysisDate:  k.Date,
			Kind:          k.Kind,
			MarkerIndex:   marker,
			Start:         snapStart,
			End:           snapEnd,
			Origin:        string(nonwear.SourceManual),
		}
		if prev := rowForMarker(rows, marker); prev != nil {
			row.ID = prev.ID
		}
		if err := r.UpsertOne(ctx, row); err != nil {
			return err
		}

		out = domain.EditResult{
			Marker:      marker,
			State:       "complete",
			DurationTie: set.CheckDurationTie(),
		}
		return nil
	})
	return out, err
}

// Move drags one endpoint of a stored marker. A drag that crosses the
// sibling endpoint swaps the endpoint roles and is reported via Swapped;
// a rejected drag leaves the stored day untouched
func (s *Svc) Move(ctx context.Context, in domain.MoveInput) (domain.EditResult, error) {
	k, err := parseKey(in.KeyInput)
	if err != nil {
		return domain.EditResult{}, err
	}
	at, err := parseAt("at", in.At)
	if err != nil {
		return domain.EditResult{}, err
	}
	ep := markers.Start
	if in.Endpoint == "end" {
		ep = markers.End
	}

	var out domain.EditResult
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		rows, err := r.ListDay(ctx, k)
		if err != nil {
			return err
		}
		set, err := s.hydrate(k, rows)
		if err != nil {
			return err
		}
		prev := rowForMarker(rows, in.Marker)
		if prev == nil {
			return perr.NotFoundf("no such marker")
		}

		upd, err := set.UpdateEndpoint(in.Marker, ep, at)
		if err != nil {
			return mapEditErr(err)
		}

		start, end, _ := set.Interval(in.Marker)
		row := *prev
		row.Start, row.End = start, end
		row.Origin = string(nonwear.SourceManual)
		if err := r.UpsertOne(ctx, row); err != nil {
			return err
		}

		out = domain.EditResult{
			Marker:      in.Marker,
			State:       stateString(upd.State),
			Swapped:     upd.Swapped,
			DurationTie: set.CheckDurationTie(),
		}
		return nil
	})
	return out, err
}

// Delete frees a marker slot and clears any selection of it
func (s *Svc) Delete(ctx context.Context, in domain.DeleteInput) (domain.EditResult, error) {
	k, err := parseKey(in.KeyInput)
	if err != nil {
		return domain.EditResult{}, err
	}

	var out domain.EditResult
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		rows, err := r.ListDay(ctx, k)
		if err != nil {
			return err
		}
		set, err := s.hydrate(k, rows)
		if err != nil {
			return err
		}
		if err := set.Delete(in.Marker); err != nil {
			return mapEditErr(err)
		}
		if err := r.DeleteOne(ctx, k, in.Marker); err != nil {
			return err
		}
		out = domain.EditResult{
			Marker:      in.Marker,
			State:       "empty",
			DurationTie: set.CheckDurationTie(),
		}
		return nil
	})
	return out, err
}

// MaskDay renders the dense per-minute wear/nonwear classification for a
// participant-day from its stored nonwear markers
func (s *Svc) MaskDay(ctx context.Context, in domain.ListInput) (domain.MaskView, error) {
	k, err := parseKey(in.KeyInput)
	if err != nil {
		return domain.MaskView{}, err
	}
	if k.Kind != markers.KindNonwear {
		return domain.MaskView{}, perr.InvalidArgf("periods: mask is defined for nonwear markers only")
	}

	eps, err := s.Epochs.ListDay(ctx, epochsdom.Day{
		SourceID:      k.SourceID,
		ParticipantID: k.ParticipantID,
		Date:          k.Date,
	})
	if err != nil {
		return domain.MaskView{}, err
	}
	if len(eps) == 0 {
		return domain.MaskView{}, perr.NotFoundf("periods: no epochs stored for %s", k.Date.Format("2006-01-02"))
	}
	recs := make([]epoch.Record, len(eps))
	for i, e := range eps {
		recs[i] = epoch.Record{At: e.At, Activity: e.Activity}
	}
	series, err := epoch.New(recs)
	if err != nil {
		return domain.MaskView{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "periods: stored epochs do not form a series")
	}

	rows, err := s.Repo.ListDay(ctx, k)
	if err != nil {
		return domain.MaskView{}, err
	}
	periods := make([]nonwear.Period, 0, len(rows))
	for _, r := range rows {
		p := nonwear.Period{Start: r.Start, End: r.End, Source: nonwear.Source(r.Origin), ParticipantID: r.ParticipantID}
		if !p.Resolve(series) {
			// endpoint off the stored grid; the period still exists, it
			// just cannot contribute to this mask
			logger.C(ctx).Warn().
				Int("marker", r.MarkerIndex).
				Time("start", r.Start).
				Msg("nonwear period does not resolve against the day's series")
		}
		periods = append(periods, p)
	}

	mask := nonwear.Mask(series.Len(), periods)
	return domain.MaskView{Minutes: series.Len(), Mask: mask}, nil
}

// ReplaceAlgorithmDay swaps in a freshly scanned set of algorithm periods
// for a participant-day. Manual markers keep their slots; each scanned
// period takes a free slot unless it would overlap a manual marker or the
// set is full, in which case it is dropped with a warning
func (s *Svc) ReplaceAlgorithmDay(
	ctx context.Context,
	sourceID, participantID string,
	date time.Time,
	periods []nonwear.Period,
) (int, error) {
	if sourceID == "" || participantID == "" {
		return 0, perr.InvalidArgf("periods: source and participant ids are required")
	}
	k := domain.DayKey{
		SourceID:      sourceID,
		ParticipantID: participantID,
		Date:          ptime.Day(date),
		Kind:          markers.KindNonwear,
	}

	written := 0
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		existing, err := r.ListDay(ctx, k)
		if err != nil {
			return err
		}

		// seed the set with the manual markers that survive the replace
		set := markers.NewSet(markers.KindNonwear, s.capacityFor(markers.KindNonwear))
		for _, row := range existing {
			if row.Origin == string(nonwear.SourceAlgorithm) {
				continue
			}
			if _, err := set.Insert(row.Start, row.End, row.MarkerIndex); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeDB,
					"periods: stored marker %d for %s does not hydrate", row.MarkerIndex, k.Date.Format("2006-01-02"))
			}
		}

		rows := make([]domain.Row, 0, len(periods))
		for _, p := range periods {
			idx, err := set.Insert(p.Start, p.End, 0)
			if err != nil {
				logger.C(ctx).Warn().
					Err(err).
					Str("participant_id", participantID).
					Time("start", p.Start).
					Msg("scanned period dropped during replace")
				continue
			}
			rows = append(rows, domain.Row{
				SourceID:      k.SourceID,
				ParticipantID: k.ParticipantID,
				AnalysisDate:  k.Date,
				Kind:          k.Kind,
				MarkerIndex:   idx,
				Start:         p.Start,
				End:           p.End,
				Origin:        string(nonwear.SourceAlgorithm),
			})
		}

		if err := r.ReplaceDay(ctx, k, rows); err != nil {
			return err
		}
		written = len(rows)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

func rowForMarker(rows []domain.Row, marker int) *domain.Row {
	for i := range rows {
		if rows[i].MarkerIndex == marker {
			return &rows[i]
		}
	}
	return nil
}
