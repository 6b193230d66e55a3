// Package service implements the scan service
package service

import (
	"context"

	"wearlog/internal/core/epoch"
	"wearlog/internal/core/nonwear"
	perr "wearlog/internal/platform/errors"
	"wearlog/internal/platform/logger"
	"wearlog/internal/platform/store"
	ptime "wearlog/internal/platform/time"
	epochsdom "wearlog/internal/services/epochs/domain"
	periodsdom "wearlog/internal/services/periods/domain"
	"wearlog/internal/services/scan/domain"
)

// MaskTable is the columnar sink for regenerated masks
const MaskTable = "nonwear_mask"

// Config for the scan service
type Config struct {
	Params nonwear.Params
	// MirrorMask writes the regenerated mask to ClickHouse when a sink is wired
	MirrorMask bool
}

// Service implements domain.RunnerPort
type Service struct {
	Epochs  epochsdom.ReaderPort
	Periods periodsdom.ReplacerPort
	CH      store.Clickhouse // optional
	Cfg     Config
}

// New constructs a new scan service
func New(epochs epochsdom.ReaderPort, periods periodsdom.ReplacerPort, ch store.Clickhouse, cfg Config) *Service {
	if epochs == nil {
		panic("scan.Service requires the epochs reader port")
	}
	if periods == nil {
		panic("scan.Service requires the periods replacer port")
	}
	if cfg.Params.MinPeriodLen <= 0 {
		cfg.Params = nonwear.DefaultParams
	}
	return &Service{Epochs: epochs, Periods: periods, CH: ch, Cfg: cfg}
}

// RunDay scans one participant-day: validates the stored epochs into a
// series, detects and merges nonwear periods, full-replaces the stored
// algorithm periods, and optionally mirrors the fresh mask to the
// columnar sink
func (s *Service) RunDay(ctx context.Context, day epochsdom.Day) (domain.ScanResult, error) {
	day.Date = ptime.Day(day.Date)
	log := logger.C(ctx)

	eps, err := s.Epochs.ListDay(ctx, day)
	if err != nil {
		return domain.ScanResult{}, err
	}
	if len(eps) == 0 {
		return domain.ScanResult{}, perr.NotFoundf("scan: no epochs stored for %s", day.Date.Format("2006-01-02"))
	}

	recs := make([]epoch.Record, len(eps))
	for i, e := range eps {
		recs[i] = epoch.Record{At: e.At, Activity: e.Activity}
	}
	series, err := epoch.New(recs)
	if err != nil {
		return domain.ScanResult{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "scan: stored epochs do not form a series")
	}

	params := s.Cfg.Params
	if params.Log == nil {
		params.Log = log
	}
	periods, err := nonwear.ScanAndMerge(series, params)
	if err != nil {
		return domain.ScanResult{}, err
	}
	for i := range periods {
		periods[i].ParticipantID = day.ParticipantID
	}

	written, err := s.Periods.ReplaceAlgorithmDay(ctx, day.SourceID, day.ParticipantID, day.Date, periods)
	if err != nil {
		return domain.ScanResult{}, err
	}

	mask := nonwear.Mask(series.Len(), periods)
	nwMin := 0
	for _, v := range mask {
		if v != 0 {
			nwMin++
		}
	}

	res := domain.ScanResult{
		Periods:        written,
		MaskMinutes:    len(mask),
		NonwearMinutes: nwMin,
	}

	if s.Cfg.MirrorMask && s.CH != nil {
		if err := s.mirror(ctx, day, mask); err != nil {
			// analytics mirror is best effort; the scan itself succeeded
			log.Warn().Err(err).Msg("mask mirror to clickhouse failed")
		} else {
			res.Mirrored = true
		}
	}

	log.Info().
		Str("participant_id", day.ParticipantID).
		Str("date", day.Date.Format("2006-01-02")).
		Int("periods", res.Periods).
		Int("nonwear_minutes", res.NonwearMinutes).
		Msg("scan day done")
	return res, nil
}

func (s *Service) mirror(ctx context.Context, day epochsdom.Day, mask []uint8) error {
	rows := make([][]any, len(mask))
	for i, state := range mask {
		rows[i] = []any{day.SourceID, day.ParticipantID, day.Date, uint16(i), state}
	}
	return s.CH.Insert(ctx, MaskTable, rows)
}
