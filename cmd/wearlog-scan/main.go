package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"wearlog/internal/modkit"
	"wearlog/internal/modkit/module"
	"wearlog/internal/platform/config"
	"wearlog/internal/platform/logger"
	"wearlog/internal/platform/store"

	epochsdom "wearlog/internal/services/epochs/domain"
	epochsmod "wearlog/internal/services/epochs/module"
	periodsdom "wearlog/internal/services/periods/domain"
	periodsmod "wearlog/internal/services/periods/module"
	scandom "wearlog/internal/services/scan/domain"
	scanmod "wearlog/internal/services/scan/module"
)

func mustSetEnv(k, v string) {
	if v != "" {
		_ = os.Setenv(k, v)
	}
}

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		AppName: "wearlog",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		},
		CH: store.CHConfig{
			Enabled: chCfg.MayBool("ENABLED", true),
			URL:     chCfg.MayString("DBURL", ""),
			Role:    "scan",
			Tag:     "wearlog",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var (
		source      = flag.String("source", "", "recording source id")
		participant = flag.String("participant", "", "participant id")
		startStr    = flag.String("start", "", "inclusive day, e.g. 2025-08-01")
		endStr      = flag.String("end", "", "exclusive day, e.g. 2025-08-08")
		minPeriod   = flag.Int("min-period", 0, "minimum nonwear run length in minutes (0 = default)")
		spike       = flag.Int("spike", -1, "tolerated nonzero spikes per run (-1 = default)")
		window      = flag.Int("window", 0, "artifactual-movement window in minutes (0 = default)")
		mirror      = flag.Bool("mirror", false, "mirror the classification mask into clickhouse")
	)
	flag.Parse()

	if *source == "" || *participant == "" {
		log.Fatal("source/participant are required")
	}
	if *startStr == "" || *endStr == "" {
		log.Fatal("start/end are required (day resolution)")
	}
	start, err := time.Parse("2006-01-02", *startStr)
	if err != nil {
		log.Fatalf("bad -start: %v", err)
	}
	end, err := time.Parse("2006-01-02", *endStr)
	if err != nil {
		log.Fatalf("bad -end: %v", err)
	}
	if !start.Before(end) {
		log.Fatal("start must be < end")
	}

	// Pass CLI flags into CORE_SCAN_* so the module can read its own config
	if *minPeriod > 0 {
		mustSetEnv("CORE_SCAN_MIN_PERIOD_LEN", strconv.Itoa(*minPeriod))
	}
	if *spike >= 0 {
		mustSetEnv("CORE_SCAN_SPIKE_TOLERANCE", strconv.Itoa(*spike))
	}
	if *window > 0 {
		mustSetEnv("CORE_SCAN_WINDOW_SIZE", strconv.Itoa(*window))
	}

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		CH:  st.CH,
		Log: *l,
	}

	// Build dependency modules first
	em := epochsmod.New(deps)
	reader := module.MustPortsOf[epochsmod.Ports](em).Reader

	pm := periodsmod.New(deps, modkit.WithPorts(periodsdom.Ports{
		Epochs: reader,
	}))

	// Build scan module with ports injected from deps modules
	sm := scanmod.New(
		deps,
		scanmod.Options{MirrorMask: *mirror},
		modkit.WithPorts(scandom.Ports{
			Epochs:  reader,
			Periods: module.MustPortsOf[periodsmod.Ports](pm).Replacer,
		}),
	)

	// Register ports
	module.Register(em.Name(), em.Ports())
	module.Register(pm.Name(), pm.Ports())
	module.Register(sm.Name(), sm.Ports())

	// Walk the day range and kick the runner once per day
	runner := sm.Ports().(scanmod.Ports).Runner
	for day := start.UTC(); day.Before(end.UTC()); day = day.AddDate(0, 0, 1) {
		res, err := runner.RunDay(context.Background(), epochsdom.Day{
			SourceID:      *source,
			ParticipantID: *participant,
			Date:          day,
		})
		if err != nil {
			l.Fatal().Err(err).Str("date", day.Format("2006-01-02")).Msg("scan failed")
		}
		l.Info().
			Str("date", day.Format("2006-01-02")).
			Int("periods", res.Periods).
			Int("nonwear_minutes", res.NonwearMinutes).
			Bool("mirrored", res.Mirrored).
			Msg("day scanned")
	}
}
