package module

import (
	"wearlog/internal/core/nonwear"
	"wearlog/internal/platform/config"
)

// Options holds configuration settings for the scan module
type Options struct {
	MinPeriodLen   int
	SpikeTolerance int
	WindowSize     int
	MirrorMask     bool
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("CORE_SCAN_")
	d := nonwear.DefaultParams
	return Options{
		MinPeriodLen:   sc.MayInt("MIN_PERIOD_LEN", d.MinPeriodLen),
		SpikeTolerance: sc.MayInt("SPIKE_TOLERANCE", d.SpikeTolerance),
		WindowSize:     sc.MayInt("WINDOW_SIZE", d.WindowSize),
		MirrorMask:     sc.MayBool("MIRROR_MASK", false),
	}
}

// Params folds the options into scanner parameters, keeping the default
// window span cap
func (o Options) Params() nonwear.Params {
	p := nonwear.DefaultParams
	p.MinPeriodLen = o.MinPeriodLen
	p.SpikeTolerance = o.SpikeTolerance
	p.WindowSize = o.WindowSize
	return p
}
