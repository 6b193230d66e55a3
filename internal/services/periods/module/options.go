package module

import (
	"wearlog/internal/core/markers"
	"wearlog/internal/platform/config"
)

// Options holds configuration settings for the periods module
type Options struct {
	SleepCapacity   int
	NonwearCapacity int
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	pc := cfg.Prefix("CORE_PERIODS_")
	return Options{
		SleepCapacity:   pc.MayInt("SLEEP_CAPACITY", markers.DefaultSleepCapacity),
		NonwearCapacity: pc.MayInt("NONWEAR_CAPACITY", markers.DefaultNonwearCapacity),
	}
}
