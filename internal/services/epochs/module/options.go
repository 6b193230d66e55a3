package module

import "wearlog/internal/platform/config"

// Options holds configuration settings for the epochs module
type Options struct {
	MaxRows int
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	ec := cfg.Prefix("CORE_EPOCHS_")
	return Options{
		MaxRows: ec.MayInt("MAX_ROWS", 2000),
	}
}
