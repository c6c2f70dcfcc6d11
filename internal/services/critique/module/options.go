package module

import (
	"rakugaki/internal/platform/config"
)

// Options controls critique generation behavior
type Options struct {
	MaxRetries    int   // extra model calls after a failed parse
	MaxImageBytes int64 // decoded image size ceiling
}

// FromConfig reads CRITIQUE_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	cc := cfg.Prefix("CRITIQUE_")
	return Options{
		MaxRetries:    cc.MayInt("MAX_RETRIES", 2),
		MaxImageBytes: cc.MayInt64("MAX_IMAGE_BYTES", 10<<20),
	}
}
