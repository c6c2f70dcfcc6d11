package module

import (
	"time"

	"rakugaki/internal/platform/config"
)

// Options controls gallery retention
type Options struct {
	TTL           time.Duration // retention window per work
	Capacity      int           // in-memory entry ceiling
	SweepInterval time.Duration // background purge cadence
}

// FromConfig reads GALLERY_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	gc := cfg.Prefix("GALLERY_")
	return Options{
		TTL:           gc.MayDuration("TTL", 24*time.Hour),
		Capacity:      gc.MayInt("CAPACITY", 1000),
		SweepInterval: gc.MayDuration("SWEEP_INTERVAL", 10*time.Minute),
	}
}
