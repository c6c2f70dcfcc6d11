package store

import (
	"time"

	"rakugaki/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	PingTimeout time.Duration // default 3s
}

// FromConf builds Config from env (RAKUGAKI_PG_*)
func FromConf(appName string, cfg config.Conf) Config {
	return Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:     cfg.MayBool("ENABLED", false),
			URL:         cfg.MayString("URL", ""),
			MaxConns:    int32(cfg.MayInt("MAX_CONNS", 8)),
			LogSQL:      cfg.MayBool("LOG_SQL", false),
			SlowQueryMs: cfg.MayInt("SLOW_QUERY_MS", 250),
			PingTimeout: cfg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
	}
}
