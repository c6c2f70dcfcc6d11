// Package modkit provides module wiring and core deps
package modkit

import (
	"rakugaki/internal/modkit/repokit"
	"rakugaki/internal/platform/config"
	"rakugaki/internal/platform/genai"
	"rakugaki/internal/platform/logger"
	"rakugaki/internal/platform/ratelimit"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// PG is nil when the archive backend is disabled
	PG repokit.TxRunner

	// Model generates critiques, nil only in tests that stub the service
	Model genai.Client

	// Limiter throttles critique generation per client
	Limiter *ratelimit.Limiter
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check for optional backends
func (d Deps) ZeroOK() bool { return true }
