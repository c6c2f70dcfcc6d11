package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"rakugaki/internal/platform/net/middleware"
	"rakugaki/internal/platform/ratelimit"

	phttp "rakugaki/internal/platform/net/http"
)

// CommonStack returns a baseline per module middleware slice
// compose with the rate limit middleware as needed in main
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache and freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLog,

		// cross-origin (tweak config in main if needed)
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(120 * time.Second),
	}
}

// Throttle wires the sliding window limiter to the platform JSON writer,
// keyed by client address
func Throttle(l *ratelimit.Limiter) func(http.Handler) http.Handler {
	return middleware.RateLimit(l, middleware.ClientIP, phttp.JSON)
}
