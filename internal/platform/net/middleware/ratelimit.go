package middleware

import (
	"net"
	stdhttp "net/http"
	"strconv"
	"strings"
	"time"

	perr "rakugaki/internal/platform/errors"
	"rakugaki/internal/platform/logger"
	pnet "rakugaki/internal/platform/net"
	"rakugaki/internal/platform/ratelimit"
)

// WriteFunc writes a JSON body with a status, usually phttp.JSON
type WriteFunc func(w stdhttp.ResponseWriter, status int, body any)

// KeyFunc derives the admission key for a request, usually the client IP
type KeyFunc func(r *stdhttp.Request) string

type limitWire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code"`
	Error      string         `json:"error"`
	RequestID  string         `json:"request_id,omitempty"`
}

// RateLimit gates requests through the limiter before they reach a handler.
// Admitted requests carry X-RateLimit-Remaining; denials answer 429 with a
// Retry-After hint in whole seconds, rounded up.
func RateLimit(l *ratelimit.Limiter, key KeyFunc, write WriteFunc) func(stdhttp.Handler) stdhttp.Handler {
	if key == nil {
		key = ClientIP
	}
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			k := key(r)
			res := l.Check(k)

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

			if !res.Allowed {
				retryAfter := int64(res.ResetAfter+time.Second-time.Nanosecond) / int64(time.Second)
				w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))

				logger.C(r.Context()).Warn().
					Str("key", k).
					Dur("reset_after", res.ResetAfter).
					Msg("rate limit exceeded")

				status := stdhttp.StatusTooManyRequests
				write(w, status, limitWire{
					StatusCode: status,
					Status:     stdhttp.StatusText(status),
					Code:       perr.ErrorCodeRateLimit,
					Error:      "the critic is on a break, try again in a minute",
					RequestID:  pnet.RequestID(r.Context()),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP extracts the caller address from proxy headers, falling back to
// the socket peer
func ClientIP(r *stdhttp.Request) string {
	if v := r.Header.Get("CF-Connecting-IP"); v != "" {
		return strings.TrimSpace(v)
	}
	if v := r.Header.Get("X-Forwarded-For"); v != "" {
		if i := strings.IndexByte(v, ','); i >= 0 {
			v = v[:i]
		}
		return strings.TrimSpace(v)
	}
	if v := r.Header.Get("X-Real-IP"); v != "" {
		return strings.TrimSpace(v)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
