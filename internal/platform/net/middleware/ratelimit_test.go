package middleware

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	perr "rakugaki/internal/platform/errors"
	phttp "rakugaki/internal/platform/net/http"
	"rakugaki/internal/platform/ratelimit"
)

func limitedHandler(t *testing.T, max int, window time.Duration) (stdhttp.Handler, *ratelimit.Limiter) {
	t.Helper()
	l := ratelimit.New(ratelimit.Config{MaxRequests: max, Window: window}, zerolog.Nop())
	t.Cleanup(l.Close)

	next := stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		w.WriteHeader(stdhttp.StatusOK)
	})
	return RateLimit(l, ClientIP, phttp.JSON)(next), l
}

func hit(h stdhttp.Handler, addr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(stdhttp.MethodPost, "/", nil)
	req.RemoteAddr = addr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitAdmitsUnderQuota(t *testing.T) {
	h, _ := limitedHandler(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		rec := hit(h, "10.0.0.1:4000")
		if rec.Code != stdhttp.StatusOK {
			t.Fatalf("request %d: want 200, got %d", i+1, rec.Code)
		}
		want := strconv.Itoa(3 - i - 1)
		if got := rec.Header().Get("X-RateLimit-Remaining"); got != want {
			t.Fatalf("request %d: remaining header %q, want %q", i+1, got, want)
		}
	}
}

func TestRateLimitDeniesOverQuota(t *testing.T) {
	h, _ := limitedHandler(t, 1, time.Minute)

	if rec := hit(h, "10.0.0.1:4000"); rec.Code != stdhttp.StatusOK {
		t.Fatalf("first request must pass, got %d", rec.Code)
	}
	rec := hit(h, "10.0.0.1:4000")
	if rec.Code != stdhttp.StatusTooManyRequests {
		t.Fatalf("want 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("denial must carry Retry-After")
	}

	var body struct {
		Code  string `json:"code"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code != string(perr.ErrorCodeRateLimit) {
		t.Fatalf("want rate limit code, got %q", body.Code)
	}
}

func TestRateLimitKeysAreIndependent(t *testing.T) {
	h, _ := limitedHandler(t, 1, time.Minute)

	if rec := hit(h, "10.0.0.1:4000"); rec.Code != stdhttp.StatusOK {
		t.Fatalf("first client must pass, got %d", rec.Code)
	}
	if rec := hit(h, "10.0.0.2:4000"); rec.Code != stdhttp.StatusOK {
		t.Fatalf("second client must not share the first client's quota, got %d", rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	mk := func(hdr map[string]string) *stdhttp.Request {
		r := httptest.NewRequest(stdhttp.MethodGet, "/", nil)
		r.RemoteAddr = "192.0.2.9:1234"
		for k, v := range hdr {
			r.Header.Set(k, v)
		}
		return r
	}

	cases := []struct {
		name string
		hdr  map[string]string
		want string
	}{
		{"cloudflare", map[string]string{"CF-Connecting-IP": "198.51.100.1"}, "198.51.100.1"},
		{"forwarded first hop", map[string]string{"X-Forwarded-For": "198.51.100.2, 10.0.0.1"}, "198.51.100.2"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.3"}, "198.51.100.3"},
		{"socket peer", nil, "192.0.2.9"},
	}
	for _, tc := range cases {
		if got := ClientIP(mk(tc.hdr)); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
