package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "rakugaki/internal/platform/errors"
	phttp "rakugaki/internal/platform/net/http"
	"rakugaki/internal/platform/net/http/bind"
	"rakugaki/internal/services/critique/domain"
)

type stubGenerator struct {
	got  domain.EvaluateInput
	out  domain.Artwork
	err  error
	hits int
}

func (s *stubGenerator) Evaluate(_ context.Context, in domain.EvaluateInput) (domain.Artwork, error) {
	s.hits++
	s.got = in
	return s.out, s.err
}

func newTestRouter(gen domain.GeneratorPort, maxImageBytes int64) stdhttp.Handler {
	bind.Init()
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	Register(r, gen, maxImageBytes)
	return mux
}

func postJSON(t *testing.T, h stdhttp.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestEvaluateEndpointSuccess(t *testing.T) {
	gen := &stubGenerator{out: domain.Artwork{ID: "abc123", SeriesNumber: 1}}
	h := newTestRouter(gen, 10<<20)

	rec := postJSON(t, h, map[string]any{"image": "aGVsbG8="})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var env struct {
		StatusCode int                     `json:"status_code"`
		Data       domain.EvaluateResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if !env.Data.Success || env.Data.Artwork.ID != "abc123" {
		t.Fatalf("unexpected payload: %+v", env.Data)
	}
	if gen.got.Image != "aGVsbG8=" {
		t.Fatalf("image not forwarded, got %q", gen.got.Image)
	}
}

func TestEvaluateEndpointForwardsPreviousWork(t *testing.T) {
	gen := &stubGenerator{out: domain.Artwork{ID: "xyz", SeriesNumber: 2}}
	h := newTestRouter(gen, 10<<20)

	rec := postJSON(t, h, map[string]any{
		"image": "aGVsbG8=",
		"previousWork": map[string]any{
			"id":           "prev1",
			"title":        "Whispers of a Stray Line",
			"artist":       "Sorano Yamada",
			"critique":     "previous critique text",
			"price":        1500000,
			"seriesNumber": 1,
		},
	})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gen.got.PreviousWork == nil || gen.got.PreviousWork.ID != "prev1" || gen.got.PreviousWork.SeriesNumber != 1 {
		t.Fatalf("previous work not forwarded: %+v", gen.got.PreviousWork)
	}
}

func TestEvaluateEndpointRejectsMissingImage(t *testing.T) {
	gen := &stubGenerator{}
	h := newTestRouter(gen, 10<<20)

	rec := postJSON(t, h, map[string]any{})
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("want 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if gen.hits != 0 {
		t.Fatal("generator must not run on invalid input")
	}
}

func TestEvaluateEndpointRejectsOversizedImage(t *testing.T) {
	gen := &stubGenerator{}
	// 1KiB ceiling, payload estimates well above it
	h := newTestRouter(gen, 1024)

	rec := postJSON(t, h, map[string]any{"image": strings.Repeat("A", 4096)})
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("want 400, got %d: %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Code  string `json:"code"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Code != string(perr.ErrorCodeValidation) {
		t.Fatalf("want validation code, got %q", env.Code)
	}
	if gen.hits != 0 {
		t.Fatal("generator must not run on oversized input")
	}
}

func TestEvaluateEndpointMapsRateLimit(t *testing.T) {
	gen := &stubGenerator{err: perr.RateLimitf("model endpoint rate limited")}
	h := newTestRouter(gen, 10<<20)

	rec := postJSON(t, h, map[string]any{"image": "aGVsbG8="})
	if rec.Code != stdhttp.StatusTooManyRequests {
		t.Fatalf("want 429, got %d: %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Code != string(perr.ErrorCodeRateLimit) {
		t.Fatalf("want rate limit code, got %q", env.Code)
	}
}
