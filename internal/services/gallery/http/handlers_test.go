package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "rakugaki/internal/platform/errors"
	phttp "rakugaki/internal/platform/net/http"
	cdom "rakugaki/internal/services/critique/domain"
	"rakugaki/internal/services/gallery/domain"
)

type stubQuery struct {
	works map[string]cdom.Artwork
}

func (s *stubQuery) GetWork(_ context.Context, id string) (cdom.Artwork, error) {
	a, ok := s.works[id]
	if !ok {
		return cdom.Artwork{}, perr.NotFoundf("artwork %q not found", id)
	}
	return a, nil
}

func (s *stubQuery) DeleteWork(_ context.Context, id string) error {
	if _, ok := s.works[id]; !ok {
		return perr.NotFoundf("artwork %q not found", id)
	}
	delete(s.works, id)
	return nil
}

func newTestRouter(q domain.QueryPort) stdhttp.Handler {
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), q)
	return mux
}

func do(t *testing.T, h stdhttp.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetWork(t *testing.T) {
	q := &stubQuery{works: map[string]cdom.Artwork{
		"work-123": {ID: "work-123", SeriesNumber: 2},
	}}
	h := newTestRouter(q)

	rec := do(t, h, stdhttp.MethodGet, "/work-123")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Data domain.WorkResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if !env.Data.Success || env.Data.Artwork.ID != "work-123" {
		t.Fatalf("unexpected payload: %+v", env.Data)
	}
}

func TestGetWorkNotFound(t *testing.T) {
	h := newTestRouter(&stubQuery{works: map[string]cdom.Artwork{}})

	rec := do(t, h, stdhttp.MethodGet, "/work-999")
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("want 404, got %d: %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Code != string(perr.ErrorCodeNotFound) {
		t.Fatalf("want not found code, got %q", env.Code)
	}
}

func TestGetWorkRejectsShortID(t *testing.T) {
	h := newTestRouter(&stubQuery{works: map[string]cdom.Artwork{}})

	rec := do(t, h, stdhttp.MethodGet, "/ab")
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("want 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteWork(t *testing.T) {
	q := &stubQuery{works: map[string]cdom.Artwork{
		"work-123": {ID: "work-123"},
	}}
	h := newTestRouter(q)

	rec := do(t, h, stdhttp.MethodDelete, "/work-123")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Data domain.DeleteResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if !env.Data.Success {
		t.Fatalf("unexpected payload: %+v", env.Data)
	}

	if rec := do(t, h, stdhttp.MethodDelete, "/work-123"); rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("second delete must 404, got %d", rec.Code)
	}
}
