package http

import (
	"bytes"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	perr "rakugaki/internal/platform/errors"
	"rakugaki/internal/platform/net/http/bind"
)

type echoInput struct {
	Name string `json:"name" validate:"required"`
}

func serve(h Handler, method string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestJSONHandlerSuccess(t *testing.T) {
	bind.Init()
	h := JSONHandler(func(_ *stdhttp.Request, in echoInput) (any, error) {
		return map[string]string{"hello": in.Name}, nil
	})

	rec := serve(h, stdhttp.MethodPost, []byte(`{"name":"giotto"}`))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.StatusCode != stdhttp.StatusOK || env.Status != "OK" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	data, ok := env.Data.(map[string]any)
	if !ok || data["hello"] != "giotto" {
		t.Fatalf("unexpected data: %+v", env.Data)
	}
}

func TestJSONHandlerValidationFailure(t *testing.T) {
	bind.Init()
	h := JSONHandler(func(_ *stdhttp.Request, in echoInput) (any, error) {
		t.Fatal("handler must not run on invalid input")
		return nil, nil
	})

	rec := serve(h, stdhttp.MethodPost, []byte(`{}`))
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("want 400, got %d: %s", rec.Code, rec.Body.String())
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Code != perr.ErrorCodeValidation {
		t.Fatalf("want validation code, got %q", env.Code)
	}
}

func TestJSONHandlerErrorMapping(t *testing.T) {
	bind.Init()
	h := JSONHandler(func(_ *stdhttp.Request, _ echoInput) (any, error) {
		return nil, perr.NotFoundf("nothing here")
	})

	rec := serve(h, stdhttp.MethodPost, []byte(`{"name":"x"}`))
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("want 404, got %d", rec.Code)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Code != perr.ErrorCodeNotFound || env.Error != "nothing here" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestJSONHandlerPassThroughResponse(t *testing.T) {
	bind.Init()
	h := JSONHandler(func(_ *stdhttp.Request, _ echoInput) (any, error) {
		return Created(map[string]string{"id": "new"}), nil
	})

	rec := serve(h, stdhttp.MethodPost, []byte(`{"name":"x"}`))
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("want 201, got %d", rec.Code)
	}
}

func TestJSONHandlerNoBody(t *testing.T) {
	h := JSONHandlerNoBody(func(_ *stdhttp.Request) (any, error) {
		return map[string]bool{"ok": true}, nil
	})

	rec := serve(h, stdhttp.MethodGet, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
}
