package service

import (
	"context"
	"encoding/json"
	"testing"

	perr "rakugaki/internal/platform/errors"
	"rakugaki/internal/platform/genai"
	"rakugaki/internal/services/critique/domain"

	"github.com/rs/zerolog"
)

// stubModel scripts model replies per attempt
type stubModel struct {
	calls   int
	replies []string
	errs    []error
	prompts []string
}

func (s *stubModel) Generate(_ context.Context, _ genai.Image, prompt string) (string, error) {
	i := s.calls
	s.calls++
	s.prompts = append(s.prompts, prompt)
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	var reply string
	if i < len(s.replies) {
		reply = s.replies[i]
	}
	return reply, err
}

type memGallery struct {
	saved []domain.Artwork
	err   error
}

func (g *memGallery) SaveArtwork(_ context.Context, a domain.Artwork) error {
	if g.err != nil {
		return g.err
	}
	g.saved = append(g.saved, a)
	return nil
}

func newTestService(model genai.Client, gallery domain.GalleryPort) *Service {
	return New(model, gallery, Config{MaxRetries: 2}, zerolog.Nop())
}

func TestEvaluateSuccessFirstAttempt(t *testing.T) {
	raw, _ := json.Marshal(validEvaluation())
	model := &stubModel{replies: []string{string(raw)}}
	gallery := &memGallery{}
	svc := newTestService(model, gallery)

	a, err := svc.Evaluate(context.Background(), domain.EvaluateInput{Image: "aGVsbG8="})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.calls != 1 {
		t.Fatalf("want 1 model call, got %d", model.calls)
	}
	if a.ID == "" || a.SeriesNumber != 1 || a.PreviousWorkID != "" {
		t.Fatalf("unexpected artwork provenance: %+v", a)
	}
	if a.Evaluation != validEvaluation() {
		t.Fatal("evaluation not carried through")
	}
	if a.PriceDisplay != domain.FormatPrice(a.Evaluation.Price) {
		t.Fatalf("unexpected price display %q", a.PriceDisplay)
	}
	if a.PriceReadable != domain.FormatPriceReadable(a.Evaluation.Price) {
		t.Fatalf("unexpected readable price %q", a.PriceReadable)
	}
	if len(gallery.saved) != 1 || gallery.saved[0].ID != a.ID {
		t.Fatal("artwork not handed to the gallery")
	}
}

func TestEvaluateRetriesParseFailures(t *testing.T) {
	raw, _ := json.Marshal(validEvaluation())
	model := &stubModel{replies: []string{"total garbage", "{broken", string(raw)}}
	svc := newTestService(model, &memGallery{})

	a, err := svc.Evaluate(context.Background(), domain.EvaluateInput{Image: "aGVsbG8="})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.calls != 3 {
		t.Fatalf("want 3 model calls, got %d", model.calls)
	}
	if a.Evaluation.Title != validEvaluation().Title {
		t.Fatalf("unexpected title %q", a.Evaluation.Title)
	}

	// the first prompt carries no warning, the retries do
	if containsWarning(model.prompts[0]) {
		t.Fatal("first attempt must not carry the retry warning")
	}
	for _, p := range model.prompts[1:] {
		if !containsWarning(p) {
			t.Fatal("retry attempts must warn about the previous invalid output")
		}
	}
}

func TestEvaluateExhaustionFallsBack(t *testing.T) {
	model := &stubModel{replies: []string{"junk", "junk", "junk"}}
	gallery := &memGallery{}
	svc := newTestService(model, gallery)

	a, err := svc.Evaluate(context.Background(), domain.EvaluateInput{Image: "aGVsbG8="})
	if err != nil {
		t.Fatalf("exhausted retries must fall back, got error: %v", err)
	}
	if model.calls != 3 {
		t.Fatalf("want exactly max_retries+1 calls, got %d", model.calls)
	}
	// fallback output still satisfies the schema and is persisted
	if a.Evaluation.Price < fallbackPriceMin || a.Evaluation.Price > fallbackPriceMax {
		t.Fatalf("fallback price %d outside band", a.Evaluation.Price)
	}
	if len(gallery.saved) != 1 {
		t.Fatal("fallback artwork not saved")
	}
}

func TestEvaluateRateLimitIsImmediate(t *testing.T) {
	model := &stubModel{errs: []error{perr.RateLimitf("model endpoint rate limited")}}
	svc := newTestService(model, &memGallery{})

	_, err := svc.Evaluate(context.Background(), domain.EvaluateInput{Image: "aGVsbG8="})
	if !perr.IsCode(err, perr.ErrorCodeRateLimit) {
		t.Fatalf("want rate limit error, got %v", err)
	}
	if model.calls != 1 {
		t.Fatalf("rate limit must not be retried, got %d calls", model.calls)
	}
}

func TestEvaluateTransportErrorIsImmediate(t *testing.T) {
	model := &stubModel{errs: []error{perr.APIErrf("connection reset")}}
	svc := newTestService(model, &memGallery{})

	_, err := svc.Evaluate(context.Background(), domain.EvaluateInput{Image: "aGVsbG8="})
	if !perr.IsCode(err, perr.ErrorCodeAPI) {
		t.Fatalf("want api error, got %v", err)
	}
	if model.calls != 1 {
		t.Fatalf("transport errors must not be retried, got %d calls", model.calls)
	}
}

func TestEvaluateContinuation(t *testing.T) {
	ev := validEvaluation()
	ev.PriceChange = domain.PriceDecrease
	ev.PriceChangeReason = "the market cooled on the series"
	raw, _ := json.Marshal(ev)
	model := &stubModel{replies: []string{string(raw)}}
	svc := newTestService(model, &memGallery{})

	prev := &domain.PreviousWork{
		ID:           "prev-id",
		Title:        "A Scream Within the Silence",
		Artist:       "Sorano Yamada",
		Critique:     "the previous critique",
		Price:        5_000_000,
		SeriesNumber: 3,
	}
	a, err := svc.Evaluate(context.Background(), domain.EvaluateInput{Image: "aGVsbG8=", PreviousWork: prev})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.SeriesNumber != 4 || a.PreviousWorkID != "prev-id" {
		t.Fatalf("unexpected continuation provenance: %+v", a)
	}
	if a.Evaluation.PriceChange != domain.PriceDecrease {
		t.Fatalf("unexpected price change %q", a.Evaluation.PriceChange)
	}
}

func TestEvaluateGalleryFailureDoesNotFailRequest(t *testing.T) {
	raw, _ := json.Marshal(validEvaluation())
	model := &stubModel{replies: []string{string(raw)}}
	svc := newTestService(model, &memGallery{err: perr.APIErrf("archive down")})

	if _, err := svc.Evaluate(context.Background(), domain.EvaluateInput{Image: "aGVsbG8="}); err != nil {
		t.Fatalf("gallery failure must not fail the critique: %v", err)
	}
}

func TestSplitImage(t *testing.T) {
	img := splitImage("data:image/jpeg;base64,aGVsbG8=")
	if img.MIMEType != "image/jpeg" || img.Data != "aGVsbG8=" {
		t.Fatalf("unexpected split: %+v", img)
	}

	img = splitImage("aGVsbG8=")
	if img.MIMEType != "image/png" || img.Data != "aGVsbG8=" {
		t.Fatalf("unexpected bare split: %+v", img)
	}
}

func containsWarning(prompt string) bool {
	return len(prompt) > len(retryWarning) && prompt[len(prompt)-len(retryWarning):] == retryWarning
}
