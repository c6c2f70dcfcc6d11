package service

import (
	"context"
	"regexp"
	"time"

	perr "rakugaki/internal/platform/errors"
	"rakugaki/internal/platform/genai"
	"rakugaki/internal/platform/logger"
	"rakugaki/internal/services/critique/domain"

	"github.com/google/uuid"
)

// Config for the critique service
type Config struct {
	// MaxRetries bounds additional attempts after a parse failure
	MaxRetries int
}

// Service orchestrates prompt construction, model invocation, retry and fallback
type Service struct {
	model   genai.Client
	gallery domain.GalleryPort
	cfg     Config
	log     logger.Logger
}

// New constructs the critique service
// gallery may be nil, finished artworks are then not retrievable by id
func New(model genai.Client, gallery domain.GalleryPort, cfg Config, log logger.Logger) *Service {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &Service{model: model, gallery: gallery, cfg: cfg, log: log}
}

// outcome is the tagged result of a single model attempt
// the explicit tag keeps the retry/fatal split auditable in the loop below
type outcome struct {
	kind outcomeKind
	eval domain.Evaluation
	err  error
}

type outcomeKind uint8

const (
	outcomeSuccess outcomeKind = iota
	outcomeRetryable
	outcomeFatal
)

var dataURIPrefix = regexp.MustCompile(`^data:image/(\w+);base64,`)

// splitImage strips an optional data URI prefix and reports the mime type
func splitImage(image string) genai.Image {
	img := genai.Image{MIMEType: "image/png", Data: image}
	if m := dataURIPrefix.FindStringSubmatch(image); m != nil {
		img.MIMEType = "image/" + m[1]
		img.Data = image[len(m[0]):]
	}
	return img
}

// Evaluate runs one critique generation cycle per the retry state machine:
// success returns, parse failures retry up to the bound then fall back,
// rate limit and transport errors fail immediately
func (s *Service) Evaluate(ctx context.Context, in domain.EvaluateInput) (domain.Artwork, error) {
	img := splitImage(in.Image)

	var lastErr error
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		s.log.Debug().
			Int("attempt", attempt+1).
			Int("max_attempts", s.cfg.MaxRetries+1).
			Bool("continuation", in.PreviousWork != nil).
			Msg("critique attempt")

		out := s.attempt(ctx, img, buildPrompt(in.PreviousWork, attempt))
		switch out.kind {
		case outcomeSuccess:
			s.log.Info().Str("title", out.eval.Title).Int64("price", out.eval.Price).Msg("critique parsed")
			return s.assemble(ctx, in, out.eval)
		case outcomeRetryable:
			lastErr = out.err
			s.log.Warn().Err(out.err).Int("attempt", attempt+1).Msg("model reply unusable")
			continue
		default:
			return domain.Artwork{}, out.err
		}
	}

	// retry budget exhausted on parse failures only, the feature must not
	// visibly break on malformed model output
	s.log.Error().Err(lastErr).Msg("all attempts exhausted, using fallback critique")
	return s.assemble(ctx, in, GenerateFallback())
}

// attempt invokes the model once and classifies the result
func (s *Service) attempt(ctx context.Context, img genai.Image, prompt string) outcome {
	raw, err := s.model.Generate(ctx, img, prompt)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeRateLimit) {
			return outcome{kind: outcomeFatal, err: err}
		}
		if perr.Retryable(err) {
			return outcome{kind: outcomeRetryable, err: err}
		}
		return outcome{kind: outcomeFatal, err: perr.WrapIf(err, perr.ErrorCodeAPI, "model call failed")}
	}

	ev, err := Parse(raw)
	if err != nil {
		// parse kinds are always worth another attempt
		return outcome{kind: outcomeRetryable, err: err}
	}
	return outcome{kind: outcomeSuccess, eval: ev}
}

// assemble builds the immutable Artwork record and hands it to the gallery
func (s *Service) assemble(ctx context.Context, in domain.EvaluateInput, ev domain.Evaluation) (domain.Artwork, error) {
	series := 1
	prevID := ""
	if in.PreviousWork != nil {
		series = in.PreviousWork.SeriesNumber + 1
		prevID = in.PreviousWork.ID
	}

	a := domain.Artwork{
		ID:             uuid.NewString(),
		Image:          in.Image,
		Evaluation:     ev,
		SeriesNumber:   series,
		CreatedAt:      time.Now().UTC(),
		PreviousWorkID: prevID,
		PriceDisplay:   domain.FormatPrice(ev.Price),
		PriceReadable:  domain.FormatPriceReadable(ev.Price),
	}

	if s.gallery != nil {
		if err := s.gallery.SaveArtwork(ctx, a); err != nil {
			// the critique is already generated, losing the share link is
			// preferable to failing the request
			s.log.Warn().Err(err).Str("artwork_id", a.ID).Msg("storing artwork failed")
		}
	}
	return a, nil
}
