// Package http provides http transport for critique generation
package http

import (
	stdhttp "net/http"

	"rakugaki/internal/modkit/httpkit"
	"rakugaki/internal/modkit/swaggerkit"
	perr "rakugaki/internal/platform/errors"
	"rakugaki/internal/services/critique/domain"
)

// Register mounts the router
// maxImageBytes bounds the decoded image size, the check estimates decoded
// length from the base64 payload without decoding it
func Register(r httpkit.Router, gen domain.GeneratorPort, maxImageBytes int64) {
	h := &handlers{gen: gen, maxImageBytes: maxImageBytes}

	// base64 expands by 4/3 so allow that much body plus JSON framing slack
	bodyLimit := maxImageBytes*4/3 + 64*1024
	r.Post("/", httpkit.JSONOpts(h.evaluate, httpkit.JSONOptions{MaxBytes: bodyLimit, DisallowUnknown: true}))
}

type handlers struct {
	gen           domain.GeneratorPort
	maxImageBytes int64
}

// @Summary Generate a critique for a submitted doodle
// @Tags critique
// @Accept json
// @Produce json
// @Param payload body domain.EvaluateInput true "Doodle image and optional previous work"
// @Success 200 {object} domain.EvaluateResponse "ok"
// @Failure 400 {object} httpkit.Envelope "validation error"
// @Failure 429 {object} httpkit.Envelope "rate limited"
// @Router /critiques [post]
func (h *handlers) evaluate(r *stdhttp.Request, in domain.EvaluateInput) (any, error) {
	// len*3/4 estimates the decoded size without base64 decoding the payload
	if est := int64(len(in.Image)) * 3 / 4; est > h.maxImageBytes {
		return nil, perr.Validationf("image too large, max %d bytes", h.maxImageBytes)
	}

	artwork, err := h.gen.Evaluate(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return domain.EvaluateResponse{Success: true, Artwork: artwork}, nil
}

func init() {
	swaggerkit.Register(func(spec map[string]any) {
		paths, ok := spec["paths"].(map[string]any)
		if !ok {
			return
		}
		paths["/critiques"] = map[string]any{
			"post": map[string]any{
				"tags":        []any{"critique"},
				"summary":     "Generate a critique for a submitted doodle",
				"operationId": "evaluateDoodle",
				"requestBody": map[string]any{
					"required": true,
					"content": map[string]any{
						"application/json": map[string]any{
							"schema": map[string]any{
								"type":     "object",
								"required": []any{"image"},
								"properties": map[string]any{
									"image":        map[string]any{"type": "string", "description": "base64 encoded image, data URI prefix tolerated"},
									"previousWork": map[string]any{"type": "object", "description": "prior work in the series, enables a sequel critique"},
								},
							},
						},
					},
				},
				"responses": map[string]any{
					"200": map[string]any{"description": "critiqued artwork"},
					"400": map[string]any{
						"description": "validation error",
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
							},
						},
					},
					"429": map[string]any{
						"description": "rate limited",
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
							},
						},
					},
				},
			},
		}
	})
}
