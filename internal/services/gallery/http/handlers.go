// Package http provides http transport for gallery lookups
package http

import (
	stdhttp "net/http"

	"rakugaki/internal/modkit/httpkit"
	"rakugaki/internal/modkit/swaggerkit"
	perr "rakugaki/internal/platform/errors"
	"rakugaki/internal/services/gallery/domain"
)

// minIDLength rejects ids too short to have been issued by us
const minIDLength = 5

// Register mounts the router
func Register(r httpkit.Router, q domain.QueryPort) {
	h := &handlers{query: q}
	httpkit.Get(r, "/{id}", h.get)
	httpkit.Delete(r, "/{id}", h.delete)
}

type handlers struct{ query domain.QueryPort }

// @Summary Fetch a stored artwork by id
// @Tags gallery
// @Produce json
// @Param id path string true "Artwork id"
// @Success 200 {object} domain.WorkResponse "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /works/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id := httpkit.Param(r, "id")
	if len(id) < minIDLength {
		return nil, perr.Validationf("invalid artwork id")
	}
	a, err := h.query.GetWork(r.Context(), id)
	if err != nil {
		return nil, err
	}
	return domain.WorkResponse{Success: true, Artwork: a}, nil
}

// @Summary Remove a stored artwork by id
// @Tags gallery
// @Produce json
// @Param id path string true "Artwork id"
// @Success 200 {object} domain.DeleteResponse "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /works/{id} [delete]
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	id := httpkit.Param(r, "id")
	if len(id) < minIDLength {
		return nil, perr.Validationf("invalid artwork id")
	}
	if err := h.query.DeleteWork(r.Context(), id); err != nil {
		return nil, err
	}
	return domain.DeleteResponse{Success: true}, nil
}

func init() {
	swaggerkit.Register(func(spec map[string]any) {
		paths, ok := spec["paths"].(map[string]any)
		if !ok {
			return
		}
		idParam := map[string]any{
			"name":     "id",
			"in":       "path",
			"required": true,
			"schema":   map[string]any{"type": "string"},
		}
		notFound := map[string]any{
			"description": "not found",
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				},
			},
		}
		paths["/works/{id}"] = map[string]any{
			"get": map[string]any{
				"tags":        []any{"gallery"},
				"summary":     "Fetch a stored artwork by id",
				"operationId": "getWork",
				"parameters":  []any{idParam},
				"responses": map[string]any{
					"200": map[string]any{"description": "stored artwork"},
					"404": notFound,
				},
			},
			"delete": map[string]any{
				"tags":        []any{"gallery"},
				"summary":     "Remove a stored artwork by id",
				"operationId": "deleteWork",
				"parameters":  []any{idParam},
				"responses": map[string]any{
					"200": map[string]any{"description": "removed"},
					"404": notFound,
				},
			},
		}
	})
}
