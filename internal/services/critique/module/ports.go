package module

import (
	"context"

	"rakugaki/internal/services/critique/domain"
	csvc "rakugaki/internal/services/critique/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptGeneratorPort exposes service methods as module ports for cross-module usage
type adaptGeneratorPort struct{ svc *csvc.Service }

func (a adaptGeneratorPort) Evaluate(ctx context.Context, in domain.EvaluateInput) (domain.Artwork, error) {
	return a.svc.Evaluate(ctx, in)
}
