package module

import (
	cdom "rakugaki/internal/services/critique/domain"
	"rakugaki/internal/services/gallery/domain"
)

// Ports exposed by the gallery module
type Ports struct {
	// Saver is consumed by the critique generator to persist finished works
	Saver cdom.GalleryPort
	Query domain.QueryPort
	Stats domain.StatsPort
}

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }
