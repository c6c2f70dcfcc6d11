// Package module wires critique generation into the API using modkit
package module

import (
	"net/http"

	modkit "rakugaki/internal/modkit"
	"rakugaki/internal/modkit/httpkit"

	"rakugaki/internal/services/critique/domain"
	chttp "rakugaki/internal/services/critique/http"
	csvc "rakugaki/internal/services/critique/service"
)

// Module implements the critique API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *csvc.Service
}

// Ports declares the injected gallery port so finished artworks are retrievable
type Ports struct {
	Gallery domain.GalleryPort
}

// New constructs the critique module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("critique"),
		modkit.WithPrefix("/critiques"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Gallery == nil {
		panic("critique module requires Gallery port (from services/gallery)")
	}
	if deps.Model == nil {
		panic("critique module requires a model client")
	}

	svc := csvc.New(deps.Model, injected.Gallery, csvc.Config{
		MaxRetries: cfg.MaxRetries,
	}, deps.Log)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptGeneratorPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		chttp.Register(r, m.svc, cfg.MaxImageBytes)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }
