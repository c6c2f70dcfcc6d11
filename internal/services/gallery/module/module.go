// Package module wires the gallery into the API using modkit
package module

import (
	"net/http"

	modkit "rakugaki/internal/modkit"
	"rakugaki/internal/modkit/httpkit"

	ghttp "rakugaki/internal/services/gallery/http"
	grepo "rakugaki/internal/services/gallery/repo"
	gsvc "rakugaki/internal/services/gallery/service"
)

// Module implements the gallery API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *gsvc.Service
}

// New constructs the gallery module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("gallery"),
		modkit.WithPrefix("/works"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	svc := gsvc.New(deps.PG, grepo.NewPG(), gsvc.Config{
		TTL:           cfg.TTL,
		Capacity:      cfg.Capacity,
		SweepInterval: cfg.SweepInterval,
	}, deps.Log)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Saver: svc, Query: svc, Stats: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		ghttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Close stops the background sweep
func (m *Module) Close() { m.svc.Close() }

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
