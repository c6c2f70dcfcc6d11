// Package api provides the HTTP API for the application
package api

import (
	"time"

	"rakugaki/internal/platform/config"
	"rakugaki/internal/platform/genai"
	"rakugaki/internal/platform/logger"
	phttp "rakugaki/internal/platform/net/http"
	"rakugaki/internal/platform/ratelimit"
	"rakugaki/internal/platform/store"

	"rakugaki/internal/modkit"
	"rakugaki/internal/modkit/httpkit"
	"rakugaki/internal/modkit/module"
	"rakugaki/internal/modkit/swaggerkit"

	critiquemod "rakugaki/internal/services/critique/module"
	gallerymod "rakugaki/internal/services/gallery/module"

	metamod "rakugaki/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router.
// The returned closer stops the background sweeps and must run on shutdown.
func Mount(r phttp.Router, opt Options) func() {
	model := genai.NewGemini(genai.FromConf(opt.Config.Prefix("GENAI_")))

	// one critique cycle can take most of a minute, limit admissions per client
	rlCfg := opt.Config.Prefix("RATELIMIT_")
	limiter := ratelimit.New(ratelimit.Config{
		MaxRequests: rlCfg.MayInt("MAX_REQUESTS", 5),
		Window:      rlCfg.MayDuration("WINDOW", time.Minute),
	}, opt.Logger.With().Str("component", "ratelimit").Logger())

	deps := modkit.Deps{
		Log:     *opt.Logger,
		Cfg:     opt.Config,
		Model:   model,
		Limiter: limiter,
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}

	// gallery first, the critique generator needs its saver port
	gallery := gallerymod.New(deps)
	galleryPorts := module.MustPortsOf[gallerymod.Ports](gallery)

	critique := critiquemod.New(
		deps,
		modkit.WithPorts(critiquemod.Ports{
			Gallery: galleryPorts.Saver,
		}),
		modkit.WithMiddlewares(httpkit.Throttle(limiter)),
	)

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{
			Gallery: galleryPorts.Stats,
		})),
		gallery,
		critique,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	return func() {
		gallery.Close()
		limiter.Close()
	}
}
