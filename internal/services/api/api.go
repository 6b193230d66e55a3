// Package api provides the HTTP API for the application
package api

import (
	"wearlog/internal/platform/config"
	"wearlog/internal/platform/logger"
	phttp "wearlog/internal/platform/net/http"
	"wearlog/internal/platform/store"

	"wearlog/internal/modkit"
	"wearlog/internal/modkit/httpkit"
	"wearlog/internal/modkit/module"

	metamod "wearlog/internal/services/api/meta/module"
	epochsmod "wearlog/internal/services/epochs/module"
	periodsdom "wearlog/internal/services/periods/domain"
	periodsmod "wearlog/internal/services/periods/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Roster         httpkit.RosterPort
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// Construct the epochs module first and extract its reader port
	epochs := epochsmod.New(deps)
	reader := module.MustPortsOf[epochsmod.Ports](epochs).Reader

	// Inject that reader into the periods module for mask rendering; the
	// roster middleware guards the editing endpoints (nil port passes through)
	periods := periodsmod.New(
		deps,
		modkit.WithPorts(periodsdom.Ports{
			Epochs: reader,
		}),
		modkit.WithMiddlewares(httpkit.Roster(opt.Roster, phttp.JSON)),
	)

	mods := []module.Module{
		metamod.New(deps),
		epochs, // include epochs so its ports are registered
		periods,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
