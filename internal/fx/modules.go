package fx

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"league-watcher/internal/catalog"
	"league-watcher/internal/config"
	"league-watcher/internal/database"
	"league-watcher/internal/datadragon"
	"league-watcher/internal/engine"
	"league-watcher/internal/httpapi"
	"league-watcher/internal/lockfile"
	"league-watcher/internal/logger"
	"league-watcher/internal/state"
	"league-watcher/internal/supervisor"
	"league-watcher/internal/updater"
	"league-watcher/internal/ws"
)

// ProvideCatalog loads (and, if the CDN has a newer patch, refreshes) the
// static catalog once at startup; it is immutable afterwards.
func ProvideCatalog(svc *catalog.Service, log zerolog.Logger) (*catalog.Catalog, error) {
	cat, err := svc.Load(context.Background())
	if err != nil {
		return nil, err
	}
	log.Info().Str("version", cat.Version()).Msg("catalog loaded")
	return cat, nil
}

func ProvideSpellSelector(cat *catalog.Catalog) *engine.SpellSelector {
	return engine.NewSpellSelector(cat)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	// catalog
	fx.Provide(datadragon.NewClient),
	fx.Provide(catalog.NewRepository),
	fx.Provide(catalog.NewService),
	fx.Provide(ProvideCatalog),
	// shared state
	fx.Provide(state.New),
	// discovery + update
	fx.Provide(lockfile.NewLocator),
	fx.Provide(updater.New),
	fx.Provide(supervisor.New),
	// automation engine
	fx.Provide(ProvideSpellSelector),
	fx.Provide(engine.NewCoordinator),
	fx.Provide(engine.New),
	// presentation boundary
	fx.Provide(httpapi.NewHandlers),
	fx.Provide(ws.NewHandler),
)
