package app

import (
	"context"

	"github.com/poofware/wayfinding-service/internal/config"
	"github.com/poofware/wayfinding-service/internal/extraction"
	"github.com/poofware/wayfinding-service/internal/services"
	"github.com/poofware/wayfinding-service/internal/utils"
)

// App struct holds references to config & services.
type App struct {
	Config   *config.Config
	Index    *services.BuildingIndex
	Registry *services.BuildingRegistry
}

// NewApp sets up the building index and registry. There is no database;
// the index lives in memory for the lifetime of the process.
func NewApp(cfg *config.Config) *App {
	utils.Logger.Info("Initializing wayfinding-service App")

	index := services.NewBuildingIndex(newExtractor(cfg), services.IndexOptions{
		CoordinatePolicy: cfg.CoordinatePolicy,
		GroundFloor: services.GroundFloorPolicy{
			Tokens: cfg.GroundFloorTokens,
			Names:  cfg.GroundFloorNames,
		},
		LoadConcurrency:    cfg.LoadConcurrency,
		StrictFloorLoading: cfg.LDFlag_StrictFloorLoading,
	})

	var checker services.ResourceChecker = services.CatalogChecker{}
	if cfg.LDFlag_VerifyMapFiles {
		checker = services.StatChecker{}
	}
	registry := services.NewBuildingRegistry(cfg.Buildings, index, checker)

	// warm the availability cache
	available := registry.ListAvailableBuildings(context.Background())
	utils.Logger.Infof("%d of %d catalog building(s) available", len(available), len(cfg.Buildings))

	return &App{
		Config:   cfg,
		Index:    index,
		Registry: registry,
	}
}

func newExtractor(cfg *config.Config) extraction.Extractor {
	if cfg.Extractor == config.ExtractorSidecar {
		return extraction.NewSidecarExtractor()
	}
	return extraction.NewPlaceholderExtractor()
}

// Ping reports whether the app can serve requests.
func (a *App) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(a.Registry.Available()) == 0 {
		return utils.ErrNoBuildings
	}
	return nil
}

// Close is a no-op here but included for consistency.
func (a *App) Close() {
	utils.Logger.Info("wayfinding-service app shutting down.")
}
