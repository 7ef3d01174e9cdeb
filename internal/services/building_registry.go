package services

import (
	"context"
	"os"
	"slices"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/umahmood/haversine"

	"github.com/poofware/wayfinding-service/internal/models"
	"github.com/poofware/wayfinding-service/internal/utils"
)

// ResourceChecker reports whether a floor map can be reached.
type ResourceChecker interface {
	Exists(ctx context.Context, mapReference string) bool
}

type ResourceCheckerFunc func(ctx context.Context, mapReference string) bool

func (f ResourceCheckerFunc) Exists(ctx context.Context, mapReference string) bool {
	return f(ctx, mapReference)
}

// StatChecker treats map references as file paths.
type StatChecker struct{}

func (StatChecker) Exists(_ context.Context, mapReference string) bool {
	info, err := os.Stat(mapReference)
	return err == nil && !info.IsDir()
}

// CatalogChecker trusts the catalog: every listed map is assumed present.
type CatalogChecker struct{}

func (CatalogChecker) Exists(context.Context, string) bool { return true }

type NearbyBuilding struct {
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKm float64 `json:"distance_km"`
}

// BuildingRegistry knows the building catalog and loads buildings into the
// index on request.
type BuildingRegistry struct {
	buildings []models.BuildingDescriptor
	byName    map[string]int
	index     *BuildingIndex
	checker   ResourceChecker

	mu        sync.RWMutex
	available []string
}

func NewBuildingRegistry(
	buildings []models.BuildingDescriptor,
	index *BuildingIndex,
	checker ResourceChecker,
) *BuildingRegistry {
	if checker == nil {
		checker = CatalogChecker{}
	}
	byName := make(map[string]int, len(buildings))
	for i, b := range buildings {
		if _, dup := byName[b.Name]; dup {
			utils.Logger.Warnf("Duplicate building %q in catalog; keeping the first entry", b.Name)
			continue
		}
		byName[b.Name] = i
	}
	return &BuildingRegistry{
		buildings: buildings,
		byName:    byName,
		index:     index,
		checker:   checker,
	}
}

// ListAvailableBuildings returns catalog buildings, in catalog order, for
// which at least one floor map is reachable. Buildings failing the check
// are omitted; the result may be empty but never errors.
func (r *BuildingRegistry) ListAvailableBuildings(ctx context.Context) []string {
	out := []string{}
	for i, b := range r.buildings {
		if r.byName[b.Name] != i {
			continue
		}
		if ctx.Err() != nil {
			utils.Logger.WithError(ctx.Err()).Warn("Building availability check interrupted")
			break
		}
		if r.reachable(ctx, b) {
			out = append(out, b.Name)
		} else {
			utils.Logger.WithField("building", b.Name).Info("Building not found; omitting")
		}
	}

	r.mu.Lock()
	r.available = out
	r.mu.Unlock()
	return slices.Clone(out)
}

func (r *BuildingRegistry) reachable(ctx context.Context, b models.BuildingDescriptor) bool {
	for _, f := range b.Floors {
		if r.checker.Exists(ctx, f.MapReference) {
			return true
		}
	}
	return false
}

// Available returns the result of the last availability check, which is
// nil until ListAvailableBuildings or Refresh has run.
func (r *BuildingRegistry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.available)
}

// Refresh re-runs the availability check and logs what changed.
func (r *BuildingRegistry) Refresh(ctx context.Context) {
	before := r.Available()
	after := r.ListAvailableBuildings(ctx)
	if slices.Equal(before, after) {
		utils.Logger.Debug("Building availability unchanged")
		return
	}
	utils.Logger.WithFields(logrus.Fields{
		"before": before,
		"after":  after,
	}).Info("Building availability changed")
}

func (r *BuildingRegistry) Descriptor(name string) (models.BuildingDescriptor, bool) {
	i, ok := r.byName[name]
	if !ok {
		return models.BuildingDescriptor{}, false
	}
	return r.buildings[i], true
}

// SelectBuilding loads a catalog building into the index. Unknown names
// return false without touching the currently loaded building.
func (r *BuildingRegistry) SelectBuilding(ctx context.Context, name string) (LoadReport, bool) {
	desc, ok := r.Descriptor(name)
	if !ok {
		utils.Logger.WithField("building", name).Warn("Select requested for unknown building")
		return LoadReport{Building: name, FloorsLoaded: []string{}}, false
	}
	return r.index.LoadFloors(ctx, desc.Name, desc.Floors)
}

// NearbyBuildings lists available buildings with known coordinates ordered by
// great-circle distance from (lat, lng). A non-positive radius disables the
// distance cutoff.
func (r *BuildingRegistry) NearbyBuildings(ctx context.Context, lat, lng, radiusKm float64) []NearbyBuilding {
	origin := haversine.Coord{Lat: lat, Lon: lng}
	out := []NearbyBuilding{}
	for _, name := range r.ListAvailableBuildings(ctx) {
		desc, _ := r.Descriptor(name)
		if !desc.HasLocation() {
			continue
		}
		_, km := haversine.Distance(origin, haversine.Coord{Lat: desc.Latitude, Lon: desc.Longitude})
		if radiusKm > 0 && km > radiusKm {
			continue
		}
		out = append(out, NearbyBuilding{
			Name:       name,
			Latitude:   desc.Latitude,
			Longitude:  desc.Longitude,
			DistanceKm: km,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out
}
