package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/poofware/wayfinding-service/internal/catalog"
	"github.com/poofware/wayfinding-service/internal/extraction"
	"github.com/poofware/wayfinding-service/internal/geometry"
	"github.com/poofware/wayfinding-service/internal/models"
	"github.com/poofware/wayfinding-service/internal/utils"
)

const defaultLoadConcurrency = 4

var errUnnamedFloor = errors.New("floor descriptor has no name")

type IndexOptions struct {
	CoordinatePolicy catalog.CoordinatePolicy
	GroundFloor      GroundFloorPolicy
	// Maximum number of floors extracted at once; <= 0 uses a default.
	LoadConcurrency int
	// Fail the whole load if any single floor fails to extract.
	StrictFloorLoading bool
}

// SearchResult is a room together with the floor it was found on.
type SearchResult struct {
	Room         models.Room `json:"room"`
	FloorName    string      `json:"floor"`
	MapReference string      `json:"map_reference"`
}

// EntranceMatch is the entrance chosen for a position and where it came from.
type EntranceMatch struct {
	Entrance  models.Entrance `json:"entrance"`
	FloorName string          `json:"floor"`
	Distance  float64         `json:"distance"`
}

// Location bundles a search hit with its nearest entrance, if any.
type Location struct {
	SearchResult
	NearestEntrance *EntranceMatch `json:"nearest_entrance,omitempty"`
}

type FloorSummary struct {
	Name         string `json:"name"`
	MapReference string `json:"map_reference"`
	Rooms        int    `json:"rooms"`
	Entrances    int    `json:"entrances"`
}

type LoadReport struct {
	LoadID          uuid.UUID           `json:"load_id"`
	Building        string              `json:"building"`
	FloorsRequested int                 `json:"floors_requested"`
	FloorsLoaded    []string            `json:"floors_loaded"`
	FloorsFailed    []string            `json:"floors_failed,omitempty"`
	Stats           catalog.IngestStats `json:"stats"`
}

// BuildingIndex owns the catalog of the current building. Loads replace the
// catalog wholesale; readers always see one complete building or none.
type BuildingIndex struct {
	extractor extraction.Extractor
	opts      IndexOptions

	loadMu sync.Mutex // serializes LoadFloors

	mu      sync.RWMutex
	current *catalog.Catalog
}

func NewBuildingIndex(extractor extraction.Extractor, opts IndexOptions) *BuildingIndex {
	if opts.CoordinatePolicy == "" {
		opts.CoordinatePolicy = catalog.PolicyClamp
	}
	if opts.LoadConcurrency <= 0 {
		opts.LoadConcurrency = defaultLoadConcurrency
	}
	if opts.GroundFloor.Tokens == nil && opts.GroundFloor.Names == nil {
		opts.GroundFloor = DefaultGroundFloorPolicy()
	}
	return &BuildingIndex{
		extractor: extractor,
		opts:      opts,
		current:   catalog.New(""),
	}
}

type floorResult struct {
	floor *models.Floor
	stats catalog.IngestStats
	err   error
}

// LoadFloors replaces the current building with buildingName, extracting
// each described floor. Single floor failures are logged and skipped unless
// StrictFloorLoading is set. It returns false when nothing usable was
// loaded, in which case the index is left empty.
func (ix *BuildingIndex) LoadFloors(
	ctx context.Context,
	buildingName string,
	descriptors []models.FloorDescriptor,
) (LoadReport, bool) {
	ix.loadMu.Lock()
	defer ix.loadMu.Unlock()

	report := LoadReport{
		LoadID:          uuid.New(),
		Building:        buildingName,
		FloorsRequested: len(descriptors),
		FloorsLoaded:    []string{},
	}
	log := utils.Logger.WithFields(logrus.Fields{
		"building": buildingName,
		"load_id":  report.LoadID.String(),
	})
	log.Infof("Loading building with %d floor(s)", len(descriptors))

	results := make([]floorResult, len(descriptors))
	strict := ix.opts.StrictFloorLoading

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.opts.LoadConcurrency)
	for i, d := range descriptors {
		i, d := i, d
		g.Go(func() error {
			if strings.TrimSpace(d.Name) == "" {
				results[i].err = errUnnamedFloor
			} else if data, err := ix.extractor.Extract(gctx, d.MapReference, d.Name); err != nil {
				results[i].err = err
			} else {
				results[i].floor, results[i].stats = catalog.Ingest(d.Name, d.MapReference, data, ix.opts.CoordinatePolicy)
			}
			if strict && results[i].err != nil {
				// cancels the remaining extractions
				return results[i].err
			}
			return nil
		})
	}
	_ = g.Wait()

	next := catalog.New(buildingName)
	for i, r := range results {
		d := descriptors[i]
		if r.err != nil {
			report.FloorsFailed = append(report.FloorsFailed, d.Name)
			log.WithError(r.err).WithField("floor", d.Name).Warn("Skipping floor that failed to load")
			continue
		}
		next.AddFloor(r.floor)
		report.FloorsLoaded = append(report.FloorsLoaded, d.Name)
		report.Stats.Add(r.stats)
		log.WithFields(logrus.Fields{
			"floor":     d.Name,
			"rooms":     r.stats.Rooms,
			"entrances": r.stats.Entrances,
		}).Debug("Loaded floor")
	}
	if report.Stats.Clamped > 0 || report.Stats.Rejected > 0 {
		log.WithFields(logrus.Fields{
			"clamped":  report.Stats.Clamped,
			"rejected": report.Stats.Rejected,
		}).Warn("Out-of-range coordinates found during ingestion")
	}

	ok := next.Len() > 0 && !(strict && len(report.FloorsFailed) > 0)
	if !ok {
		next = catalog.New("")
	}

	ix.mu.Lock()
	ix.current = next
	ix.mu.Unlock()

	if !ok {
		log.Error("Building load failed; no floors available")
		return report, false
	}
	log.Infof("Loaded %d/%d floor(s), %d room(s), %d entrance(s)",
		len(report.FloorsLoaded), len(descriptors), report.Stats.Rooms, report.Stats.Entrances)
	return report, true
}

func (ix *BuildingIndex) snapshot() *catalog.Catalog {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.current
}

// SearchRoom looks a room up by exact, case-insensitive ID. Floors are
// scanned in load order and the first match wins. Blank queries never match.
func (ix *BuildingIndex) SearchRoom(query string) (*SearchResult, bool) {
	q := catalog.NormalizeRoomID(query)
	if q == "" {
		return nil, false
	}
	for _, f := range ix.snapshot().Floors() {
		for _, r := range f.Rooms {
			if r.ID == q {
				return &SearchResult{Room: r, FloorName: f.Name, MapReference: f.MapReference}, true
			}
		}
	}
	return nil, false
}

// GetNearestEntrance returns the entrance closest to (roomX, roomY).
func (ix *BuildingIndex) GetNearestEntrance(roomX, roomY float64) (*models.Entrance, bool) {
	m, ok := ix.NearestEntrance(roomX, roomY)
	if !ok {
		return nil, false
	}
	e := m.Entrance
	return &e, true
}

// NearestEntrance searches the ground floors' entrances when any exist and
// all floors' entrances otherwise. Distances are taken on each floor's own
// plane, so candidates from different floors are compared as if stacked.
// Ties go to the entrance loaded first.
func (ix *BuildingIndex) NearestEntrance(roomX, roomY float64) (*EntranceMatch, bool) {
	floors := ix.snapshot().Floors()

	var ground []*models.Floor
	for _, f := range floors {
		if ix.opts.GroundFloor.IsGroundFloor(f.Name) && len(f.Entrances) > 0 {
			ground = append(ground, f)
		}
	}
	pool := floors
	if len(ground) > 0 {
		pool = ground
	}

	var best *EntranceMatch
	for _, f := range pool {
		for _, e := range f.Entrances {
			d := geometry.Distance(roomX, roomY, e.X, e.Y)
			if best == nil || d < best.Distance {
				best = &EntranceMatch{Entrance: e, FloorName: f.Name, Distance: d}
			}
		}
	}
	return best, best != nil
}

// LocateRoom is SearchRoom followed by NearestEntrance for the room found.
func (ix *BuildingIndex) LocateRoom(query string) (*Location, bool) {
	res, ok := ix.SearchRoom(query)
	if !ok {
		return nil, false
	}
	loc := &Location{SearchResult: *res}
	if m, ok := ix.NearestEntrance(res.Room.X, res.Room.Y); ok {
		loc.NearestEntrance = m
	}
	return loc, true
}

func (ix *BuildingIndex) GetMapReference(floorName string) (string, bool) {
	f, ok := ix.snapshot().Floor(floorName)
	if !ok {
		return "", false
	}
	return f.MapReference, true
}

// CurrentBuilding returns the loaded building's name, or "" if none.
func (ix *BuildingIndex) CurrentBuilding() string {
	return ix.snapshot().BuildingName()
}

// Building returns the loaded building, or nil if none.
func (ix *BuildingIndex) Building() *models.Building {
	c := ix.snapshot()
	if c.Len() == 0 {
		return nil
	}
	return c.Building()
}

func (ix *BuildingIndex) Floors() []FloorSummary {
	_, floors := ix.CurrentFloors()
	return floors
}

// CurrentFloors returns the loaded building's name and its floors read from
// the same snapshot, so the pair never straddles a reload.
func (ix *BuildingIndex) CurrentFloors() (string, []FloorSummary) {
	c := ix.snapshot()
	floors := c.Floors()
	out := make([]FloorSummary, 0, len(floors))
	for _, f := range floors {
		out = append(out, FloorSummary{
			Name:         f.Name,
			MapReference: f.MapReference,
			Rooms:        len(f.Rooms),
			Entrances:    len(f.Entrances),
		})
	}
	return c.BuildingName(), out
}
