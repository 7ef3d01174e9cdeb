package catalog

import (
	"fmt"
	"strings"

	"github.com/poofware/wayfinding-service/internal/extraction"
	"github.com/poofware/wayfinding-service/internal/geometry"
	"github.com/poofware/wayfinding-service/internal/models"
)

// CoordinatePolicy decides what happens to records outside the unit square.
type CoordinatePolicy string

const (
	PolicyClamp  CoordinatePolicy = "clamp"
	PolicyReject CoordinatePolicy = "reject"
)

func ParseCoordinatePolicy(s string) (CoordinatePolicy, error) {
	switch p := CoordinatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyClamp, PolicyReject:
		return p, nil
	case "":
		return PolicyClamp, nil
	default:
		return "", fmt.Errorf("unknown coordinate policy %q", s)
	}
}

// IngestStats counts what happened to one floor's records.
type IngestStats struct {
	Rooms     int `json:"rooms"`
	Entrances int `json:"entrances"`
	Clamped   int `json:"clamped"`
	Rejected  int `json:"rejected"`
	// Rooms dropped because their ID was blank.
	Unnamed int `json:"unnamed"`
}

func (s *IngestStats) Add(o IngestStats) {
	s.Rooms += o.Rooms
	s.Entrances += o.Entrances
	s.Clamped += o.Clamped
	s.Rejected += o.Rejected
	s.Unnamed += o.Unnamed
}

// NormalizeRoomID is the canonical form rooms are stored and searched under.
func NormalizeRoomID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// Ingest turns raw extraction output into an immutable floor: room IDs are
// normalized and every coordinate is checked against the unit square.
func Ingest(floorName, mapReference string, data *extraction.FloorData, policy CoordinatePolicy) (*models.Floor, IngestStats) {
	var stats IngestStats
	floor := &models.Floor{
		Name:         floorName,
		MapReference: mapReference,
		Rooms:        []models.Room{},
		Entrances:    []models.Entrance{},
	}
	if data == nil {
		return floor, stats
	}

	for _, r := range data.Rooms {
		id := NormalizeRoomID(r.ID)
		if id == "" {
			stats.Unnamed++
			continue
		}
		x, y, ok := admit(r.X, r.Y, policy, &stats)
		if !ok {
			continue
		}
		floor.Rooms = append(floor.Rooms, models.Room{ID: id, X: x, Y: y})
	}

	for _, e := range data.Entrances {
		x, y, ok := admit(e.X, e.Y, policy, &stats)
		if !ok {
			continue
		}
		floor.Entrances = append(floor.Entrances, models.Entrance{X: x, Y: y, Label: strings.TrimSpace(e.Label)})
	}

	stats.Rooms = len(floor.Rooms)
	stats.Entrances = len(floor.Entrances)
	return floor, stats
}

func admit(x, y float64, policy CoordinatePolicy, stats *IngestStats) (float64, float64, bool) {
	if geometry.InUnitSquare(x, y) {
		return x, y, true
	}
	if policy == PolicyReject {
		stats.Rejected++
		return 0, 0, false
	}
	stats.Clamped++
	return geometry.ClampUnit(x), geometry.ClampUnit(y), true
}
