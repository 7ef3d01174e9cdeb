// Package extraction turns a floor map into room and entrance records.
//
// The index only depends on the Extractor interface. Two implementations
// ship with the service: PlaceholderExtractor serves fixed records for the
// sample buildings, and SidecarExtractor reads positioned text spans from a
// YAML file stored next to each map. Records are returned as found; ID
// normalization and coordinate validation happen at catalog ingestion.
package extraction

import (
	"context"

	"github.com/poofware/wayfinding-service/internal/models"
)

// FloorData is the raw output of extracting one floor map.
type FloorData struct {
	Rooms     []models.Room
	Entrances []models.Entrance
}

// Extractor obtains a floor's records from its map reference.
type Extractor interface {
	Extract(ctx context.Context, mapReference, floorName string) (*FloorData, error)
}

// ExtractorFunc adapts a plain function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, mapReference, floorName string) (*FloorData, error)

func (f ExtractorFunc) Extract(ctx context.Context, mapReference, floorName string) (*FloorData, error) {
	return f(ctx, mapReference, floorName)
}
