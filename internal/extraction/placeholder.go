package extraction

import (
	"context"

	"github.com/poofware/wayfinding-service/internal/models"
)

// PlaceholderExtractor returns fixed records keyed by floor name, ignoring
// the map reference. Unknown floors yield empty data, not an error.
type PlaceholderExtractor struct {
	Rooms     map[string][]models.Room
	Entrances map[string][]models.Entrance
}

// NewPlaceholderExtractor serves the sample data used for porcelaenshaven
// and solbjerg.
func NewPlaceholderExtractor() *PlaceholderExtractor {
	return &PlaceholderExtractor{
		Rooms: map[string][]models.Room{
			"stue": {
				{ID: "PH-D1.01", X: 0.2, Y: 0.3},
				{ID: "PH-D1.02", X: 0.4, Y: 0.3},
				{ID: "PH-D1.03", X: 0.6, Y: 0.3},
				{ID: "A.0.01", X: 0.3, Y: 0.5},
				{ID: "A.0.02", X: 0.5, Y: 0.5},
			},
			"1_sal": {
				{ID: "A.1.01", X: 0.2, Y: 0.4},
				{ID: "A.1.02", X: 0.4, Y: 0.4},
				{ID: "A.1.03", X: 0.6, Y: 0.4},
				{ID: "PH-D1.11", X: 0.3, Y: 0.6},
			},
			"2_sal": {
				{ID: "A.2.01", X: 0.25, Y: 0.35},
				{ID: "A.2.02", X: 0.45, Y: 0.35},
				{ID: "A.2.03", X: 0.65, Y: 0.35},
			},
			"3_sal": {
				{ID: "A.3.01", X: 0.3, Y: 0.4},
				{ID: "A.3.02", X: 0.5, Y: 0.4},
			},
			"4_sal": {
				{ID: "A.4.01", X: 0.35, Y: 0.45},
				{ID: "A.4.02", X: 0.55, Y: 0.45},
			},
			"5_sal": {
				{ID: "A.5.01", X: 0.4, Y: 0.5},
			},
		},
		Entrances: map[string][]models.Entrance{
			"stue": {
				{Label: "Hovedindgang", X: 0.1, Y: 0.8},
				{Label: "Sideindgang", X: 0.9, Y: 0.6},
			},
		},
	}
}

func (p *PlaceholderExtractor) Extract(ctx context.Context, _ string, floorName string) (*FloorData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// copy so callers can never alias the fixtures
	return &FloorData{
		Rooms:     append([]models.Room(nil), p.Rooms[floorName]...),
		Entrances: append([]models.Entrance(nil), p.Entrances[floorName]...),
	}, nil
}
