package routes

const (
	// Health
	Health = "/health"

	// Building registry
	Buildings        = "/api/v1/buildings"
	BuildingsNearby  = "/api/v1/buildings/nearby"
	BuildingsSelect  = "/api/v1/buildings/select"
	BuildingsCurrent = "/api/v1/buildings/current"

	// Current building
	Floors   = "/api/v1/floors"
	FloorMap = "/api/v1/floors/{floor}/map"

	// Search
	RoomsSearch      = "/api/v1/rooms/search"
	EntrancesNearest = "/api/v1/entrances/nearest"
)
