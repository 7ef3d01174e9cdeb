package dtos

import (
	"github.com/poofware/wayfinding-service/internal/geometry"
	"github.com/poofware/wayfinding-service/internal/models"
)

/*
RoomSearchQuery is the "request DTO" for GET /api/v1/rooms/search. Query
length is checked after trimming, so it carries no tag. The container and page sizes are optional; when the container is given the
response includes display coordinates for the room and its entrance.
*/
type RoomSearchQuery struct {
	Query           string
	ContainerWidth  float64 `validate:"gte=0"`
	ContainerHeight float64 `validate:"gte=0"`
	PageWidth       float64 `validate:"gte=0"`
	PageHeight      float64 `validate:"gte=0"`
}

type NearestEntranceQuery struct {
	X float64 `validate:"gte=0,lte=1"`
	Y float64 `validate:"gte=0,lte=1"`
}

type EntranceDTO struct {
	Label            string  `json:"label"`
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	Floor            string  `json:"floor"`
	FloorDisplayName string  `json:"floor_display_name"`
	Distance         float64 `json:"distance"`
}

type DisplayDTO struct {
	Frame    geometry.Display `json:"frame"`
	Room     geometry.Point   `json:"room"`
	Entrance *geometry.Point  `json:"entrance,omitempty"`
}

type RoomSearchResponse struct {
	Room             models.Room  `json:"room"`
	Floor            string       `json:"floor"`
	FloorDisplayName string       `json:"floor_display_name"`
	MapReference     string       `json:"map_reference"`
	NearestEntrance  *EntranceDTO `json:"nearest_entrance,omitempty"`
	Display          *DisplayDTO  `json:"display,omitempty"`
}
