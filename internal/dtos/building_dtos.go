package dtos

import "github.com/poofware/wayfinding-service/internal/services"

type BuildingDTO struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

type ListBuildingsResponse struct {
	Results []BuildingDTO `json:"results"`
	Total   int           `json:"total"`
}

/*
NearbyBuildingsQuery is the "request DTO" for GET /api/v1/buildings/nearby.
*/
type NearbyBuildingsQuery struct {
	Lat      float64 `validate:"min=-90,max=90"`
	Lng      float64 `validate:"min=-180,max=180"`
	RadiusKm float64 `validate:"gte=0"`
}

type NearbyBuildingDTO struct {
	BuildingDTO
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKm float64 `json:"distance_km"`
}

type ListNearbyBuildingsResponse struct {
	Results []NearbyBuildingDTO `json:"results"`
	Total   int                 `json:"total"`
}

type SelectBuildingRequest struct {
	Building string `json:"building" validate:"required"`
}

type SelectBuildingResponse struct {
	Building BuildingDTO         `json:"building"`
	Report   services.LoadReport `json:"report"`
}

type CurrentBuildingResponse struct {
	Building *BuildingDTO `json:"building"`
	Floors   []FloorDTO   `json:"floors"`
}
