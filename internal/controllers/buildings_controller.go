package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/poofware/wayfinding-service/internal/dtos"
	"github.com/poofware/wayfinding-service/internal/services"
	"github.com/poofware/wayfinding-service/internal/utils"
)

const selectLoadTimeout = 2 * time.Minute

type BuildingsController struct {
	registry *services.BuildingRegistry
	index    *services.BuildingIndex
}

func NewBuildingsController(reg *services.BuildingRegistry, ix *services.BuildingIndex) *BuildingsController {
	return &BuildingsController{registry: reg, index: ix}
}

func buildingDTO(name string) dtos.BuildingDTO {
	return dtos.BuildingDTO{Name: name, DisplayName: utils.FormatBuildingName(name)}
}

// ----------------------------------------------------------------
// GET /api/v1/buildings
// ----------------------------------------------------------------
func (c *BuildingsController) ListBuildingsHandler(w http.ResponseWriter, r *http.Request) {
	names := c.registry.ListAvailableBuildings(r.Context())
	resp := dtos.ListBuildingsResponse{Results: make([]dtos.BuildingDTO, 0, len(names)), Total: len(names)}
	for _, n := range names {
		resp.Results = append(resp.Results, buildingDTO(n))
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/buildings/nearby?lat=&lng=&radius_km=
// ----------------------------------------------------------------
func (c *BuildingsController) NearbyBuildingsHandler(w http.ResponseWriter, r *http.Request) {
	var q dtos.NearbyBuildingsQuery
	var err error
	if q.Lat, err = requiredFloatParam(r, "lat"); err == nil {
		if q.Lng, err = requiredFloatParam(r, "lng"); err == nil {
			q.RadiusKm, err = floatParam(r, "radius_km")
		}
	}
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	if err := validate.Struct(q); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "lat/lng out of range", nil, err)
		return
	}

	nearby := c.registry.NearbyBuildings(r.Context(), q.Lat, q.Lng, q.RadiusKm)
	resp := dtos.ListNearbyBuildingsResponse{Results: make([]dtos.NearbyBuildingDTO, 0, len(nearby)), Total: len(nearby)}
	for _, b := range nearby {
		resp.Results = append(resp.Results, dtos.NearbyBuildingDTO{
			BuildingDTO: buildingDTO(b.Name),
			Latitude:    b.Latitude,
			Longitude:   b.Longitude,
			DistanceKm:  b.DistanceKm,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// POST /api/v1/buildings/select
// ----------------------------------------------------------------
func (c *BuildingsController) SelectBuildingHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.SelectBuildingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	req.Building = strings.TrimSpace(req.Building)
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "building is required", nil, err)
		return
	}

	if _, known := c.registry.Descriptor(req.Building); !known {
		utils.HandleAppError(w, &utils.AppError{
			StatusCode: http.StatusNotFound,
			Code:       utils.ErrCodeUnknownBuilding,
			Message:    "Unknown building " + req.Building,
			Err:        utils.ErrUnknownBuilding,
		})
		return
	}

	// a client hanging up must not abort a load other callers will see
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), selectLoadTimeout)
	defer cancel()
	report, ok := c.registry.SelectBuilding(ctx, req.Building)
	if !ok {
		utils.RespondErrorWithCode(
			w,
			http.StatusUnprocessableEntity,
			utils.ErrCodeLoadFailed,
			"Could not load "+req.Building,
			report,
			utils.ErrNoFloorsLoaded,
		)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.SelectBuildingResponse{
		Building: buildingDTO(req.Building),
		Report:   report,
	})
}

// ----------------------------------------------------------------
// GET /api/v1/buildings/current
// ----------------------------------------------------------------
func (c *BuildingsController) CurrentBuildingHandler(w http.ResponseWriter, r *http.Request) {
	name, floors := c.index.CurrentFloors()
	resp := dtos.CurrentBuildingResponse{Floors: floorDTOs(floors)}
	if name != "" {
		b := buildingDTO(name)
		resp.Building = &b
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func floorDTOs(floors []services.FloorSummary) []dtos.FloorDTO {
	out := make([]dtos.FloorDTO, 0, len(floors))
	for _, f := range floors {
		out = append(out, dtos.FloorDTO{
			Name:         f.Name,
			DisplayName:  utils.FormatFloorName(f.Name),
			MapReference: f.MapReference,
			Rooms:        f.Rooms,
			Entrances:    f.Entrances,
		})
	}
	return out
}
