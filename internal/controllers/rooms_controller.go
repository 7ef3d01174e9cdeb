package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/poofware/wayfinding-service/internal/dtos"
	"github.com/poofware/wayfinding-service/internal/geometry"
	"github.com/poofware/wayfinding-service/internal/services"
	"github.com/poofware/wayfinding-service/internal/utils"
)

// RoomsController serves read-only lookups against the loaded building.
type RoomsController struct {
	index *services.BuildingIndex
}

func NewRoomsController(ix *services.BuildingIndex) *RoomsController {
	return &RoomsController{index: ix}
}

// ----------------------------------------------------------------
// GET /api/v1/rooms/search?q=
// ----------------------------------------------------------------
func (c *RoomsController) SearchRoomHandler(w http.ResponseWriter, r *http.Request) {
	q, err := parseRoomSearchQuery(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	if q.Query, err = normalizeRoomQuery(q.Query); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Room query too long", nil, err)
		return
	}
	if err := validate.Struct(q); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Sizes must not be negative", nil, err)
		return
	}

	loc, ok := c.index.LocateRoom(q.Query)
	if !ok {
		utils.HandleAppError(w, &utils.AppError{
			StatusCode: http.StatusNotFound,
			Code:       utils.ErrCodeRoomNotFound,
			Message:    "Room not found",
			Err:        utils.ErrRoomNotFound,
		})
		return
	}

	resp := dtos.RoomSearchResponse{
		Room:             loc.Room,
		Floor:            loc.FloorName,
		FloorDisplayName: utils.FormatFloorName(loc.FloorName),
		MapReference:     loc.MapReference,
	}
	if loc.NearestEntrance != nil {
		resp.NearestEntrance = entranceDTO(loc.NearestEntrance)
	}
	if frame, ok := displayFrame(q); ok {
		d := &dtos.DisplayDTO{Frame: frame, Room: frame.Map(loc.Room.X, loc.Room.Y)}
		if e := loc.NearestEntrance; e != nil {
			p := frame.Map(e.Entrance.X, e.Entrance.Y)
			d.Entrance = &p
		}
		resp.Display = d
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/entrances/nearest?x=&y=
// ----------------------------------------------------------------
func (c *RoomsController) NearestEntranceHandler(w http.ResponseWriter, r *http.Request) {
	var q dtos.NearestEntranceQuery
	var err error
	if q.X, err = requiredFloatParam(r, "x"); err == nil {
		q.Y, err = requiredFloatParam(r, "y")
	}
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	if err := validateUnitPoint(q); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "x and y must be within [0,1]", nil, err)
		return
	}

	m, ok := c.index.NearestEntrance(q.X, q.Y)
	if !ok {
		utils.HandleAppError(w, &utils.AppError{
			StatusCode: http.StatusNotFound,
			Code:       utils.ErrCodeNoEntrances,
			Message:    "No entrances loaded",
			Err:        utils.ErrNoEntrances,
		})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, entranceDTO(m))
}

// ----------------------------------------------------------------
// GET /api/v1/floors
// ----------------------------------------------------------------
func (c *RoomsController) ListFloorsHandler(w http.ResponseWriter, r *http.Request) {
	name, summaries := c.index.CurrentFloors()
	if name == "" {
		utils.HandleAppError(w, &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeNoBuildingLoaded,
			Message:    "Select a building first",
			Err:        utils.ErrNoBuildingLoaded,
		})
		return
	}
	floors := floorDTOs(summaries)
	utils.RespondWithJSON(w, http.StatusOK, dtos.ListFloorsResponse{Building: name, Results: floors, Total: len(floors)})
}

// ----------------------------------------------------------------
// GET /api/v1/floors/{floor}/map
// ----------------------------------------------------------------
func (c *RoomsController) FloorMapHandler(w http.ResponseWriter, r *http.Request) {
	floor := mux.Vars(r)["floor"]
	ref, ok := c.index.GetMapReference(floor)
	if !ok {
		utils.HandleAppError(w, &utils.AppError{
			StatusCode: http.StatusNotFound,
			Code:       utils.ErrCodeFloorNotFound,
			Message:    "Floor not found",
			Err:        utils.ErrFloorNotFound,
		})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.FloorMapResponse{Floor: floor, MapReference: ref})
}

func parseRoomSearchQuery(r *http.Request) (dtos.RoomSearchQuery, error) {
	q := dtos.RoomSearchQuery{Query: r.URL.Query().Get("q")}
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"container_width", &q.ContainerWidth},
		{"container_height", &q.ContainerHeight},
		{"page_width", &q.PageWidth},
		{"page_height", &q.PageHeight},
	} {
		v, err := floatParam(r, p.name)
		if err != nil {
			return q, err
		}
		*p.dst = v
	}
	return q, nil
}

// displayFrame places the floor map inside the caller's container. Without
// a page size the map fills the container.
func displayFrame(q dtos.RoomSearchQuery) (geometry.Display, bool) {
	if q.ContainerWidth <= 0 || q.ContainerHeight <= 0 {
		return geometry.Display{}, false
	}
	if q.PageWidth > 0 && q.PageHeight > 0 {
		return geometry.FitDisplay(q.PageWidth, q.PageHeight, q.ContainerWidth, q.ContainerHeight), true
	}
	return geometry.Display{Width: q.ContainerWidth, Height: q.ContainerHeight}, true
}

func entranceDTO(m *services.EntranceMatch) *dtos.EntranceDTO {
	return &dtos.EntranceDTO{
		Label:            m.Entrance.Label,
		X:                m.Entrance.X,
		Y:                m.Entrance.Y,
		Floor:            m.FloorName,
		FloorDisplayName: utils.FormatFloorName(m.FloorName),
		Distance:         m.Distance,
	}
}
