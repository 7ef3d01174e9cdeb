package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/poofware/wayfinding-service/internal/app"
	"github.com/poofware/wayfinding-service/internal/routes"
)

// NewRouter registers every endpoint of the service.
func NewRouter(a *app.App) *mux.Router {
	healthCtrl := NewHealthController(a)
	buildingsCtrl := NewBuildingsController(a.Registry, a.Index)
	roomsCtrl := NewRoomsController(a.Index)

	router := mux.NewRouter()
	router.HandleFunc(routes.Health, healthCtrl.HealthCheckHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.Buildings, buildingsCtrl.ListBuildingsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BuildingsNearby, buildingsCtrl.NearbyBuildingsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BuildingsSelect, buildingsCtrl.SelectBuildingHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.BuildingsCurrent, buildingsCtrl.CurrentBuildingHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.Floors, roomsCtrl.ListFloorsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.FloorMap, roomsCtrl.FloorMapHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.RoomsSearch, roomsCtrl.SearchRoomHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.EntrancesNearest, roomsCtrl.NearestEntranceHandler).Methods(http.MethodGet)

	return router
}
