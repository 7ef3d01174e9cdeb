package controllers

import (
	"net/http"

	"github.com/poofware/wayfinding-service/internal/app"
	"github.com/poofware/wayfinding-service/internal/dtos"
	"github.com/poofware/wayfinding-service/internal/utils"
)

type HealthController struct {
	app *app.App
}

func NewHealthController(a *app.App) *HealthController {
	return &HealthController{app: a}
}

// HealthCheckHandler => GET /health
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.app.Ping(r.Context()); err != nil {
		utils.Logger.WithError(err).Error("wayfinding-service unhealthy")
		utils.RespondErrorWithCode(
			w,
			http.StatusServiceUnavailable,
			utils.ErrCodeInternal,
			"Service unhealthy",
			nil,
			err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{
		Status:    "OK",
		Buildings: len(c.app.Registry.Available()),
		Current:   c.app.Index.CurrentBuilding(),
	})
}
