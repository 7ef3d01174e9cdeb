package main

import (
	"context"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/poofware/wayfinding-service/internal/app"
	"github.com/poofware/wayfinding-service/internal/config"
	"github.com/poofware/wayfinding-service/internal/controllers"
	"github.com/poofware/wayfinding-service/internal/utils"
)

const availabilityRefreshTimeout = 30 * time.Second

func main() {
	utils.InitLogger(config.AppName)

	// 1) Config
	cfg := config.LoadConfig()
	defer cfg.Close()

	// 2) Core application (index, registry)
	application := app.NewApp(cfg)
	defer application.Close()

	// 3) Router
	router := controllers.NewRouter(application)

	// 4) Periodic availability refresh, so map files added or removed on
	// disk show up without a restart.
	c := cron.New()
	_, err := c.AddFunc(cfg.AvailabilityRefreshSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), availabilityRefreshTimeout)
		defer cancel()
		application.Registry.Refresh(ctx)
	})
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule availability refresh cron")
	}
	c.Start()
	defer c.Stop()
	utils.Logger.Infof("Scheduled availability refresh: '%s'", cfg.AvailabilityRefreshSpec)

	// 5) CORS
	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}
	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("wayfinding-service failed to start:", err)
	}
}
