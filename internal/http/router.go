// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"gridpass/internal/http/handlers"
	"gridpass/internal/http/middleware"
	"gridpass/internal/modules/negotiator"
	"gridpass/internal/modules/registry"
	"gridpass/internal/modules/session"
	"gridpass/internal/modules/telemetry"
)

type RouterDeps struct {
	Registry   *registry.Store
	Telemetry  telemetry.Store
	Negotiator *negotiator.Service
	Sessions   *session.Service
	// DefaultStrategy is applied to plan requests that omit a strategy.
	DefaultStrategy negotiator.Strategy
	Log             zerolog.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(deps.Log), middleware.Logging(deps.Log))

	negotiatorHandler := handlers.NewNegotiatorHandler(deps.Negotiator, deps.DefaultStrategy)
	r.POST("/api/negotiator/plan", negotiatorHandler.Plan)

	stationHandler := handlers.NewStationHandler(deps.Registry)
	r.GET("/api/stations", stationHandler.List)
	r.GET("/api/stations/:id", stationHandler.Get)
	r.POST("/api/stations/:id/occupy", stationHandler.Occupy)
	r.POST("/api/stations/:id/connectors/:connectorId/release", stationHandler.Release)

	sessionHandler := handlers.NewSessionHandler(deps.Sessions)
	r.POST("/api/sessions", sessionHandler.Start)
	r.GET("/api/sessions", sessionHandler.List)
	r.GET("/api/sessions/active", sessionHandler.Active)
	r.GET("/api/sessions/:id", sessionHandler.Get)
	r.POST("/api/sessions/:id/stop", sessionHandler.Stop)
	r.GET("/api/sessions/:id/anchor", sessionHandler.Anchor)
	r.GET("/api/trust-anchor", sessionHandler.ListAnchors)

	vehicleHandler := handlers.NewVehicleHandler(deps.Telemetry)
	r.GET("/api/vehicles/:vin/soc-history", vehicleHandler.SoCHistory)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
