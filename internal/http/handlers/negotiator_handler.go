// README: Negotiation endpoint (plan a charging session).
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gridpass/internal/modules/negotiator"
	"gridpass/internal/types"
)

const defaultVehicleVIN = "W1KAH5EB2PF093797"

type NegotiatorHandler struct {
	negotiator      *negotiator.Service
	defaultStrategy negotiator.Strategy
}

func NewNegotiatorHandler(svc *negotiator.Service, defaultStrategy negotiator.Strategy) *NegotiatorHandler {
	return &NegotiatorHandler{negotiator: svc, defaultStrategy: defaultStrategy}
}

type planRequest struct {
	UserLat          float64    `json:"user_lat"`
	UserLng          float64    `json:"user_lng"`
	TargetSoCPercent *float64   `json:"target_soc_percent"`
	DepartureTime    *time.Time `json:"departure_time"`
	Strategy         string     `json:"strategy"`
	VehicleVIN       string     `json:"vehicle_vin"`
}

func (h *NegotiatorHandler) Plan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	targetPercent := 80.0
	if req.TargetSoCPercent != nil {
		targetPercent = *req.TargetSoCPercent
	}
	if targetPercent < 1 || targetPercent > 100 {
		writeError(c, http.StatusBadRequest, "target_soc_percent must be between 1 and 100")
		return
	}

	raw := req.Strategy
	if raw == "" {
		raw = string(h.defaultStrategy)
	}
	strategy, err := negotiator.ParseStrategy(raw)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	vin := req.VehicleVIN
	if vin == "" {
		vin = defaultVehicleVIN
	}

	resp, err := h.negotiator.Negotiate(c.Request.Context(), negotiator.Request{
		Origin:    types.Point{Lat: req.UserLat, Lng: req.UserLng},
		TargetSoC: targetPercent / 100.0,
		Deadline:  req.DepartureTime,
		Strategy:  strategy,
		VIN:       types.ID(vin),
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, resp)
}
