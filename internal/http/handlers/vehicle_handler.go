// README: Vehicle telemetry endpoints.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gridpass/internal/modules/telemetry"
	"gridpass/internal/types"
)

type VehicleHandler struct {
	telemetry telemetry.Store
}

func NewVehicleHandler(store telemetry.Store) *VehicleHandler {
	return &VehicleHandler{telemetry: store}
}

func (h *VehicleHandler) SoCHistory(c *gin.Context) {
	vin := types.ID(c.Param("vin"))
	samples, err := h.telemetry.SoCHistory(c.Request.Context(), vin)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"vin":    vin,
		"values": samples,
	})
}
