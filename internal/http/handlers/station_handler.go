// README: Station registry endpoints (list, snapshot, occupy, release).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gridpass/internal/modules/registry"
	"gridpass/internal/types"
)

type StationHandler struct {
	registry *registry.Store
}

func NewStationHandler(store *registry.Store) *StationHandler {
	return &StationHandler{registry: store}
}

func (h *StationHandler) List(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.registry.Snapshots())
}

func (h *StationHandler) Get(c *gin.Context) {
	snapshot, err := h.registry.Snapshot(types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, snapshot)
}

func (h *StationHandler) Occupy(c *gin.Context) {
	connector, err := h.registry.OccupyAny(types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, connector)
}

func (h *StationHandler) Release(c *gin.Context) {
	err := h.registry.Release(types.ID(c.Param("id")), types.ID(c.Param("connectorId")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "released"})
}
