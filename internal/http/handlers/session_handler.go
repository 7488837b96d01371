// README: Charging session endpoints plus trust anchor lookups.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gridpass/internal/modules/session"
	"gridpass/internal/types"
)

type SessionHandler struct {
	sessions *session.Service
}

func NewSessionHandler(svc *session.Service) *SessionHandler {
	return &SessionHandler{sessions: svc}
}

type startSessionReq struct {
	StationID string `json:"station_id"`
	VIN       string `json:"vin"`
}

func (h *SessionHandler) Start(c *gin.Context) {
	var req startSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.StationID == "" {
		writeError(c, http.StatusBadRequest, "station_id is required")
		return
	}
	vin := req.VIN
	if vin == "" {
		vin = defaultVehicleVIN
	}

	sess, err := h.sessions.Start(c.Request.Context(), types.ID(req.StationID), types.ID(vin))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, sess)
}

func (h *SessionHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeError(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = v
	}
	writeJSON(c, http.StatusOK, h.sessions.List(limit))
}

func (h *SessionHandler) Get(c *gin.Context) {
	sess, err := h.sessions.Get(types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sess)
}

func (h *SessionHandler) Active(c *gin.Context) {
	sess, err := h.sessions.Active()
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sess)
}

func (h *SessionHandler) Stop(c *gin.Context) {
	sess, err := h.sessions.Stop(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sess)
}

func (h *SessionHandler) Anchor(c *gin.Context) {
	rec, err := h.sessions.Anchor(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, rec)
}

func (h *SessionHandler) ListAnchors(c *gin.Context) {
	records, err := h.sessions.Anchors(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, records)
}
