// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gridpass/internal/modules/anchor"
	"gridpass/internal/modules/negotiator"
	"gridpass/internal/modules/registry"
	"gridpass/internal/modules/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, negotiator.ErrDeadlineTooSoon),
		errors.Is(err, negotiator.ErrDeadlineTooFar),
		errors.Is(err, negotiator.ErrUnknownStrategy):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, registry.ErrStationNotFound),
		errors.Is(err, registry.ErrConnectorNotFound),
		errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, anchor.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, registry.ErrNoConnectorAvailable),
		errors.Is(err, session.ErrSessionEnded):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, negotiator.ErrOracleSelection):
		writeError(c, http.StatusBadGateway, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
