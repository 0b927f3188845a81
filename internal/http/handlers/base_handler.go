// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"zotra/internal/ai"
	"zotra/internal/geocode"
	"zotra/internal/modules/trip"
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

func writeTripError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trip.ErrTripNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, trip.ErrDuplicatePlace):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, trip.ErrEmptyLabel), errors.Is(err, trip.ErrNotEnoughPlaces):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// writePlanError maps generation failures. All provider-side failures show
// up as 502: the upstream model misbehaved, not this service.
func writePlanError(c *gin.Context, err error) {
	var malformed *ai.MalformedOutputError
	var transport *ai.TransportError
	switch {
	case errors.Is(err, ai.ErrNoCandidates):
		writeError(c, http.StatusBadGateway, err.Error())
	case errors.As(err, &malformed):
		writeError(c, http.StatusBadGateway, err.Error())
	case errors.As(err, &transport):
		writeError(c, http.StatusBadGateway, err.Error())
	default:
		writeTripError(c, err)
	}
}

func writeSearchError(c *gin.Context, err error) {
	var transport *geocode.TransportError
	var parse *geocode.ParseError
	switch {
	case errors.As(err, &transport), errors.As(err, &parse):
		writeError(c, http.StatusBadGateway, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
