// README: Itinerary handler (AI generation trigger, PDF export).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zotra/internal/ai"
	"zotra/internal/export"
	"zotra/internal/modules/trip"
	"zotra/internal/types"
)

const pdfTitle = "Itinéraire"

type ItineraryHandler struct {
	trips *trip.Service
}

func NewItineraryHandler(trips *trip.Service) *ItineraryHandler {
	return &ItineraryHandler{trips: trips}
}

type generateReq struct {
	Origin *struct {
		Lat  string `json:"lat"`
		Lon  string `json:"lon"`
		Name string `json:"name"`
	} `json:"origin"`
}

// Generate handles POST /api/trips/:id/itinerary. The body is optional and
// may carry the traveller's current position.
func (h *ItineraryHandler) Generate(c *gin.Context) {
	var req generateReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "invalid json")
			return
		}
	}

	var origin *ai.Origin
	if req.Origin != nil {
		origin = &ai.Origin{Lat: req.Origin.Lat, Lon: req.Origin.Lon, Name: req.Origin.Name}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id := types.ID(c.Param("id"))
	legs, err := h.trips.GenerateItinerary(ctx, id, origin)
	if err != nil {
		writePlanError(c, err)
		return
	}

	t, err := h.trips.GetTrip(id)
	if err != nil {
		writeTripError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, map[string]any{
		"legs":               legs,
		"destination_count":  t.DestinationCount(),
		"total_distance_km":  t.TotalDistanceKm(),
		"total_duration_min": t.TotalDurationMinutes(),
	})
}

// ExportPDF handles GET /api/trips/:id/itinerary/pdf.
func (h *ItineraryHandler) ExportPDF(c *gin.Context) {
	t, err := h.trips.GetTrip(types.ID(c.Param("id")))
	if err != nil {
		writeTripError(c, err)
		return
	}

	legs := t.Legs()
	if len(legs) == 0 {
		writeError(c, http.StatusBadRequest, "no itinerary to export")
		return
	}

	data, err := export.BuildPDF(pdfTitle, legs, export.Totals{
		DestinationCount: t.DestinationCount(),
		DistanceKm:       t.TotalDistanceKm(),
		DurationMinutes:  t.TotalDurationMinutes(),
	})
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="itineraire.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
