// README: Trip handler (session creation, place list management).
package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"zotra/internal/geocode"
	"zotra/internal/modules/trip"
	"zotra/internal/types"
)

type TripHandler struct {
	trips *trip.Service
}

func NewTripHandler(trips *trip.Service) *TripHandler {
	return &TripHandler{trips: trips}
}

// Create handles POST /api/trips.
func (h *TripHandler) Create(c *gin.Context) {
	t := h.trips.CreateTrip()
	writeJSON(c, http.StatusCreated, map[string]any{"id": t.ID})
}

// Get handles GET /api/trips/:id.
func (h *TripHandler) Get(c *gin.Context) {
	t, err := h.trips.GetTrip(types.ID(c.Param("id")))
	if err != nil {
		writeTripError(c, err)
		return
	}

	points := t.Points()
	direct := 0.0
	for i := 0; i+1 < len(points); i++ {
		direct += geocode.DirectKm(points[i], points[i+1])
	}

	writeJSON(c, http.StatusOK, map[string]any{
		"id":                 t.ID,
		"places":             t.Places(),
		"legs":               t.Legs(),
		"destination_count":  t.DestinationCount(),
		"total_distance_km":  t.TotalDistanceKm(),
		"total_duration_min": t.TotalDurationMinutes(),
		"approx_direct_km":   math.Round(direct*10) / 10,
		"viewbox":            geocode.BoundsOf(points),
	})
}

type addPlaceReq struct {
	Label     string `json:"label"`
	FullLabel string `json:"full_label"`
	Lat       string `json:"lat"`
	Lon       string `json:"lon"`
}

// AddPlace handles POST /api/trips/:id/places.
func (h *TripHandler) AddPlace(c *gin.Context) {
	var req addPlaceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	p, err := h.trips.AddPlace(types.ID(c.Param("id")), req.Label, req.FullLabel, req.Lat, req.Lon)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, p)
}

// RemovePlace handles DELETE /api/trips/:id/places/:placeID.
func (h *TripHandler) RemovePlace(c *gin.Context) {
	if err := h.trips.RemovePlace(types.ID(c.Param("id")), types.ID(c.Param("placeID"))); err != nil {
		writeTripError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
