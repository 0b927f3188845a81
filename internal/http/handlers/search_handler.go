// README: Address search handler backed by the geocoding client.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"zotra/internal/geocode"
	"zotra/internal/modules/trip"
	"zotra/internal/types"
)

type SearchHandler struct {
	geocoder geocode.Geocoder
	trips    *trip.Service
}

func NewSearchHandler(geocoder geocode.Geocoder, trips *trip.Service) *SearchHandler {
	return &SearchHandler{geocoder: geocoder, trips: trips}
}

type searchResult struct {
	MainName string `json:"main_name"`
	geocode.Candidate
}

// Search handles GET /api/trips/:id/search?q=.
func (h *SearchHandler) Search(c *gin.Context) {
	if _, err := h.trips.GetTrip(types.ID(c.Param("id"))); err != nil {
		writeTripError(c, err)
		return
	}

	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		writeError(c, http.StatusBadRequest, "missing query")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	candidates, err := h.geocoder.Search(ctx, q)
	if err != nil {
		writeSearchError(c, err)
		return
	}

	results := make([]searchResult, len(candidates))
	for i, cand := range candidates {
		results[i] = searchResult{MainName: geocode.MainName(cand), Candidate: cand}
	}
	writeJSON(c, http.StatusOK, map[string]any{"query": q, "results": results})
}
