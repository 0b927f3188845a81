// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zotra/internal/geocode"
	"zotra/internal/http/handlers"
	"zotra/internal/http/middleware"
	"zotra/internal/modules/trip"
)

func NewRouter(tripService *trip.Service, geocoder geocode.Geocoder) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	tripHandler := handlers.NewTripHandler(tripService)
	r.POST("/api/trips", tripHandler.Create)
	r.GET("/api/trips/:id", tripHandler.Get)
	r.POST("/api/trips/:id/places", tripHandler.AddPlace)
	r.DELETE("/api/trips/:id/places/:placeID", tripHandler.RemovePlace)

	searchHandler := handlers.NewSearchHandler(geocoder, tripService)
	r.GET("/api/trips/:id/search", searchHandler.Search)

	itineraryHandler := handlers.NewItineraryHandler(tripService)
	r.POST("/api/trips/:id/itinerary", itineraryHandler.Generate)
	r.GET("/api/trips/:id/itinerary/pdf", itineraryHandler.ExportPDF)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
