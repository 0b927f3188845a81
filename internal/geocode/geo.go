// Package geocode — geo contains pure geographic computation helpers.
package geocode

import (
	"fmt"
	"math"

	"zotra/internal/types"
)

const earthRadiusKm = 6371.0

// boundsPadDeg is the margin added around a computed viewbox so places on
// the edge of the visited area still match.
const boundsPadDeg = 0.02

// DirectKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func DirectKm(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLon := degreesToRadians(b.Lon - a.Lon)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// BoundsOf returns a Nominatim viewbox string ("left,top,right,bottom")
// spanning all given points, padded slightly. Empty input yields "".
func BoundsOf(points []types.Point) string {
	if len(points) == 0 {
		return ""
	}
	minLat, maxLat := points[0].Lat, points[0].Lat
	minLon, maxLon := points[0].Lon, points[0].Lon
	for _, p := range points[1:] {
		minLat = math.Min(minLat, p.Lat)
		maxLat = math.Max(maxLat, p.Lat)
		minLon = math.Min(minLon, p.Lon)
		maxLon = math.Max(maxLon, p.Lon)
	}
	return fmt.Sprintf("%f,%f,%f,%f",
		minLon-boundsPadDeg, maxLat+boundsPadDeg,
		maxLon+boundsPadDeg, minLat-boundsPadDeg)
}
