// README: Geocoding candidate model and ranking rules.
package geocode

import (
	"sort"
	"strings"
)

// Candidate is one Nominatim search result. The shape mirrors the provider's
// JSON record; Address is only populated when addressdetails was requested.
type Candidate struct {
	PlaceID     int64             `json:"place_id"`
	Licence     string            `json:"licence"`
	OSMType     string            `json:"osm_type"`
	OSMID       int64             `json:"osm_id"`
	BoundingBox []string          `json:"boundingbox"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	DisplayName string            `json:"display_name"`
	Class       string            `json:"class"`
	Type        string            `json:"type"`
	Importance  float64           `json:"importance"`
	Icon        string            `json:"icon,omitempty"`
	Address     map[string]string `json:"address,omitempty"`
}

// isNeighbourhoodTier reports whether a candidate should rank in the top
// tier: anything the provider marks as a quarter, suburb or similar small
// named area. OSM coverage for Malagasy quartiers is inconsistent, so both
// the address detail and the place type are consulted.
func isNeighbourhoodTier(c Candidate) bool {
	if c.Address["suburb"] != "" || c.Address["neighbourhood"] != "" {
		return true
	}
	if c.Type == "suburb" || c.Type == "neighbourhood" {
		return true
	}
	if c.Class == "place" && (c.Type == "quarter" || c.Type == "locality") {
		return true
	}
	return false
}

// SortCandidates orders results for display: neighbourhood-tier candidates
// first, then descending provider importance within each tier.
func SortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		aTier, bTier := isNeighbourhoodTier(a), isNeighbourhoodTier(b)
		if aTier != bTier {
			return aTier
		}
		return a.Importance > b.Importance
	})
}

// MainName extracts the short display name for a candidate. Address
// components are preferred; otherwise the first comma segment of the full
// display name is used.
func MainName(c Candidate) string {
	for _, key := range []string{"suburb", "neighbourhood", "locality"} {
		if v := c.Address[key]; v != "" {
			return v
		}
	}
	if i := strings.Index(c.DisplayName, ","); i >= 0 {
		return strings.TrimSpace(c.DisplayName[:i])
	}
	return strings.TrimSpace(c.DisplayName)
}
