// README: Trip aggregate: working place list plus the generated itinerary.
package trip

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"zotra/internal/types"
)

var (
	ErrTripNotFound    = errors.New("trip not found")
	ErrEmptyLabel      = errors.New("place label is empty")
	ErrDuplicatePlace  = errors.New("place already in list")
	ErrNotEnoughPlaces = errors.New("at least two places are required")
)

// MissingEstimate is substituted when the generation service omitted a
// leg's duration or distance.
const MissingEstimate = "N/A"

// Place is one user-selected destination. Lat/Lon are decimal strings and
// may be empty for manual entries.
type Place struct {
	ID        types.ID `json:"id"`
	Label     string   `json:"label"`
	FullLabel string   `json:"full_label,omitempty"`
	Lat       string   `json:"lat,omitempty"`
	Lon       string   `json:"lon,omitempty"`
}

// Leg is one hop of the generated itinerary. Duration and Distance are
// free text; numeric extraction happens at aggregation time, not here.
type Leg struct {
	ID       types.ID `json:"id"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Duration string   `json:"duration"`
	Distance string   `json:"distance"`
}

// Trip owns one session's place list and itinerary. Place and leg slices
// are treated as immutable snapshots replaced wholesale on each mutation,
// so readers always see a consistent list.
type Trip struct {
	ID types.ID

	mu     sync.Mutex
	places []Place
	legs   []Leg
}

func NewTrip() *Trip {
	return &Trip{ID: types.NewID()}
}

// AddPlace appends a new destination. Labels are deduplicated
// case-insensitively after trimming; a duplicate is rejected without
// modifying the list.
func (t *Trip) AddPlace(label, fullLabel, lat, lon string) (Place, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Place{}, ErrEmptyLabel
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, p := range t.places {
		if strings.EqualFold(p.Label, label) {
			return Place{}, ErrDuplicatePlace
		}
	}

	p := Place{
		ID:        types.NewID(),
		Label:     label,
		FullLabel: fullLabel,
		Lat:       lat,
		Lon:       lon,
	}
	t.places = append(append([]Place{}, t.places...), p)
	return p, nil
}

// RemovePlace removes by id. Removing an unknown id is a no-op.
func (t *Trip) RemovePlace(id types.ID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := make([]Place, 0, len(t.places))
	for _, p := range t.places {
		if p.ID != id {
			next = append(next, p)
		}
	}
	t.places = next
}

// SetLegs replaces the itinerary wholesale. Legs without an id get a fresh
// one; missing duration/distance estimates default to MissingEstimate.
func (t *Trip) SetLegs(legs []Leg) {
	next := make([]Leg, len(legs))
	for i, l := range legs {
		if l.ID == "" {
			l.ID = types.NewID()
		}
		if strings.TrimSpace(l.Duration) == "" {
			l.Duration = MissingEstimate
		}
		if strings.TrimSpace(l.Distance) == "" {
			l.Distance = MissingEstimate
		}
		next[i] = l
	}

	t.mu.Lock()
	t.legs = next
	t.mu.Unlock()
}

// Places returns a snapshot of the place list.
func (t *Trip) Places() []Place {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Place{}, t.places...)
}

// Legs returns a snapshot of the itinerary.
func (t *Trip) Legs() []Leg {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Leg{}, t.legs...)
}

// Points returns the coordinates of every place that has them.
func (t *Trip) Points() []types.Point {
	t.mu.Lock()
	defer t.mu.Unlock()

	var points []types.Point
	for _, p := range t.places {
		lat, latErr := strconv.ParseFloat(p.Lat, 64)
		lon, lonErr := strconv.ParseFloat(p.Lon, 64)
		if latErr == nil && lonErr == nil {
			points = append(points, types.Point{Lat: lat, Lon: lon})
		}
	}
	return points
}

var digitRunPattern = regexp.MustCompile("[0-9]+")

// firstNumber extracts the first run of digits in s, or 0 when there is
// none ("N/A", free text, empty).
func firstNumber(s string) int {
	match := digitRunPattern.FindString(s)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return n
}

// TotalDistanceKm sums the leading numeric token of every leg's distance
// text. Legs without a usable number contribute 0.
func (t *Trip) TotalDistanceKm() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := 0
	for _, l := range t.legs {
		total += firstNumber(l.Distance)
	}
	return total
}

// TotalDurationMinutes sums the leading numeric token of every leg's
// duration text, with the same zero-default policy.
func (t *Trip) TotalDurationMinutes() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := 0
	for _, l := range t.legs {
		total += firstNumber(l.Duration)
	}
	return total
}

// DestinationCount is the number of nodes the itinerary visits: legs+1 for
// a non-empty itinerary, 0 otherwise.
func (t *Trip) DestinationCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.legs) == 0 {
		return 0
	}
	return len(t.legs) + 1
}

// Chained reports whether consecutive legs join into a single path (each
// leg's To equals the next leg's From). The generation service is not
// required to satisfy this, so it is a predicate, not an invariant.
func (t *Trip) Chained() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := 0; i+1 < len(t.legs); i++ {
		if !strings.EqualFold(strings.TrimSpace(t.legs[i].To), strings.TrimSpace(t.legs[i+1].From)) {
			return false
		}
	}
	return true
}
