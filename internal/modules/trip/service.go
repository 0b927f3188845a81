// README: Trip service orchestrates the place list and AI itinerary
// generation.
package trip

import (
	"context"

	"zotra/internal/ai"
	"zotra/internal/types"
)

type Service struct {
	store   *Store
	planner ai.ItineraryPlanner
}

func NewService(store *Store, planner ai.ItineraryPlanner) *Service {
	return &Service{store: store, planner: planner}
}

func (s *Service) CreateTrip() *Trip {
	return s.store.Create()
}

func (s *Service) GetTrip(id types.ID) (*Trip, error) {
	return s.store.Get(id)
}

func (s *Service) AddPlace(id types.ID, label, fullLabel, lat, lon string) (Place, error) {
	t, err := s.store.Get(id)
	if err != nil {
		return Place{}, err
	}
	return t.AddPlace(label, fullLabel, lat, lon)
}

func (s *Service) RemovePlace(id, placeID types.ID) error {
	t, err := s.store.Get(id)
	if err != nil {
		return err
	}
	t.RemovePlace(placeID)
	return nil
}

// GenerateItinerary asks the planner to order the trip's places and
// replaces the stored itinerary with the result. There is no partial
// success: either a full leg array is obtained, or the previous itinerary
// is left untouched. Concurrent calls for the same trip are not serialized
// here; the last one to complete wins.
func (s *Service) GenerateItinerary(ctx context.Context, id types.ID, origin *ai.Origin) ([]Leg, error) {
	t, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	places := t.Places()
	if len(places) < 2 {
		return nil, ErrNotEnoughPlaces
	}

	stops := make([]ai.Stop, len(places))
	for i, p := range places {
		stops[i] = ai.Stop{
			ID:       string(p.ID),
			Name:     p.Label,
			FullName: p.FullLabel,
			Lat:      p.Lat,
			Lon:      p.Lon,
		}
	}

	generated, err := s.planner.PlanItinerary(ctx, stops, origin)
	if err != nil {
		return nil, err
	}

	legs := make([]Leg, len(generated))
	for i, l := range generated {
		legs[i] = Leg{
			ID:       types.ID(l.ID),
			From:     l.From,
			To:       l.To,
			Duration: l.Duration,
			Distance: l.Distance,
		}
	}
	t.SetLegs(legs)
	return t.Legs(), nil
}
