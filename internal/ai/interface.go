package ai

import (
	"context"
)

// ItineraryPlanner defines the contract for externally-computed itinerary
// ordering. This interface allows for swapping different AI providers
// (Gemini, OpenAI, etc.) in the future.
type ItineraryPlanner interface {
	// PlanItinerary asks the model to order the given stops and estimate
	// per-leg distance and duration. origin may be nil when the current
	// position is unknown.
	PlanItinerary(ctx context.Context, stops []Stop, origin *Origin) ([]Leg, error)
}
