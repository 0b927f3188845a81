package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"zotra/internal/ai"
	"zotra/internal/config"
	"zotra/internal/geocode"
	"zotra/internal/modules/trip"
)

// Walks the whole flow once: search two quarters around Antananarivo, add
// them to a trip, ask Gemini for an ordering, print the legs.
func main() {
	if os.Getenv("GEMINI_API_KEY") == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	client := geocode.NewClient(geocode.Config{
		BaseURL:        cfg.Geocode.BaseURL,
		UserAgent:      cfg.Geocode.UserAgent,
		AcceptLanguage: cfg.Geocode.AcceptLanguage,
		CountryCode:    cfg.Geocode.CountryCode,
		CountryName:    cfg.Geocode.CountryName,
		Locality:       "Antananarivo",
		Limit:          5,
		AddressDetails: true,
	})

	done := make(chan struct{})
	t := trip.NewTrip()

	searcher := geocode.NewSearcher(client, cfg.Geocode.Debounce, func(candidates []geocode.Candidate, err error) {
		defer func() { done <- struct{}{} }()
		if err != nil {
			log.Printf("search failed: %v", err)
			return
		}
		if len(candidates) == 0 {
			return
		}
		best := candidates[0]
		p, err := t.AddPlace(geocode.MainName(best), best.DisplayName, best.Lat, best.Lon)
		if err != nil {
			log.Printf("add place: %v", err)
			return
		}
		fmt.Printf("Added: %s (%s, %s)\n", p.Label, p.Lat, p.Lon)
	})

	for _, q := range []string{"Analakely", "Ambohipo"} {
		// Simulated typing: only the full query survives the debounce.
		for i := 3; i <= len(q); i++ {
			searcher.SetQuery(q[:i])
		}
		<-done
	}

	places := t.Places()
	if len(places) < 2 {
		log.Fatal("not enough places resolved to plan an itinerary")
	}

	stops := make([]ai.Stop, len(places))
	for i, p := range places {
		stops[i] = ai.Stop{ID: string(p.ID), Name: p.Label, FullName: p.FullLabel, Lat: p.Lat, Lon: p.Lon}
	}

	origin := &ai.Origin{Lat: "-18.89123", Lon: "47.558731", Name: "Ankeranana, Antananarivo"}
	legs, err := provider.PlanItinerary(ctx, stops, origin)
	if err != nil {
		log.Fatalf("Error planning itinerary: %v", err)
	}

	converted := make([]trip.Leg, len(legs))
	for i, l := range legs {
		converted[i] = trip.Leg{From: l.From, To: l.To, Duration: l.Duration, Distance: l.Distance}
	}
	t.SetLegs(converted)

	for i, l := range t.Legs() {
		fmt.Printf("%d. %s -> %s (%s min, %s km)\n", i+1, l.From, l.To, l.Duration, l.Distance)
	}
	fmt.Printf("Total: %d km, %d min over %d destinations\n",
		t.TotalDistanceKm(), t.TotalDurationMinutes(), t.DestinationCount())
}
