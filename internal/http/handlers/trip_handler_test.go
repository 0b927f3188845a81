// README: Handler tests for the trip-planning API surface.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"zotra/internal/ai"
	"zotra/internal/geocode"
	"zotra/internal/http/handlers"
	"zotra/internal/modules/trip"
)

// stubPlanner is a test double for ai.ItineraryPlanner.
type stubPlanner struct {
	legs []ai.Leg
	err  error
}

func (s *stubPlanner) PlanItinerary(_ context.Context, _ []ai.Stop, _ *ai.Origin) ([]ai.Leg, error) {
	return s.legs, s.err
}

// stubGeocoder is a test double for geocode.Geocoder.
type stubGeocoder struct {
	candidates []geocode.Candidate
	err        error
}

func (s *stubGeocoder) Search(_ context.Context, _ string) ([]geocode.Candidate, error) {
	return s.candidates, s.err
}

func buildTestRouter(store *trip.Store, planner ai.ItineraryPlanner, geocoder geocode.Geocoder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := trip.NewService(store, planner)

	r := gin.New()
	th := handlers.NewTripHandler(svc)
	r.POST("/api/trips", th.Create)
	r.GET("/api/trips/:id", th.Get)
	r.POST("/api/trips/:id/places", th.AddPlace)
	r.DELETE("/api/trips/:id/places/:placeID", th.RemovePlace)

	sh := handlers.NewSearchHandler(geocoder, svc)
	r.GET("/api/trips/:id/search", sh.Search)

	ih := handlers.NewItineraryHandler(svc)
	r.POST("/api/trips/:id/itinerary", ih.Generate)
	r.GET("/api/trips/:id/itinerary/pdf", ih.ExportPDF)
	return r
}

func doRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateTrip(t *testing.T) {
	r := buildTestRouter(trip.NewStore(), &stubPlanner{}, &stubGeocoder{})
	w := doRequest(r, http.MethodPost, "/api/trips", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["id"] == "" {
		t.Error("response missing trip id")
	}
}

func TestAddPlace_DuplicateConflict(t *testing.T) {
	store := trip.NewStore()
	tr := store.Create()
	r := buildTestRouter(store, &stubPlanner{}, &stubGeocoder{})

	path := "/api/trips/" + string(tr.ID) + "/places"
	w := doRequest(r, http.MethodPost, path, map[string]string{"label": "Analakely"})
	if w.Code != http.StatusCreated {
		t.Fatalf("first add: expected 201, got %d", w.Code)
	}

	w = doRequest(r, http.MethodPost, path, map[string]string{"label": "analakely "})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate add: expected 409, got %d", w.Code)
	}
}

func TestAddPlace_EmptyLabel(t *testing.T) {
	store := trip.NewStore()
	tr := store.Create()
	r := buildTestRouter(store, &stubPlanner{}, &stubGeocoder{})

	w := doRequest(r, http.MethodPost, "/api/trips/"+string(tr.ID)+"/places", map[string]string{"label": "  "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAddPlace_UnknownTrip(t *testing.T) {
	r := buildTestRouter(trip.NewStore(), &stubPlanner{}, &stubGeocoder{})
	w := doRequest(r, http.MethodPost, "/api/trips/nope/places", map[string]string{"label": "Analakely"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestRemovePlace(t *testing.T) {
	store := trip.NewStore()
	tr := store.Create()
	p, _ := tr.AddPlace("Analakely", "", "", "")
	r := buildTestRouter(store, &stubPlanner{}, &stubGeocoder{})

	w := doRequest(r, http.MethodDelete, "/api/trips/"+string(tr.ID)+"/places/"+string(p.ID), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if len(tr.Places()) != 0 {
		t.Errorf("place not removed: %+v", tr.Places())
	}
}

func TestGetTrip_Payload(t *testing.T) {
	store := trip.NewStore()
	tr := store.Create()
	_, _ = tr.AddPlace("Analakely", "", "-18.9092", "47.5235")
	_, _ = tr.AddPlace("Ambohipo", "", "-18.9198", "47.5389")
	tr.SetLegs([]trip.Leg{{From: "Analakely", To: "Ambohipo", Duration: "10", Distance: "4"}})
	r := buildTestRouter(store, &stubPlanner{}, &stubGeocoder{})

	w := doRequest(r, http.MethodGet, "/api/trips/"+string(tr.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Places           []trip.Place `json:"places"`
		Legs             []trip.Leg   `json:"legs"`
		DestinationCount int          `json:"destination_count"`
		TotalDistanceKm  int          `json:"total_distance_km"`
		TotalDurationMin int          `json:"total_duration_min"`
		Viewbox          string       `json:"viewbox"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Places) != 2 || len(resp.Legs) != 1 {
		t.Errorf("unexpected payload: %+v", resp)
	}
	if resp.DestinationCount != 2 || resp.TotalDistanceKm != 4 || resp.TotalDurationMin != 10 {
		t.Errorf("unexpected aggregates: %+v", resp)
	}
	if resp.Viewbox == "" {
		t.Error("viewbox should be derived from place coordinates")
	}
}

func TestGenerate_NotEnoughPlaces(t *testing.T) {
	store := trip.NewStore()
	tr := store.Create()
	_, _ = tr.AddPlace("Analakely", "", "", "")
	r := buildTestRouter(store, &stubPlanner{}, &stubGeocoder{})

	w := doRequest(r, http.MethodPost, "/api/trips/"+string(tr.ID)+"/itinerary", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGenerate_Success(t *testing.T) {
	store := trip.NewStore()
	tr := store.Create()
	_, _ = tr.AddPlace("Analakely", "", "", "")
	_, _ = tr.AddPlace("Ambohipo", "", "", "")

	planner := &stubPlanner{legs: []ai.Leg{
		{ID: "1", From: "Analakely", To: "Ambohipo", Duration: "10", Distance: "4"},
	}}
	r := buildTestRouter(store, planner, &stubGeocoder{})

	w := doRequest(r, http.MethodPost, "/api/trips/"+string(tr.ID)+"/itinerary",
		map[string]any{"origin": map[string]string{"lat": "-18.89", "lon": "47.55", "name": "Ankeranana"}})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Legs             []trip.Leg `json:"legs"`
		TotalDistanceKm  int        `json:"total_distance_km"`
		TotalDurationMin int        `json:"total_duration_min"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Legs) != 1 || resp.TotalDistanceKm != 4 || resp.TotalDurationMin != 10 {
		t.Errorf("unexpected payload: %+v", resp)
	}
}

func TestGenerate_ProviderFailure(t *testing.T) {
	store := trip.NewStore()
	tr := store.Create()
	_, _ = tr.AddPlace("A", "", "", "")
	_, _ = tr.AddPlace("B", "", "", "")

	tests := []struct {
		name string
		err  error
	}{
		{"no candidates", ai.ErrNoCandidates},
		{"malformed output", &ai.MalformedOutputError{Raw: "pas du json"}},
		{"transport failure", &ai.TransportError{Code: 429, Message: "quota exceeded"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := buildTestRouter(store, &stubPlanner{err: tt.err}, &stubGeocoder{})
			w := doRequest(r, http.MethodPost, "/api/trips/"+string(tr.ID)+"/itinerary", nil)
			if w.Code != http.StatusBadGateway {
				t.Errorf("expected 502, got %d", w.Code)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	store := trip.NewStore()
	tr := store.Create()
	geocoder := &stubGeocoder{candidates: []geocode.Candidate{
		{PlaceID: 7, DisplayName: "Analakely, Antananarivo, Madagascar", Class: "place", Type: "suburb",
			Lat: "-18.9092", Lon: "47.5235", Importance: 0.3},
	}}
	r := buildTestRouter(store, &stubPlanner{}, geocoder)

	w := doRequest(r, http.MethodGet, "/api/trips/"+string(tr.ID)+"/search?q=analakely", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Query   string `json:"query"`
		Results []struct {
			MainName    string `json:"main_name"`
			DisplayName string `json:"display_name"`
		} `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].MainName != "Analakely" {
		t.Errorf("unexpected results: %+v", resp.Results)
	}
}

func TestSearch_MissingQuery(t *testing.T) {
	store := trip.NewStore()
	tr := store.Create()
	r := buildTestRouter(store, &stubPlanner{}, &stubGeocoder{})

	w := doRequest(r, http.MethodGet, "/api/trips/"+string(tr.ID)+"/search?q=++", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSearch_TransportFailure(t *testing.T) {
	store := trip.NewStore()
	tr := store.Create()
	geocoder := &stubGeocoder{err: &geocode.TransportError{Status: http.StatusServiceUnavailable}}
	r := buildTestRouter(store, &stubPlanner{}, geocoder)

	w := doRequest(r, http.MethodGet, "/api/trips/"+string(tr.ID)+"/search?q=analakely", nil)
	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}
}

func TestExportPDF(t *testing.T) {
	store := trip.NewStore()
	tr := store.Create()
	r := buildTestRouter(store, &stubPlanner{}, &stubGeocoder{})

	// Nothing generated yet.
	w := doRequest(r, http.MethodGet, "/api/trips/"+string(tr.ID)+"/itinerary/pdf", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty itinerary: expected 400, got %d", w.Code)
	}

	tr.SetLegs([]trip.Leg{{From: "Analakely", To: "Ambohipo", Duration: "10", Distance: "4"}})
	w = doRequest(r, http.MethodGet, "/api/trips/"+string(tr.ID)+"/itinerary/pdf", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("body is not a PDF document")
	}
}
