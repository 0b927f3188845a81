package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	// Soft per-leg caps stated in the prompt. The model tends to invent
	// motorway-scale numbers for neighbouring quarters without them.
	softMaxDurationMin = 60
	softMaxDistanceKm  = 20
)

// GeminiProvider implements ItineraryPlanner using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Use Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Low temperature: we want a stable ordering, not creativity.
	model.SetTemperature(0.2)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// PlanItinerary sends the stop list to Gemini and parses the ordered legs
// out of its reply. One request per call; no retry, no streaming.
func (p *GeminiProvider) PlanItinerary(ctx context.Context, stops []Stop, origin *Origin) ([]Leg, error) {
	prompt, err := buildItineraryPrompt(stops, origin)
	if err != nil {
		return nil, err
	}

	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return nil, &TransportError{Code: apiErr.Code, Message: apiErr.Message, Err: err}
		}
		return nil, &TransportError{Err: err}
	}

	return ExtractLegs(resp)
}

// buildItineraryPrompt constructs the instruction block plus the serialized
// stop list. The wording is kept in French to match the language the rest
// of the product shows to users.
func buildItineraryPrompt(stops []Stop, origin *Origin) (string, error) {
	data, err := json.MarshalIndent(stops, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize stops: %w", err)
	}

	originLine := ""
	if origin != nil {
		originLine = fmt.Sprintf("Position actuelle Latitude et Longitude : %s,%s, %s.\n",
			origin.Lat, origin.Lon, origin.Name)
	}

	return fmt.Sprintf(`Suggère-moi l'itinéraire que je dois suivre pour bien organiser ma tournée et donne-moi la distance et la durée estimées pour chaque adresse.
Le résultat doit être uniquement un tableau JSON de cette forme, et pas d'autres textes :
[
  {
    "id": "1",
    "to": "Ankeranana",
    "from": "Ankadifotsy",
    "duration": "10",
    "distance": "4"
  }
]
Règles :
- duration : un chiffre en minutes, au maximum %d min par étape.
- distance : un chiffre en kilomètres, au maximum %d km par étape.
- Chaque adresse de rue ne doit pas se répéter.

%sVoici les données :
%s
`, softMaxDurationMin, softMaxDistanceKm, originLine, data), nil
}

var (
	codeFencePattern   = regexp.MustCompile("```json|```")
	lineCommentPattern = regexp.MustCompile(`(?m)//.*$`)
)

// cleanReply strips Markdown code fences and line-trailing // comments the
// model sometimes wraps around its JSON. The comment strip is a heuristic,
// not a JSON parser: a value legitimately containing "//" gets truncated.
func cleanReply(input string) string {
	input = codeFencePattern.ReplaceAllString(input, "")
	input = lineCommentPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(input)
}

// ExtractLegs recovers the structured leg array from a generation response.
// Validation is shallow: the reply must clean up into a JSON array of leg
// objects, but field presence is not enforced here — the consuming model
// substitutes "N/A" for missing estimates.
func ExtractLegs(resp *genai.GenerateContentResponse) ([]Leg, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrNoCandidates
	}

	txt, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok || strings.TrimSpace(string(txt)) == "" {
		return nil, ErrNoCandidates
	}

	return ParseLegs(string(txt))
}

// ParseLegs parses a raw model reply into legs.
func ParseLegs(reply string) ([]Leg, error) {
	cleaned := cleanReply(reply)

	var legs []Leg
	if err := json.Unmarshal([]byte(cleaned), &legs); err != nil {
		return nil, &MalformedOutputError{Raw: cleaned, Err: err}
	}
	return legs, nil
}
