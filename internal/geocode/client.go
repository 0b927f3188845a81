// README: Nominatim search client scoped to one country.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Geocoder turns free text into ranked place candidates.
type Geocoder interface {
	Search(ctx context.Context, text string) ([]Candidate, error)
}

// TransportError reports a failed HTTP exchange with the provider.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geocode: transport error: %v", e.Err)
	}
	return fmt.Sprintf("geocode: unexpected status %d", e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError reports a provider response that was not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("geocode: parse response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Config scopes searches to a country and optional locality context.
type Config struct {
	BaseURL        string
	UserAgent      string
	AcceptLanguage string
	// CountryCode is the ISO-3166 alpha-2 filter sent to the provider.
	CountryCode string
	// CountryName is appended to every query string; free-text search works
	// noticeably better with the country name spelled out.
	CountryName string
	// Locality, when set, is inserted between the query and the country
	// name to bias results toward one town or village.
	Locality       string
	Limit          int
	AddressDetails bool
	// Viewbox restricts results to a bounding box ("left,top,right,bottom")
	// when non-empty.
	Viewbox string
}

// Client is a Geocoder backed by a Nominatim instance.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 15
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// ComposeQuery builds the provider query string for the given text:
// "<text>[, <locality>], <country>".
func (c *Client) ComposeQuery(text string) string {
	if c.cfg.Locality != "" {
		return fmt.Sprintf("%s, %s, %s", text, c.cfg.Locality, c.cfg.CountryName)
	}
	return fmt.Sprintf("%s, %s", text, c.cfg.CountryName)
}

func (c *Client) searchURL(text string) string {
	params := url.Values{}
	params.Set("q", c.ComposeQuery(text))
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(c.cfg.Limit))
	params.Set("countrycodes", c.cfg.CountryCode)
	if c.cfg.AddressDetails {
		params.Set("addressdetails", "1")
	}
	params.Set("extratags", "1")
	params.Set("namedetails", "1")
	if c.cfg.Viewbox != "" {
		params.Set("viewbox", c.cfg.Viewbox)
		params.Set("bounded", "1")
	}
	return c.cfg.BaseURL + "/search?" + params.Encode()
}

// Search issues one request for the given text and returns ranked
// candidates. Blank input returns no results without a network call.
func (c *Client) Search(ctx context.Context, text string) ([]Candidate, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(text), nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept-Language", c.cfg.AcceptLanguage)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Status: resp.StatusCode}
	}

	var candidates []Candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return nil, &ParseError{Err: err}
	}

	SortCandidates(candidates)
	return candidates, nil
}
