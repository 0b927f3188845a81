package ai

import (
	"errors"
	"fmt"
)

// Stop is one destination handed to the model, serialized as data inside
// the prompt. Field names match what the prompt's example shows.
type Stop struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"fullName,omitempty"`
	Lat      string `json:"lat,omitempty"`
	Lon      string `json:"lon,omitempty"`
}

// Origin is the traveller's current position, included in the prompt when
// known so the model can anchor the first leg.
type Origin struct {
	Lat  string
	Lon  string
	Name string
}

// Leg is one from/to hop of the generated itinerary. Duration and Distance
// are free-text tokens straight from the model; they are not guaranteed to
// be numeric.
type Leg struct {
	ID       string `json:"id"`
	To       string `json:"to"`
	From     string `json:"from"`
	Duration string `json:"duration"`
	Distance string `json:"distance"`
}

// ErrNoCandidates is returned when the generation response carries no
// usable candidate content.
var ErrNoCandidates = errors.New("ai: no candidates in generation response")

// MalformedOutputError is returned when the model's reply does not contain
// a parseable JSON leg array. Raw carries the cleaned reply for diagnostics.
type MalformedOutputError struct {
	Raw string
	Err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("ai: malformed generation output: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// TransportError is returned when the generation request itself failed.
// Code and Message carry the provider's error detail when available.
type TransportError struct {
	Code    int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ai: generation request failed (%d): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("ai: generation request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
