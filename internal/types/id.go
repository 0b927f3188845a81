// README: Common identifier and coordinate types used across modules.
package types

import "github.com/google/uuid"

type ID string

// NewID returns a fresh random identifier.
func NewID() ID {
	return ID(uuid.NewString())
}

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64
	Lon float64
}
