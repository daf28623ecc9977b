package location

import "time"

// Location is a shop where employees punch. Its zone is not stored; it comes
// from the configured name to zone table.
type Location struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
