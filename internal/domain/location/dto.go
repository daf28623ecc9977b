package location

// LocationResponse represents the response structure for a location.
type LocationResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// SeedLocation is one configured shop.
type SeedLocation struct {
	Name      string
	Latitude  float64
	Longitude float64
}
