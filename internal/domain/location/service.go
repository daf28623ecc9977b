package location

import "context"

type LocationService interface {
	ListLocations(ctx context.Context) ([]LocationResponse, error)
	GetLocation(ctx context.Context, id string) (LocationResponse, error)
	// Seed upserts the configured shops.
	Seed(ctx context.Context, seeds []SeedLocation) error
}
