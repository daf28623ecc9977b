package location

import "context"

type LocationRepository interface {
	List(ctx context.Context) ([]Location, error)
	GetByID(ctx context.Context, id string) (Location, error)
	// Upsert inserts the location or refreshes its coordinates by name.
	Upsert(ctx context.Context, loc Location) (Location, error)
}
