package location

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/location"
)

type LocationServiceImpl struct {
	location.LocationRepository
	zoneFor func(locationName string) string
}

func NewLocationService(locationRepository location.LocationRepository, zoneFor func(locationName string) string) location.LocationService {
	return &LocationServiceImpl{
		LocationRepository: locationRepository,
		zoneFor:            zoneFor,
	}
}

func (s *LocationServiceImpl) toResponse(l location.Location) location.LocationResponse {
	return location.LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Timezone:  s.zoneFor(l.Name),
	}
}

// ListLocations implements location.LocationService.
func (s *LocationServiceImpl) ListLocations(ctx context.Context) ([]location.LocationResponse, error) {
	locations, err := s.LocationRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]location.LocationResponse, 0, len(locations))
	for _, l := range locations {
		responses = append(responses, s.toResponse(l))
	}
	return responses, nil
}

// GetLocation implements location.LocationService.
func (s *LocationServiceImpl) GetLocation(ctx context.Context, id string) (location.LocationResponse, error) {
	l, err := s.LocationRepository.GetByID(ctx, id)
	if err != nil {
		return location.LocationResponse{}, err
	}
	return s.toResponse(l), nil
}

// Seed implements location.LocationService.
func (s *LocationServiceImpl) Seed(ctx context.Context, seeds []location.SeedLocation) error {
	for _, seed := range seeds {
		saved, err := s.LocationRepository.Upsert(ctx, location.Location{
			Name:      seed.Name,
			Latitude:  seed.Latitude,
			Longitude: seed.Longitude,
		})
		if err != nil {
			return fmt.Errorf("failed to seed location %s: %w", seed.Name, err)
		}
		slog.InfoContext(ctx, "location seeded", "location_id", saved.ID, "name", saved.Name, "timezone", s.zoneFor(saved.Name))
	}
	return nil
}
