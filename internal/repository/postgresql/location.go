package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type locationRepositoryImpl struct {
	db *database.DB
}

func NewLocationRepository(db *database.DB) location.LocationRepository {
	return &locationRepositoryImpl{db: db}
}

// List implements location.LocationRepository.
func (r *locationRepositoryImpl) List(ctx context.Context) ([]location.Location, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, latitude, longitude, created_at, updated_at
		FROM locations
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []location.Location
	for rows.Next() {
		var l location.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Latitude, &l.Longitude, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// GetByID implements location.LocationRepository.
func (r *locationRepositoryImpl) GetByID(ctx context.Context, id string) (location.Location, error) {
	if !validator.IsValidUUID(id) {
		return location.Location{}, location.ErrLocationNotFound
	}

	q := GetQuerier(ctx, r.db)

	var l location.Location
	err := q.QueryRow(ctx, `
		SELECT id, name, latitude, longitude, created_at, updated_at
		FROM locations
		WHERE id = $1
	`, id).Scan(&l.ID, &l.Name, &l.Latitude, &l.Longitude, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Location{}, location.ErrLocationNotFound
		}
		return location.Location{}, fmt.Errorf("failed to get location %s: %w", id, err)
	}
	return l, nil
}

// Upsert implements location.LocationRepository.
func (r *locationRepositoryImpl) Upsert(ctx context.Context, loc location.Location) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	var saved location.Location
	err := q.QueryRow(ctx, `
		INSERT INTO locations (id, name, latitude, longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE
		SET latitude = EXCLUDED.latitude, longitude = EXCLUDED.longitude, updated_at = NOW()
		RETURNING id, name, latitude, longitude, created_at, updated_at
	`, newID(), loc.Name, loc.Latitude, loc.Longitude).Scan(
		&saved.ID, &saved.Name, &saved.Latitude, &saved.Longitude, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return location.Location{}, fmt.Errorf("failed to upsert location %s: %w", loc.Name, err)
	}
	return saved, nil
}
