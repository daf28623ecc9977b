package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/timeclock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

// ZoneResolver maps a location name to an IANA zone identifier.
type ZoneResolver func(locationName string) string

type reportRepositoryImpl struct {
	db       *database.DB
	zoneFor  ZoneResolver
	punches  *punchRepositoryImpl
	employee *employeeRepositoryImpl
}

func NewReportRepository(db *database.DB, zoneFor ZoneResolver) report.Source {
	return &reportRepositoryImpl{
		db:       db,
		zoneFor:  zoneFor,
		punches:  &punchRepositoryImpl{db: db},
		employee: &employeeRepositoryImpl{db: db},
	}
}

// FetchPunches implements report.Source.
func (r *reportRepositoryImpl) FetchPunches(ctx context.Context, locationID string, start, end time.Time) ([]timeclock.PunchEvent, error) {
	return r.punches.EventsForLocation(ctx, locationID, start, end)
}

// LocationTimezone implements report.Source.
func (r *reportRepositoryImpl) LocationTimezone(ctx context.Context, locationID string) (string, error) {
	if !validator.IsValidUUID(locationID) {
		return "", location.ErrLocationNotFound
	}

	q := GetQuerier(ctx, r.db)

	var name string
	if err := q.QueryRow(ctx, `SELECT name FROM locations WHERE id = $1`, locationID).Scan(&name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", location.ErrLocationNotFound
		}
		return "", fmt.Errorf("failed to get location %s: %w", locationID, err)
	}
	return r.zoneFor(name), nil
}

// EmployeeRoster implements report.Source.
func (r *reportRepositoryImpl) EmployeeRoster(ctx context.Context, locationID string, activeOnly bool) ([]employee.RosterEntry, error) {
	return r.employee.Roster(ctx, locationID, activeOnly)
}
