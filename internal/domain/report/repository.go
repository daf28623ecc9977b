package report

import (
	"context"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/timeclock"
)

// Source is everything the report engine reads from storage.
type Source interface {
	// FetchPunches returns punches of the location's employees in
	// [start, end), ascending by timestamp
	FetchPunches(ctx context.Context, locationID string, start, end time.Time) ([]timeclock.PunchEvent, error)

	// LocationTimezone returns the zone identifier configured for the location
	LocationTimezone(ctx context.Context, locationID string) (string, error)

	// EmployeeRoster returns the location's employees ordered by name
	EmployeeRoster(ctx context.Context, locationID string, activeOnly bool) ([]employee.RosterEntry, error)
}
