package punch

import (
	"context"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/timeclock"
)

// PunchRepository defines data access methods for punches.
type PunchRepository interface {
	Create(ctx context.Context, p Punch) (Punch, error)

	GetByID(ctx context.Context, id string) (Punch, error)

	Update(ctx context.Context, p Punch) (Punch, error)

	Delete(ctx context.Context, id string) error

	// List retrieves punches with filters and pagination, newest first
	List(ctx context.Context, filter PunchFilter) ([]Punch, int64, error)

	// LatestForEmployee returns nil when the employee never punched
	LatestForEmployee(ctx context.Context, employeeID string) (*Punch, error)

	// EventsForLocation returns punches of a location's employees in
	// [start, end), ascending by timestamp
	EventsForLocation(ctx context.Context, locationID string, start, end time.Time) ([]timeclock.PunchEvent, error)

	// DeleteBefore removes punches older than cutoff and returns the count
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// AuditRepository stores the correction log. Rows are never updated.
type AuditRepository interface {
	Create(ctx context.Context, a Audit) (Audit, error)
	ListByPunch(ctx context.Context, punchID string) ([]Audit, error)
}
