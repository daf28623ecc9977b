package punch

import (
	"context"
	"time"
)

// PunchService defines business logic for punch operations
type PunchService interface {
	// Submit records a kiosk punch after the geofence check
	Submit(ctx context.Context, req SubmitPunchRequest) (PunchResponse, error)

	// NextType returns the type the employee's next punch should have
	NextType(ctx context.Context, employeeID string) (string, error)

	// ListPunches retrieves punches for review (supervisor+)
	ListPunches(ctx context.Context, filter PunchFilter) (ListPunchResponse, error)

	// CreateManual adds a missed punch on an employee's behalf (supervisor+)
	CreateManual(ctx context.Context, req ManualPunchRequest) (PunchResponse, error)

	// UpdatePunch corrects type and/or timestamp (supervisor+)
	UpdatePunch(ctx context.Context, req UpdatePunchRequest) (PunchResponse, error)

	// DeletePunch removes a punch, keeping an audit record (supervisor+)
	DeletePunch(ctx context.Context, req DeletePunchRequest) error

	// ListAudits returns the correction history of a punch (supervisor+)
	ListAudits(ctx context.Context, punchID string) ([]AuditResponse, error)

	// PurgeBefore deletes punches older than cutoff
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
