package punch

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/timeclock"
)

type Punch struct {
	ID         string
	EmployeeID string
	Timestamp  time.Time
	Type       timeclock.PunchType
	CreatedAt  time.Time

	// Join
	EmployeeName *string
	LocationID   *string
}

type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditEdit   AuditAction = "EDIT"
	AuditDelete AuditAction = "DELETE"
)

// Audit is an immutable record of a supervisor correction.
type Audit struct {
	ID              string
	PunchID         *string
	EmployeeID      *string
	ChangedByUserID *string
	Action          AuditAction
	OldType         *timeclock.PunchType
	NewType         *timeclock.PunchType
	OldTimestamp    *time.Time
	NewTimestamp    *time.Time
	Note            *string
	CreatedAt       time.Time
}
