package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	// Roster returns employees of a location ordered by name.
	Roster(ctx context.Context, locationID string, activeOnly bool) ([]RosterEntry, error)
	Terminate(ctx context.Context, id string) (Employee, error)
}
