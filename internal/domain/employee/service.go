package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// CreateEmployee adds an employee to a location (admin only)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// ListEmployees lists employees, scoped to the caller's location unless admin
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)

	// ListActiveAtLocation feeds the kiosk employee picker
	ListActiveAtLocation(ctx context.Context, locationID string) ([]EmployeeResponse, error)

	// TerminateEmployee marks the employee inactive and keeps the punch history
	TerminateEmployee(ctx context.Context, id string) (EmployeeResponse, error)
}
