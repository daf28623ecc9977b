package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	location.LocationRepository
}

func NewEmployeeService(
	employeeRepository employee.EmployeeRepository,
	locationRepository location.LocationRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepository,
		LocationRepository: locationRepository,
	}
}

func mapEmployeesToResponse(employees []employee.Employee) []employee.EmployeeResponse {
	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}
	return responses
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.LocationRepository.GetByID(ctx, req.LocationID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		Name:       req.Name,
		LocationID: req.LocationID,
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.InfoContext(ctx, "employee created", "employee_id", created.ID, "location_id", created.LocationID)
	return employee.NewEmployeeResponse(created), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	caller, err := jwt.CallerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if !caller.IsAdmin() {
		scope := caller.ScopeLocation()
		if scope == nil {
			return nil, user.ErrLocationAccessDenied
		}
		if filter.LocationID != nil && *filter.LocationID != *scope {
			return nil, user.ErrLocationAccessDenied
		}
		filter.LocationID = scope
	}

	employees, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapEmployeesToResponse(employees), nil
}

// ListActiveAtLocation implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListActiveAtLocation(ctx context.Context, locationID string) ([]employee.EmployeeResponse, error) {
	if _, err := s.LocationRepository.GetByID(ctx, locationID); err != nil {
		return nil, err
	}

	employees, err := s.EmployeeRepository.List(ctx, employee.EmployeeFilter{LocationID: &locationID, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	return mapEmployeesToResponse(employees), nil
}

// TerminateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) TerminateEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	terminated, err := s.EmployeeRepository.Terminate(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.InfoContext(ctx, "employee terminated", "employee_id", terminated.ID)
	return employee.NewEmployeeResponse(terminated), nil
}
