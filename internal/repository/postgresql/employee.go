package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, name, location_id, active, terminated_at, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(&e.ID, &e.Name, &e.LocationID, &e.Active, &e.TerminatedAt, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if !validator.IsValidUUID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	return e, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	if newEmployee.ID == "" {
		newEmployee.ID = newID()
	}

	e, err := scanEmployee(q.QueryRow(ctx, `
		INSERT INTO employees (id, name, location_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, TRUE, NOW(), NOW())
		RETURNING `+employeeColumns,
		newEmployee.ID, newEmployee.Name, newEmployee.LocationID,
	))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	if filter.LocationID != nil && !validator.IsValidUUID(*filter.LocationID) {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []interface{}
	)
	if filter.LocationID != nil {
		args = append(args, *filter.LocationID)
		conditions = append(conditions, fmt.Sprintf("location_id = $%d", len(args)))
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "active = TRUE")
	}

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY name, id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Roster implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Roster(ctx context.Context, locationID string, activeOnly bool) ([]employee.RosterEntry, error) {
	if !validator.IsValidUUID(locationID) {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, active
		FROM employees
		WHERE location_id = $1 AND ($2 = FALSE OR active = TRUE)
		ORDER BY name, id
	`, locationID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster for location %s: %w", locationID, err)
	}
	defer rows.Close()

	var roster []employee.RosterEntry
	for rows.Next() {
		var entry employee.RosterEntry
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Active); err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		roster = append(roster, entry)
	}
	return roster, rows.Err()
}

// Terminate implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Terminate(ctx context.Context, id string) (employee.Employee, error) {
	if !validator.IsValidUUID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, `
		UPDATE employees
		SET active = FALSE, terminated_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND active = TRUE
		RETURNING `+employeeColumns,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return employee.Employee{}, getErr
			}
			return employee.Employee{}, employee.ErrEmployeeAlreadyInactive
		}
		return employee.Employee{}, fmt.Errorf("failed to terminate employee %s: %w", id, err)
	}
	return e, nil
}
