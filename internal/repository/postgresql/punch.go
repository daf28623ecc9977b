package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/timeclock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type punchRepositoryImpl struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.PunchRepository {
	return &punchRepositoryImpl{db: db}
}

// Create implements punch.PunchRepository.
func (r *punchRepositoryImpl) Create(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	if p.ID == "" {
		p.ID = newID()
	}

	var created punch.Punch
	err := q.QueryRow(ctx, `
		INSERT INTO punches (id, employee_id, timestamp, type, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, employee_id, timestamp, type, created_at
	`, p.ID, p.EmployeeID, p.Timestamp.UTC(), string(p.Type)).Scan(
		&created.ID, &created.EmployeeID, &created.Timestamp, &created.Type, &created.CreatedAt,
	)
	if err != nil {
		return punch.Punch{}, fmt.Errorf("failed to create punch: %w", err)
	}
	created.EmployeeName = p.EmployeeName
	created.LocationID = p.LocationID
	return created, nil
}

// GetByID implements punch.PunchRepository.
func (r *punchRepositoryImpl) GetByID(ctx context.Context, id string) (punch.Punch, error) {
	if !validator.IsValidUUID(id) {
		return punch.Punch{}, punch.ErrPunchNotFound
	}

	q := GetQuerier(ctx, r.db)

	var p punch.Punch
	err := q.QueryRow(ctx, `
		SELECT p.id, p.employee_id, p.timestamp, p.type, p.created_at, e.name, e.location_id
		FROM punches p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`, id).Scan(&p.ID, &p.EmployeeID, &p.Timestamp, &p.Type, &p.CreatedAt, &p.EmployeeName, &p.LocationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return punch.Punch{}, punch.ErrPunchNotFound
		}
		return punch.Punch{}, fmt.Errorf("failed to get punch %s: %w", id, err)
	}
	return p, nil
}

// Update implements punch.PunchRepository.
func (r *punchRepositoryImpl) Update(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	var updated punch.Punch
	err := q.QueryRow(ctx, `
		UPDATE punches
		SET timestamp = $1, type = $2
		WHERE id = $3
		RETURNING id, employee_id, timestamp, type, created_at
	`, p.Timestamp.UTC(), string(p.Type), p.ID).Scan(
		&updated.ID, &updated.EmployeeID, &updated.Timestamp, &updated.Type, &updated.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return punch.Punch{}, punch.ErrPunchNotFound
		}
		return punch.Punch{}, fmt.Errorf("failed to update punch %s: %w", p.ID, err)
	}
	updated.EmployeeName = p.EmployeeName
	updated.LocationID = p.LocationID
	return updated, nil
}

// Delete implements punch.PunchRepository.
func (r *punchRepositoryImpl) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return punch.ErrPunchNotFound
	}

	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM punches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete punch %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return punch.ErrPunchNotFound
	}
	return nil
}

// List implements punch.PunchRepository.
func (r *punchRepositoryImpl) List(ctx context.Context, filter punch.PunchFilter) ([]punch.Punch, int64, error) {
	// A malformed id filter cannot match any row.
	if (filter.LocationID != nil && *filter.LocationID != "" && !validator.IsValidUUID(*filter.LocationID)) ||
		(filter.EmployeeID != nil && *filter.EmployeeID != "" && !validator.IsValidUUID(*filter.EmployeeID)) {
		return nil, 0, nil
	}

	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.LocationID != nil && *filter.LocationID != "" {
		baseWhere += fmt.Sprintf(" AND e.location_id = $%d", argIdx)
		args = append(args, *filter.LocationID)
		argIdx++
	}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Start != nil {
		baseWhere += fmt.Sprintf(" AND p.timestamp >= $%d", argIdx)
		args = append(args, filter.Start.UTC())
		argIdx++
	}
	if filter.End != nil {
		baseWhere += fmt.Sprintf(" AND p.timestamp < $%d", argIdx)
		args = append(args, filter.End.UTC())
		argIdx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM punches p JOIN employees e ON e.id = p.employee_id WHERE " + baseWhere
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count punches: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT p.id, p.employee_id, p.timestamp, p.type, p.created_at, e.name, e.location_id
		FROM punches p
		JOIN employees e ON e.id = p.employee_id
		WHERE %s
		ORDER BY p.timestamp DESC, p.id DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	var punches []punch.Punch
	for rows.Next() {
		var p punch.Punch
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.Timestamp, &p.Type, &p.CreatedAt, &p.EmployeeName, &p.LocationID); err != nil {
			return nil, 0, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return punches, total, nil
}

// LatestForEmployee implements punch.PunchRepository.
func (r *punchRepositoryImpl) LatestForEmployee(ctx context.Context, employeeID string) (*punch.Punch, error) {
	if !validator.IsValidUUID(employeeID) {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	var p punch.Punch
	err := q.QueryRow(ctx, `
		SELECT id, employee_id, timestamp, type, created_at
		FROM punches
		WHERE employee_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT 1
	`, employeeID).Scan(&p.ID, &p.EmployeeID, &p.Timestamp, &p.Type, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest punch for employee %s: %w", employeeID, err)
	}
	return &p, nil
}

// EventsForLocation implements punch.PunchRepository.
func (r *punchRepositoryImpl) EventsForLocation(ctx context.Context, locationID string, start, end time.Time) ([]timeclock.PunchEvent, error) {
	if !validator.IsValidUUID(locationID) {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT p.employee_id, p.type, p.timestamp
		FROM punches p
		JOIN employees e ON e.id = p.employee_id
		WHERE e.location_id = $1 AND p.timestamp >= $2 AND p.timestamp < $3
		ORDER BY p.timestamp ASC, p.id ASC
	`, locationID, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch punches for location %s: %w", locationID, err)
	}
	defer rows.Close()

	var events []timeclock.PunchEvent
	for rows.Next() {
		var ev timeclock.PunchEvent
		if err := rows.Scan(&ev.EmployeeID, &ev.Type, &ev.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan punch event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// DeleteBefore implements punch.PunchRepository.
func (r *punchRepositoryImpl) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM punches WHERE timestamp < $1`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge punches before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return tag.RowsAffected(), nil
}
