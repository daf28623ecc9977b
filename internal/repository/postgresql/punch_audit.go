package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) punch.AuditRepository {
	return &auditRepositoryImpl{db: db}
}

// Create implements punch.AuditRepository.
func (r *auditRepositoryImpl) Create(ctx context.Context, a punch.Audit) (punch.Audit, error) {
	q := GetQuerier(ctx, r.db)

	if a.ID == "" {
		a.ID = newID()
	}

	err := q.QueryRow(ctx, `
		INSERT INTO punch_audits (
			id, punch_id, employee_id, changed_by_user_id, action,
			old_type, new_type, old_timestamp, new_timestamp, note, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING created_at
	`,
		a.ID, a.PunchID, a.EmployeeID, a.ChangedByUserID, string(a.Action),
		a.OldType, a.NewType, a.OldTimestamp, a.NewTimestamp, a.Note,
	).Scan(&a.CreatedAt)
	if err != nil {
		return punch.Audit{}, fmt.Errorf("failed to create punch audit: %w", err)
	}
	return a, nil
}

// ListByPunch implements punch.AuditRepository.
func (r *auditRepositoryImpl) ListByPunch(ctx context.Context, punchID string) ([]punch.Audit, error) {
	if !validator.IsValidUUID(punchID) {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, punch_id, employee_id, changed_by_user_id, action,
		       old_type, new_type, old_timestamp, new_timestamp, note, created_at
		FROM punch_audits
		WHERE punch_id = $1
		ORDER BY created_at ASC, id ASC
	`, punchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audits for punch %s: %w", punchID, err)
	}
	defer rows.Close()

	var audits []punch.Audit
	for rows.Next() {
		var a punch.Audit
		if err := rows.Scan(
			&a.ID, &a.PunchID, &a.EmployeeID, &a.ChangedByUserID, &a.Action,
			&a.OldType, &a.NewType, &a.OldTimestamp, &a.NewTimestamp, &a.Note, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan punch audit: %w", err)
		}
		audits = append(audits, a)
	}
	return audits, rows.Err()
}
