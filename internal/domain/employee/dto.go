package employee

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name       string `json:"name"`
	LocationID string `json:"location_id"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if validator.IsEmpty(r.LocationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "location_id",
			Message: "location_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeFilter struct {
	LocationID *string `json:"location_id,omitempty"`
	ActiveOnly bool    `json:"active_only"`
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	LocationID   string  `json:"location_id"`
	Active       bool    `json:"active"`
	TerminatedAt *string `json:"terminated_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		LocationID: e.LocationID,
		Active:     e.Active,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
	if e.TerminatedAt != nil {
		s := e.TerminatedAt.Format(time.RFC3339)
		resp.TerminatedAt = &s
	}
	return resp
}
