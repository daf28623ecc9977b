package punch

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/timeclock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

// ========================================
// KIOSK DTOs
// ========================================

type SubmitPunchRequest struct {
	LocationID string   `json:"location_id"`
	EmployeeID string   `json:"employee_id"`
	Type       string   `json:"type,omitempty"` // empty means the next type for the employee
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

func (r *SubmitPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LocationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "location_id",
			Message: "location_id is required",
		})
	}

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "please select an employee before punching",
		})
	}

	if r.Type != "" {
		r.Type = strings.ToUpper(r.Type)
		if !timeclock.PunchType(r.Type).Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   "type",
				Message: "type must be IN or OUT",
			})
		}
	}

	if r.Latitude == nil || r.Longitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "unable to get your location, allow location access and try again",
		})
	} else {
		if !validator.IsValidLatitude(*r.Latitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "latitude",
				Message: "latitude must be between -90 and 90",
			})
		}
		if !validator.IsValidLongitude(*r.Longitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "longitude",
				Message: "longitude must be between -180 and 180",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	LocationID   *string `json:"location_id,omitempty"`
	Type         string  `json:"type"`
	Timestamp    string  `json:"timestamp"`
	LocalTime    *string `json:"local_time,omitempty"`
	NextType     string  `json:"next_type,omitempty"`
}

func NewPunchResponse(p Punch, loc *time.Location) PunchResponse {
	resp := PunchResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		LocationID:   p.LocationID,
		Type:         string(p.Type),
		Timestamp:    p.Timestamp.UTC().Format(time.RFC3339),
	}
	if loc != nil {
		local := p.Timestamp.In(loc).Format(time.RFC3339)
		resp.LocalTime = &local
	}
	return resp
}

// ========================================
// REVIEW DTOs
// ========================================

type PunchFilter struct {
	LocationID *string `json:"location_id,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD, location local
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD, location local, inclusive

	// Resolved by the service from the dates above
	Start *time.Time `json:"-"`
	End   *time.Time `json:"-"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *PunchFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 50
	}
	if f.Limit > 200 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 200",
		})
	}

	var start, end time.Time
	var hasStart, hasEnd bool
	if f.StartDate != nil && *f.StartDate != "" {
		if start, hasStart = validator.IsValidDate(*f.StartDate); !hasStart {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if end, hasEnd = validator.IsValidDate(*f.EndDate); !hasEnd {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if hasStart && hasEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListPunchResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Punches    []PunchResponse `json:"punches"`
}

// ========================================
// CORRECTION DTOs
// ========================================

type ManualPunchRequest struct {
	EmployeeID string  `json:"employee_id"`
	Type       string  `json:"type"`
	Timestamp  string  `json:"timestamp"` // RFC3339
	Note       *string `json:"note,omitempty"`

	ParsedTimestamp time.Time `json:"-"`
}

func (r *ManualPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	r.Type = strings.ToUpper(r.Type)
	if !timeclock.PunchType(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be IN or OUT",
		})
	}

	if ts, ok := validator.IsValidDateTime(r.Timestamp); ok {
		r.ParsedTimestamp = ts
	} else {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp must be an RFC3339 date-time with offset",
		})
	}

	errs = append(errs, validateNote(r.Note)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdatePunchRequest struct {
	ID        string  `json:"-"`
	Type      *string `json:"type,omitempty"`
	Timestamp *string `json:"timestamp,omitempty"` // RFC3339
	Note      *string `json:"note,omitempty"`

	ParsedTimestamp *time.Time `json:"-"`
}

func (r *UpdatePunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Type == nil && r.Timestamp == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type or timestamp must be provided",
		})
	}

	if r.Type != nil {
		upper := strings.ToUpper(*r.Type)
		r.Type = &upper
		if !timeclock.PunchType(upper).Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   "type",
				Message: "type must be IN or OUT",
			})
		}
	}

	if r.Timestamp != nil {
		if ts, ok := validator.IsValidDateTime(*r.Timestamp); ok {
			r.ParsedTimestamp = &ts
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be an RFC3339 date-time with offset",
			})
		}
	}

	errs = append(errs, validateNote(r.Note)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DeletePunchRequest struct {
	ID   string  `json:"-"`
	Note *string `json:"note,omitempty"`
}

func (r *DeletePunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	errs = append(errs, validateNote(r.Note)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateNote(note *string) validator.ValidationErrors {
	if note != nil && len(*note) > 500 {
		return validator.ValidationErrors{{
			Field:   "note",
			Message: "note must not exceed 500 characters",
		}}
	}
	return nil
}

type AuditResponse struct {
	ID              string  `json:"id"`
	PunchID         *string `json:"punch_id,omitempty"`
	EmployeeID      *string `json:"employee_id,omitempty"`
	ChangedByUserID *string `json:"changed_by_user_id,omitempty"`
	Action          string  `json:"action"`
	OldType         *string `json:"old_type,omitempty"`
	NewType         *string `json:"new_type,omitempty"`
	OldTimestamp    *string `json:"old_timestamp,omitempty"`
	NewTimestamp    *string `json:"new_timestamp,omitempty"`
	Note            *string `json:"note,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func NewAuditResponse(a Audit) AuditResponse {
	return AuditResponse{
		ID:              a.ID,
		PunchID:         a.PunchID,
		EmployeeID:      a.EmployeeID,
		ChangedByUserID: a.ChangedByUserID,
		Action:          string(a.Action),
		OldType:         typeString(a.OldType),
		NewType:         typeString(a.NewType),
		OldTimestamp:    timeString(a.OldTimestamp),
		NewTimestamp:    timeString(a.NewTimestamp),
		Note:            a.Note,
		CreatedAt:       a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func typeString(t *timeclock.PunchType) *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}

func timeString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
