package punch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/timeclock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/utils"
)

type PunchServiceImpl struct {
	tx             database.Transactor
	punchRepo      punch.PunchRepository
	auditRepo      punch.AuditRepository
	employeeRepo   employee.EmployeeRepository
	locationRepo   location.LocationRepository
	geofenceRadius float64
	zoneFor        func(locationName string) string
	now            func() time.Time
}

func NewPunchService(
	tx database.Transactor,
	punchRepo punch.PunchRepository,
	auditRepo punch.AuditRepository,
	employeeRepo employee.EmployeeRepository,
	locationRepo location.LocationRepository,
	geofenceRadius float64,
	zoneFor func(locationName string) string,
) punch.PunchService {
	return &PunchServiceImpl{
		tx:             tx,
		punchRepo:      punchRepo,
		auditRepo:      auditRepo,
		employeeRepo:   employeeRepo,
		locationRepo:   locationRepo,
		geofenceRadius: geofenceRadius,
		zoneFor:        zoneFor,
		now:            time.Now,
	}
}

// zoneOf resolves the display zone of a location; nil when unknown.
func (s *PunchServiceImpl) zoneOf(ctx context.Context, locationID string) *time.Location {
	loc, err := s.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil
	}
	zone, err := time.LoadLocation(s.zoneFor(loc.Name))
	if err != nil {
		return nil
	}
	return zone
}

// Submit implements punch.PunchService.
func (s *PunchServiceImpl) Submit(ctx context.Context, req punch.SubmitPunchRequest) (punch.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.PunchResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return punch.PunchResponse{}, err
	}
	if !emp.Active {
		return punch.PunchResponse{}, employee.ErrEmployeeInactive
	}
	if emp.LocationID != req.LocationID {
		return punch.PunchResponse{}, punch.ErrEmployeeWrongLocation
	}

	shop, err := s.locationRepo.GetByID(ctx, req.LocationID)
	if err != nil {
		return punch.PunchResponse{}, err
	}

	device := utils.Point{Lat: *req.Latitude, Lng: *req.Longitude}
	center := utils.Point{Lat: shop.Latitude, Lng: shop.Longitude}
	if !utils.WithinRadius(device, center, s.geofenceRadius) {
		slog.InfoContext(ctx, "punch rejected outside geofence",
			"employee_id", emp.ID,
			"location", shop.Name,
			"distance_m", math.Round(utils.Distance(device, center)),
		)
		return punch.PunchResponse{}, punch.ErrOutsideGeofence
	}

	punchType := timeclock.PunchType(req.Type)
	if punchType == "" {
		next, err := s.nextType(ctx, emp.ID)
		if err != nil {
			return punch.PunchResponse{}, err
		}
		punchType = next
	}

	created, err := s.punchRepo.Create(ctx, punch.Punch{
		EmployeeID:   emp.ID,
		Timestamp:    s.now().UTC(),
		Type:         punchType,
		EmployeeName: &emp.Name,
		LocationID:   &emp.LocationID,
	})
	if err != nil {
		return punch.PunchResponse{}, fmt.Errorf("failed to record punch: %w", err)
	}

	var zone *time.Location
	if z, err := time.LoadLocation(s.zoneFor(shop.Name)); err == nil {
		zone = z
	}

	resp := punch.NewPunchResponse(created, zone)
	resp.NextType = string(timeclock.NextPunchType(&created.Type))
	return resp, nil
}

func (s *PunchServiceImpl) nextType(ctx context.Context, employeeID string) (timeclock.PunchType, error) {
	latest, err := s.punchRepo.LatestForEmployee(ctx, employeeID)
	if err != nil {
		return "", fmt.Errorf("failed to get latest punch: %w", err)
	}
	if latest == nil {
		return timeclock.NextPunchType(nil), nil
	}
	return timeclock.NextPunchType(&latest.Type), nil
}

// NextType implements punch.PunchService.
func (s *PunchServiceImpl) NextType(ctx context.Context, employeeID string) (string, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return "", err
	}
	next, err := s.nextType(ctx, employeeID)
	if err != nil {
		return "", err
	}
	return string(next), nil
}

// ListPunches implements punch.PunchService.
func (s *PunchServiceImpl) ListPunches(ctx context.Context, filter punch.PunchFilter) (punch.ListPunchResponse, error) {
	caller, err := jwt.CallerFromContext(ctx)
	if err != nil {
		return punch.ListPunchResponse{}, err
	}

	if err := filter.Validate(); err != nil {
		return punch.ListPunchResponse{}, err
	}

	if scope := caller.ScopeLocation(); !caller.IsAdmin() {
		if scope == nil {
			return punch.ListPunchResponse{}, user.ErrLocationAccessDenied
		}
		if filter.LocationID != nil && *filter.LocationID != "" && *filter.LocationID != *scope {
			return punch.ListPunchResponse{}, user.ErrLocationAccessDenied
		}
		filter.LocationID = scope
	}

	// Dates are civil days of the filtered location, or of the default zone
	zone := time.UTC
	zoneName := s.zoneFor("")
	if filter.LocationID != nil && *filter.LocationID != "" {
		shop, err := s.locationRepo.GetByID(ctx, *filter.LocationID)
		if err != nil {
			return punch.ListPunchResponse{}, err
		}
		zoneName = s.zoneFor(shop.Name)
	}
	if z, err := time.LoadLocation(zoneName); err == nil {
		zone = z
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		start, _ := time.ParseInLocation("2006-01-02", *filter.StartDate, zone)
		filter.Start = &start
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		end, _ := time.ParseInLocation("2006-01-02", *filter.EndDate, zone)
		end = end.AddDate(0, 0, 1)
		filter.End = &end
	}

	punches, total, err := s.punchRepo.List(ctx, filter)
	if err != nil {
		return punch.ListPunchResponse{}, fmt.Errorf("failed to list punches: %w", err)
	}

	zones := make(map[string]*time.Location)
	responses := make([]punch.PunchResponse, 0, len(punches))
	for _, p := range punches {
		var loc *time.Location
		if p.LocationID != nil {
			cached, ok := zones[*p.LocationID]
			if !ok {
				cached = s.zoneOf(ctx, *p.LocationID)
				zones[*p.LocationID] = cached
			}
			loc = cached
		}
		responses = append(responses, punch.NewPunchResponse(p, loc))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return punch.ListPunchResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Punches:    responses,
	}, nil
}

// CreateManual implements punch.PunchService.
func (s *PunchServiceImpl) CreateManual(ctx context.Context, req punch.ManualPunchRequest) (punch.PunchResponse, error) {
	caller, err := jwt.CallerFromContext(ctx)
	if err != nil {
		return punch.PunchResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return punch.PunchResponse{}, err
	}
	if req.ParsedTimestamp.After(s.now()) {
		return punch.PunchResponse{}, punch.ErrFutureTimestamp
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return punch.PunchResponse{}, err
	}
	if !caller.CanAccessLocation(emp.LocationID) {
		return punch.PunchResponse{}, user.ErrLocationAccessDenied
	}

	newType := timeclock.PunchType(req.Type)
	newTimestamp := req.ParsedTimestamp.UTC()

	var created punch.Punch
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.punchRepo.Create(ctx, punch.Punch{
			EmployeeID:   emp.ID,
			Timestamp:    newTimestamp,
			Type:         newType,
			EmployeeName: &emp.Name,
			LocationID:   &emp.LocationID,
		})
		if err != nil {
			return err
		}

		_, err = s.auditRepo.Create(ctx, punch.Audit{
			PunchID:         &created.ID,
			EmployeeID:      &emp.ID,
			ChangedByUserID: &caller.UserID,
			Action:          punch.AuditCreate,
			NewType:         &newType,
			NewTimestamp:    &newTimestamp,
			Note:            req.Note,
		})
		return err
	})
	if err != nil {
		return punch.PunchResponse{}, fmt.Errorf("failed to create manual punch: %w", err)
	}

	slog.InfoContext(ctx, "manual punch created",
		"punch_id", created.ID, "employee_id", emp.ID, "changed_by", caller.UserID)

	return punch.NewPunchResponse(created, s.zoneOf(ctx, emp.LocationID)), nil
}

// loadForCorrection fetches a punch the caller is allowed to change.
func (s *PunchServiceImpl) loadForCorrection(ctx context.Context, caller user.Caller, id string) (punch.Punch, error) {
	existing, err := s.punchRepo.GetByID(ctx, id)
	if err != nil {
		return punch.Punch{}, err
	}
	if existing.LocationID == nil || !caller.CanAccessLocation(*existing.LocationID) {
		return punch.Punch{}, user.ErrLocationAccessDenied
	}
	return existing, nil
}

// UpdatePunch implements punch.PunchService.
func (s *PunchServiceImpl) UpdatePunch(ctx context.Context, req punch.UpdatePunchRequest) (punch.PunchResponse, error) {
	caller, err := jwt.CallerFromContext(ctx)
	if err != nil {
		return punch.PunchResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return punch.PunchResponse{}, err
	}
	if req.ParsedTimestamp != nil && req.ParsedTimestamp.After(s.now()) {
		return punch.PunchResponse{}, punch.ErrFutureTimestamp
	}

	existing, err := s.loadForCorrection(ctx, caller, req.ID)
	if err != nil {
		return punch.PunchResponse{}, err
	}

	changed := existing
	if req.Type != nil {
		changed.Type = timeclock.PunchType(*req.Type)
	}
	if req.ParsedTimestamp != nil {
		changed.Timestamp = req.ParsedTimestamp.UTC()
	}
	if changed.Type == existing.Type && changed.Timestamp.Equal(existing.Timestamp) {
		return punch.PunchResponse{}, punch.ErrNothingToUpdate
	}

	var updated punch.Punch
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		updated, err = s.punchRepo.Update(ctx, changed)
		if err != nil {
			return err
		}

		_, err = s.auditRepo.Create(ctx, punch.Audit{
			PunchID:         &existing.ID,
			EmployeeID:      &existing.EmployeeID,
			ChangedByUserID: &caller.UserID,
			Action:          punch.AuditEdit,
			OldType:         &existing.Type,
			NewType:         &updated.Type,
			OldTimestamp:    &existing.Timestamp,
			NewTimestamp:    &updated.Timestamp,
			Note:            req.Note,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, punch.ErrPunchNotFound) {
			return punch.PunchResponse{}, err
		}
		return punch.PunchResponse{}, fmt.Errorf("failed to update punch: %w", err)
	}

	slog.InfoContext(ctx, "punch corrected",
		"punch_id", existing.ID, "employee_id", existing.EmployeeID, "changed_by", caller.UserID)

	return punch.NewPunchResponse(updated, s.zoneOf(ctx, *existing.LocationID)), nil
}

// DeletePunch implements punch.PunchService.
func (s *PunchServiceImpl) DeletePunch(ctx context.Context, req punch.DeletePunchRequest) error {
	caller, err := jwt.CallerFromContext(ctx)
	if err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		return err
	}

	existing, err := s.loadForCorrection(ctx, caller, req.ID)
	if err != nil {
		return err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.punchRepo.Delete(ctx, existing.ID); err != nil {
			return err
		}

		_, err := s.auditRepo.Create(ctx, punch.Audit{
			PunchID:         &existing.ID,
			EmployeeID:      &existing.EmployeeID,
			ChangedByUserID: &caller.UserID,
			Action:          punch.AuditDelete,
			OldType:         &existing.Type,
			OldTimestamp:    &existing.Timestamp,
			Note:            req.Note,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, punch.ErrPunchNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete punch: %w", err)
	}

	slog.InfoContext(ctx, "punch deleted",
		"punch_id", existing.ID, "employee_id", existing.EmployeeID, "changed_by", caller.UserID)

	return nil
}

// ListAudits implements punch.PunchService.
func (s *PunchServiceImpl) ListAudits(ctx context.Context, punchID string) ([]punch.AuditResponse, error) {
	caller, err := jwt.CallerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	audits, err := s.auditRepo.ListByPunch(ctx, punchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audits: %w", err)
	}

	// The punch may already be deleted, so scope by the audited employee
	if len(audits) == 0 {
		if _, err := s.loadForCorrection(ctx, caller, punchID); err != nil {
			return nil, err
		}
		return []punch.AuditResponse{}, nil
	}
	if !caller.IsAdmin() {
		employeeID := audits[0].EmployeeID
		if employeeID == nil {
			return nil, user.ErrLocationAccessDenied
		}
		emp, err := s.employeeRepo.GetByID(ctx, *employeeID)
		if err != nil {
			return nil, err
		}
		if !caller.CanAccessLocation(emp.LocationID) {
			return nil, user.ErrLocationAccessDenied
		}
	}

	responses := make([]punch.AuditResponse, 0, len(audits))
	for _, a := range audits {
		responses = append(responses, punch.NewAuditResponse(a))
	}
	return responses, nil
}

// PurgeBefore implements punch.PunchService.
func (s *PunchServiceImpl) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if cutoff.IsZero() || cutoff.After(s.now()) {
		return 0, punch.ErrInvalidRetention
	}

	removed, err := s.punchRepo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "old punches purged", "cutoff", cutoff.Format(time.RFC3339), "removed", removed)
	return removed, nil
}
