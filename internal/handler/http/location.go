package http

import (
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// LocationHandler serves the kiosk screens: shop picker, today's feed and
// the employee picker. None of it requires a token.
type LocationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Feed(w http.ResponseWriter, r *http.Request)
	Employees(w http.ResponseWriter, r *http.Request)
}

type locationHandlerImpl struct {
	locationService location.LocationService
	employeeService employee.EmployeeService
	reportService   report.ReportService
}

func NewLocationHandler(
	locationService location.LocationService,
	employeeService employee.EmployeeService,
	reportService report.ReportService,
) LocationHandler {
	return &locationHandlerImpl{
		locationService: locationService,
		employeeService: employeeService,
		reportService:   reportService,
	}
}

// List handles GET /locations
func (h *locationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.locationService.ListLocations(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Feed handles GET /locations/{id}/feed
func (h *locationHandlerImpl) Feed(w http.ResponseWriter, r *http.Request) {
	req := report.DailyFeedRequest{LocationID: chi.URLParam(r, "id")}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		req.EmployeeID = &employeeID
	}

	result, err := h.reportService.BuildDailyFeed(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Employees handles GET /locations/{id}/employees
func (h *locationHandlerImpl) Employees(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.ListActiveAtLocation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
