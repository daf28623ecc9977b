package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test HandleError status mapping
func TestHandleError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validator.ValidationErrors{{Field: "employee_id", Message: "required"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"wrapped token", fmt.Errorf("%w: no token", auth.ErrInvalidToken), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"disabled", auth.ErrAccountDisabled, http.StatusForbidden, "FORBIDDEN"},
		{"geofence", punch.ErrOutsideGeofence, http.StatusForbidden, "FORBIDDEN"},
		{"location scope", user.ErrLocationAccessDenied, http.StatusForbidden, "FORBIDDEN"},
		{"future", punch.ErrFutureTimestamp, http.StatusBadRequest, "BAD_REQUEST"},
		{"punch missing", punch.ErrPunchNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"location missing", location.ErrLocationNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"terminated twice", employee.ErrEmployeeAlreadyInactive, http.StatusConflict, "CONFLICT"},
		{"username taken", user.ErrUsernameExists, http.StatusConflict, "CONFLICT"},
		{"bad zone", fmt.Errorf("%w: %q", report.ErrInvalidTimezone, "Mars/Olympus"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleError(w, tc.err)

			assert.Equal(t, tc.status, w.Code)
			var resp Response
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.code, resp.Error.Code)
		})
	}
}
