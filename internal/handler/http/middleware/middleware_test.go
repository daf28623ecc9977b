package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/user"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func withClaims(t *testing.T, r *http.Request, claims map[string]interface{}) *http.Request {
	t.Helper()
	token, _, err := jwtauth.New("HS256", []byte("test-secret"), nil).Encode(claims)
	require.NoError(t, err)
	return r.WithContext(jwtauth.NewContext(r.Context(), token, nil))
}

func serve(h http.Handler, r *http.Request) int {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w.Code
}

// Test AuthRequired only admits access tokens
func TestAuthRequired(t *testing.T) {
	h := AuthRequired(nil)(ok)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusUnauthorized, serve(h, req))
	assert.Equal(t, http.StatusUnauthorized, serve(h, withClaims(t, req, map[string]interface{}{"type": "refresh"})))
	assert.Equal(t, http.StatusNoContent, serve(h, withClaims(t, req, map[string]interface{}{"type": "access"})))
}

// Test role middlewares
func TestRoleMiddlewares(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	kiosk := withClaims(t, req, map[string]interface{}{"user_id": "k", "role": string(user.RoleEmployee)})
	supervisor := withClaims(t, req, map[string]interface{}{"user_id": "s", "role": string(user.RoleSupervisor)})
	admin := withClaims(t, req, map[string]interface{}{"user_id": "a", "role": string(user.RoleAdmin)})

	assert.Equal(t, http.StatusForbidden, serve(RequireSupervisor(ok), kiosk))
	assert.Equal(t, http.StatusNoContent, serve(RequireSupervisor(ok), supervisor))
	assert.Equal(t, http.StatusNoContent, serve(RequireSupervisor(ok), admin))

	assert.Equal(t, http.StatusForbidden, serve(AdminOnly(ok), supervisor))
	assert.Equal(t, http.StatusNoContent, serve(AdminOnly(ok), admin))

	payroll := RequirePermission(user.PermissionPayrollExport)(ok)
	assert.Equal(t, http.StatusForbidden, serve(payroll, supervisor))
	assert.Equal(t, http.StatusNoContent, serve(payroll, admin))
	assert.Equal(t, http.StatusNoContent, serve(RequirePermission(user.PermissionPunchCreate)(ok), kiosk))
}

// Test RequireLocationAccess reads the route parameter
func TestRequireLocationAccess(t *testing.T) {
	r := chi.NewRouter()
	r.With(RequireLocationAccess("id")).Get("/locations/{id}", ok)

	call := func(path string, claims map[string]interface{}) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if claims != nil {
			req = withClaims(t, req, claims)
		} else {
			req = req.WithContext(context.Background())
		}
		return serve(r, req)
	}

	supervisor := map[string]interface{}{"user_id": "s", "role": "supervisor", "location_id": "loc-houston"}
	assert.Equal(t, http.StatusNoContent, call("/locations/loc-houston", supervisor))
	assert.Equal(t, http.StatusForbidden, call("/locations/loc-dallas", supervisor))
	assert.Equal(t, http.StatusNoContent, call("/locations/loc-dallas", map[string]interface{}{"user_id": "a", "role": "admin"}))
	assert.Equal(t, http.StatusUnauthorized, call("/locations/loc-dallas", nil))
}
