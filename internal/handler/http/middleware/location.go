package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

// RequireLocationAccess rejects callers whose token is bound to a location
// other than the one named by the URL parameter. Admins pass.
func RequireLocationAccess(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := jwt.CallerFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !caller.CanAccessLocation(chi.URLParam(r, param)) {
				response.HandleError(w, user.ErrLocationAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
