package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	app config.AppConfig,
	JWTService jwt.Service,
	authHandler AuthHandler,
	locationHandler LocationHandler,
	punchHandler PunchHandler,
	reportHandler ReportHandler,
	employeeHandler EmployeeHandler,
	userHandler UserHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock"),
		slog.String("version", "v1.0.0"),
		slog.String("env", app.Env),
	)

	allowedOrigins := app.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		authenticated := func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
		}

		r.Route("/locations", func(r chi.Router) {
			// Kiosk, no token
			r.Get("/", locationHandler.List)
			r.Get("/{id}/feed", locationHandler.Feed)
			r.Get("/{id}/employees", locationHandler.Employees)

			r.Group(func(r chi.Router) {
				authenticated(r)
				r.Use(middleware.RequireSupervisor)
				r.Use(middleware.RequireLocationAccess("id"))

				r.With(middleware.RequirePermission(user.PermissionReportsView)).Get("/{id}/reports/summary", reportHandler.GetSummary)
				r.With(middleware.RequirePermission(user.PermissionReportsView)).Get("/{id}/reports/weekly", reportHandler.GetWeeklyGrid)
				r.With(middleware.RequirePermission(user.PermissionPayrollExport)).Get("/{id}/reports/payroll", reportHandler.GetPayroll)
			})
		})

		r.Route("/punches", func(r chi.Router) {
			// Kiosk, no token
			r.Post("/", punchHandler.Submit)

			r.Group(func(r chi.Router) {
				authenticated(r)
				r.Use(middleware.RequireSupervisor)

				r.With(middleware.RequirePermission(user.PermissionPunchViewAll)).Get("/", punchHandler.List)
				r.With(middleware.RequirePermission(user.PermissionPunchViewAll)).Get("/{id}/audits", punchHandler.ListAudits)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPunchCorrect))
					r.Post("/manual", punchHandler.CreateManual)
					r.Put("/{id}", punchHandler.Update)
					r.Delete("/{id}", punchHandler.Delete)
				})
			})
		})

		r.Route("/employees", func(r chi.Router) {
			authenticated(r)
			r.Use(middleware.RequireSupervisor)
			r.Get("/", employeeHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
				r.Post("/", employeeHandler.Create)
				r.Post("/{id}/terminate", employeeHandler.Terminate)
			})
		})

		// Admin only
		r.Route("/users", func(r chi.Router) {
			authenticated(r)
			r.Use(middleware.AdminOnly)
			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)
			r.Post("/{id}/deactivate", userHandler.Deactivate)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	return r
}
