package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/location"
	appHTTP "github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/timeclock-backend-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/employee"
	locationService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/location"
	punchService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/punch"
	reportService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/report"
	userService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/user"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.App.LogLevel)}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	zoneFor := cfg.Timeclock.TimezoneFor

	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	locationRepo := postgresql.NewLocationRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	reportRepo := postgresql.NewReportRepository(db, zoneFor)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authService := serviceAuth.NewAuthService(tx, userRepo, JWTService, refreshTokenRepo)
	userSvc := userService.NewUserService(userRepo, locationRepo)
	locationSvc := locationService.NewLocationService(locationRepo, zoneFor)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, locationRepo)
	punchSvc := punchService.NewPunchService(
		tx,
		punchRepo,
		auditRepo,
		employeeRepo,
		locationRepo,
		cfg.Timeclock.GeofenceRadiusMeters,
		zoneFor,
	)
	reportSvc := reportService.NewReportService(reportRepo, punchSvc, reportService.Settings{
		FeedLimit:    cfg.Timeclock.FeedLimit,
		LookbackDays: cfg.Timeclock.LookbackDays,
		StaleWeeks:   cfg.Timeclock.StaleWeeks,
		Legacy:       cfg.Timeclock.LegacyPolicy,
		Current:      cfg.Timeclock.CurrentPolicy,
	})

	seeds := make([]location.SeedLocation, 0, len(cfg.Timeclock.Locations))
	for _, l := range cfg.Timeclock.Locations {
		seeds = append(seeds, location.SeedLocation{Name: l.Name, Latitude: l.Latitude, Longitude: l.Longitude})
	}
	if err := locationSvc.Seed(ctx, seeds); err != nil {
		return err
	}
	if cfg.App.AdminUsername != "" {
		if err := userSvc.EnsureAdmin(ctx, cfg.App.AdminUsername, cfg.App.AdminPassword); err != nil {
			return err
		}
	}

	scheduler := cron.NewScheduler(logger, 5*time.Minute)
	cron.NewRetentionJobs(punchSvc, cfg.Timeclock.RetentionDays).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg.App,
		JWTService,
		appHTTP.NewAuthHandler(JWTService, authService),
		appHTTP.NewLocationHandler(locationSvc, employeeSvc, reportSvc),
		appHTTP.NewPunchHandler(punchSvc),
		appHTTP.NewReportHandler(reportSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewUserHandler(userSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown HTTP server", "error", err)
		}
	}()

	slog.Info("server running", "addr", server.Addr, "env", cfg.App.Env)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
