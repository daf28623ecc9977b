package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/timeclock"
	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Timeclock TimeclockConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration time.Duration
	AccessExpiration  time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
	AdminUsername  string
	AdminPassword  string
}

// LocationSeed is one shop upserted at startup.
type LocationSeed struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// TimeclockConfig holds the punch, report and retention settings
type TimeclockConfig struct {
	Locations         []LocationSeed
	LocationTimezones map[string]string
	DefaultTimezone   string

	GeofenceRadiusMeters float64
	FeedLimit            int
	LookbackDays         int
	StaleWeeks           int
	RetentionDays        int

	LegacyPolicy  timeclock.Policy
	CurrentPolicy timeclock.Policy
}

const (
	defaultLocations = "Sacramento:38.535168:-121.3661184," +
		"Dallas:32.5372008:-96.7493993," +
		"Houston:29.835264:-95.5383808," +
		"Indianapolis:39.6836058:-86.1927711"
	defaultLocationTimezones = "Sacramento=America/Los_Angeles," +
		"Dallas=America/Chicago," +
		"Houston=America/Chicago," +
		"Indianapolis=America/New_York"
)

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timeclock"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
		AdminUsername:  getEnv("ADMIN_USERNAME", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
	}

	// JWT configuration
	refreshExp, err := time.ParseDuration(getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_TIME: %w", err)
	}
	accessExp, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: refreshExp,
		AccessExpiration:  accessExp,
	}

	config.Timeclock, err = loadTimeclock()
	if err != nil {
		return nil, err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadTimeclock() (TimeclockConfig, error) {
	var tc TimeclockConfig
	var err error

	if tc.Locations, err = parseLocations(getEnv("TIMECLOCK_LOCATIONS", defaultLocations)); err != nil {
		return tc, err
	}
	if tc.LocationTimezones, err = parseTimezones(getEnv("TIMECLOCK_LOCATION_TIMEZONES", defaultLocationTimezones)); err != nil {
		return tc, err
	}
	tc.DefaultTimezone = getEnv("TIMECLOCK_DEFAULT_TIMEZONE", "America/Chicago")

	if tc.GeofenceRadiusMeters, err = getEnvFloat("TIMECLOCK_GEOFENCE_RADIUS_METERS", 200); err != nil {
		return tc, err
	}
	if tc.FeedLimit, err = getEnvInt("TIMECLOCK_FEED_LIMIT", 20); err != nil {
		return tc, err
	}
	if tc.LookbackDays, err = getEnvInt("TIMECLOCK_LOOKBACK_DAYS", 60); err != nil {
		return tc, err
	}
	if tc.StaleWeeks, err = getEnvInt("TIMECLOCK_STALE_WEEKS", 4); err != nil {
		return tc, err
	}
	if tc.RetentionDays, err = getEnvInt("TIMECLOCK_RETENTION_DAYS", 150); err != nil {
		return tc, err
	}

	// Legacy report policy
	legacy := timeclock.LegacyPolicy()
	if legacy.Rounding.IntervalMinutes, err = getEnvInt("TIMECLOCK_LEGACY_INTERVAL_MINUTES", legacy.Rounding.IntervalMinutes); err != nil {
		return tc, err
	}
	if legacy.Break.MinShift, err = getEnvDuration("TIMECLOCK_LEGACY_BREAK_THRESHOLD", legacy.Break.MinShift); err != nil {
		return tc, err
	}
	if legacy.Break.Deduction, err = getEnvDuration("TIMECLOCK_LEGACY_BREAK_DEDUCTION", legacy.Break.Deduction); err != nil {
		return tc, err
	}
	if legacy.DailyCap, err = getEnvDuration("TIMECLOCK_LEGACY_DAILY_CAP", legacy.DailyCap); err != nil {
		return tc, err
	}
	tc.LegacyPolicy = legacy

	// Current report policy
	current := timeclock.CurrentPolicy()
	if current.Rounding.IntervalMinutes, err = getEnvInt("TIMECLOCK_CURRENT_INTERVAL_MINUTES", current.Rounding.IntervalMinutes); err != nil {
		return tc, err
	}
	if current.Rounding.TippingMinute, err = getEnvInt("TIMECLOCK_CURRENT_TIPPING_MINUTE", current.Rounding.TippingMinute); err != nil {
		return tc, err
	}
	totalRounding, err := getEnvInt("TIMECLOCK_CURRENT_TOTAL_ROUNDING_SECONDS", int(current.TotalRoundingSeconds))
	if err != nil {
		return tc, err
	}
	current.TotalRoundingSeconds = int64(totalRounding)
	if current.WeeklyCap, err = getEnvDuration("TIMECLOCK_CURRENT_WEEKLY_CAP", current.WeeklyCap); err != nil {
		return tc, err
	}
	tc.CurrentPolicy = current

	return tc, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 || c.JWT.RefreshExpiration <= 0 {
		return fmt.Errorf("JWT expiration times must be positive")
	}
	if (c.App.AdminUsername == "") != (c.App.AdminPassword == "") {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	return c.Timeclock.Validate()
}

// Validate checks the timeclock settings, including that every zone loads.
func (tc *TimeclockConfig) Validate() error {
	if len(tc.Locations) == 0 {
		return fmt.Errorf("TIMECLOCK_LOCATIONS must list at least one location")
	}
	if _, err := time.LoadLocation(tc.DefaultTimezone); err != nil {
		return fmt.Errorf("TIMECLOCK_DEFAULT_TIMEZONE %q: %w", tc.DefaultTimezone, err)
	}
	for name, zone := range tc.LocationTimezones {
		if _, err := time.LoadLocation(zone); err != nil {
			return fmt.Errorf("timezone %q for location %q: %w", zone, name, err)
		}
	}
	for _, seed := range tc.Locations {
		if _, ok := tc.LocationTimezones[seed.Name]; !ok {
			return fmt.Errorf("location %q has no entry in TIMECLOCK_LOCATION_TIMEZONES", seed.Name)
		}
	}
	if tc.GeofenceRadiusMeters <= 0 {
		return fmt.Errorf("TIMECLOCK_GEOFENCE_RADIUS_METERS must be positive")
	}
	if tc.FeedLimit <= 0 || tc.LookbackDays <= 0 || tc.StaleWeeks <= 0 || tc.RetentionDays <= 0 {
		return fmt.Errorf("TIMECLOCK feed limit, lookback, stale weeks and retention must be positive")
	}
	if err := tc.LegacyPolicy.Validate(); err != nil {
		return err
	}
	return tc.CurrentPolicy.Validate()
}

// TimezoneFor returns the configured zone for a location name. Names missing
// from the table fall back to DefaultTimezone with a warning.
func (tc *TimeclockConfig) TimezoneFor(locationName string) string {
	if zone, ok := tc.LocationTimezones[locationName]; ok {
		return zone
	}
	slog.Warn("location has no configured timezone, using default",
		"location", locationName,
		"timezone", tc.DefaultTimezone,
	)
	return tc.DefaultTimezone
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// parseLocations reads "Name:lat:lng,Name:lat:lng".
func parseLocations(value string) ([]LocationSeed, error) {
	var seeds []LocationSeed
	for _, item := range splitList(value) {
		parts := strings.Split(item, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid TIMECLOCK_LOCATIONS entry %q: want Name:lat:lng", item)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude in %q: %w", item, err)
		}
		lng, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude in %q: %w", item, err)
		}
		seeds = append(seeds, LocationSeed{Name: strings.TrimSpace(parts[0]), Latitude: lat, Longitude: lng})
	}
	return seeds, nil
}

// parseTimezones reads "Name=Zone,Name=Zone".
func parseTimezones(value string) (map[string]string, error) {
	zones := make(map[string]string)
	for _, item := range splitList(value) {
		name, zone, ok := strings.Cut(item, "=")
		if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(zone) == "" {
			return nil, fmt.Errorf("invalid TIMECLOCK_LOCATION_TIMEZONES entry %q: want Name=Zone", item)
		}
		zones[strings.TrimSpace(name)] = strings.TrimSpace(zone)
	}
	return zones, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(env string) []string {
	return splitList(getEnv(env, ""))
}

func splitList(value string) []string {
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
