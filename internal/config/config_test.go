package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	tc := cfg.Timeclock
	require.Len(t, tc.Locations, 4)
	assert.Equal(t, "Sacramento", tc.Locations[0].Name)
	assert.InDelta(t, 38.535168, tc.Locations[0].Latitude, 1e-9)
	assert.Equal(t, "America/Los_Angeles", tc.TimezoneFor("Sacramento"))
	assert.Equal(t, "America/Chicago", tc.TimezoneFor("Houston"))
	assert.Equal(t, "America/New_York", tc.TimezoneFor("Indianapolis"))
	assert.Equal(t, "America/Chicago", tc.TimezoneFor("Unknown Shop"))

	assert.Equal(t, 200.0, tc.GeofenceRadiusMeters)
	assert.Equal(t, 20, tc.FeedLimit)
	assert.Equal(t, 60, tc.LookbackDays)
	assert.Equal(t, 4, tc.StaleWeeks)
	assert.Equal(t, 150, tc.RetentionDays)

	assert.Equal(t, 5, tc.LegacyPolicy.Rounding.IntervalMinutes)
	assert.Equal(t, 30*time.Minute, tc.LegacyPolicy.Break.Deduction)
	assert.Equal(t, 15, tc.CurrentPolicy.Rounding.IntervalMinutes)
	assert.Equal(t, 8, tc.CurrentPolicy.Rounding.TippingMinute)
	assert.Equal(t, int64(900), tc.CurrentPolicy.TotalRoundingSeconds)
	assert.Equal(t, time.Hour, cfg.JWT.AccessExpiration)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("TIMECLOCK_LOCATIONS", "Austin:30.2672:-97.7431")
	t.Setenv("TIMECLOCK_LOCATION_TIMEZONES", "Austin=America/Chicago")
	t.Setenv("TIMECLOCK_GEOFENCE_RADIUS_METERS", "350.5")
	t.Setenv("TIMECLOCK_CURRENT_TIPPING_MINUTE", "7")
	t.Setenv("TIMECLOCK_LEGACY_BREAK_THRESHOLD", "6h")

	cfg, err := Load()
	require.NoError(t, err)

	require.Len(t, cfg.Timeclock.Locations, 1)
	assert.Equal(t, "Austin", cfg.Timeclock.Locations[0].Name)
	assert.Equal(t, 350.5, cfg.Timeclock.GeofenceRadiusMeters)
	assert.Equal(t, 7, cfg.Timeclock.CurrentPolicy.Rounding.TippingMinute)
	assert.Equal(t, 6*time.Hour, cfg.Timeclock.LegacyPolicy.Break.MinShift)
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{"bad timezone", "TIMECLOCK_LOCATION_TIMEZONES", "Dallas=Mars/Olympus"},
		{"malformed location", "TIMECLOCK_LOCATIONS", "Dallas:32.5"},
		{"location without zone", "TIMECLOCK_LOCATIONS", "Austin:30.2672:-97.7431"},
		{"bad tipping minute", "TIMECLOCK_CURRENT_TIPPING_MINUTE", "30"},
		{"bad duration", "TIMECLOCK_LEGACY_DAILY_CAP", "eight hours"},
		{"zero radius", "TIMECLOCK_GEOFENCE_RADIUS_METERS", "0"},
		{"deduction above threshold", "TIMECLOCK_LEGACY_BREAK_DEDUCTION", "6h"},
		{"admin without password", "ADMIN_USERNAME", "root"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tc.key, tc.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}
