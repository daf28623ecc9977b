package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/timeclock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test location upsert keeps one row per name
func TestLocationRepository_Upsert(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewLocationRepository(db)

	first, err := repo.Upsert(ctx, location.Location{Name: "Houston", Latitude: 29.7, Longitude: -95.3})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, location.Location{Name: "Houston", Latitude: 29.8, Longitude: -95.4})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.InDelta(t, 29.8, second.Latitude, 1e-9)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = repo.GetByID(ctx, "0191e4a8-0000-7000-8000-000000000000")
	assert.ErrorIs(t, err, location.ErrLocationNotFound)
}

// Test employee roster and termination
func TestEmployeeRepository_RosterAndTerminate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	loc, err := postgresql.NewLocationRepository(db).Upsert(ctx, location.Location{Name: "Dallas"})
	require.NoError(t, err)

	repo := postgresql.NewEmployeeRepository(db)
	zoe, err := repo.Create(ctx, employee.Employee{Name: "Zoe", LocationID: loc.ID})
	require.NoError(t, err)
	_, err = repo.Create(ctx, employee.Employee{Name: "Adam", LocationID: loc.ID})
	require.NoError(t, err)

	_, err = repo.Terminate(ctx, zoe.ID)
	require.NoError(t, err)
	_, err = repo.Terminate(ctx, zoe.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeAlreadyInactive)

	active, err := repo.Roster(ctx, loc.ID, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Adam", active[0].Name)

	everyone, err := repo.Roster(ctx, loc.ID, false)
	require.NoError(t, err)
	require.Len(t, everyone, 2)
	assert.Equal(t, "Adam", everyone[0].Name)
	assert.False(t, everyone[1].Active)
}

// Test punch storage, range queries and purge
func TestPunchRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	loc, err := postgresql.NewLocationRepository(db).Upsert(ctx, location.Location{Name: "Austin"})
	require.NoError(t, err)
	emp, err := postgresql.NewEmployeeRepository(db).Create(ctx, employee.Employee{Name: "Ana", LocationID: loc.ID})
	require.NoError(t, err)

	repo := postgresql.NewPunchRepository(db)
	base := time.Date(2026, time.October, 12, 14, 0, 0, 0, time.UTC)

	latest, err := repo.LatestForEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.Nil(t, latest)

	_, err = repo.Create(ctx, punch.Punch{EmployeeID: emp.ID, Timestamp: base, Type: timeclock.PunchIn})
	require.NoError(t, err)
	out, err := repo.Create(ctx, punch.Punch{EmployeeID: emp.ID, Timestamp: base.Add(8 * time.Hour), Type: timeclock.PunchOut})
	require.NoError(t, err)
	_, err = repo.Create(ctx, punch.Punch{EmployeeID: emp.ID, Timestamp: base.AddDate(0, -6, 0), Type: timeclock.PunchIn})
	require.NoError(t, err)

	latest, err = repo.LatestForEmployee(ctx, emp.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, out.ID, latest.ID)

	events, err := repo.EventsForLocation(ctx, loc.ID, base, base.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, timeclock.PunchIn, events[0].Type)
	assert.True(t, events[0].Timestamp.Equal(base))

	page, total, err := repo.List(ctx, punch.PunchFilter{LocationID: &loc.ID, Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, out.ID, page[0].ID)
	require.NotNil(t, page[0].EmployeeName)
	assert.Equal(t, "Ana", *page[0].EmployeeName)

	removed, err := repo.DeleteBefore(ctx, base.AddDate(0, -1, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	require.NoError(t, repo.Delete(ctx, out.ID))
	assert.ErrorIs(t, repo.Delete(ctx, out.ID), punch.ErrPunchNotFound)
}

// Test a failed transaction discards both the punch and its audit
func TestTransactor_RollsBackAudit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	loc, err := postgresql.NewLocationRepository(db).Upsert(ctx, location.Location{Name: "Tulsa"})
	require.NoError(t, err)
	emp, err := postgresql.NewEmployeeRepository(db).Create(ctx, employee.Employee{Name: "Bo", LocationID: loc.ID})
	require.NoError(t, err)

	punches := postgresql.NewPunchRepository(db)
	audits := postgresql.NewAuditRepository(db)
	tx := postgresql.NewTransactor(db)

	boom := errors.New("boom")
	var punchID string
	err = tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := punches.Create(ctx, punch.Punch{EmployeeID: emp.ID, Timestamp: time.Now().UTC(), Type: timeclock.PunchIn})
		if err != nil {
			return err
		}
		punchID = p.ID
		if _, err := audits.Create(ctx, punch.Audit{PunchID: &p.ID, EmployeeID: &emp.ID, Action: punch.AuditCreate}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = punches.GetByID(ctx, punchID)
	assert.ErrorIs(t, err, punch.ErrPunchNotFound)

	list, err := audits.ListByPunch(ctx, punchID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// Test user creation and refresh token lifecycle
func TestUserAndRefreshTokenRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	users := postgresql.NewUserRepository(db)
	u, err := users.Create(ctx, user.User{Username: "admin", PasswordHash: "hash", Role: user.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, u.Active)

	_, err = users.Create(ctx, user.User{Username: "admin", PasswordHash: "hash", Role: user.RoleAdmin})
	assert.ErrorIs(t, err, user.ErrUsernameExists)

	tokens := postgresql.NewRefreshTokenRepository(db)
	expires := time.Now().Add(time.Hour).Unix()
	require.NoError(t, tokens.CreateRefreshToken(ctx, u.ID, "token-1", expires, auth.SessionTrackingRequest{UserAgent: "test"}))

	userID, revoked, err := tokens.IsRefreshTokenRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Equal(t, u.ID, userID)

	require.NoError(t, tokens.RevokeRefreshToken(ctx, "token-1"))
	_, revoked, err = tokens.IsRefreshTokenRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	_, revoked, err = tokens.IsRefreshTokenRevoked(ctx, "never-issued")
	require.NoError(t, err)
	assert.True(t, revoked)
}

// Test malformed ids resolve as not found instead of a uuid cast error
func TestRepositories_MalformedIDs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	const bad = "not-a-uuid"

	reports := postgresql.NewReportRepository(db, func(string) string { return "America/Chicago" })
	_, err := reports.LocationTimezone(ctx, bad)
	assert.ErrorIs(t, err, location.ErrLocationNotFound)

	roster, err := reports.EmployeeRoster(ctx, bad, false)
	require.NoError(t, err)
	assert.Empty(t, roster)

	events, err := reports.FetchPunches(ctx, bad, time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.Empty(t, events)

	audits, err := postgresql.NewAuditRepository(db).ListByPunch(ctx, bad)
	require.NoError(t, err)
	assert.Empty(t, audits)

	punches := postgresql.NewPunchRepository(db)
	latest, err := punches.LatestForEmployee(ctx, bad)
	require.NoError(t, err)
	assert.Nil(t, latest)

	locID := bad
	listed, total, err := punches.List(ctx, punch.PunchFilter{LocationID: &locID, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, listed)
	assert.Zero(t, total)

	employees, err := postgresql.NewEmployeeRepository(db).List(ctx, employee.EmployeeFilter{LocationID: &locID})
	require.NoError(t, err)
	assert.Empty(t, employees)
}
