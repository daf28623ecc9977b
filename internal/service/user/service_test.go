package user

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	u.ID = "user-" + u.Username
	u.Active = true
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	return err == nil, nil
}

func (f *fakeUserRepo) List(context.Context) ([]user.User, error) {
	return f.users, nil
}

func (f *fakeUserRepo) SetActive(_ context.Context, id string, active bool) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Active = active
			return nil
		}
	}
	return user.ErrUserNotFound
}

type fakeLocationRepo struct{}

func (fakeLocationRepo) List(context.Context) ([]location.Location, error) { return nil, nil }

func (fakeLocationRepo) GetByID(_ context.Context, id string) (location.Location, error) {
	if id == "loc-houston" {
		return location.Location{ID: id, Name: "Houston"}, nil
	}
	return location.Location{}, location.ErrLocationNotFound
}

func (fakeLocationRepo) Upsert(_ context.Context, l location.Location) (location.Location, error) {
	return l, nil
}

func newService() (*UserServiceImpl, *fakeUserRepo) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo, fakeLocationRepo{}).(*UserServiceImpl)
	svc.hashCost = bcrypt.MinCost
	return svc, repo
}

func str(s string) *string { return &s }

func TestCreateUser(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	resp, err := svc.CreateUser(ctx, user.CreateUserRequest{
		Username: "houston-super", Password: "s3cret-pass", Role: "supervisor", LocationID: str("loc-houston"),
	})
	require.NoError(t, err)
	assert.Equal(t, "supervisor", resp.Role)
	require.Len(t, repo.users, 1)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[0].PasswordHash), []byte("s3cret-pass")))

	_, err = svc.CreateUser(ctx, user.CreateUserRequest{
		Username: "houston-super", Password: "s3cret-pass", Role: "supervisor", LocationID: str("loc-houston"),
	})
	assert.ErrorIs(t, err, user.ErrUsernameExists)
}

func TestCreateUser_Rules(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, user.CreateUserRequest{Username: "kiosk", Password: "s3cret-pass", Role: "employee"})
	assert.Error(t, err, "non-admin accounts need a location")

	_, err = svc.CreateUser(ctx, user.CreateUserRequest{Username: "kiosk", Password: "s3cret-pass", Role: "employee", LocationID: str("loc-mars")})
	assert.ErrorIs(t, err, location.ErrLocationNotFound)

	admin, err := svc.CreateUser(ctx, user.CreateUserRequest{Username: "boss", Password: "s3cret-pass", Role: "admin", LocationID: str("loc-houston")})
	require.NoError(t, err)
	assert.Nil(t, admin.LocationID)
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "bootstrap-pass"))
	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "other-pass"))

	require.Len(t, repo.users, 1)
	assert.Equal(t, user.RoleAdmin, repo.users[0].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[0].PasswordHash), []byte("bootstrap-pass")))
}

func TestDeactivateUser(t *testing.T) {
	svc, repo := newService()
	repo.users = []user.User{
		{ID: "admin-1", Username: "admin", Role: user.RoleAdmin, Active: true},
		{ID: "kiosk-1", Username: "kiosk", Role: user.RoleEmployee, Active: true},
	}

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{"user_id": "admin-1", "role": "admin"})
	require.NoError(t, err)
	ctx := jwtauth.NewContext(context.Background(), token, nil)

	require.NoError(t, svc.DeactivateUser(ctx, "kiosk-1"))
	assert.False(t, repo.users[1].Active)

	assert.ErrorIs(t, svc.DeactivateUser(ctx, "admin-1"), user.ErrInsufficientPermissions)
	assert.ErrorIs(t, svc.DeactivateUser(ctx, "ghost"), user.ErrUserNotFound)
}
