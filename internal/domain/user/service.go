package user

import "context"

type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	ListUsers(ctx context.Context) ([]UserResponse, error)
	DeactivateUser(ctx context.Context, id string) error

	// EnsureAdmin creates the bootstrap admin when no user has that username
	EnsureAdmin(ctx context.Context, username, password string) error
}
