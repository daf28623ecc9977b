package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
	location.LocationRepository
	hashCost int
}

func NewUserService(userRepository user.UserRepository, locationRepository location.LocationRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository:     userRepository,
		LocationRepository: locationRepository,
		hashCost:           bcrypt.DefaultCost,
	}
}

func (s *UserServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CreateUser implements user.UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	role := user.Role(req.Role)
	locationID := req.LocationID
	if role == user.RoleAdmin {
		locationID = nil
	} else if _, err := s.LocationRepository.GetByID(ctx, *locationID); err != nil {
		return user.UserResponse{}, err
	}

	exists, err := s.UserRepository.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return user.UserResponse{}, err
	}
	if exists {
		return user.UserResponse{}, user.ErrUsernameExists
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, err
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         role,
		LocationID:   locationID,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.InfoContext(ctx, "user created", "user_id", created.ID, "role", created.Role)
	return user.NewUserResponse(created), nil
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u))
	}
	return responses, nil
}

// DeactivateUser implements user.UserService.
func (s *UserServiceImpl) DeactivateUser(ctx context.Context, id string) error {
	caller, err := jwt.CallerFromContext(ctx)
	if err != nil {
		return err
	}
	if caller.UserID == id {
		return user.ErrInsufficientPermissions
	}

	if err := s.UserRepository.SetActive(ctx, id, false); err != nil {
		return err
	}

	slog.InfoContext(ctx, "user deactivated", "user_id", id, "changed_by", caller.UserID)
	return nil
}

// EnsureAdmin implements user.UserService.
func (s *UserServiceImpl) EnsureAdmin(ctx context.Context, username, password string) error {
	exists, err := s.UserRepository.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return err
	}

	admin, err := s.UserRepository.Create(ctx, user.User{
		Username:     username,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	slog.InfoContext(ctx, "bootstrap admin created", "user_id", admin.ID, "username", admin.Username)
	return nil
}
