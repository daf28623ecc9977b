package jwt

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// CallerFromContext reads the access token claims placed by jwtauth.Verifier.
func CallerFromContext(ctx context.Context) (user.Caller, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Caller{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Caller{}, fmt.Errorf("%w: user_id claim is missing", auth.ErrInvalidToken)
	}

	role, ok := claims["role"].(string)
	if !ok || !user.Role(role).Valid() {
		return user.Caller{}, fmt.Errorf("%w: role claim is missing or invalid", auth.ErrInvalidToken)
	}

	caller := user.Caller{UserID: userID, Role: user.Role(role)}
	if loc, ok := claims["location_id"].(string); ok && loc != "" {
		caller.LocationID = &loc
	}
	return caller, nil
}
