package repository

import (
	"context"

	authdomain "rentit-backend/internal/auth/domain"
)

// UserRepository defines data access for users. Lookups return nil, nil when
// no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *authdomain.User) error
	FindByID(ctx context.Context, id string) (*authdomain.User, error)
	FindByEmail(ctx context.Context, email string) (*authdomain.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*authdomain.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string) error
	// RotateRefreshToken swaps current for next and reports false when the
	// stored token is no longer current.
	RotateRefreshToken(ctx context.Context, userID, current, next string) (bool, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}
