package usecase

import (
	"context"

	authdomain "rentit-backend/internal/auth/domain"
	authdto "rentit-backend/internal/auth/dto"
)

// AuthUsecase defines the account and session flows
type AuthUsecase interface {
	Register(ctx context.Context, req *authdto.RegisterRequest) (*authdomain.PublicUser, error)
	Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	Logout(ctx context.Context, userID string) error
	RefreshToken(ctx context.Context, refreshToken string) (*authdto.TokenResponse, error)
	ChangePassword(ctx context.Context, userID string, req *authdto.ChangePasswordRequest) error
	ValidateToken(ctx context.Context, accessToken string) (*authdomain.PublicUser, error)
}

// LoginLimiter throttles failed logins per email.
type LoginLimiter interface {
	Check(ctx context.Context, identifier string) error
	Fail(ctx context.Context, identifier string) error
	Reset(ctx context.Context, identifier string) error
}
