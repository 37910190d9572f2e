package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	authdomain "rentit-backend/internal/auth/domain"
	authdto "rentit-backend/internal/auth/dto"
	"rentit-backend/internal/auth/repository"
	"rentit-backend/pkg/apperror"
	"rentit-backend/pkg/logger"
	"rentit-backend/pkg/ratelimit"
	"rentit-backend/pkg/token"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	tokens   token.Service
	limiter  LoginLimiter
	log      *logger.Logger
}

// NewAuthUsecase creates a new instance of authUsecase. limiter may be nil,
// which disables login throttling.
func NewAuthUsecase(userRepo repository.UserRepository, tokens token.Service, limiter LoginLimiter, log *logger.Logger) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		limiter:  limiter,
		log:      log.With("component", "auth"),
	}
}

func (u *authUsecase) Register(ctx context.Context, req *authdto.RegisterRequest) (*authdomain.PublicUser, error) {
	email := normalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)

	existing, err := u.userRepo.FindByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, apperror.Internal("Failed to register user", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("User with email or username already exists")
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal("Failed to register user", err)
	}

	user := &authdomain.User{
		Email:    email,
		Username: username,
		Password: hashedPassword,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, apperror.Conflict("User with email or username already exists")
		}
		return nil, apperror.Internal("Failed to register user", err)
	}

	u.log.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user.Public(), nil
}

func (u *authUsecase) Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, apperror.BadRequest("Email is required")
	}

	if err := u.checkLimiter(ctx, email); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal("Failed to log in", err)
	}
	if user == nil {
		u.recordFailure(ctx, email)
		return nil, apperror.BadRequest("User does not exist")
	}

	if !repository.CheckPasswordHash(req.Password, user.Password) {
		u.recordFailure(ctx, email)
		return nil, apperror.BadRequest("Invalid user credentials")
	}

	if u.limiter != nil {
		if err := u.limiter.Reset(ctx, email); err != nil {
			u.log.WarnContext(ctx, "failed to reset login limiter", "error", err)
		}
	}

	resp, err := u.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	u.log.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return resp, nil
}

func (u *authUsecase) Logout(ctx context.Context, userID string) error {
	if err := u.userRepo.UpdateRefreshToken(ctx, userID, ""); err != nil {
		return apperror.Internal("Failed to log out", err)
	}
	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, refreshToken string) (*authdto.TokenResponse, error) {
	if refreshToken == "" {
		return nil, apperror.Unauthorized("Unauthorized request")
	}

	userID, err := u.tokens.Verify(refreshToken, token.KindRefresh)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid refresh token")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("Failed to refresh token", err)
	}
	if user == nil {
		return nil, apperror.Unauthorized("Invalid refresh token")
	}

	if user.RefreshToken == "" || subtle.ConstantTimeCompare([]byte(user.RefreshToken), []byte(refreshToken)) != 1 {
		return nil, apperror.Unauthorized("Refresh token is expired or used")
	}

	resp, err := u.newTokenPair(user)
	if err != nil {
		return nil, err
	}

	// A concurrent refresh with the same token loses here.
	rotated, err := u.userRepo.RotateRefreshToken(ctx, user.ID, refreshToken, resp.RefreshToken)
	if err != nil {
		return nil, apperror.Internal("Failed to refresh token", err)
	}
	if !rotated {
		return nil, apperror.Unauthorized("Refresh token is expired or used")
	}
	return resp, nil
}

func (u *authUsecase) ChangePassword(ctx context.Context, userID string, req *authdto.ChangePasswordRequest) error {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return apperror.Internal("Failed to change password", err)
	}
	if user == nil {
		return apperror.Unauthorized("Invalid access token")
	}

	if !repository.CheckPasswordHash(req.OldPassword, user.Password) {
		return apperror.BadRequest("Invalid old password")
	}

	hashedPassword, err := repository.HashPassword(req.NewPassword)
	if err != nil {
		return apperror.Internal("Failed to change password", err)
	}

	if err := u.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return apperror.Internal("Failed to change password", err)
	}
	return nil
}

func (u *authUsecase) ValidateToken(ctx context.Context, accessToken string) (*authdomain.PublicUser, error) {
	userID, err := u.tokens.Verify(accessToken, token.KindAccess)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid access token")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("Failed to validate token", err)
	}
	if user == nil {
		return nil, apperror.Unauthorized("Invalid access token")
	}

	return user.Public(), nil
}

// issueSession creates a token pair and makes the refresh token the only
// valid one for the user.
func (u *authUsecase) issueSession(ctx context.Context, user *authdomain.User) (*authdto.TokenResponse, error) {
	resp, err := u.newTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.UpdateRefreshToken(ctx, user.ID, resp.RefreshToken); err != nil {
		return nil, apperror.Internal("Failed to generate tokens", err)
	}
	user.RefreshToken = resp.RefreshToken
	return resp, nil
}

func (u *authUsecase) newTokenPair(user *authdomain.User) (*authdto.TokenResponse, error) {
	accessToken, err := u.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, apperror.Internal("Failed to generate tokens", err)
	}

	refreshToken, err := u.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, apperror.Internal("Failed to generate tokens", err)
	}

	return &authdto.TokenResponse{
		User:         user.Public(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// checkLimiter fails open when the limiter backend is unreachable.
func (u *authUsecase) checkLimiter(ctx context.Context, email string) error {
	if u.limiter == nil {
		return nil
	}

	err := u.limiter.Check(ctx, email)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ratelimit.ErrLimited):
		return apperror.TooManyRequests("Too many failed login attempts. Please try again later.")
	default:
		u.log.WarnContext(ctx, "login limiter unavailable", "error", err)
		return nil
	}
}

func (u *authUsecase) recordFailure(ctx context.Context, email string) {
	if u.limiter == nil {
		return
	}
	if err := u.limiter.Fail(ctx, email); err != nil {
		u.log.WarnContext(ctx, "failed to record login failure", "error", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
