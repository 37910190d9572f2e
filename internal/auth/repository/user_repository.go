package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	authdomain "rentit-backend/internal/auth/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrDuplicateUser is returned by Create when the email or username is taken.
var ErrDuplicateUser = errors.New("user already exists")

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *authdomain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*authdomain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*authdomain.User, error) {
	return r.first(ctx, "email = ? OR username = ?", email, username)
}

func (r *userRepository) first(ctx context.Context, query string, args ...any) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string) error {
	return r.updateColumns(ctx, userID, map[string]any{
		"refresh_token": refreshToken,
		"updated_at":    time.Now(),
	})
}

func (r *userRepository) RotateRefreshToken(ctx context.Context, userID, current, next string) (bool, error) {
	if current == "" {
		return false, nil
	}

	result := r.db.WithContext(ctx).
		Model(&authdomain.User{}).
		Where("id = ? AND refresh_token = ?", userID, current).
		Updates(map[string]any{
			"refresh_token": next,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to rotate refresh token: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return r.updateColumns(ctx, userID, map[string]any{
		"password":   passwordHash,
		"updated_at": time.Now(),
	})
}

func (r *userRepository) updateColumns(ctx context.Context, userID string, columns map[string]any) error {
	err := r.db.WithContext(ctx).
		Model(&authdomain.User{}).
		Where("id = ?", userID).
		Updates(columns).Error
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
