package domain

import "time"

// User is the stored account. Secret fields never leave the service; use
// Public for anything returned to a client.
type User struct {
	ID                      string     `json:"id" gorm:"type:uuid;primaryKey"`
	Email                   string     `json:"email" gorm:"uniqueIndex;not null"`
	Username                string     `json:"username" gorm:"uniqueIndex;not null"`
	Password                string     `json:"-" gorm:"not null"`
	RefreshToken            string     `json:"-" gorm:"not null"`
	IsEmailVerified         bool       `json:"isEmailVerified" gorm:"not null"`
	EmailVerificationToken  *string    `json:"-"`
	EmailVerificationExpiry *time.Time `json:"-"`
	CreatedAt               time.Time  `json:"createdAt"`
	UpdatedAt               time.Time  `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// PublicUser is the sanitized user returned by the API
type PublicUser struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (u *User) Public() *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{
		ID:              u.ID,
		Email:           u.Email,
		Username:        u.Username,
		IsEmailVerified: u.IsEmailVerified,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
