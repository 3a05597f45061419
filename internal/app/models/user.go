package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64     `json:"id" db:"id" example:"1"`                            // Unique identifier for the user
	Username     string    `json:"username" db:"username" example:"jane_doe"`         // Unique username
	Email        *string   `json:"email,omitempty" db:"email"`                        // Optional unique email (nullable)
	Name         string    `json:"name" db:"name" example:"Jane Doe"`                 // Display name
	Password     string    `json:"-" db:"password"`                                   // Current bcrypt hash (excluded from JSON)
	PasswordHash *string   `json:"-" db:"password_hash"`                              // Legacy hash field, read with fallback only
	IsAdmin      bool      `json:"isAdmin" db:"is_admin" example:"false"`             // Whether the user has admin privileges
	ProfileImage *string   `json:"profileImage,omitempty" db:"profile_image"`         // Profile image reference (nullable)
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`                         // Timestamp when the user was created
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`                         // Timestamp when the user was last updated
}

// CredentialHash returns the stored hash, falling back to the legacy field.
// Registration always writes Password; older rows may only carry PasswordHash.
func (u *User) CredentialHash() string {
	if u.Password != "" {
		return u.Password
	}
	if u.PasswordHash != nil {
		return *u.PasswordHash
	}
	return ""
}
