package dto

import "github.com/stackit/stackit/internal/app/models"

// UserSummaryResponse is the author summary embedded in question, answer,
// post and comment read models. Its shape is part of the external interface.
type UserSummaryResponse struct {
	ID           int64   `json:"id" example:"1"`
	Username     string  `json:"username" example:"jane_doe"`
	Name         string  `json:"name" example:"Jane Doe"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// UserResponse is the full user read model
type UserResponse struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	Email        *string `json:"email,omitempty"`
	Name         string  `json:"name"`
	IsAdmin      bool    `json:"isAdmin"`
	ProfileImage *string `json:"profileImage,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

// UpdateProfileRequest represents a self-service profile update
type UpdateProfileRequest struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty" binding:"omitempty,email"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// FromUserSummary converts a user model to its author summary shape
func FromUserSummary(user *models.User) *UserSummaryResponse {
	if user == nil {
		return nil
	}
	return &UserSummaryResponse{
		ID:           user.ID,
		Username:     user.Username,
		Name:         user.Name,
		ProfileImage: user.ProfileImage,
	}
}

// FromUser converts a user model to the full read model
func FromUser(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Name:         user.Name,
		IsAdmin:      user.IsAdmin,
		ProfileImage: user.ProfileImage,
		CreatedAt:    user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
