package dto

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=30"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Name     string  `json:"name" binding:"required,min=2,max=100"`
	Password string  `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a login request; identifier is username or email
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse represents the token pair returned on login and refresh
type TokenResponse struct {
	AccessToken      string        `json:"accessToken"`
	RefreshToken     string        `json:"refreshToken"`
	ExpiresIn        int           `json:"expiresIn"`
	RefreshExpiresIn int           `json:"refreshExpiresIn"`
	User             *UserResponse `json:"user"`
}
