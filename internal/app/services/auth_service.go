package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/stackit/stackit/internal/app/models"
	"github.com/stackit/stackit/internal/app/models/dto"
	"github.com/stackit/stackit/internal/app/repositories"
	"github.com/stackit/stackit/internal/pkg/apperrors"
	"github.com/stackit/stackit/internal/pkg/auth"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID int64) error
	GetCurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo   *repositories.UserRepository
	tokenRepo  *repositories.TokenRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new account and returns a token pair for it
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Name:     req.Name,
		Password: hashed,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrUsernameAlreadyExists) || errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("username", req.Username).Msg("Failed to create user")
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("User registered")

	return s.issueTokens(ctx, user)
}

// Login verifies credentials and returns a token pair. The identifier may be
// a username or an email; a wrong identifier and a wrong password produce the
// same error so the response does not leak which accounts exist.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByIdentifier(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Msg("Failed to look up user for login")
		return nil, err
	}

	if !auth.CheckPassword(user.CredentialHash(), req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")

	return s.issueTokens(ctx, user)
}

// RefreshToken exchanges a valid refresh token for a fresh pair. The used
// token is revoked so each refresh token works exactly once.
func (s *authServiceImpl) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	userID, err := s.tokenRepo.GetTokenUserID(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.RevokeToken(ctx, req.RefreshToken); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to revoke used refresh token")
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes all active refresh tokens for the user
func (s *authServiceImpl) Logout(ctx context.Context, userID int64) error {
	return s.tokenRepo.RevokeAllUserTokens(ctx, userID)
}

// GetCurrentUser returns the authenticated user's profile
func (s *authServiceImpl) GetCurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return dto.FromUser(user), nil
}

// UpdateProfile updates the authenticated user's mutable fields
func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := user.Name
	if req.Name != nil {
		name = *req.Name
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, name, req.Email, req.ProfileImage); err != nil {
		return nil, err
	}

	updated, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return dto.FromUser(updated), nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate token pair")
		return nil, err
	}

	err = s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry())
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to store refresh token")
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		User:             dto.FromUser(user),
	}, nil
}
