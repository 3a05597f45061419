package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/stackit/stackit/internal/app/models"
	appRepos "github.com/stackit/stackit/internal/app/repositories"
	"github.com/stackit/stackit/internal/pkg/apperrors"
	"github.com/stackit/stackit/internal/pkg/auth"
)

// Default credentials for the bootstrap admin account. The password can be
// overridden with SEED_ADMIN_PASSWORD; change it after first login either way.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// CreateDefaultData creates the initial admin account if no account with the
// admin username exists yet. Startup proceeds even when seeding fails.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.UsernameExists(ctx, defaultAdminUsername)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for existing admin account")
		return err
	}
	if exists {
		lgr.Debug().Str("username", defaultAdminUsername).Msg("Admin account already present, skipping seed")
		return nil
	}

	password := defaultAdminPassword
	if v := os.Getenv("SEED_ADMIN_PASSWORD"); v != "" {
		password = v
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing seed admin password")
		return err
	}

	admin := &appModels.User{
		Username: defaultAdminUsername,
		Name:     "Administrator",
		Password: hashed,
		IsAdmin:  true,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		// A concurrent instance may have seeded first
		if errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating seed admin account")
		return err
	}

	lgr.Info().Str("username", defaultAdminUsername).Msg("Seeded initial admin account")
	return nil
}
