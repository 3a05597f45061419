package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/stackit/stackit/internal/pkg/logger"
	"github.com/stackit/stackit/internal/server"
)

// @title StackIt API
// @version 1.0
// @description API for the StackIt Q&A and community platform
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@stackit.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, using system environment")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
