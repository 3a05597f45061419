package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/stackit/stackit/docs" // Import generated swagger docs
	appControllers "github.com/stackit/stackit/internal/app/controllers"
	appMigrations "github.com/stackit/stackit/internal/app/migrations"
	appRepos "github.com/stackit/stackit/internal/app/repositories"
	appRoutes "github.com/stackit/stackit/internal/app/routes"
	appServices "github.com/stackit/stackit/internal/app/services"
	"github.com/stackit/stackit/internal/config"
	"github.com/stackit/stackit/internal/db"
	appMiddleware "github.com/stackit/stackit/internal/middleware"
	"github.com/stackit/stackit/internal/pkg/assistant"
	pkgAuth "github.com/stackit/stackit/internal/pkg/auth"
	"github.com/stackit/stackit/internal/pkg/filestorage"
	"github.com/stackit/stackit/internal/pkg/helpers"
	"github.com/stackit/stackit/internal/pkg/logger"
	"github.com/stackit/stackit/internal/pkg/websocket"
	"github.com/stackit/stackit/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         appServices.AuthService
	QuestionService     appServices.QuestionService
	AnswerService       appServices.AnswerService
	VoteService         appServices.VoteService
	PostService         appServices.PostService
	NotificationService appServices.NotificationService
	AdminService        appServices.AdminService
	ChatService         appServices.ChatService

	AuthController         *appControllers.AuthController
	QuestionController     *appControllers.QuestionController
	AnswerController       *appControllers.AnswerController
	VoteController         *appControllers.VoteController
	PostController         *appControllers.PostController
	NotificationController *appControllers.NotificationController
	AdminController        *appControllers.AdminController
	ChatController         *appControllers.ChatController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Logger         zerolog.Logger
	FileStorage    *filestorage.LocalStorage
	Assistant      *assistant.Client
	WSHub          *websocket.Hub
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// File storage base URL must match the static file serving path
	var err error
	baseURL := "http://localhost:" + cfg.Server.Port
	fileStorageBaseURL := baseURL + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Assistant = assistant.NewClient(assistant.Config{
		BaseURL: cfg.Assistant.BaseURL,
		APIKey:  cfg.Assistant.APIKey,
		Model:   cfg.Assistant.Model,
		Timeout: helpers.ParseDuration(cfg.Assistant.Timeout, 30*time.Second),
	}, lgr)

	deps.WSHub = websocket.NewHub(lgr)
	go deps.WSHub.Run()

	// Initialize services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)
	deps.QuestionService = appServices.NewQuestionService(deps.Repos.QuestionRepository, lgr)
	deps.AnswerService = appServices.NewAnswerService(
		deps.Repos.AnswerRepository,
		deps.Repos.QuestionRepository,
		deps.Repos.UserRepository,
		deps.Repos.NotificationRepository,
		deps.WSHub,
		lgr,
	)
	deps.VoteService = appServices.NewVoteService(deps.Repos.VoteRepository, lgr)
	deps.PostService = appServices.NewPostService(deps.Repos.PostRepository, deps.Repos.UserRepository, deps.FileStorage, lgr)
	deps.NotificationService = appServices.NewNotificationService(deps.Repos.NotificationRepository, lgr)
	deps.AdminService = appServices.NewAdminService(
		deps.Repos.AdminRepository,
		deps.Repos.UserRepository,
		deps.Repos.QuestionRepository,
		deps.Repos.AnswerRepository,
		deps.Repos.PostRepository,
		lgr,
	)
	deps.ChatService = appServices.NewChatService(deps.Assistant, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	// Initialize controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.QuestionController = appControllers.NewQuestionController(deps.QuestionService)
	deps.AnswerController = appControllers.NewAnswerController(deps.AnswerService)
	deps.VoteController = appControllers.NewVoteController(deps.VoteService)
	deps.PostController = appControllers.NewPostController(deps.PostService)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService, lgr)
	deps.ChatController = appControllers.NewChatController(deps.ChatService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.CORS())

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.QuestionController,
		deps.AnswerController,
		deps.VoteController,
		deps.PostController,
		deps.NotificationController,
		deps.AdminController,
		deps.ChatController,
		deps.AuthMiddleware,
		deps.WSHub,
		lgr,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
