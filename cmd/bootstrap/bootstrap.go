package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doctor-portal/config"
	deliveryHttp "doctor-portal/internal/delivery/http"
	"doctor-portal/internal/delivery/http/handler"
	"doctor-portal/internal/delivery/http/middleware"
	"doctor-portal/internal/infrastructure/cache"
	"doctor-portal/internal/infrastructure/database"
	"doctor-portal/internal/infrastructure/storage"
	"doctor-portal/internal/repository"
	"doctor-portal/internal/service"
	"doctor-portal/internal/usecase"
	"doctor-portal/pkg/jwt"
	"doctor-portal/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server

	// stops background workers such as the rate limiter cleanup
	cancel context.CancelFunc
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(db, logrus.StandardLogger()); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Initialize Redis
	var sessionStore cache.SessionStore
	if cfg.Session.Store == "memory" {
		sessionStore = cache.NewMemorySessionStore()
		logrus.Warn("Using in-memory session store; sessions are lost on restart")
	} else {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		sessionStore = cache.NewRedisSessionStore(redisClient)
		logrus.Info("Redis connected successfully")
	}

	// Initialize all layers
	ctx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel
	app.Server = initializeServer(ctx, cfg, db, sessionStore)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(ctx context.Context, cfg *config.Config, db *gorm.DB, sessionStore cache.SessionStore) *http.Server {
	production := cfg.App.IsProduction()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.Session.Secret)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	accountRepo := repository.NewAccountRepository()
	profileRepo := repository.NewDoctorProfileRepository()
	recordRepo := repository.NewDoctorRecordRepository()
	hoursRepo := repository.NewBusinessHoursRepository()
	sessionRepo := repository.NewSessionRepository()

	// Initialize infrastructure services
	uploadFs := afero.NewBasePathFs(afero.NewOsFs(), cfg.Upload.Root)
	fileStore := storage.NewDiskFileStore(uploadFs)

	sessionService := service.NewSessionService(db, log, jwtService, sessionStore, sessionRepo, cfg.Session, production)
	auditService := service.NewAuditService(log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, customValidator, accountRepo, sessionService, auditService)
	settingsUsecase := usecase.NewProfileSettingsUsecase(
		db, log, customValidator,
		accountRepo, profileRepo, recordRepo, hoursRepo,
		fileStore, sessionService, auditService,
		cfg.Upload.MaxImageSize,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, sessionService, production)
	profileSettingsHandler := handler.NewProfileSettingsHandler(settingsUsecase, cfg.Upload.MaxImageSize, production)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(sessionService, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.CORS.AllowedOrigin)
	rateLimiter := middleware.NewIPRateLimiter(ctx, rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, profileSettingsHandler, authMiddleware, corsMiddleware, rateLimiter, cfg.RateLimit.TrustProxy)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops background workers and closes all connections
func (app *App) Close() {
	if app.cancel != nil {
		app.cancel()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
