package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"puskesmas-frontdesk/config"
	deliveryHttp "puskesmas-frontdesk/internal/delivery/http"
	"puskesmas-frontdesk/internal/delivery/http/handler"
	"puskesmas-frontdesk/internal/delivery/http/middleware"
	"puskesmas-frontdesk/internal/infrastructure/assistant"
	"puskesmas-frontdesk/internal/infrastructure/cache"
	"puskesmas-frontdesk/internal/infrastructure/database"
	"puskesmas-frontdesk/internal/repository"
	"puskesmas-frontdesk/internal/service"
	"puskesmas-frontdesk/internal/usecase"
	"puskesmas-frontdesk/pkg/session"
	"puskesmas-frontdesk/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config       *config.Config
	DB           *gorm.DB
	RedisClient  *redis.Client
	Sessions     *session.Store
	QueueCounter *service.QueueCounterService
	Server       *http.Server
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
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Session store lives for the process lifetime and is torn down on
	// shutdown.
	app.Sessions = session.NewStore()

	// Initialize all layers
	server := app.initializeServer(cfg, db, redisClient)
	app.Server = server

	// Seed queue counters before accepting traffic
	syncCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.QueueCounter.SyncOnStartup(syncCtx); err != nil {
		return nil, fmt.Errorf("failed to seed queue counters: %w", err)
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	poliRepo := repository.NewPoliRepository()
	jadwalRepo := repository.NewJadwalDokterRepository()
	antreanRepo := repository.NewAntreanRepository()
	auditRepo := repository.NewAuditLogRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	auditService := service.NewAuditService(db, log, auditRepo)
	queueCounter := service.NewQueueCounterService(db, redisClient, log, antreanRepo)
	app.QueueCounter = queueCounter
	assistantClient := assistant.NewClient(cfg.Assistant, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, app.Sessions, auditService)
	poliUsecase := usecase.NewPoliUsecase(db, log, poliRepo, jadwalRepo, antreanRepo, auditService)
	antreanUsecase := usecase.NewAntreanUsecase(db, log, poliRepo, antreanRepo, queueCounter, auditService)
	chatUsecase := usecase.NewChatUsecase(db, log, poliRepo, jadwalRepo, antreanRepo, assistantClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	poliHandler := handler.NewPoliHandler(poliUsecase)
	antreanHandler := handler.NewAntreanHandler(antreanUsecase, customValidator)
	chatHandler := handler.NewChatHandler(chatUsecase)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(db, log, app.Sessions, userRepo)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, poliHandler, antreanHandler, chatHandler, sessionMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
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

	// Close connections and background services
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, sessions, services)
func (app *App) Close() {
	if app.QueueCounter != nil {
		app.QueueCounter.Stop()
	}

	if app.Sessions != nil {
		app.Sessions.Close()
	}

	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
