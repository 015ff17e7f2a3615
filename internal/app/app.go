package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hechonl_backend/database"
	"hechonl_backend/internal/auth"
	"hechonl_backend/internal/config"
	"hechonl_backend/internal/events"
	"hechonl_backend/internal/handlers"
	"hechonl_backend/internal/i18n"
	"hechonl_backend/internal/logger"
	"hechonl_backend/internal/middleware"
	"hechonl_backend/internal/models"
	"hechonl_backend/internal/repositories"
	"hechonl_backend/internal/routes"
	"hechonl_backend/internal/seed"
	"hechonl_backend/internal/services"
	"hechonl_backend/internal/validator"
	"hechonl_backend/internal/workers"
	"hechonl_backend/pkg/apperrors"
	"hechonl_backend/ws"
)

const shutdownTimeout = 10 * time.Second

// Application is the wired server: store, services, background workers and router.
type Application struct {
	Config   *config.Config
	Bus      *events.Bus
	Store    *repositories.Store
	Services *services.ServiceContainer
	Router   *gin.Engine
	Feed     *ws.WebSocketManager

	syncWorker *workers.DirectorySyncWorker
	cancel     context.CancelFunc
}

func Run() {
	if err := config.LoadConfig(); err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(gormDB)
	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}
	logger.Info("Database connected")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := New(ctx, cfg, gormDB)
	if err != nil {
		logger.Fatal("Failed to start application", "error", err)
	}
	defer application.Close()

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(fmt.Sprintf("Server starting on %s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
}

// New wires everything on top of an open, migrated database: optional
// seeding, the first directory load, the sync worker, the change feed and
// the router. Close stops the background goroutines.
func New(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) (*Application, error) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	apperrors.Configure(cfg.Server.Env == "development", middleware.Localize)

	bus := events.NewBus()
	store := repositories.NewStore(gormDB, bus)

	if cfg.Seed.OnStartup {
		result, err := seed.NewSeeder(store).Seed(ctx, cfg.Seed.Force)
		if err != nil {
			bus.Close()
			return nil, fmt.Errorf("failed to seed sample data: %w", err)
		}
		logger.Info("Sample data checked", "loaded", result.Loaded, "skipped", result.Skipped)
	}

	serviceContainer, err := initializeServices(cfg, store)
	if err != nil {
		bus.Close()
		return nil, err
	}
	if err := serviceContainer.DirectoryService.Refresh(ctx); err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to load directory: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	application := &Application{
		Config:   cfg,
		Bus:      bus,
		Store:    store,
		Services: serviceContainer,
		cancel:   cancel,
	}

	if cfg.Directory.SyncOnChange {
		application.syncWorker = workers.NewDirectorySyncWorker(bus, serviceContainer.DirectoryService)
		application.syncWorker.Start(runCtx)
		logger.Info("Directory sync worker started")
	}

	application.Feed = ws.NewWebSocketManager(bus)
	go application.Feed.Run(runCtx)
	wsHandler := ws.NewWebSocketHandler(application.Feed)

	appHandlers := initializeHandlers(serviceContainer, store, bus)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler)
	application.Router = ginRouter

	return application, nil
}

// Close stops the workers and the change feed, then closes the bus.
func (a *Application) Close() {
	a.cancel()
	if a.syncWorker != nil {
		a.syncWorker.Stop()
	}
	a.Bus.Close()
}

func initializeServices(cfg *config.Config, store *repositories.Store) (*services.ServiceContainer, error) {
	hasher, err := auth.NewPasswordHasher(cfg.Auth.PasswordMode)
	if err != nil {
		return nil, err
	}
	if hasher.Mode() == auth.PasswordModePlain {
		logger.Warn("Passwords are stored in plain text (auth.password_mode=plain)")
	}
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	return &services.ServiceContainer{
		AuthService: services.NewAuthService(
			store.Users,
			hasher,
			tokens,
			services.FixedDelay(cfg.Auth.SimulatedLatency),
		),
		DirectoryService: services.NewDirectoryService(
			store.Businesses,
			models.DirectoryFilter(cfg.Directory.DefaultFilter),
		),
	}, nil
}

func initializeHandlers(services *services.ServiceContainer, store *repositories.Store, bus *events.Bus) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator, services.AuthService)

	return &handlers.AppHandlers{
		AuthHandler:      handlers.NewAuthHandler(baseHandler, services.AuthService),
		BusinessHandler:  handlers.NewBusinessHandler(baseHandler, services.DirectoryService),
		DirectoryHandler: handlers.NewDirectoryHandler(baseHandler, services.DirectoryService),
		MetaHandler:      handlers.NewMetaHandler(baseHandler, store, bus),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	fallback, ok := i18n.Parse(cfg.I18n.DefaultLanguage)
	if !ok {
		fallback = i18n.Default
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LocaleMiddleware(fallback))
	return router
}
