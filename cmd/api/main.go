package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clinova/shift-scheduler/internal/adapters/events"
	"github.com/clinova/shift-scheduler/internal/api/handlers"
	"github.com/clinova/shift-scheduler/internal/api/routes"
	"github.com/clinova/shift-scheduler/internal/application/services"
	"github.com/clinova/shift-scheduler/internal/infrastructure/clients/postgres"
	"github.com/clinova/shift-scheduler/internal/infrastructure/clients/redis"
	"github.com/clinova/shift-scheduler/internal/infrastructure/observability"
	"github.com/clinova/shift-scheduler/internal/storage"
	"github.com/clinova/shift-scheduler/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("shift-scheduler", cfg.Environment)
	logger := observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the collection store for the configured backend
	var (
		store       storage.Store
		redisClient *redis.Client
	)
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		store = storage.NewMemoryStore()
		logger.Info().Msg("using in-memory collection store")

	case config.StoreBackendFile:
		fileStore, err := storage.NewFileStore(cfg.Store.DataDir)
		if err != nil {
			logger.Fatal().Err(err).Str("dir", cfg.Store.DataDir).Msg("failed to initialize file store")
		}
		store = fileStore
		logger.Info().Str("dir", cfg.Store.DataDir).Msg("using file collection store")

	case config.StoreBackendRedis:
		redisClient, err = redis.NewClient(&cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize Redis client")
		}
		store = storage.NewRedisStore(redisClient)
		logger.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("using Redis collection store")

	case config.StoreBackendPostgres:
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
		}
		defer pgClient.Close()
		store, err = storage.NewPostgresStore(ctx, pgClient)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL store")
		}
		logger.Info().Str("database", cfg.Database.Database).Msg("using PostgreSQL collection store")

	default:
		logger.Fatal().Str("backend", cfg.Store.Backend).Msg("unknown store backend")
	}

	// Initialize event bus for schedule-change notifications
	var eventBus *events.RedisEventBus
	if cfg.Events.Enabled {
		if redisClient == nil {
			redisClient, err = redis.NewClient(&cfg.Redis)
			if err != nil {
				logger.Warn().Err(err).Msg("events enabled but Redis unavailable; continuing without event bus")
			}
		}
		if redisClient != nil {
			eventBus = events.NewRedisEventBus(redisClient)
			logger.Info().Str("channel", cfg.Events.Channel).Msg("event bus initialized")
		}
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Services take the publisher as an interface; a typed nil would not be nil
	// behind the interface, so only assign when the bus exists.
	var publisher services.EventPublisher
	if eventBus != nil {
		publisher = eventBus
	}

	// Initialize services
	directoryService := services.NewDirectoryService(store)
	calendarService := services.NewCalendarService(store)
	shiftService := services.NewShiftService(store, directoryService, publisher, cfg.Events.Channel)
	reassignmentService := services.NewReassignmentService(store, directoryService, publisher, cfg.Events.Channel)
	appointmentService := services.NewAppointmentService(store, directoryService, publisher, cfg.Events.Channel)

	// Warm the directory so first-run seeding happens before traffic arrives
	if cfg.Seed.Enabled {
		if _, err := directoryService.ListProfessionals(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to warm professional directory")
		}
	}

	// Start the notification listener when the bus is available
	if eventBus != nil {
		notificationService := services.NewNotificationService(eventBus, cfg.Events.Channel, *logger)
		go func() {
			if err := notificationService.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error().Err(err).Msg("notification listener stopped")
			}
		}()
	}

	// Initialize handlers
	professionalHandler := handlers.NewProfessionalHandler(directoryService)
	scheduleHandler := handlers.NewScheduleHandler(calendarService, shiftService, reassignmentService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)

	// Set up router
	router := routes.NewRouter(professionalHandler, scheduleHandler, appointmentHandler, cfg.Server.AllowedOrigins, *logger)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			logger.Error().Err(err).Msg("error closing event bus")
		}
	}

	logger.Info().Msg("server stopped")
}
