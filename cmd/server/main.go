package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/educonnect-backend/internal/config"
	"github.com/stemsi/educonnect-backend/internal/database"
	"github.com/stemsi/educonnect-backend/internal/dataset"
	"github.com/stemsi/educonnect-backend/internal/dispatch"
	"github.com/stemsi/educonnect-backend/internal/handler"
	"github.com/stemsi/educonnect-backend/internal/logger"
	"github.com/stemsi/educonnect-backend/internal/middleware"
	"github.com/stemsi/educonnect-backend/internal/repository"
	"github.com/stemsi/educonnect-backend/internal/router"
	"github.com/stemsi/educonnect-backend/internal/service"
	"github.com/stemsi/educonnect-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	host, _ := os.Hostname()
	log = logger.WithRollbar(log, cfg.RollbarToken, cfg.AppEnv, host)
	defer logger.FlushRollbar()

	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("dispatch_driver", cfg.DispatchDriver).
		Msg("Starting EduConnect Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Load Dataset ──────────────────────────────────────────────────
	ds, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatasetPath).Msg("Failed to load dataset")
	}
	log.Info().
		Int("students", len(ds.Students())).
		Int("events", len(ds.Events())).
		Int("templates", len(ds.Templates())).
		Msg("Dataset loaded")

	loc, err := cfg.Location()
	if err != nil {
		log.Warn().Err(err).Str("timezone", cfg.SchoolTimezone).Msg("Unknown school timezone, using UTC")
	}

	// ─── Connect to Redis (optional) ───────────────────────────────────
	var rdb *redis.Client
	var dispatchLimiter middleware.Limiter
	if cfg.RedisURL != "" {
		rdb, err = database.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		dispatchLimiter = middleware.NewRedisRateLimiter(rdb, cfg.DispatchRateLimit, time.Minute)
	} else {
		dispatchLimiter = middleware.NewRateLimiter(cfg.DispatchRateLimit, time.Minute)
	}

	// ─── Initialize Dispatcher ─────────────────────────────────────────
	dispatcher, err := dispatch.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure dispatcher")
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	eventRepo := repository.NewEventRepository(ds.Events())
	classRepo := repository.NewClassRepository()
	deliveryRepo := repository.NewDeliveryRepository(repository.DefaultDeliveryHistory)
	settingRepo := repository.NewSettingRepository()

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(log)
	datasetService := service.NewDatasetService(ds)
	calendarService := service.NewCalendarService(eventRepo, loc, log)
	classService := service.NewClassService(ds, classRepo, log)
	messagingService := service.NewMessagingService(
		ds, dispatcher, deliveryRepo,
		service.School{Name: cfg.SchoolName, System: cfg.SchoolSystem},
		loc, log,
	)
	settingService := service.NewSettingService(settingRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Dataset:  handler.NewDatasetHandler(datasetService),
		Calendar: handler.NewCalendarHandler(calendarService),
		Class:    handler.NewClassHandler(classService, log),
		Message:  handler.NewMessageHandler(messagingService),
		Setting:  handler.NewSettingHandler(settingService),
		System:   handler.NewSystemHandler(rdb, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, dispatchLimiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
