package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anonto42/orion/backend/internal/repositories"
	"github.com/anonto42/orion/backend/internal/router"
	"github.com/anonto42/orion/backend/internal/services"
	"github.com/anonto42/orion/backend/internal/state"
	"github.com/anonto42/orion/backend/pkg/ai"
	"github.com/anonto42/orion/backend/pkg/config"
	"github.com/anonto42/orion/backend/pkg/events"
	"github.com/anonto42/orion/backend/pkg/firebase"
	"github.com/anonto42/orion/backend/pkg/kvstore"
	"github.com/anonto42/orion/backend/pkg/media"
	"github.com/anonto42/orion/backend/validators"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogger(cfg)

	ctx := context.Background()

	// Durable store for users, posts, reels, notifications and the session token
	kv, err := config.OpenStore(ctx, cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize store")
	}
	defer kv.Close()

	// Stories only live for the lifetime of the process
	sessionKV := kvstore.NewMemoryStore()
	defer sessionKV.Close()

	publisher := setupPublisher(cfg)
	defer publisher.Close()

	collections := repositories.NewCollections(kv)
	userRepo := repositories.NewStoreUserRepository(collections)
	storyRepo := repositories.NewStoreStoryRepository(repositories.NewCollections(sessionKV))

	mediaService := media.NewService(setupUploader(ctx, cfg), nil)
	aiService := ai.NewService(ai.GeminiFactory(cfg.AI.APIKey, cfg.AI.PollInterval))
	if !aiService.Enabled() {
		log.Warn().Msg("GEMINI_API_KEY not set, AI features are disabled")
	}

	store := state.New(state.Deps{
		Auth:          services.NewAuthService(userRepo, repositories.NewStoreSessionRepository(collections)),
		Users:         services.NewUserService(userRepo),
		Posts:         services.NewPostService(repositories.NewStorePostRepository(collections), userRepo, nil),
		Reels:         services.NewReelService(repositories.NewStoreReelRepository(collections), userRepo),
		Notifications: services.NewNotificationService(repositories.NewStoreNotificationRepository(collections), userRepo, publisher, nil),
		Stories:       services.NewStoryService(storyRepo, userRepo, nil),
		Media:         mediaService,
		ShareBaseURL:  cfg.PublicBaseURL,
	})
	if err := store.Init(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to restore session")
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	// Setup global middleware
	config.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, router.Dependencies{
		Store: store,
		Media: mediaService,
		AI:    aiService,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	switch cfg.LogLevel {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// setupPublisher connects to NATS when configured. Notifications still work
// without it; they are just not broadcast.
func setupPublisher(cfg *config.Config) events.Publisher {
	if cfg.NATSURL == "" {
		return events.Noop{}
	}

	publisher, err := events.NewNATSPublisher(events.NATSConfig{
		URL:        cfg.NATSURL,
		ClientName: "orion-api",
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to NATS, notification events disabled")
		return events.Noop{}
	}
	return publisher
}

// setupUploader picks the remote media backend. A nil uploader keeps files local.
func setupUploader(ctx context.Context, cfg *config.Config) media.Uploader {
	switch cfg.Media.Driver {
	case "s3":
		uploader, err := media.NewS3Uploader(ctx, media.S3Config{
			Bucket:        cfg.Media.S3Bucket,
			Region:        cfg.Media.S3Region,
			Endpoint:      cfg.Media.S3Endpoint,
			AccessKey:     cfg.Media.S3AccessKey,
			SecretKey:     cfg.Media.S3SecretKey,
			PublicBaseURL: cfg.Media.S3PublicBaseURL,
		})
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize S3 uploader, keeping media local")
			return nil
		}
		log.Info().Str("bucket", cfg.Media.S3Bucket).Msg("S3 media uploads enabled")
		return uploader
	case "firebase":
		app, err := firebase.InitFirebase(ctx, cfg.Media.FirebaseCredentialsPath, cfg.Media.FirebaseStorageBucket)
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize Firebase, keeping media local")
			return nil
		}
		uploader, err := media.NewFirebaseUploader(app)
		if err != nil {
			log.Error().Err(err).Msg("Failed to open Firebase bucket, keeping media local")
			return nil
		}
		log.Info().Str("bucket", app.Bucket).Msg("Firebase media uploads enabled")
		return uploader
	default:
		log.Info().Msg("Media uploads kept in process memory")
		return nil
	}
}
