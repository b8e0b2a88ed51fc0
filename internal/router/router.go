package router

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/anonto42/orion/backend/internal/handlers"
	"github.com/anonto42/orion/backend/internal/middleware"
	"github.com/anonto42/orion/backend/internal/state"
	"github.com/anonto42/orion/backend/pkg/ai"
	"github.com/anonto42/orion/backend/pkg/media"
)

// Dependencies are the long-lived components the handlers dispatch to.
type Dependencies struct {
	Store *state.Store
	Media *media.Service
	AI    *ai.Service
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Unprotected routes ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(deps.Store)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Info().Msg("Auth routes configured.")

	mediaHandler := handlers.NewMediaHandler(deps.Media)
	mediaHandler.RegisterPublicMediaRoutes(e.Group("/api/v1"))

	// --- Protected routes (require a signed-in session) ---
	api := e.Group("/api/v1")
	api.Use(middleware.SessionMiddleware(deps.Store))
	log.Info().Msg("Session middleware applied to /api/v1 group.")

	userHandler := handlers.NewUserHandler(deps.Store)
	userHandler.RegisterProfileRoutes(api)
	log.Info().Msg("User profile routes configured.")

	followHandler := handlers.NewFollowHandler(deps.Store)
	followHandler.RegisterFollowRoutes(api)
	log.Info().Msg("Follow routes configured.")

	feedHandler := handlers.NewFeedHandler(deps.Store)
	feedHandler.RegisterFeedRoutes(api)
	log.Info().Msg("Feed routes configured.")

	postHandler := handlers.NewPostHandler(deps.Store)
	postHandler.RegisterPostRoutes(api)
	log.Info().Msg("Post routes configured.")

	reelHandler := handlers.NewReelHandler(deps.Store)
	reelHandler.RegisterReelRoutes(api)
	log.Info().Msg("Reel routes configured.")

	storyHandler := handlers.NewStoryHandler(deps.Store)
	storyHandler.RegisterStoryRoutes(api)
	log.Info().Msg("Story routes configured.")

	notificationHandler := handlers.NewNotificationHandler(deps.Store)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Info().Msg("Notification routes configured.")

	mediaHandler.RegisterMediaRoutes(api)
	log.Info().Msg("Media routes configured.")

	aiHandler := handlers.NewAIHandler(deps.AI)
	aiHandler.RegisterAIRoutes(api)
	log.Info().Msg("AI routes configured.")

	log.Info().Msg("All routes configured.")
}
