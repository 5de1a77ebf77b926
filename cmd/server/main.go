package main

import (
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/campus-buzz/campus-events-api/internal/auth"
	"github.com/campus-buzz/campus-events-api/internal/config"
	"github.com/campus-buzz/campus-events-api/internal/database"
	"github.com/campus-buzz/campus-events-api/internal/handlers"
	"github.com/campus-buzz/campus-events-api/internal/notifier"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()
	logger := config.NewLogger(cfg)

	// Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}

	// Optional Discord announcements
	var announcer notifier.Notifier
	if cfg.DiscordBotToken != "" && cfg.DiscordAnnouncementsChannelID != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			logger.Warn().Err(err).Msg("discord notifier not initialized")
		} else {
			announcer = notifier.NewDiscordNotifier(session, cfg.DiscordAnnouncementsChannelID)
		}
	}

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, db)
	eventsHandler := handlers.NewEventsHandler(db, authHandler)
	registrationHandler := handlers.NewRegistrationHandler(db, announcer, authHandler)
	adminHandler := handlers.NewAdminHandler(db, authHandler)
	apiKeyHandler := handlers.NewAPIKeyHandler(db, authHandler)

	// Initialize Router
	r := chi.NewRouter()
	handlers.RegisterRoutes(r, cfg, authHandler, eventsHandler, registrationHandler, adminHandler, apiKeyHandler)

	// Start Server
	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
