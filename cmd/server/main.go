package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/mayaandrob/invite-api/internal/config"
	"github.com/mayaandrob/invite-api/internal/handlers"
	"github.com/mayaandrob/invite-api/internal/notifier"
	"github.com/mayaandrob/invite-api/internal/storage"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("component", "server").Logger()

	// Load Configuration
	cfg := config.LoadConfig()

	// Storage backend is picked per request by the selector.
	stores := storage.NewSelector(cfg, log)

	// Host notifications are best effort; a missing configuration just
	// disables the channel.
	var notifiers notifier.Multi
	if email, err := notifier.NewEmailJSNotifier(cfg); err != nil {
		log.Info().Err(err).Msg("email notifier not initialized")
	} else {
		notifiers = append(notifiers, email)
	}
	if discord, err := notifier.NewDiscordNotifier(cfg); err != nil {
		log.Info().Err(err).Msg("discord notifier not initialized")
	} else {
		notifiers = append(notifiers, discord)
	}
	var n notifier.Notifier
	if len(notifiers) > 0 {
		n = notifiers
	}

	rsvpHandler := handlers.NewRSVPHandler(stores, n, log)

	// Serve the landing page only when its assets exist.
	staticDir := cfg.StaticDir
	if info, err := os.Stat(staticDir); err != nil || !info.IsDir() {
		staticDir = ""
	}

	// Initialize Router
	r := chi.NewRouter()
	handlers.RegisterRoutes(r, rsvpHandler, staticDir)

	var handler http.Handler = r
	if cfg.EnableCORS {
		handler = cors.New(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		}).Handler(r)
	}

	// Start Server
	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), handler); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
