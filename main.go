package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lmercadier/devfeed-be/internal/api"
	"github.com/lmercadier/devfeed-be/internal/auth"
	"github.com/lmercadier/devfeed-be/internal/config"
	"github.com/lmercadier/devfeed-be/internal/database"
	"github.com/lmercadier/devfeed-be/internal/logger"
	"github.com/lmercadier/devfeed-be/internal/monitoring"
	"github.com/lmercadier/devfeed-be/internal/services"
	"github.com/lmercadier/devfeed-be/internal/store"
	"github.com/lmercadier/devfeed-be/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}
	if err := database.Seed(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed themes")
	}

	// Set up stores
	users := store.NewUserStore(db)
	themes := store.NewThemeStore(db)
	follows := store.NewFollowStore(db)
	articles := store.NewArticleStore(db)
	comments := store.NewCommentStore(db)
	events := store.NewEventStore(db)

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	tokens := auth.NewTokens([]byte(cfg.JWTSecret), cfg.JWTTTL)
	eventService := services.NewEventService(events, hub)
	identityService := services.NewIdentityService(users, themes, follows, tokens, eventService)
	themeService := services.NewThemeService(themes)
	contentService := services.NewContentService(articles, themes, follows, eventService)
	commentService := services.NewCommentService(comments, articles)

	// Set up and run the background activity digest
	digest, err := monitoring.NewDigest(cfg.DigestCron, users, articles, comments, follows, eventService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize activity digest")
	}
	go digest.Run()

	// Set up router
	router := api.NewRouter(hub, tokens, identityService, themeService, contentService, commentService, eventService, cfg.CORSOrigin)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	digest.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
