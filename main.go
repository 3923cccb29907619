package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/tasklist/internal/api"
	"github.com/isdelr/tasklist/internal/auth"
	"github.com/isdelr/tasklist/internal/config"
	"github.com/isdelr/tasklist/internal/database"
	"github.com/isdelr/tasklist/internal/logger"
	"github.com/isdelr/tasklist/internal/services"
	"github.com/isdelr/tasklist/internal/web"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel, !cfg.IsProduction())

	if cfg.SecretKey == config.DevSecretKey {
		log.Warn().Msg("SECRET_KEY not set, using the development fallback")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	views, err := web.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load templates")
	}

	// Set up services
	userService := services.NewUserService(db)
	authService := services.NewAuthService(userService, cfg.BcryptCost)
	taskService := services.NewTaskService(db)
	sessions := auth.NewCookieStore(cfg.SecretKey, cfg.SessionTTL, cfg.IsProduction())

	// Set up router
	router := api.NewRouter(api.Deps{
		AuthService:    authService,
		TaskService:    taskService,
		Sessions:       sessions,
		Tokens:         sessions,
		Views:          views,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("env", cfg.Env).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
