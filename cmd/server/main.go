package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/socialdash/dashboard-api/docs"
	"github.com/socialdash/dashboard-api/internal/api"
	"github.com/socialdash/dashboard-api/internal/infrastructure/config"
	mongodb "github.com/socialdash/dashboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/socialdash/dashboard-api/internal/infrastructure/db/redis"
	"github.com/socialdash/dashboard-api/internal/infrastructure/google"
	"github.com/socialdash/dashboard-api/internal/infrastructure/imagehost"
	"github.com/socialdash/dashboard-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title			Social Dashboard API
// @version		1.0
// @description	Authentication, federated login and post feed API for the social media dashboard.
// @BasePath		/api
//
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	_ = godotenv.Load()

	env := os.Getenv("ENV")
	log := logger.Init(logger.Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: env == "" || env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load(ctx, log)

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()

	// Uniqueness of email, username and googleId is enforced at the index
	// level, so the service must not come up without them.
	if err := mongodb.EnsureIndexes(ctx, db, cfg.Mongo.UsersCollection, cfg.Mongo.PostsCollection); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure mongodb indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	verifier, err := google.NewVerifier(ctx, cfg.Google.ClientID)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise google verifier")
	}

	uploader, err := imagehost.NewClient(imagehost.Config{
		Endpoint: cfg.Upload.Endpoint,
		Preset:   cfg.Upload.Preset,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise image host client")
	}

	e := api.NewRouter(db, rdb, cfg, verifier, uploader, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
