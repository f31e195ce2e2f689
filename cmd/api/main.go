package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/promosynch/promosynch-api/internal/api"
	"github.com/promosynch/promosynch-api/internal/infrastructure/config"
	mongodb "github.com/promosynch/promosynch-api/internal/infrastructure/db/mongo"
	redisdb "github.com/promosynch/promosynch-api/internal/infrastructure/db/redis"
	"github.com/promosynch/promosynch-api/internal/infrastructure/email"
	"github.com/promosynch/promosynch-api/internal/infrastructure/oauth"
	miniostore "github.com/promosynch/promosynch-api/internal/infrastructure/storage/minio"
	"github.com/promosynch/promosynch-api/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not configured yet; nothing better than stderr here.
		panic(err)
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// The database is a hard dependency: fail fast when unreachable.
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	media, err := miniostore.NewClient(ctx, miniostore.Config{
		Endpoint:      cfg.Media.Endpoint,
		AccessKey:     cfg.Media.AccessKey,
		SecretKey:     cfg.Media.SecretKey,
		UseSSL:        cfg.Media.UseSSL,
		Bucket:        cfg.Media.Bucket,
		PublicBaseURL: cfg.Media.PublicBaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("media storage initialization failed")
	}

	google := oauth.NewGoogleProvider(
		cfg.Google.ClientID,
		cfg.Google.ClientSecret,
		cfg.BackendEndpoint+"/promoters/oauth-callback",
	)

	e := api.NewRouter(api.Dependencies{
		Mongo:       db,
		Redis:       rdb,
		Media:       media,
		Mailer:      email.NewBrevoMailer(cfg.Email.BrevoAPIKey),
		Google:      google,
		JWTSecret:   cfg.JWTSecret,
		FrontendURL: cfg.FrontendEndpoint,
		Log:         log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
