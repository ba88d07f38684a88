package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	zlog "github.com/rs/zerolog/log"

	api "github.com/mathiasquintero/Vaporized/api/echo"
	"github.com/mathiasquintero/Vaporized/cache"
	rediscache "github.com/mathiasquintero/Vaporized/cache/redis"
	"github.com/mathiasquintero/Vaporized/config"
	"github.com/mathiasquintero/Vaporized/log"
	"github.com/mathiasquintero/Vaporized/middleware"
	"github.com/mathiasquintero/Vaporized/mongodb"
	"github.com/mathiasquintero/Vaporized/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := log.Setup(cfg.LogLevel, cfg.LogPretty)
	logger.Info().
		Str("http_port", cfg.HTTPPort).
		Str("cache_backend", cfg.CacheBackend).
		Str("mongo_db", cfg.MongoDBName).
		Msg("starting auth server")

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	accounts, err := mongodb.NewAccountRepository(ctx, db)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize account repository")
	}

	backend, err := newCacheBackend(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize cache backend")
	}

	store := cache.NewTokenStore(backend, cfg.RefreshTokenTTL())
	realm := services.NewRealm(store, cfg.AccessTokenTTL())
	sessions := services.NewSessionManager(store, realm, accounts)
	verifier := services.NewBcryptVerifier(accounts, cfg.BcryptCost)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.Auth(sessions))

	authAPI := api.NewAuthAPI(verifier, realm, sessions, cfg.AccessTokenTTL())
	authAPI.RegisterRoutes(e)

	go func() {
		if err := e.Start(":" + cfg.HTTPPort); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
}

func newCacheBackend(ctx context.Context, cfg *config.ServerConfig) (cache.Cache, error) {
	if cfg.CacheBackend == "redis" {
		return rediscache.NewFromURL(ctx, cfg.RedisURL, cfg.RedisKeyPrefix)
	}
	return cache.NewMemoryCache(), nil
}
