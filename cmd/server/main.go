package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/lukec11/steve/internal/api"
	"github.com/lukec11/steve/internal/config"
	"github.com/lukec11/steve/internal/handlers"
	"github.com/lukec11/steve/internal/identity"
	"github.com/lukec11/steve/internal/mcstatus"
	"github.com/lukec11/steve/internal/message"
	"github.com/lukec11/steve/internal/nickstore"
	"github.com/lukec11/steve/internal/serverlist"
	"github.com/lukec11/steve/internal/slackbot"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	ctx := context.Background()
	checks := make(map[string]handlers.HealthCheck)

	// Nickname store: HTTP service when configured, HCCore files otherwise
	var nicks nickstore.Store
	if cfg.NicknameURL != "" {
		httpStore := nickstore.NewHTTPStore(cfg.NicknameURL, cfg.QueryTimeout)
		nicks = httpStore
		checks["nickstore"] = httpStore.Ping
		logger.Info().Str("url", cfg.NicknameURL).Msg("using HTTP nickname store")
	} else {
		fileStore := nickstore.NewFileStore(cfg.NicknameDir)
		nicks = fileStore
		checks["nickstore"] = fileStore.Ping
		logger.Info().Str("dir", cfg.NicknameDir).Msg("using file nickname store")
	}

	// UUID lookup cache: Redis when configured, in-memory otherwise
	var cache identity.UUIDCache
	if cfg.RedisURL != "" {
		redisCache, err := identity.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		defer redisCache.Close()
		cache = redisCache
		checks["redis"] = redisCache.Ping
		logger.Info().Msg("connected to Redis")
	} else {
		cache = identity.NewMemoryCache()
	}

	mojang := identity.NewMojangClient(cfg.MojangBaseURL, cfg.QueryTimeout)
	resolver := identity.NewResolver(mojang, nicks, cache, identity.DefaultCensorRules, logger)

	pinger := mcstatus.NewPinger(cfg.QueryTimeout)
	servers := func() ([]serverlist.ServerConfig, error) {
		return serverlist.Load(cfg.ServersFile)
	}
	builder := message.NewBuilder(pinger, resolver, servers, logger)

	slackClient := slackbot.NewClient(cfg.SlackBotToken, cfg.SlackTimeout)
	deliverer := slackbot.NewDeliverer(slackClient, cfg.BotUserID, logger)

	h := handlers.NewHandler(cfg, builder, deliverer, slackClient, checks, logger)
	router := api.NewRouter(logger, h)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Msg("starting steve")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	// Graceful shutdown with 30 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}
