// Package main is the entrypoint for the account email mock API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"

	"github.com/cdlmock/accountapi/internal/account"
	"github.com/cdlmock/accountapi/internal/auth"
	"github.com/cdlmock/accountapi/internal/cache"
	"github.com/cdlmock/accountapi/internal/config"
	"github.com/cdlmock/accountapi/internal/metrics"
	"github.com/cdlmock/accountapi/internal/server"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	if cfg.JWTSecret == "your-secret-key" && cfg.IsProduction() {
		logger.Warn("JWT_SECRET is the built-in demo value")
	}

	deps := server.Deps{
		Config:  cfg,
		Logger:  logger,
		Tokens:  auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL),
		Store:   account.NewMockStore(cfg.MockEmail),
		Metrics: metrics.NewNoop(),
	}

	var cacheClient *cache.Cache
	if cfg.RateLimitEnabled() {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect to Redis",
				slog.String("error", err.Error()),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		deps.Limiter = cacheClient
		deps.Health = cacheClient
		logger.Info("connected to Redis, token endpoint rate limiting enabled")
	}

	srv := server.New(server.NewRouter(deps), server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	if cacheClient != nil {
		srv.OnShutdown("redis", func(context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"token_ttl", auth.FormatTTL(cfg.TokenTTL),
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// redactURL strips the password from a connection URL before logging it.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}
	if parsed.User != nil {
		parsed.User = url.User(parsed.User.Username())
	}
	return parsed.String()
}
