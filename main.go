package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/danielhkuo/lotto-hub/auth"
	"github.com/danielhkuo/lotto-hub/cliparse"
	"github.com/danielhkuo/lotto-hub/db"
	"github.com/danielhkuo/lotto-hub/hub"
	"github.com/danielhkuo/lotto-hub/middleware"
	"github.com/danielhkuo/lotto-hub/router"
	"github.com/danielhkuo/lotto-hub/store"
)

func main() {
	var err error

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment")
	}
	setupLogger()

	if len(os.Args) > 1 && os.Args[1] == "token" {
		issueToken(os.Args[2:])
		return
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	settingsManager := cliparse.NewSettingsManager(cfg.SettingsFile)
	settings, err := settingsManager.Load()
	if err != nil {
		slog.Error("settings load failed", "error", err)
		os.Exit(1)
	}

	// Open storage backend
	backend, err := openStore(cfg, settings)
	if err != nil {
		slog.Error("store open failed", "store", cfg.StoreType, "error", err)
		os.Exit(1)
	}
	defer backend.Close()
	slog.Info("Store ready", "store", cfg.StoreType)

	loc, _ := cfg.Location()
	svc := hub.New(backend, hub.Options{
		Location:  loc,
		Retention: retentionFrom(settings),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := svc.Load(ctx); err != nil {
		slog.Error("hub load failed", "error", err)
		os.Exit(1)
	}
	if _, err := svc.Purge(ctx); err != nil {
		slog.Warn("startup purge failed", "error", err)
	}

	settingsManager.Watch(func(s *cliparse.Settings) {
		svc.SetRetention(retentionFrom(s))
	})
	if settings.Retention.SweepInterval > 0 {
		go svc.RunSweeper(ctx, settings.Retention.SweepInterval)
	}

	// Create router
	mux := router.NewRouter(svc, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "timezone", loc.String())
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// setupLogger writes text logs to terminals and JSON everywhere else.
func setupLogger() {
	var handler slog.Handler
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		handler = slog.NewTextHandler(os.Stdout, nil)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}

func issueToken(args []string) {
	req, err := cliparse.ParseTokenFlags(args)
	if err != nil {
		slog.Error("Error parsing token flags", "error", err)
		os.Exit(1)
	}

	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		slog.Error("TOKEN_SECRET required")
		os.Exit(1)
	}

	token, err := auth.IssueToken(req.UID, req.Role, req.TTL, secret, time.Now())
	if err != nil {
		slog.Error("token issue failed", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

func openStore(cfg cliparse.Config, settings *cliparse.Settings) (store.Persister, error) {
	switch cfg.StoreType {
	case cliparse.StoreFile:
		return store.NewFileStore(cfg.DataDir)

	case cliparse.StoreSQL:
		conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.CreateSchema(conn); err != nil {
			conn.Close()
			return nil, err
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)
		return store.NewSQLStore(conn), nil

	case cliparse.StoreRedis:
		client, err := store.NewRedisClient(cfg.RedisURL, store.ClientOptions{
			PoolSize:     settings.Redis.PoolSize,
			DialTimeout:  settings.Redis.DialTimeout,
			ReadTimeout:  settings.Redis.ReadTimeout,
			WriteTimeout: settings.Redis.WriteTimeout,
		})
		if err != nil {
			return nil, err
		}
		pingCtx, cancel := context.WithTimeout(context.Background(), settings.Redis.DialTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis ping failed: %w", err)
		}
		cb := settings.CircuitBreaker
		return store.NewRedisStore(client, store.RedisOptions{
			RetryAttempts: settings.Redis.RetryAttempts,
			RetryInterval: settings.Redis.RetryInterval,
			Breaker: store.BreakerOptions{
				Enabled:      cb.Enabled,
				Name:         cb.Name,
				MaxRequests:  cb.MaxRequests,
				Interval:     cb.Interval,
				Timeout:      cb.Timeout,
				FailureRatio: cb.FailureRatio,
				MinRequests:  cb.MinRequests,
			},
		}), nil

	case cliparse.StoreMemory:
		slog.Warn("memory store selected, data is lost on exit")
		return store.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown store type %q", cfg.StoreType)
}

func retentionFrom(s *cliparse.Settings) hub.Retention {
	return hub.Retention{
		Sales:   s.Retention.Sales,
		Winners: s.Retention.Winners,
		Results: s.Retention.Results,
	}
}
