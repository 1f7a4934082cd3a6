package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rfandrade/storefront/internal/adapter/handler"
	"github.com/rfandrade/storefront/internal/adapter/storage"
	"github.com/rfandrade/storefront/internal/adapter/token"
	"github.com/rfandrade/storefront/internal/config"
	"github.com/rfandrade/storefront/internal/core/service"
	"github.com/rfandrade/storefront/internal/port"
	"github.com/rfandrade/storefront/internal/telemetry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	telemetry.InitLogger()

	shutdownTracer, err := telemetry.SetupTracer(ctx, cfg.ServiceName)
	if err != nil {
		slog.Error("tracer setup failed", "error", err)
		os.Exit(1)
	}
	defer shutdownTracer(context.Background())

	store, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("storage setup failed", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("connected to database", "driver", cfg.DBDriver)

	var cache port.CatalogCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("redis unavailable, catalog cache disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			cache = storage.NewRedisCatalogCache(rdb, cfg.CacheTTL)
			defer rdb.Close()
			slog.Info("connected to redis", "addr", cfg.RedisAddr)
		}
	}

	tokens := token.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	h := handler.NewHTTPHandler(
		service.NewAuthService(store, tokens),
		service.NewProductService(store, cache),
		service.NewOrderService(store),
		service.NewAdminService(store),
		tokens,
		store,
	)

	metrics := telemetry.NewHTTPMetrics("api")
	router := otelhttp.NewHandler(handler.NewRouter(h, metrics), "http.server")

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP shutdown error", "error", err)
	}
	slog.Info("HTTP server stopped")
}

func openStore(ctx context.Context, cfg config.Config) (*storage.SQLStore, error) {
	if cfg.DBDriver == "sqlite" {
		return storage.OpenSQLite(ctx, cfg.SQLitePath)
	}
	return storage.OpenMySQL(ctx, cfg.MySQLDSN)
}
