package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/swinck/catalogo-backend/api/controllers"
	"github.com/swinck/catalogo-backend/api/routes"
	"github.com/swinck/catalogo-backend/internal/admin"
	"github.com/swinck/catalogo-backend/internal/cart"
	"github.com/swinck/catalogo-backend/internal/catalog"
	"github.com/swinck/catalogo-backend/internal/importer"
	"github.com/swinck/catalogo-backend/internal/seed"
	"github.com/swinck/catalogo-backend/internal/session"
	"github.com/swinck/catalogo-backend/internal/tabular"
	"github.com/swinck/catalogo-backend/pkg/config"
	"github.com/swinck/catalogo-backend/pkg/logger"
	"github.com/swinck/catalogo-backend/pkg/metrics"
	"github.com/swinck/catalogo-backend/pkg/redis"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "catalogo-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := tabular.NewFileStore(cfg.Data.Dir)

	if cfg.Data.SeedOnBoot {
		if rows, err := store.Read(tabular.EntitySuppliers); err == nil && rows == nil {
			if err := seed.Run(store); err != nil {
				return fmt.Errorf("seed demo data: %w", err)
			}
			logg.Info(ctx, "seed.completed")
		}
	}

	var (
		sessions session.Store
		pinger   controllers.Pinger
	)
	switch strings.ToLower(cfg.Session.Backend) {
	case config.SessionBackendRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()
		sessions, err = session.NewRedisStore(client, cfg.Session.TTL)
		if err != nil {
			return fmt.Errorf("build session store: %w", err)
		}
		pinger = client
	default:
		sessions = session.NewMemoryStore()
	}

	repo := catalog.NewRepository(store, cfg.Data.AssetRoot)
	carts := cart.NewStore(sessions)
	admins := admin.NewStore(filepath.Join(cfg.Data.Dir, cfg.Data.AdminFile))
	pipeline := importer.NewPipeline(store, admins)

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	handler := routes.New(routes.Deps{
		Logger:   logg,
		Metrics:  httpMetrics,
		Registry: registry,

		Sessions:      sessions,
		SessionCookie: cfg.Session.CookieName,
		SessionTTL:    cfg.Session.TTL,

		Admin: admins,

		Health:   controllers.NewHealthController(pinger, logg),
		Catalog:  controllers.NewCatalogController(repo, logg),
		Cart:     controllers.NewCartController(carts, sessions, repo, logg),
		Checkout: controllers.NewCheckoutController(carts, sessions, repo, logg),
		Auth:     controllers.NewAuthController(repo, admins, sessions, logg),
		Account:  controllers.NewAccountController(repo, admins, sessions, logg),
		Imports:  controllers.NewImportController(pipeline, logg),
		Exports:  controllers.NewExportController(sessions, repo, logg),

		StaticDir: cfg.Data.StaticDir,
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "port", cfg.App.Port), "server.listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logg.Info(context.Background(), "server.stopped")
	return nil
}
