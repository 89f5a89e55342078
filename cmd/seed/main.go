package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/swinck/catalogo-backend/internal/seed"
	"github.com/swinck/catalogo-backend/internal/tabular"
	"github.com/swinck/catalogo-backend/pkg/config"
	"github.com/swinck/catalogo-backend/pkg/logger"
)

// Writes the demo catalog into the configured data directory, replacing
// whatever is there. Meant for local development and demos.
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
		ServiceName: "catalogo-seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	store := tabular.NewFileStore(cfg.Data.Dir)
	if err := seed.Run(store); err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}

	ctx := logg.WithField(context.Background(), "dir", cfg.Data.Dir)
	logg.Info(ctx, "seed.completed")
	return nil
}
