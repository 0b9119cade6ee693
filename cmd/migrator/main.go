package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog/log"

	"github.com/topupstore/topup-api/internal/config"
	"github.com/topupstore/topup-api/internal/domain/catalog"
	"github.com/topupstore/topup-api/internal/pkg/database"
	"github.com/topupstore/topup-api/internal/pkg/logger"
)

func main() {
	steps := flag.Int("steps", 1, "number of migrations to roll back with down")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: migrator [-steps n] up|down|version|seed\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	if err := run(cfg, flag.Arg(0), *steps); err != nil {
		log.Error().Err(err).Msg("migration run failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config, command string, steps int) error {
	ctx := context.Background()

	db, err := database.NewPostgres(ctx, cfg.DatabaseURL, database.PoolConfig{MaxOpenConns: 2, MaxIdleConns: 1})
	if err != nil {
		return err
	}
	defer database.ClosePostgres(db)

	switch command {
	case "up", "":
		return database.Migrate(db.DB)

	case "down":
		m, err := database.NewMigrator(db.DB)
		if err != nil {
			return err
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate down: %w", err)
		}
		log.Info().Int("steps", steps).Msg("migrations rolled back")
		return nil

	case "version":
		m, err := database.NewMigrator(db.DB)
		if err != nil {
			return err
		}
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("no migrations applied")
			return nil
		}
		if err != nil {
			return fmt.Errorf("migrate version: %w", err)
		}
		fmt.Printf("version %d (dirty: %t)\n", version, dirty)
		return nil

	case "seed":
		if err := database.Migrate(db.DB); err != nil {
			return err
		}
		seeded, err := catalog.NewService(catalog.NewRepository(db), nil).SeedDefaults(ctx)
		if err != nil {
			return err
		}
		log.Info().Bool("seeded", seeded).Msg("catalog seed finished")
		return nil

	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}
