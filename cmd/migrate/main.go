package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/udyogerp/backend/internal/infrastructure/config"
	"github.com/udyogerp/backend/internal/infrastructure/logger"
	"github.com/udyogerp/backend/internal/infrastructure/migration"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, steps, version")
		steps   = flag.Int("steps", 0, "Number of steps for the steps command (negative = down)")
		path    = flag.String("path", "migrations", "Path to migration files")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	m, err := migration.NewFromURL(cfg.Database.DSN(), *path, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Error("Error closing migrator", zap.Error(err))
		}
	}()

	switch *command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		if *steps == 0 {
			log.Fatal("steps command requires a non-zero -steps value")
		}
		err = m.Steps(*steps)
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil {
			log.Fatal("Failed to get version", zap.Error(verr))
		}
		log.Info("Current migration version",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
		)
	default:
		log.Fatal("Unknown command", zap.String("command", *command))
	}

	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
}
