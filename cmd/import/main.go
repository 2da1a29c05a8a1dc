// cmd/import/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/catalog-importer/internal/app"
	"github.com/javajoker/catalog-importer/internal/config"
	"github.com/javajoker/catalog-importer/internal/database"
	"github.com/javajoker/catalog-importer/internal/logger"
	"github.com/javajoker/catalog-importer/internal/models"
)

// Runs the product page import once and exits non-zero when the run fails.
func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		return 1
	}

	log := logger.New(cfg.Log)

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		log.WithError(err).Error("Failed to initialize database")
		return 1
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		log.WithError(err).Error("Failed to run migrations")
		return 1
	}

	importer, err := app.New(cfg, db, log)
	if err != nil {
		log.WithError(err).Error("Failed to initialize importer")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := importer.Dispatcher.RunNow(ctx, models.ImportKindHTML, models.ImportTriggerCLI)
	if err != nil {
		log.WithError(err).Error("Product page import failed")
		return 1
	}

	log.WithFields(logrus.Fields{
		"processed": result.Processed,
		"imported":  result.Imported,
		"failed":    result.Failed,
	}).Info("Product page import finished")
	return 0
}
