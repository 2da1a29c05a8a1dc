// internal/app/app.go
package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/catalog-importer/internal/config"
	"github.com/javajoker/catalog-importer/internal/jobs"
	"github.com/javajoker/catalog-importer/internal/models"
	"github.com/javajoker/catalog-importer/internal/services"
)

// App holds the import pipelines and the machinery that runs them.
type App struct {
	Runs       *services.ImportRunService
	Scheduler  *jobs.Scheduler
	Dispatcher *jobs.Dispatcher
}

func New(cfg *config.Config, db *gorm.DB, logger logrus.FieldLogger) (*App, error) {
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	productService := services.NewProductService(db)
	runService := services.NewImportRunService(db)

	scheduler, err := jobs.NewScheduler(cfg.Import.MaxConcurrentJobs, logger)
	if err != nil {
		return nil, err
	}

	dispatcher := jobs.NewDispatcher(runService, scheduler, logger)
	dispatcher.Register(models.ImportKindHTML, services.NewHTMLImportService(
		productService,
		services.HTMLImportOptionsFromConfig(cfg.Scraper),
		logger,
	))
	dispatcher.Register(models.ImportKindBulk, services.NewBulkImportService(
		productService,
		storageService,
		cfg.Import.JSONPath,
		logger,
	))

	return &App{
		Runs:       runService,
		Scheduler:  scheduler,
		Dispatcher: dispatcher,
	}, nil
}

// ScheduleScrape registers the periodic product page import.
func (a *App) ScheduleScrape(cfg config.ScraperConfig) error {
	if !cfg.Enabled {
		return nil
	}

	err := a.Scheduler.Every("html-import", cfg.Interval, cfg.RunOnStart, func() error {
		_, err := a.Dispatcher.RunNow(context.Background(), models.ImportKindHTML, models.ImportTriggerSchedule)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to schedule product page import: %w", err)
	}
	return nil
}
