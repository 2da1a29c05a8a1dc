// internal/services/import_run_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/catalog-importer/internal/models"
)

type ImportRunService struct {
	db *gorm.DB
}

func NewImportRunService(db *gorm.DB) *ImportRunService {
	return &ImportRunService{db: db}
}

func (s *ImportRunService) Create(ctx context.Context, kind models.ImportKind, trigger models.ImportTrigger) (*models.ImportRun, error) {
	run := &models.ImportRun{
		Kind:    kind,
		Trigger: trigger,
		Status:  models.ImportStatusQueued,
	}
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, fmt.Errorf("failed to create import run: %w", err)
	}
	return run, nil
}

func (s *ImportRunService) Start(ctx context.Context, run *models.ImportRun) error {
	now := time.Now()
	err := s.db.WithContext(ctx).Model(run).Updates(map[string]interface{}{
		"status":     models.ImportStatusRunning,
		"started_at": &now,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to start import run %s: %w", run.ID, err)
	}
	return nil
}

// RunStatus maps a pipeline error onto the final run status. A run refused
// by the overlap guard is skipped rather than failed.
func RunStatus(runErr error) models.ImportStatus {
	switch {
	case runErr == nil:
		return models.ImportStatusSucceeded
	case errors.Is(runErr, ErrImportInProgress):
		return models.ImportStatusSkipped
	default:
		return models.ImportStatusFailed
	}
}

func (s *ImportRunService) Finish(ctx context.Context, run *models.ImportRun, result *ImportResult, runErr error) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":      RunStatus(runErr),
		"finished_at": &now,
		"error":       "",
	}
	if runErr != nil {
		updates["error"] = runErr.Error()
	}

	if result != nil {
		updates["processed"] = result.Processed
		updates["imported"] = result.Imported
		updates["failed"] = result.Failed
	}

	if err := s.db.WithContext(ctx).Model(run).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to finish import run %s: %w", run.ID, err)
	}
	return nil
}

func (s *ImportRunService) Get(ctx context.Context, id uuid.UUID) (*models.ImportRun, error) {
	var run models.ImportRun
	if err := s.db.WithContext(ctx).First(&run, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImportRunNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &run, nil
}
