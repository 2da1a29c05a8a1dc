// internal/services/import_run_service_test.go
package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/catalog-importer/internal/models"
)

type ImportRunServiceTestSuite struct {
	suite.Suite
	service *ImportRunService
	ctx     context.Context
}

func (suite *ImportRunServiceTestSuite) SetupTest() {
	suite.service = NewImportRunService(newTestDB(suite.T()))
	suite.ctx = context.Background()
}

func (suite *ImportRunServiceTestSuite) TestLifecycleSucceeded() {
	run, err := suite.service.Create(suite.ctx, models.ImportKindBulk, models.ImportTriggerAPI)
	suite.Require().NoError(err)
	suite.NotEqual(uuid.Nil, run.ID)
	suite.Equal(models.ImportStatusQueued, run.Status)

	suite.Require().NoError(suite.service.Start(suite.ctx, run))
	running, err := suite.service.Get(suite.ctx, run.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ImportStatusRunning, running.Status)
	suite.NotNil(running.StartedAt)
	suite.False(running.IsFinished())

	result := &ImportResult{Processed: 3, Imported: 2, Failed: 1}
	suite.Require().NoError(suite.service.Finish(suite.ctx, run, result, nil))

	finished, err := suite.service.Get(suite.ctx, run.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ImportStatusSucceeded, finished.Status)
	suite.Equal(models.ImportKindBulk, finished.Kind)
	suite.Equal(models.ImportTriggerAPI, finished.Trigger)
	suite.Equal(3, finished.Processed)
	suite.Equal(2, finished.Imported)
	suite.Equal(1, finished.Failed)
	suite.Empty(finished.Error)
	suite.NotNil(finished.FinishedAt)
	suite.True(finished.IsFinished())
}

func (suite *ImportRunServiceTestSuite) TestFinishFailedAndSkipped() {
	failed, err := suite.service.Create(suite.ctx, models.ImportKindHTML, models.ImportTriggerSchedule)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.service.Finish(suite.ctx, failed, nil, errors.New("status 503")))

	stored, err := suite.service.Get(suite.ctx, failed.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ImportStatusFailed, stored.Status)
	suite.Equal("status 503", stored.Error)

	skipped, err := suite.service.Create(suite.ctx, models.ImportKindHTML, models.ImportTriggerSchedule)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.service.Finish(suite.ctx, skipped, nil, ErrImportInProgress))

	stored, err = suite.service.Get(suite.ctx, skipped.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ImportStatusSkipped, stored.Status)
	suite.True(stored.IsFinished())
}

func (suite *ImportRunServiceTestSuite) TestGetUnknownRun() {
	_, err := suite.service.Get(suite.ctx, uuid.New())
	suite.ErrorIs(err, ErrImportRunNotFound)
}

func TestImportRunServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ImportRunServiceTestSuite))
}
