// internal/jobs/dispatcher.go
package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/catalog-importer/internal/metrics"
	"github.com/javajoker/catalog-importer/internal/models"
	"github.com/javajoker/catalog-importer/internal/services"
)

var ErrUnknownPipeline = errors.New("unknown import pipeline")

// Pipeline is one import run: the HTML product page or the bulk JSON file.
type Pipeline interface {
	Run(ctx context.Context) (*services.ImportResult, error)
}

type RunStore interface {
	Create(ctx context.Context, kind models.ImportKind, trigger models.ImportTrigger) (*models.ImportRun, error)
	Start(ctx context.Context, run *models.ImportRun) error
	Finish(ctx context.Context, run *models.ImportRun, result *services.ImportResult, runErr error) error
}

type Submitter interface {
	Submit(name string, task func() error) error
}

// Ticket acknowledges an enqueued run.
type Ticket struct {
	RunID  uuid.UUID           `json:"run_id"`
	Kind   models.ImportKind   `json:"kind"`
	Status models.ImportStatus `json:"status"`
}

// Dispatcher records every pipeline run in the run store, either inline or
// on the background scheduler.
type Dispatcher struct {
	pipelines map[models.ImportKind]Pipeline
	runs      RunStore
	submitter Submitter
	logger    logrus.FieldLogger
}

func NewDispatcher(runs RunStore, submitter Submitter, logger logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{
		pipelines: make(map[models.ImportKind]Pipeline),
		runs:      runs,
		submitter: submitter,
		logger:    logger,
	}
}

func (d *Dispatcher) Register(kind models.ImportKind, pipeline Pipeline) {
	d.pipelines[kind] = pipeline
}

func (d *Dispatcher) pipeline(kind models.ImportKind) (Pipeline, error) {
	pipeline, ok := d.pipelines[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPipeline, kind)
	}
	return pipeline, nil
}

// Enqueue records a queued run and hands it to the scheduler. It returns as
// soon as the run is queued; the run outlives the caller's context.
func (d *Dispatcher) Enqueue(ctx context.Context, kind models.ImportKind, trigger models.ImportTrigger) (*Ticket, error) {
	pipeline, err := d.pipeline(kind)
	if err != nil {
		return nil, err
	}

	run, err := d.runs.Create(ctx, kind, trigger)
	if err != nil {
		return nil, err
	}

	// The worker owns run from Submit on; the ticket is taken before.
	ticket := &Ticket{RunID: run.ID, Kind: kind, Status: run.Status}

	background := context.WithoutCancel(ctx)
	name := fmt.Sprintf("%s-import-%s", kind, ticket.RunID)
	err = d.submitter.Submit(name, func() error {
		_, err := d.execute(background, pipeline, run)
		return err
	})
	if err != nil {
		if finishErr := d.runs.Finish(background, run, nil, err); finishErr != nil {
			d.logger.WithError(finishErr).WithField("run_id", ticket.RunID).Error("Failed to record import run")
		}
		return nil, err
	}

	d.logger.WithFields(logrus.Fields{
		"run_id":  ticket.RunID,
		"kind":    kind,
		"trigger": trigger,
	}).Info("Import enqueued")

	return ticket, nil
}

// RunNow records and runs the pipeline on the calling goroutine.
func (d *Dispatcher) RunNow(ctx context.Context, kind models.ImportKind, trigger models.ImportTrigger) (*services.ImportResult, error) {
	pipeline, err := d.pipeline(kind)
	if err != nil {
		return nil, err
	}

	run, err := d.runs.Create(ctx, kind, trigger)
	if err != nil {
		return nil, err
	}

	return d.execute(ctx, pipeline, run)
}

func (d *Dispatcher) execute(ctx context.Context, pipeline Pipeline, run *models.ImportRun) (*services.ImportResult, error) {
	log := d.logger.WithFields(logrus.Fields{
		"run_id":  run.ID,
		"kind":    run.Kind,
		"trigger": run.Trigger,
	})

	if err := d.runs.Start(ctx, run); err != nil {
		log.WithError(err).Warn("Failed to mark import run as running")
	}

	started := time.Now()
	result, runErr := pipeline.Run(ctx)
	duration := time.Since(started)

	if err := d.runs.Finish(ctx, run, result, runErr); err != nil {
		log.WithError(err).Error("Failed to record import run")
	}

	status := services.RunStatus(runErr)
	var imported, failed int
	if result != nil {
		imported, failed = result.Imported, result.Failed
	}
	metrics.RecordImportRun(string(run.Kind), string(status), imported, failed, duration)

	if status == models.ImportStatusSkipped {
		log.Info("Import skipped, previous run still in progress")
	}
	return result, runErr
}
