// internal/jobs/scheduler.go
package jobs

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Scheduler runs recurring imports and one-off background work on a shared
// gocron scheduler. The concurrency limit applies to both.
type Scheduler struct {
	cron   gocron.Scheduler
	logger logrus.FieldLogger
}

func NewScheduler(maxConcurrentJobs int, logger logrus.FieldLogger) (*Scheduler, error) {
	options := []gocron.SchedulerOption{gocron.WithLogger(newCronLogger(logger))}
	if maxConcurrentJobs > 0 {
		options = append(options, gocron.WithLimitConcurrentJobs(uint(maxConcurrentJobs), gocron.LimitModeWait))
	}

	cron, err := gocron.NewScheduler(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{cron: cron, logger: logger}, nil
}

// Every registers task to run each interval. A tick that arrives while the
// previous run is still going is skipped.
func (s *Scheduler) Every(name string, interval time.Duration, runOnStart bool, task func() error) error {
	options := []gocron.JobOption{
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if runOnStart {
		options = append(options, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	_, err := s.cron.NewJob(gocron.DurationJob(interval), gocron.NewTask(task), options...)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}

	s.logger.WithFields(logrus.Fields{
		"job":          name,
		"interval":     interval.String(),
		"run_on_start": runOnStart,
	}).Info("Job scheduled")
	return nil
}

// Submit runs task once, as soon as a slot is free, and drops the job
// afterwards.
func (s *Scheduler) Submit(name string, task func() error) error {
	_, err := s.cron.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartImmediately()),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithEventListeners(
			gocron.AfterJobRuns(func(jobID uuid.UUID, _ string) {
				go s.remove(jobID)
			}),
			gocron.AfterJobRunsWithError(func(jobID uuid.UUID, _ string, _ error) {
				go s.remove(jobID)
			}),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to submit %s: %w", name, err)
	}
	return nil
}

func (s *Scheduler) remove(jobID uuid.UUID) {
	if err := s.cron.RemoveJob(jobID); err != nil && !errors.Is(err, gocron.ErrJobNotFound) {
		s.logger.WithError(err).WithField("job_id", jobID).Debug("Failed to remove finished job")
	}
}

func (s *Scheduler) JobCount() int {
	return len(s.cron.Jobs())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Shutdown stops scheduling and waits for running jobs.
func (s *Scheduler) Shutdown() error {
	return s.cron.Shutdown()
}
