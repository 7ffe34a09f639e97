package work

import (
	"errors"
	"fmt"

	"github.com/Daskott/contactbook/server/cron"
	"github.com/Daskott/contactbook/server/models"
	"github.com/go-co-op/gocron"
)

const MAX_CONCURRENCY = 1

// WorkerPoolAdapter pairs the db backed worker pool with a cron
// scheduler for periodic jobs
type WorkerPoolAdapter struct {
	cronScheduler *gocron.Scheduler
	pool          *workerPool
}

func NewWorkerAdapter(timeZone string) (*WorkerPoolAdapter, error) {
	cronScheduler, err := cron.NewCronScheduler(timeZone)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolAdapter{
		cronScheduler: cronScheduler,
		pool:          newWorkerPool(MAX_CONCURRENCY),
	}, nil
}

// Start starts the cron scheduler & worker pool
func (adapter *WorkerPoolAdapter) Start() {
	logg.Info("Starting cron scheduler & worker pool")
	adapter.cronScheduler.StartAsync()
	adapter.pool.start()
}

// Stop stops the cron scheduler & worker pool
func (adapter *WorkerPoolAdapter) Stop() {
	logg.Info("Stopping cron scheduler & worker pool")
	adapter.cronScheduler.Stop()
	adapter.pool.stop()
}

// Register binds a name to a handler.
func (adapter *WorkerPoolAdapter) Register(name string, handler Handler) error {
	return adapter.pool.registerHandler(name, handler)
}

// Perform sends a new job to the queue, to be executed as soon as a worker is available.
// A job with the same name that's still queued or running makes this a no-op.
func (adapter *WorkerPoolAdapter) Perform(job JobParams) error {
	logg.Infof("Enqueuing job: %v", job.Name)

	err := adapter.pool.enqueue(job)
	if errors.Is(err, models.ErrDuplicateJob) {
		logg.Warnf("Duplicate job already in queue for: %v", job.Name)
		return nil
	}

	if err != nil {
		return fmt.Errorf("error enqueuing job: %v, %v", job.Name, err)
	}

	return nil
}

// PeriodicallyPerform adds a job to the queue periodically, based on
// the 'cronExpression' provided
func (adapter *WorkerPoolAdapter) PeriodicallyPerform(cronExpression string, job JobParams) error {
	_, err := adapter.cronScheduler.Cron(cronExpression).Tag(job.Name).
		Do(
			func(job JobParams) {
				err := adapter.Perform(job)
				if err != nil {
					logg.Error(err)
				}
			},
			job,
		)
	return err
}

func (adapter *WorkerPoolAdapter) RemovePeriodicJob(jobName string) {
	adapter.cronScheduler.RemoveByTag(jobName)
}
