package work

import (
	"errors"
	"time"

	"github.com/Daskott/contactbook/colors"
	"github.com/Daskott/contactbook/server/models"
	"gorm.io/gorm"
)

// STUCK_JOB_MINUTES is how long a job can stay in-progress before
// it's considered abandoned by its worker
const STUCK_JOB_MINUTES = 30

// requeuer moves jobs that got stuck 'in-progress' (e.g. the process died
// mid-job) back into the queue
type requeuer struct {
	stuckAfterMinutes uint
	sleepBackOff      time.Duration
	stopChan          chan struct{}
}

func newRequeuer(stuckAfterMinutes uint) *requeuer {
	return &requeuer{
		stuckAfterMinutes: stuckAfterMinutes,
		sleepBackOff:      5 * time.Minute,
		stopChan:          make(chan struct{}),
	}
}

func (r *requeuer) start() {
	go r.loop()
}

func (r *requeuer) stop() {
	r.stopChan <- struct{}{}
}

func (r *requeuer) loop() {
	rateLimiter := time.NewTicker(DefaultTickerDuration)
	defer rateLimiter.Stop()

	logg.Infof("Starting stuck job requeuer")
	for {
		select {
		case <-r.stopChan:
			logg.Infof("Stopping stuck job requeuer")
			return
		case <-rateLimiter.C:
			err := r.requeueNext()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				rateLimiter.Reset(r.sleepBackOff)
				continue
			}

			if err != nil {
				r.logError(err)
				rateLimiter.Reset(TickerDurationOnError)
				continue
			}

			rateLimiter.Reset(DefaultTickerDuration)
		}
	}
}

// requeueNext puts the most recent stuck job back in the queue, it
// returns gorm.ErrRecordNotFound when there's none
func (r *requeuer) requeueNext() error {
	job, err := models.LastJobLastUpdated(r.stuckAfterMinutes, models.IN_PROGRESS_JOB)
	if err != nil {
		return err
	}

	jobStatus, err := models.FindJobStatus(models.ENQUEUED_JOB)
	if err != nil {
		return err
	}

	err = job.Update(map[string]interface{}{
		"claimed":       false,
		"job_status_id": jobStatus.ID,
	})
	if err != nil {
		return err
	}

	r.logInfof("job with id=%v requeued", job.ID)
	return nil
}

func (r *requeuer) logInfof(template string, args ...interface{}) {
	prefix := colors.Yellow("[job requeuer] ")
	logg.Infof(prefix+template, args...)
}

func (r *requeuer) logError(err error) {
	prefix := colors.Red("[job requeuer] ")
	logg.Error(prefix, err)
}
