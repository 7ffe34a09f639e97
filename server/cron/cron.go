package cron

import (
	"time"

	"github.com/go-co-op/gocron"
)

// NewCronScheduler returns a scheduler running in 'timeZone', an empty
// value means UTC. Tags must be unique across its jobs.
func NewCronScheduler(timeZone string) (*gocron.Scheduler, error) {
	location, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, err
	}

	scheduler := gocron.NewScheduler(location)
	scheduler.TagsUnique()

	return scheduler, nil
}
