package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrDuplicateJob = errors.New("job with the given name already exists in queue")

type Job struct {
	BaseModel
	Fails       int        `json:"fails"`
	Name        string     `json:"name"`
	Handler     string     `json:"handler"`
	Args        string     `json:"args"`
	LastError   string     `json:"last_error"`
	Claimed     bool       `json:"claimed" gorm:"default:false"`
	JobStatusID uint       `json:"job_status_id"`
	JobStatus   *JobStatus `json:"status"`
}

// MarkAsClaimed moves the job to 'in-progress', it returns false if
// another worker got to it first
func (job *Job) MarkAsClaimed() (bool, error) {
	inProgressStatus, err := FindJobStatus(IN_PROGRESS_JOB)
	if err != nil {
		return false, err
	}

	res := db.Model(&Job{}).Where("id = ? AND claimed = ?", job.ID, false).Updates(map[string]interface{}{
		"claimed":       true,
		"job_status_id": inProgressStatus.ID,
	})

	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

func (job *Job) Update(data map[string]interface{}) error {
	return db.Model(job).Updates(data).Error
}

// CreateUniqueJobByName enqueues a job unless one with the same name is
// already enqueued or in-progress
func CreateUniqueJobByName(name string, handler string, args string) error {
	queuedJobStatuses := []JobStatus{}
	err := db.Where("name IN ?", []string{ENQUEUED_JOB, IN_PROGRESS_JOB}).Find(&queuedJobStatuses).Error
	if err != nil {
		return err
	}

	statusIDs := []uint{}
	var enqueuedJobStatus JobStatus
	for _, jobStatus := range queuedJobStatuses {
		statusIDs = append(statusIDs, jobStatus.ID)
		if jobStatus.Name == ENQUEUED_JOB {
			enqueuedJobStatus = jobStatus
		}
	}

	results := db.Where("name = ? AND job_status_id IN ?", name, statusIDs).Limit(1).Find(&[]Job{})
	if results.Error != nil {
		return results.Error
	}

	if results.RowsAffected > 0 {
		return ErrDuplicateJob
	}

	return db.Create(&Job{
		Name:        name,
		Handler:     handler,
		Args:        args,
		JobStatusID: enqueuedJobStatus.ID,
	}).Error
}

func CreateJob(name string, handler string, args string) error {
	enqueuedJobStatus, err := FindJobStatus(ENQUEUED_JOB)
	if err != nil {
		return err
	}

	return db.Create(&Job{
		Name:        name,
		Handler:     handler,
		Args:        args,
		JobStatusID: enqueuedJobStatus.ID,
	}).Error
}

func LastJob(status string, claimed bool) (*Job, error) {
	job := Job{}
	err := db.Joins("INNER JOIN job_statuses ON job_statuses.id = jobs.job_status_id AND job_statuses.name = ?", status).
		Where("claimed = ?", claimed).Last(&job).Error
	if err != nil {
		return nil, err
	}

	return &job, nil
}

// LastJobLastUpdated returns the last job of 'status' which was last
// updated at least 'minutesAgo' minutes ago
func LastJobLastUpdated(minutesAgo uint, status string) (*Job, error) {
	jobStatus, err := FindJobStatus(status)
	if err != nil {
		return nil, err
	}

	cutOff := time.Now().UTC().Add(-time.Duration(minutesAgo) * time.Minute)

	job := Job{}
	err = db.Where("job_status_id = ? AND updated_at <= ?", jobStatus.ID, cutOff).Last(&job).Error
	if err != nil {
		return nil, err
	}

	return &job, nil
}

func FindJob(id interface{}) (*Job, error) {
	job := Job{}
	err := db.Preload("JobStatus").First(&job, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return &job, nil
}

func FetchJobsByStatus(status string) ([]Job, error) {
	jobs := []Job{}
	err := db.Preload("JobStatus").
		Joins("INNER JOIN job_statuses ON job_statuses.id = jobs.job_status_id AND job_statuses.name = ?", status).
		Order("jobs.id desc").Find(&jobs).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return jobs, nil
}
