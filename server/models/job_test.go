package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUniqueJobByName(t *testing.T) {
	InitializeTestDb()

	require.Nil(t, CreateUniqueJobByName("backup", "backup", "{}"))
	assert.ErrorIs(t, CreateUniqueJobByName("backup", "backup", "{}"), ErrDuplicateJob)

	job, err := LastJob(ENQUEUED_JOB, false)
	require.Nil(t, err)

	claimed, err := job.MarkAsClaimed()
	require.Nil(t, err)
	assert.True(t, claimed)

	claimed, err = job.MarkAsClaimed()
	require.Nil(t, err)
	assert.False(t, claimed, "A job can only be claimed once")

	assert.ErrorIs(t, CreateUniqueJobByName("backup", "backup", "{}"), ErrDuplicateJob,
		"An in-progress job blocks duplicates")

	successful, err := FindJobStatus(SUCCESSFUL_JOB)
	require.Nil(t, err)
	require.Nil(t, job.Update(map[string]interface{}{"claimed": false, "job_status_id": successful.ID}))

	assert.Nil(t, CreateUniqueJobByName("backup", "backup", "{}"), "A finished job doesn't block a new one")
}
