package jobs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	registry := NewRegistry(nil)

	jobID := registry.Start("seed:demo")
	job, ok := registry.Get(jobID)
	require.True(t, ok)
	assert.Equal(t, StateRunning, job.State)
	assert.Equal(t, "seed:demo", job.Name)
	assert.Nil(t, job.FinishedAt)

	registry.Progress(jobID, 3, 10, "items")
	job, _ = registry.Get(jobID)
	assert.Equal(t, 3, job.Current)
	assert.Equal(t, 10, job.Total)
	assert.Equal(t, "items", job.Message)

	registry.Complete(jobID)
	job, _ = registry.Get(jobID)
	assert.Equal(t, StateCompleted, job.State)
	require.NotNil(t, job.FinishedAt)
}

func TestRegistryFail(t *testing.T) {
	registry := NewRegistry(nil)

	jobID := registry.Start("report:content_overview")
	registry.Fail(jobID, errors.New("boom"))

	job, ok := registry.Get(jobID)
	require.True(t, ok)
	assert.Equal(t, StateFailed, job.State)
	assert.Equal(t, "boom", job.Error)
}

func TestRegistryProgressIgnoredAfterFinish(t *testing.T) {
	registry := NewRegistry(nil)

	jobID := registry.Start("report:team_activity")
	registry.Complete(jobID)
	registry.Progress(jobID, 5, 10, "late update")

	job, _ := registry.Get(jobID)
	assert.Zero(t, job.Current)
	assert.Empty(t, job.Message)
}

func TestRegistryListNewestFirst(t *testing.T) {
	registry := NewRegistry(nil)

	first := registry.Start("a")
	second := registry.Start("b")

	jobs := registry.List()
	require.Len(t, jobs, 2)
	assert.Equal(t, second, jobs[0].ID)
	assert.Equal(t, first, jobs[1].ID)
}

func TestRegistryEvictsOldestFinished(t *testing.T) {
	registry := NewRegistry(nil)

	running := registry.Start("keeper")
	var firstFinished string
	for i := range maxRetainedJobs {
		jobID := registry.Start(fmt.Sprintf("job-%d", i))
		registry.Complete(jobID)
		if i == 0 {
			firstFinished = jobID
		}
	}

	jobs := registry.List()
	assert.Len(t, jobs, maxRetainedJobs)

	_, ok := registry.Get(firstFinished)
	assert.False(t, ok, "oldest finished job should be evicted")

	_, ok = registry.Get(running)
	assert.True(t, ok, "running jobs are never evicted")
}
