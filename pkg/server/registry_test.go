package server

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/deckshow/pkg/mocks"
)

func TestRegistry_MonotoneTransitions(t *testing.T) {
	r := NewRegistry(mocks.NewFileSystem())
	r.Add(VideoJob{ID: "j1"})

	r.Complete("j1")
	job, ok := r.Get("j1")
	require.True(t, ok)
	assert.Equal(t, JobDone, job.Status)

	// A late failure must not overwrite the terminal state.
	r.Fail("j1", errors.New("too late"))
	job, _ = r.Get("j1")
	assert.Equal(t, JobDone, job.Status)
	assert.Empty(t, job.Error)
}

func TestRegistry_FailOnce(t *testing.T) {
	r := NewRegistry(mocks.NewFileSystem())
	r.Add(VideoJob{ID: "j1"})
	r.Fail("j1", errors.New("boom"))

	r.Complete("j1")
	job, _ := r.Get("j1")
	assert.Equal(t, JobError, job.Status)
	assert.Equal(t, "boom", job.Error)
}

func TestRegistry_SweepExpiresFinishedJobs(t *testing.T) {
	fs := mocks.NewFileSystem()
	require.NoError(t, fs.WriteFile("work/old.mp4", []byte("x")))
	require.NoError(t, fs.WriteFile("work/fresh.mp4", []byte("y")))

	now := time.Now()
	r := NewRegistry(fs)
	r.now = func() time.Time { return now }

	r.Add(VideoJob{ID: "old", OutputPath: "work/old.mp4"})
	r.Complete("old")
	r.Add(VideoJob{ID: "running", OutputPath: "work/running.mp4"})

	// Beyond the TTL: the finished job and its artifact go away.
	now = now.Add(jobTTL + time.Minute)
	r.Add(VideoJob{ID: "fresh", OutputPath: "work/fresh.mp4"})
	r.Complete("fresh")
	r.Sweep()

	_, ok := r.Get("old")
	assert.False(t, ok, "expired job should be gone")
	_, exists := fs.GetFile("work/old.mp4")
	assert.False(t, exists, "expired artifact should be deleted")

	_, ok = r.Get("fresh")
	assert.True(t, ok, "recent job survives the sweep")
	_, exists = fs.GetFile("work/fresh.mp4")
	assert.True(t, exists)

	_, ok = r.Get("running")
	assert.True(t, ok, "running jobs never expire")
}

func TestRegistry_DurationMs(t *testing.T) {
	now := time.Now()
	r := NewRegistry(mocks.NewFileSystem())
	r.now = func() time.Time { return now }

	r.Add(VideoJob{ID: "j1"})
	now = now.Add(1500 * time.Millisecond)
	r.Complete("j1")
	now = now.Add(time.Hour)

	job, _ := r.Get("j1")
	assert.Equal(t, int64(1500), r.DurationMs(job))
}
