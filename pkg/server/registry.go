// Package server exposes the export pipeline as an async HTTP job service.
package server

import (
	"sort"
	"sync"
	"time"

	"github.com/user/deckshow/pkg/export"
	"github.com/user/deckshow/pkg/ports"
)

// JobStatus is the lifecycle state of an export job. Transitions are
// monotone: running becomes done or error exactly once.
type JobStatus string

const (
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobError   JobStatus = "error"
)

// jobTTL is how long a finished job and its artifact stay available.
const jobTTL = 10 * time.Minute

// VideoJob is one tracked export job.
type VideoJob struct {
	ID         string
	Status     JobStatus
	Error      string
	OutputPath string
	Filename   string
	StartedAt  time.Time
	FinishedAt time.Time
	Request    export.Request
}

// Registry tracks export jobs in memory. Finished jobs expire lazily: every
// sweep drops jobs past their TTL and deletes their artifacts.
type Registry struct {
	mu   sync.Mutex
	jobs map[string]*VideoJob
	fs   ports.FileSystem
	now  func() time.Time
}

// NewRegistry creates an empty job registry. Artifacts of expired jobs are
// removed through fs.
func NewRegistry(fs ports.FileSystem) *Registry {
	return &Registry{
		jobs: make(map[string]*VideoJob),
		fs:   fs,
		now:  time.Now,
	}
}

// Add registers a new running job.
func (r *Registry) Add(job VideoJob) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job.Status = JobRunning
	job.StartedAt = r.now()
	r.jobs[job.ID] = &job
}

// Get returns a snapshot of the job with the given id.
func (r *Registry) Get(id string) (VideoJob, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return VideoJob{}, false
	}
	return *job, true
}

// Complete marks a running job done. Calls on a finished job are ignored.
func (r *Registry) Complete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok || job.Status != JobRunning {
		return
	}
	job.Status = JobDone
	job.FinishedAt = r.now()
}

// Fail marks a running job errored. Calls on a finished job are ignored.
func (r *Registry) Fail(id string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok || job.Status != JobRunning {
		return
	}
	job.Status = JobError
	job.Error = err.Error()
	job.FinishedAt = r.now()
}

// List returns snapshots of all jobs, newest first.
func (r *Registry) List() []VideoJob {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]VideoJob, 0, len(r.jobs))
	for _, job := range r.jobs {
		out = append(out, *job)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out
}

// Sweep drops finished jobs past their TTL and removes their artifacts.
func (r *Registry) Sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-jobTTL)
	for id, job := range r.jobs {
		if job.Status == JobRunning {
			continue
		}
		if job.FinishedAt.After(cutoff) {
			continue
		}
		if job.OutputPath != "" {
			_ = r.fs.Remove(job.OutputPath)
		}
		delete(r.jobs, id)
	}
}

// DurationMs is the job's runtime: final for finished jobs, running total
// otherwise.
func (r *Registry) DurationMs(job VideoJob) int64 {
	end := job.FinishedAt
	if job.Status == JobRunning {
		end = r.now()
	}
	return end.Sub(job.StartedAt).Milliseconds()
}
