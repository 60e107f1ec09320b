package generation

import (
	"sync"
	"time"

	"github.com/dreamforge/assetgen/internal/domain"
)

// Tracker holds the live progress record for each in-flight job. Records for
// terminal jobs are retained for a display window and then dropped; the
// record itself is only ever mutated under the tracker lock, never across a
// poll boundary.
type Tracker struct {
	mu        sync.RWMutex
	jobs      map[string]*domain.GenerationProgress
	retention time.Duration
}

// NewTracker constructs a tracker with the given terminal-record retention.
func NewTracker(retention time.Duration) *Tracker {
	return &Tracker{
		jobs:      make(map[string]*domain.GenerationProgress),
		retention: retention,
	}
}

// Begin registers a fresh pending record for the job.
func (t *Tracker) Begin(jobID, locale string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.jobs[jobID] = &domain.GenerationProgress{
		JobID:     jobID,
		Status:    domain.JobStatusPending,
		Message:   MessageFor(domain.JobStatusPending, locale),
		StartTime: time.Now().UTC(),
	}
}

// Advance updates a non-terminal record. Progress never decreases and stays
// below 100 until a terminal transition.
func (t *Tracker) Advance(jobID string, status domain.JobStatus, progress int, remaining time.Duration, locale string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.jobs[jobID]
	if !ok || rec.Status.Terminal() {
		return
	}
	if progress > 99 {
		progress = 99
	}
	if progress > rec.Progress {
		rec.Progress = progress
	}
	rec.Status = status
	rec.Message = MessageFor(status, locale)
	rec.EstimatedRemaining = remaining
}

// Finish moves the record to a terminal state and schedules its removal after
// the retention window. An empty message falls back to the localized default.
func (t *Tracker) Finish(jobID string, status domain.JobStatus, message, locale string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.jobs[jobID]
	if !ok {
		return
	}
	if rec.Status.Terminal() {
		return
	}
	rec.Status = status
	if status == domain.JobStatusCompleted {
		rec.Progress = 100
	}
	if message == "" {
		message = MessageFor(status, locale)
	}
	rec.Message = message
	rec.EstimatedRemaining = 0

	if t.retention <= 0 {
		delete(t.jobs, jobID)
		return
	}
	time.AfterFunc(t.retention, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if cur, ok := t.jobs[jobID]; ok && cur.Status.Terminal() {
			delete(t.jobs, jobID)
		}
	})
}

// Snapshot returns a copy of the record for the given job.
func (t *Tracker) Snapshot(jobID string) (domain.GenerationProgress, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.jobs[jobID]
	if !ok {
		return domain.GenerationProgress{}, false
	}
	return *rec, true
}
