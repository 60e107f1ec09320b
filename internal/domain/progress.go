package domain

import "time"

// JobStatus enumerates job lifecycle states.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusGenerating JobStatus = "generating"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusTimedOut   JobStatus = "timed_out"
	JobStatusCancelled  JobStatus = "cancelled"
)

// Terminal reports whether no further transitions can occur.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusFailed, JobStatusTimedOut, JobStatusCancelled:
		return true
	}
	return false
}

// Display collapses the failure variants into the single "error" status the
// dashboard understands. Internal code keeps the distinct states.
func (s JobStatus) Display() string {
	switch s {
	case JobStatusFailed, JobStatusTimedOut, JobStatusCancelled:
		return "error"
	default:
		return string(s)
	}
}

// GenerationProgress is the live tracking record for one job. One instance
// exists per in-flight request, owned by its poller, and is dropped a fixed
// delay after reaching a terminal status.
type GenerationProgress struct {
	JobID              string        `json:"job_id"`
	Status             JobStatus     `json:"status"`
	Progress           int           `json:"progress"`
	Message            string        `json:"message"`
	StartTime          time.Time     `json:"start_time"`
	EstimatedRemaining time.Duration `json:"estimated_remaining,omitempty"`
}
