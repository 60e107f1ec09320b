package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/dreamforge/assetgen/internal/backend"
	"github.com/dreamforge/assetgen/internal/domain"
	"github.com/dreamforge/assetgen/internal/infra"
)

// Policy bounds one polling loop. The tick budget is the only automatic
// termination condition.
type Policy struct {
	Interval time.Duration
	MaxTicks int
}

// DefaultPolicy polls every 5 seconds for at most 60 ticks (5 minutes).
func DefaultPolicy() Policy {
	return Policy{Interval: 5 * time.Second, MaxTicks: 60}
}

// Poller drives one job from acceptance to a terminal state. Each job gets
// its own Poller instance; nothing is shared between concurrent jobs except
// the tracker, which copes with concurrent updates itself.
type Poller struct {
	client  backend.Client
	tracker *Tracker
	policy  Policy
	logger  infra.Logger
}

// NewPoller constructs a poller for one job.
func NewPoller(client backend.Client, tracker *Tracker, policy Policy, logger infra.Logger) *Poller {
	if policy.Interval <= 0 {
		policy.Interval = DefaultPolicy().Interval
	}
	if policy.MaxTicks <= 0 {
		policy.MaxTicks = DefaultPolicy().MaxTicks
	}
	return &Poller{client: client, tracker: tracker, policy: policy, logger: logger}
}

// Run polls the backend at the fixed interval until the job reaches a
// terminal state. On completion it returns the raw asset units for
// persistence; the tracker record is finished for every other outcome.
// Cancellation via ctx stops observing only; server-side work may continue.
func (p *Poller) Run(ctx context.Context, jobID, locale string) ([]backend.RawAsset, error) {
	ticker := time.NewTicker(p.policy.Interval)
	defer ticker.Stop()

	for tick := 1; ; tick++ {
		select {
		case <-ctx.Done():
			p.tracker.Finish(jobID, domain.JobStatusCancelled, "", locale)
			p.logger.Info().Str("job_id", jobID).Int("tick", tick).Msg("poller: cancelled")
			return nil, fmt.Errorf("%w: job %s", domain.ErrCancelled, jobID)
		case <-ticker.C:
		}

		resp, err := p.client.JobStatus(ctx, jobID)
		switch {
		case err != nil:
			// A transient poll failure consumes this tick and is retried on
			// the next scheduled one.
			p.logger.Warn().Err(err).Str("job_id", jobID).Int("tick", tick).Msg("poller: status query failed")
		case resp.Status == backend.StatusCompleted:
			p.logger.Info().Str("job_id", jobID).Int("tick", tick).Int("assets", len(resp.Assets)).Msg("poller: job completed")
			return resp.Assets, nil
		case resp.Status == backend.StatusFailed:
			p.tracker.Finish(jobID, domain.JobStatusFailed, resp.Message, locale)
			p.logger.Warn().Str("job_id", jobID).Str("reason", resp.Message).Msg("poller: job failed")
			if resp.Message != "" {
				return nil, fmt.Errorf("%w: %s", domain.ErrBackendFailure, resp.Message)
			}
			return nil, fmt.Errorf("%w: job %s failed", domain.ErrBackendFailure, jobID)
		default:
			status := domain.JobStatusGenerating
			if resp.Status == backend.StatusPending && resp.Progress == 0 {
				status = domain.JobStatusPending
			}
			displayed := resp.Progress
			if elapsed := tick * 100 / p.policy.MaxTicks; elapsed > displayed {
				displayed = elapsed
			}
			remaining := time.Duration(resp.EstimatedSecondsRemaining) * time.Second
			p.tracker.Advance(jobID, status, displayed, remaining, locale)
		}

		if tick >= p.policy.MaxTicks {
			p.tracker.Finish(jobID, domain.JobStatusTimedOut, "", locale)
			p.logger.Warn().Str("job_id", jobID).Int("tick", tick).Msg("poller: tick budget exhausted")
			return nil, fmt.Errorf("%w: job %s exceeded %d ticks", domain.ErrPollTimeout, jobID, p.policy.MaxTicks)
		}
	}
}
