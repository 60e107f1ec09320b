package generation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dreamforge/assetgen/internal/backend"
	"github.com/dreamforge/assetgen/internal/domain"
	"github.com/dreamforge/assetgen/internal/infra"
	"github.com/dreamforge/assetgen/internal/styles"
)

// Options wires a Service together.
type Options struct {
	Backend  backend.Client
	Styles   *styles.Catalog
	Repo     domain.AssetRepository
	Notify   NotifyFunc
	Logger   infra.Logger
	Provider string
	Policy   Policy
	// Retention is how long terminal progress records stay readable.
	Retention time.Duration
}

// Service runs the whole generation workflow: submission, the per-job polling
// loop and result persistence. Each request is an independent, self-contained
// poller; the service only tracks cancellation handles and progress snapshots.
type Service struct {
	submitter *Submitter
	persister *Persister
	client    backend.Client
	tracker   *Tracker
	policy    Policy
	logger    infra.Logger

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	wg      sync.WaitGroup
}

// NewService constructs the workflow service.
func NewService(opts Options) *Service {
	policy := opts.Policy
	if policy.Interval <= 0 || policy.MaxTicks <= 0 {
		policy = DefaultPolicy()
	}
	retention := opts.Retention
	if retention <= 0 {
		retention = 30 * time.Second
	}
	return &Service{
		submitter: NewSubmitter(opts.Backend, opts.Styles, opts.Provider, opts.Logger),
		persister: NewPersister(opts.Repo, opts.Notify, opts.Logger),
		client:    opts.Backend,
		tracker:   NewTracker(retention),
		policy:    policy,
		logger:    opts.Logger,
		cancels:   make(map[string]context.CancelFunc),
	}
}

// Start submits one request and returns the job id to poll for progress. On
// the synchronous path persistence happens before Start returns and the job
// is already completed. On the asynchronous path a poller goroutine owns the
// job until it reaches a terminal state.
func (s *Service) Start(ctx context.Context, req domain.GenerationRequest, locale string) (string, error) {
	outcome, err := s.submitter.Submit(ctx, req)
	if err != nil {
		return "", err
	}

	if outcome.Mode == SubmitSync {
		jobID := uuid.NewString()
		s.tracker.Begin(jobID, locale)
		if _, perr := s.persister.PersistBatch(ctx, jobID, req, outcome.FinalPrompt, outcome.Provider, outcome.Assets); perr != nil {
			s.logger.Error().Err(perr).Str("job_id", jobID).Msg("service: partial persistence failure on sync result")
		}
		s.tracker.Finish(jobID, domain.JobStatusCompleted, "", locale)
		s.logger.Info().Str("job_id", jobID).Int("assets", len(outcome.Assets)).Msg("service: synchronous generation done")
		return jobID, nil
	}

	jobID := outcome.JobID
	s.tracker.Begin(jobID, locale)

	// The poller outlives the submitting request, so its context derives from
	// the background, not from ctx.
	jobCtx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.cancels[jobID] = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.runJob(jobCtx, jobID, req, outcome, locale)

	s.logger.Info().Str("job_id", jobID).Str("provider", outcome.Provider).Msg("service: job accepted for polling")
	return jobID, nil
}

func (s *Service) runJob(ctx context.Context, jobID string, req domain.GenerationRequest, outcome *SubmitOutcome, locale string) {
	defer s.wg.Done()
	defer s.dropCancel(jobID)

	poller := NewPoller(s.client, s.tracker, s.policy, s.logger)
	units, err := poller.Run(ctx, jobID, locale)
	if err != nil {
		// The poller has already finished the tracking record.
		return
	}
	if _, perr := s.persister.PersistBatch(ctx, jobID, req, outcome.FinalPrompt, outcome.Provider, units); perr != nil {
		s.logger.Error().Err(perr).Str("job_id", jobID).Msg("service: partial persistence failure")
	}
	s.tracker.Finish(jobID, domain.JobStatusCompleted, "", locale)
}

// Cancel stops observing an in-flight job and asks the backend, best effort,
// to abandon it. The backend may keep rendering; the contract is to stop
// observing, not to stop executing.
func (s *Service) Cancel(ctx context.Context, jobID string) error {
	s.mu.Lock()
	cancel, ok := s.cancels[jobID]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: job %s", domain.ErrNotFound, jobID)
	}
	cancel()
	if err := s.client.CancelJob(ctx, jobID); err != nil {
		s.logger.Warn().Err(err).Str("job_id", jobID).Msg("service: backend cancel failed")
	}
	return nil
}

// Progress returns the current tracking record for a job.
func (s *Service) Progress(jobID string) (domain.GenerationProgress, bool) {
	return s.tracker.Snapshot(jobID)
}

// Shutdown cancels all in-flight pollers and waits for them to drain.
func (s *Service) Shutdown() {
	s.mu.Lock()
	for _, cancel := range s.cancels {
		cancel()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Service) dropCancel(jobID string) {
	s.mu.Lock()
	delete(s.cancels, jobID)
	s.mu.Unlock()
}
