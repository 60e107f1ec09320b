package generation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dreamforge/assetgen/internal/domain"
)

// fakeRepo collects saved assets and can be told to fail for specific ids.
type fakeRepo struct {
	mu      sync.Mutex
	saved   []domain.GeneratedAsset
	failIDs map[string]error
	events  *eventLog
}

func (f *fakeRepo) Save(ctx context.Context, asset *domain.GeneratedAsset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failIDs[asset.ID]; ok {
		return err
	}
	f.saved = append(f.saved, *asset)
	if f.events != nil {
		f.events.add("save:" + asset.ID)
	}
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*domain.GeneratedAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.saved {
		if a.ID == id {
			copied := a
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRepo) ListRecent(ctx context.Context, limit int) ([]domain.GeneratedAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.GeneratedAsset, len(f.saved))
	copy(out, f.saved)
	return out, nil
}

func (f *fakeRepo) savedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

// eventLog records the save/notify interleaving across goroutines.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *eventLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.events))
	copy(out, l.events)
	return out
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// waitForTerminal polls the service until the job's record turns terminal.
func waitForTerminal(t *testing.T, svc *Service, jobID string) domain.GenerationProgress {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if rec, ok := svc.Progress(jobID); ok && rec.Status.Terminal() {
			return rec
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("job %s did not reach a terminal state", jobID)
	return domain.GenerationProgress{}
}

var errStorage = errors.New("storage unavailable")
