package backend

import (
	"context"
	"errors"
	"sync"
)

// MockClient is a scripted implementation of Client for tests. Submit replies
// with SubmitReply/SubmitErr; JobStatus consumes StatusReplies in order and
// keeps returning the last one once exhausted.
type MockClient struct {
	SubmitReply   *SubmitResponse
	SubmitErr     error
	StatusReplies []StatusReply
	CancelErr     error

	mu          sync.Mutex
	SubmitCalls []SubmitRequest
	StatusCalls []string
	CancelCalls []string
	statusIdx   int
}

// StatusReply is one scripted answer from the status endpoint.
type StatusReply struct {
	Resp *StatusResponse
	Err  error
}

var _ Client = (*MockClient)(nil)

func (m *MockClient) Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SubmitCalls = append(m.SubmitCalls, req)
	if m.SubmitErr != nil {
		return nil, m.SubmitErr
	}
	if m.SubmitReply == nil {
		return nil, errors.New("mock: no submit reply configured")
	}
	reply := *m.SubmitReply
	return &reply, nil
}

func (m *MockClient) JobStatus(ctx context.Context, jobID string) (*StatusResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatusCalls = append(m.StatusCalls, jobID)
	if len(m.StatusReplies) == 0 {
		return nil, errors.New("mock: no status replies configured")
	}
	idx := m.statusIdx
	if idx >= len(m.StatusReplies) {
		idx = len(m.StatusReplies) - 1
	} else {
		m.statusIdx++
	}
	reply := m.StatusReplies[idx]
	if reply.Err != nil {
		return nil, reply.Err
	}
	resp := *reply.Resp
	return &resp, nil
}

func (m *MockClient) CancelJob(ctx context.Context, jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CancelCalls = append(m.CancelCalls, jobID)
	return m.CancelErr
}

// SubmitCount returns how many submissions the mock has seen.
func (m *MockClient) SubmitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SubmitCalls)
}

// StatusCount returns how many status polls the mock has seen.
func (m *MockClient) StatusCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.StatusCalls)
}
