package scoring

import (
	"context"
	"sync"
)

// Fake is an in-process Scorer that replays a fixed result or error and
// records the requests it saw.
type Fake struct {
	mu       sync.Mutex
	Result   *AnalysisResult
	Err      error
	requests []AnalysisRequest
}

// Analyze records req and returns the configured result or error.
func (f *Fake) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Err: err}
	}
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Result == nil {
		return &AnalysisResult{}, nil
	}
	r := *f.Result
	return &r, nil
}

// Requests returns a copy of the requests received so far.
func (f *Fake) Requests() []AnalysisRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]AnalysisRequest, len(f.requests))
	copy(out, f.requests)
	return out
}
