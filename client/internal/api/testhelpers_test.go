package api

import (
	"context"
	"sync"
)

// fakeCaller records requests and replies with a canned body or error.
type fakeCaller struct {
	mu   sync.Mutex
	reqs []Request
	body []byte
	err  error
}

func (f *fakeCaller) Call(_ context.Context, req Request) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	return f.body, f.err
}

func (f *fakeCaller) last() Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reqs[len(f.reqs)-1]
}

func (f *fakeCaller) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reqs)
}
