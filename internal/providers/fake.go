package providers

import (
	"context"
	"sync"
)

// Fake is a call-counting Completer for tests.
type Fake struct {
	mu       sync.Mutex
	calls    int
	requests []Request

	Content string
	Err     error
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) Complete(_ context.Context, req Request) (Response, error) {
	f.mu.Lock()
	f.calls++
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.Err != nil {
		return Response{}, f.Err
	}
	return Response{Content: f.Content}, nil
}

// Calls returns how many times Complete was invoked.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// LastRequest returns the most recent request, or a zero Request if none.
func (f *Fake) LastRequest() Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return Request{}
	}
	return f.requests[len(f.requests)-1]
}
