// Package usage tracks per-installation review activity behind an
// injectable interface so nothing in the service relies on process-wide
// mutable state.
package usage

import (
	"context"
	"sync"
)

// Outcome labels how a review attempt ended.
type Outcome string

const (
	OutcomeRich        Outcome = "rich"
	OutcomeLegacy      Outcome = "legacy"
	OutcomeUnavailable Outcome = "unavailable"
)

// Recorder records review attempts. Implementations must be safe for
// concurrent use.
type Recorder interface {
	Record(ctx context.Context, repo string, outcome Outcome) error
}

// Counts is a snapshot of recorded outcomes for one repository.
type Counts struct {
	Rich        int
	Legacy      int
	Unavailable int
}

// MemoryRecorder is an in-memory Recorder. State lives only as long as the
// process; durable usage tracking is out of scope.
type MemoryRecorder struct {
	mu     sync.Mutex
	counts map[string]Counts
}

// NewMemoryRecorder creates an empty MemoryRecorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{counts: make(map[string]Counts)}
}

func (m *MemoryRecorder) Record(_ context.Context, repo string, outcome Outcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.counts[repo]
	switch outcome {
	case OutcomeRich:
		c.Rich++
	case OutcomeLegacy:
		c.Legacy++
	default:
		c.Unavailable++
	}
	m.counts[repo] = c
	return nil
}

// Snapshot returns a copy of the recorded counts.
func (m *MemoryRecorder) Snapshot() map[string]Counts {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]Counts, len(m.counts))
	for k, v := range m.counts {
		out[k] = v
	}
	return out
}
