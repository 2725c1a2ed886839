// Package docreview turns precomputed pull-request signals into a structured
// review via a remote model, degrading to a one-line summary and finally to
// nothing at all. No failure in this package ever reaches a caller as an
// error: every operation returns a sentinel and logs a diagnostic instead.
package docreview

import (
	"context"

	"go.uber.org/zap"

	"github.com/docpilot/docpilot/internal/providers"
)

// Sampling parameters for the rich strategy. The low temperature biases the
// model toward deterministic structured output; the token ceiling is sized
// for a full JSON payload.
const (
	richTemperature = 0.3
	richMaxTokens   = 2000
)

// Synthesizer orchestrates single-attempt review generation against a
// Completer. It holds no mutable state; concurrent calls are independent.
type Synthesizer struct {
	completer providers.Completer
	log       *zap.Logger
}

// NewSynthesizer creates a Synthesizer. A nil logger disables diagnostics.
func NewSynthesizer(completer providers.Completer, log *zap.Logger) *Synthesizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Synthesizer{completer: completer, log: log}
}

// GenerateV2Review runs one bounded model call and returns the validated
// structured review, or nil for every failure mode: missing credentials
// (no network call is made), transport errors, non-2xx statuses, and
// parse or schema failures.
func (s *Synthesizer) GenerateV2Review(ctx context.Context, in ReviewInput, cfg ModelConfig) *ReviewOutput {
	if !cfg.Configured() {
		s.log.Warn("skipping rich review: provider credentials not configured")
		return nil
	}

	prompt := BuildRichPrompt(in.PR, in.DocType, in.Diff, in.Findings, in.Files)

	resp, err := s.completer.Complete(ctx, providers.Request{
		APIKey:      cfg.APIKey,
		GroupID:     cfg.GroupID,
		Prompt:      prompt,
		MaxTokens:   richMaxTokens,
		Temperature: richTemperature,
	})
	if err != nil {
		s.log.Warn("rich review call failed", zap.String("provider", s.completer.Name()), zap.Error(err))
		return nil
	}

	return ParseV2Response(resp.Content, s.log)
}
