package docreview

import "context"

// Result is what one strategy produced. The rich strategy fills Output and
// derives Comment from it; the legacy strategy fills Comment only.
type Result struct {
	Output  *ReviewOutput
	Comment string
}

// Strategy is one independent attempt at producing a review. Strategies
// never retry each other's work: a failed attempt simply yields ok=false and
// the caller moves to the next strategy in order.
type Strategy interface {
	Name() string
	Generate(ctx context.Context, in ReviewInput, cfg ModelConfig) (Result, bool)
}

// Strategies returns the ordered strategy list: rich first, legacy second.
func Strategies(s *Synthesizer) []Strategy {
	return []Strategy{
		richStrategy{s},
		legacyStrategy{s},
	}
}

type richStrategy struct {
	s *Synthesizer
}

func (r richStrategy) Name() string { return "rich" }

func (r richStrategy) Generate(ctx context.Context, in ReviewInput, cfg ModelConfig) (Result, bool) {
	out := r.s.GenerateV2Review(ctx, in, cfg)
	if out == nil {
		return Result{}, false
	}
	return Result{Output: out, Comment: RenderReviewComment(out)}, true
}

type legacyStrategy struct {
	s *Synthesizer
}

func (l legacyStrategy) Name() string { return "legacy" }

func (l legacyStrategy) Generate(ctx context.Context, in ReviewInput, cfg ModelConfig) (Result, bool) {
	summary := l.s.GenerateAISummary(ctx, in, cfg)
	if summary == "" {
		return Result{}, false
	}
	return Result{Comment: summary}, true
}
