package docreview

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/docpilot/docpilot/internal/providers"
)

// SummaryStyle selects which legacy summarizer variant to run. The two
// variants share one implementation and differ only in token ceiling and
// phrasing of the request.
type SummaryStyle int

const (
	// SummaryStyleStandard asks for a short multi-sentence summary. Canonical.
	SummaryStyleStandard SummaryStyle = iota
	// SummaryStyleBrief asks for a single short sentence.
	SummaryStyleBrief
)

const (
	legacyTemperature  = 0.3
	standardMaxTokens  = 200
	briefMaxTokens     = 50
	maxSummaryFindings = 5
)

// GenerateAISummary is the schema-free fallback strategy: a short prompt
// from the numeric stats and up to five warning messages, with the raw model
// text as the final result. It never fails loudly — missing credentials,
// transport errors and non-2xx statuses all collapse to "", which callers
// can treat as "no summary available".
func (s *Synthesizer) GenerateAISummary(ctx context.Context, in ReviewInput, cfg ModelConfig) string {
	return s.summarize(ctx, in, cfg, SummaryStyleStandard)
}

// GeneratePRDescription is an alias for GenerateAISummary kept for callers
// that use the summary as a PR description.
func (s *Synthesizer) GeneratePRDescription(ctx context.Context, in ReviewInput, cfg ModelConfig) string {
	return s.GenerateAISummary(ctx, in, cfg)
}

// Summarize runs the legacy strategy with an explicit style.
func (s *Synthesizer) Summarize(ctx context.Context, in ReviewInput, cfg ModelConfig, style SummaryStyle) string {
	return s.summarize(ctx, in, cfg, style)
}

func (s *Synthesizer) summarize(ctx context.Context, in ReviewInput, cfg ModelConfig, style SummaryStyle) string {
	if !cfg.Configured() {
		s.log.Warn("skipping legacy summary: provider credentials not configured")
		return ""
	}

	maxTokens := standardMaxTokens
	if style == SummaryStyleBrief {
		maxTokens = briefMaxTokens
	}

	resp, err := s.completer.Complete(ctx, newLegacyRequest(in, cfg, style, maxTokens))
	if err != nil {
		s.log.Warn("legacy summary call failed", zap.String("provider", s.completer.Name()), zap.Error(err))
		return ""
	}

	return strings.TrimSpace(resp.Content)
}

func newLegacyRequest(in ReviewInput, cfg ModelConfig, style SummaryStyle, maxTokens int) providers.Request {
	return providers.Request{
		APIKey:      cfg.APIKey,
		GroupID:     cfg.GroupID,
		Prompt:      BuildLegacyPrompt(in.DocType, in.Diff, in.Findings, in.Files, style),
		MaxTokens:   maxTokens,
		Temperature: legacyTemperature,
	}
}

// BuildLegacyPrompt composes the fallback prompt from the numeric stats and
// up to five warning messages. Like BuildRichPrompt it is pure.
func BuildLegacyPrompt(docType DocTypeClassification, diff SemanticDiff, findings []ReviewFinding, files []CodeFileInfo, style SummaryStyle) string {
	var b strings.Builder

	fmt.Fprintf(&b, "A %s document changed in a pull request.\n", docType.Type)
	fmt.Fprintf(&b, "Sections: %d added, %d removed, %d modified, %d moved. Files changed: %d.\n",
		diff.Stats.Added, diff.Stats.Removed, diff.Stats.Modified, diff.Stats.Moved, len(files))

	warnings := warningMessages(findings, maxSummaryFindings)
	if len(warnings) > 0 {
		b.WriteString("Warnings:\n")
		for _, w := range warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	switch style {
	case SummaryStyleBrief:
		b.WriteString("\nSummarize this change in one short sentence. Plain text only.")
	default:
		b.WriteString("\nSummarize this change in two or three short sentences for a pull request description. Plain text only, no markdown.")
	}

	return b.String()
}

func warningMessages(findings []ReviewFinding, limit int) []string {
	var msgs []string
	for _, f := range findings {
		if f.Kind != FindingWarning {
			continue
		}
		msgs = append(msgs, f.Message)
		if len(msgs) == limit {
			break
		}
	}
	return msgs
}
