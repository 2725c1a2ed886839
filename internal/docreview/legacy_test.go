package docreview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/docpilot/docpilot/internal/providers"
)

func TestGenerateAISummary_MissingCredentials(t *testing.T) {
	fake := &providers.Fake{Content: "a summary"}
	s := NewSynthesizer(fake, nil)

	if got := s.GenerateAISummary(context.Background(), testInput(), ModelConfig{}); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if fake.Calls() != 0 {
		t.Errorf("expected zero network calls, got %d", fake.Calls())
	}
}

func TestGenerateAISummary_Success(t *testing.T) {
	fake := &providers.Fake{Content: "  Updated the README with install steps.\n"}
	s := NewSynthesizer(fake, nil)

	got := s.GenerateAISummary(context.Background(), testInput(), ModelConfig{APIKey: "k", GroupID: "g"})

	if got != "Updated the README with install steps." {
		t.Errorf("summary = %q", got)
	}
	req := fake.LastRequest()
	if req.MaxTokens != 200 {
		t.Errorf("standard style MaxTokens = %d, want 200", req.MaxTokens)
	}
	if req.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want 0.3", req.Temperature)
	}
}

func TestGenerateAISummary_NoParsing(t *testing.T) {
	// The legacy path returns raw model text even if it happens to be JSON.
	fake := &providers.Fake{Content: `{"not": "parsed"}`}
	s := NewSynthesizer(fake, nil)

	got := s.GenerateAISummary(context.Background(), testInput(), ModelConfig{APIKey: "k", GroupID: "g"})
	if got != `{"not": "parsed"}` {
		t.Errorf("summary = %q", got)
	}
}

func TestGenerateAISummary_TransportError(t *testing.T) {
	fake := &providers.Fake{Err: errors.New("boom")}
	s := NewSynthesizer(fake, nil)

	if got := s.GenerateAISummary(context.Background(), testInput(), ModelConfig{APIKey: "k", GroupID: "g"}); got != "" {
		t.Errorf("expected empty string on transport error, got %q", got)
	}
}

func TestGeneratePRDescription_Alias(t *testing.T) {
	fake := &providers.Fake{Content: "same text"}
	s := NewSynthesizer(fake, nil)
	cfg := ModelConfig{APIKey: "k", GroupID: "g"}

	a := s.GenerateAISummary(context.Background(), testInput(), cfg)
	b := s.GeneratePRDescription(context.Background(), testInput(), cfg)
	if a != b {
		t.Errorf("alias mismatch: %q vs %q", a, b)
	}
}

func TestSummarize_BriefStyle(t *testing.T) {
	fake := &providers.Fake{Content: "short"}
	s := NewSynthesizer(fake, nil)

	s.Summarize(context.Background(), testInput(), ModelConfig{APIKey: "k", GroupID: "g"}, SummaryStyleBrief)

	req := fake.LastRequest()
	if req.MaxTokens != 50 {
		t.Errorf("brief style MaxTokens = %d, want 50", req.MaxTokens)
	}
	if !strings.Contains(req.Prompt, "one short sentence") {
		t.Error("brief prompt should ask for one short sentence")
	}
}

func TestBuildLegacyPrompt_WarningCap(t *testing.T) {
	var findings []ReviewFinding
	for i := 0; i < 8; i++ {
		findings = append(findings, ReviewFinding{Kind: FindingWarning, Message: fmt.Sprintf("warn %d", i)})
	}
	findings = append(findings, ReviewFinding{Kind: FindingError, Message: "an error"})

	prompt := BuildLegacyPrompt(DocTypeClassification{Type: "readme"}, SemanticDiff{}, findings, nil, SummaryStyleStandard)

	if !strings.Contains(prompt, "warn 4") {
		t.Error("fifth warning should be included")
	}
	if strings.Contains(prompt, "warn 5") {
		t.Error("sixth warning should be dropped")
	}
	if strings.Contains(prompt, "an error") {
		t.Error("legacy prompt surfaces warnings only")
	}
}

func TestBuildLegacyPrompt_Stats(t *testing.T) {
	diff := SemanticDiff{Stats: DiffStats{Added: 3, Removed: 1, Modified: 2, Moved: 1}}
	prompt := BuildLegacyPrompt(DocTypeClassification{Type: "guide"}, diff, nil, []CodeFileInfo{{Filename: "a.md"}}, SummaryStyleStandard)

	if !strings.Contains(prompt, "3 added, 1 removed, 2 modified, 1 moved") {
		t.Errorf("prompt missing stats: %q", prompt)
	}
	if !strings.Contains(prompt, "Files changed: 1") {
		t.Error("prompt missing file count")
	}
}
