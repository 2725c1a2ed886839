package analysis

import (
	"strings"
	"testing"

	"github.com/docpilot/docpilot/internal/docreview"
)

func findingWith(findings []docreview.ReviewFinding, substr string) *docreview.ReviewFinding {
	for i := range findings {
		if strings.Contains(findings[i].Message, substr) {
			return &findings[i]
		}
	}
	return nil
}

func TestLintDocument_Clean(t *testing.T) {
	doc := "# Tool\n\nIntro.\n\n## Install\n\nRun make install.\n"
	if findings := LintDocument("README.md", doc); len(findings) != 0 {
		t.Errorf("clean document should lint clean, got %v", findings)
	}
}

func TestLintDocument_MissingTitle(t *testing.T) {
	findings := LintDocument("doc.md", "Some intro without a title.\n")
	f := findingWith(findings, "top-level title")
	if f == nil {
		t.Fatal("expected missing-title finding")
	}
	if f.Kind != docreview.FindingWarning {
		t.Errorf("kind = %s, want warning", f.Kind)
	}
	if f.File != "doc.md" {
		t.Errorf("file = %q", f.File)
	}
}

func TestLintDocument_EmptySection(t *testing.T) {
	doc := "# Tool\n\nIntro.\n\n## Install\n\n## Usage\n\nRun it.\n"
	findings := LintDocument("doc.md", doc)
	f := findingWith(findings, `section "Install" has no content`)
	if f == nil {
		t.Fatalf("expected empty-section finding, got %v", findings)
	}
}

func TestLintDocument_TodoMarkers(t *testing.T) {
	doc := "# Tool\n\nTODO: write this\n\nFIXME later\n"
	findings := LintDocument("doc.md", doc)

	todo := findingWith(findings, "TODO marker on line 3")
	if todo == nil {
		t.Fatalf("expected TODO finding, got %v", findings)
	}
	if todo.Kind != docreview.FindingInfo {
		t.Errorf("TODO kind = %s, want info", todo.Kind)
	}
	if findingWith(findings, "FIXME marker on line 5") == nil {
		t.Error("expected FIXME finding")
	}
}

func TestLintDocument_BrokenReferenceLink(t *testing.T) {
	doc := "# Tool\n\nSee [the guide][guide] and [the manual][manual].\n\n[guide]: https://example.com/guide\n"
	findings := LintDocument("doc.md", doc)

	if findingWith(findings, `"manual" has no definition`) == nil {
		t.Fatalf("expected broken-link finding, got %v", findings)
	}
	if findingWith(findings, `"guide"`) != nil {
		t.Error("defined reference should not be flagged")
	}
}

func TestLintDocument_UnclosedFence(t *testing.T) {
	doc := "# Tool\n\n```go\nfunc main() {}\n"
	findings := LintDocument("doc.md", doc)

	f := findingWith(findings, "unclosed code fence")
	if f == nil {
		t.Fatal("expected unclosed-fence finding")
	}
	if f.Kind != docreview.FindingError {
		t.Errorf("kind = %s, want error", f.Kind)
	}
}
