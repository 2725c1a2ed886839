package docreview

import (
	"fmt"
	"math"
	"strings"
)

// Caps applied while composing the rich prompt. They bound prompt size only;
// rendering of the validated output downstream applies no cap of its own.
const (
	maxPromptSections = 10
	maxPromptFindings = 10
)

const richInstructions = `Respond with ONLY a JSON object. No markdown fences, no explanation, no preamble.

The object must have this exact structure:
{
  "prIntent": "One sentence describing what this PR is trying to accomplish",
  "changeOverview": "Two or three sentences summarizing what actually changed",
  "keyRisks": [
    {
      "severity": "high|medium|low",
      "category": "security|breaking|docs|performance|testing",
      "description": "What the risk is",
      "evidence": "What in the change suggests it",
      "suggestion": "How to address it"
    }
  ],
  "checklist": [
    {
      "category": "security|docs|testing|performance",
      "item": "What the reviewer should verify",
      "priority": "required|recommended|optional"
    }
  ],
  "prBodySuggestion": {
    "sections": [
      {"heading": "Section heading", "content": "Section content in markdown"}
    ]
  },
  "verdict": {
    "verdict": "approved|changes_requested|commented",
    "confidence": 0.0-1.0,
    "summary": "One sentence justifying the verdict"
  }
}

prIntent, changeOverview and verdict are mandatory. keyRisks and checklist may be empty arrays.`

// BuildRichPrompt composes the structured-review prompt from the precomputed
// signals. It is pure and deterministic: identical inputs yield an identical
// prompt string.
func BuildRichPrompt(pr PRContext, docType DocTypeClassification, diff SemanticDiff, findings []ReviewFinding, files []CodeFileInfo) string {
	var b strings.Builder

	b.WriteString("You are reviewing a documentation pull request.\n\n")

	fmt.Fprintf(&b, "Title: %s\n", pr.Title)
	fmt.Fprintf(&b, "Author: %s\n", pr.Author)
	fmt.Fprintf(&b, "Branch: %s -> %s\n", pr.HeadRef, pr.BaseRef)
	fmt.Fprintf(&b, "Description:\n%s\n\n", bodyOrPlaceholder(pr.Body))

	fmt.Fprintf(&b, "Document type: %s (confidence %d%%)\n\n", docType.Type, confidencePercent(docType.Confidence))

	fmt.Fprintf(&b, "Section changes (added %d, removed %d, modified %d, moved %d):\n",
		diff.Stats.Added, diff.Stats.Removed, diff.Stats.Modified, diff.Stats.Moved)
	b.WriteString(formatSectionChanges(diff.Sections))
	b.WriteString("\n\n")

	b.WriteString("Changed files:\n")
	b.WriteString(formatFileSummary(files))
	b.WriteString("\n\n")

	b.WriteString("Critical issues:\n")
	b.WriteString(formatFindings(findings))
	b.WriteString("\n\n")

	b.WriteString(richInstructions)

	return b.String()
}

func bodyOrPlaceholder(body string) string {
	if body == "" {
		return "(no description)"
	}
	return body
}

func confidencePercent(c float64) int {
	return int(math.Round(c * 100))
}

// formatFileSummary renders one line per changed file, in input order,
// without truncation.
func formatFileSummary(files []CodeFileInfo) string {
	if len(files) == 0 {
		return "No code files changed"
	}
	lines := make([]string, 0, len(files))
	for _, f := range files {
		lines = append(lines, fmt.Sprintf("%s: +%d/-%d", f.Filename, f.Additions, f.Deletions))
	}
	return strings.Join(lines, "\n")
}

// formatSectionChanges renders at most the first maxPromptSections entries,
// in input order, one marker per variant.
func formatSectionChanges(sections []SectionChange) string {
	if len(sections) == 0 {
		return "No section-level changes detected"
	}
	if len(sections) > maxPromptSections {
		sections = sections[:maxPromptSections]
	}
	lines := make([]string, 0, len(sections))
	for _, s := range sections {
		var marker string
		switch s.Kind {
		case ChangeAdded:
			marker = "+"
		case ChangeRemoved:
			marker = "-"
		case ChangeModified:
			marker = "~"
		case ChangeMoved:
			marker = "»"
		default:
			marker = "?"
		}
		lines = append(lines, fmt.Sprintf("%s %s (%s)", marker, s.Heading(), s.Kind))
	}
	return strings.Join(lines, "\n")
}

// formatFindings surfaces errors and warnings only, capped at
// maxPromptFindings, preserving input order. Info findings never reach the
// model.
func formatFindings(findings []ReviewFinding) string {
	critical := make([]ReviewFinding, 0, len(findings))
	for _, f := range findings {
		if f.Kind == FindingError || f.Kind == FindingWarning {
			critical = append(critical, f)
		}
	}
	if len(critical) == 0 {
		return "No critical issues found"
	}
	if len(critical) > maxPromptFindings {
		critical = critical[:maxPromptFindings]
	}
	lines := make([]string, 0, len(critical))
	for _, f := range critical {
		file := f.File
		if file == "" {
			file = "general"
		}
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", strings.ToUpper(string(f.Kind)), file, f.Message))
	}
	return strings.Join(lines, "\n")
}
