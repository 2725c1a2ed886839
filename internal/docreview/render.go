package docreview

import (
	"fmt"
	"strings"
)

// GenerateV2PRDescription renders the suggested PR description as markdown:
// each section becomes a level-2 heading followed by its content, blank-line
// separated, in input order. Returns "" when there are no sections. Any
// capping of sections is the prompt layer's concern, not this renderer's.
func GenerateV2PRDescription(out *ReviewOutput) string {
	if out == nil || len(out.Suggestion.Sections) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(out.Suggestion.Sections))
	for _, s := range out.Suggestion.Sections {
		blocks = append(blocks, fmt.Sprintf("## %s\n\n%s", s.Heading, s.Content))
	}
	return strings.Join(blocks, "\n\n")
}

// RenderReviewComment renders the full structured review as a PR comment.
func RenderReviewComment(out *ReviewOutput) string {
	if out == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString("## Documentation Review\n\n")
	fmt.Fprintf(&b, "**Intent:** %s\n\n", out.Intent)
	fmt.Fprintf(&b, "%s\n\n", out.Overview)

	if len(out.KeyRisks) > 0 {
		b.WriteString("### Risks\n\n")
		for _, r := range out.KeyRisks {
			fmt.Fprintf(&b, "- %s **%s** (%s): %s", riskIcon(r.Severity), r.Description, r.Category, r.Evidence)
			if r.Suggestion != "" {
				fmt.Fprintf(&b, " _Suggestion: %s_", r.Suggestion)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(out.Checklist) > 0 {
		b.WriteString("### Reviewer checklist\n\n")
		for _, c := range out.Checklist {
			fmt.Fprintf(&b, "- [ ] %s (%s, %s)\n", c.Item, c.Category, c.Priority)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "### Verdict: %s\n\n", verdictLabel(out.Verdict.Verdict))
	if out.Verdict.Summary != "" {
		fmt.Fprintf(&b, "%s ", out.Verdict.Summary)
	}
	fmt.Fprintf(&b, "_(confidence %d%%)_\n", confidencePercent(out.Verdict.Confidence))

	return b.String()
}

func riskIcon(severity string) string {
	switch severity {
	case "high":
		return ":red_circle:"
	case "medium":
		return ":orange_circle:"
	case "low":
		return ":yellow_circle:"
	default:
		return ":white_circle:"
	}
}

func verdictLabel(v string) string {
	switch v {
	case VerdictApproved:
		return "Approve"
	case VerdictChangesRequested:
		return "Request changes"
	default:
		return "Comment"
	}
}
