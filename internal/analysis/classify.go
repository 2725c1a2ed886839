// Package analysis computes the signals the review pipeline consumes: a
// document-type classification, a semantic section diff, and static lint
// findings. The review core never calls into this package; it only consumes
// the outputs.
package analysis

import (
	"path/filepath"
	"strings"

	"github.com/docpilot/docpilot/internal/docreview"
)

// Document types the classifier can produce.
const (
	DocTypeReadme    = "readme"
	DocTypeChangelog = "changelog"
	DocTypeADR       = "adr"
	DocTypeSOP       = "sop"
	DocTypeAPI       = "api"
	DocTypeGuide     = "guide"
	DocTypeUnknown   = "unknown"
)

// ClassifyDocument guesses the document type from its path and content.
// The heuristic is deliberately simple: filename conventions first, then a
// handful of content markers, with confidence reflecting how many signals
// agreed.
func ClassifyDocument(path, content string) docreview.DocTypeClassification {
	base := strings.ToLower(filepath.Base(path))
	dir := strings.ToLower(filepath.Dir(path))
	lower := strings.ToLower(content)

	score := func(t string, confidence float64) docreview.DocTypeClassification {
		return docreview.DocTypeClassification{Type: t, Confidence: clamp01(confidence)}
	}

	switch {
	case strings.HasPrefix(base, "readme"):
		return score(DocTypeReadme, 0.95)
	case strings.HasPrefix(base, "changelog") || strings.HasPrefix(base, "history"):
		return score(DocTypeChangelog, 0.95)
	}

	if strings.Contains(dir, "adr") || strings.Contains(dir, "decisions") ||
		strings.Contains(lower, "## decision") || strings.Contains(lower, "## status") && strings.Contains(lower, "## context") {
		return score(DocTypeADR, 0.85)
	}

	if strings.Contains(base, "sop") || strings.Contains(lower, "standard operating procedure") ||
		strings.Contains(lower, "## procedure") {
		return score(DocTypeSOP, 0.8)
	}

	if strings.Contains(base, "api") || strings.Contains(lower, "## endpoints") ||
		strings.Contains(lower, "openapi") {
		return score(DocTypeAPI, 0.75)
	}

	if strings.Contains(dir, "docs") || strings.Contains(dir, "doc") ||
		strings.Contains(lower, "## getting started") {
		return score(DocTypeGuide, 0.6)
	}

	return score(DocTypeUnknown, 0.3)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
