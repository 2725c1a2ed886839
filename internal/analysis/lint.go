package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/docpilot/docpilot/internal/docreview"
)

// lintRule inspects one document and reports findings.
type lintRule func(path, content string) []docreview.ReviewFinding

var lintRules = []lintRule{
	checkTitle,
	checkEmptySections,
	checkTodoMarkers,
	checkReferenceLinks,
	checkUnclosedFences,
}

// LintDocument runs the static document checks in order and returns their
// combined findings.
func LintDocument(path, content string) []docreview.ReviewFinding {
	var findings []docreview.ReviewFinding
	for _, rule := range lintRules {
		findings = append(findings, rule(path, content)...)
	}
	return findings
}

func checkTitle(path, content string) []docreview.ReviewFinding {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "# ") {
			return nil
		}
		break
	}
	return []docreview.ReviewFinding{{
		Kind:    docreview.FindingWarning,
		File:    path,
		Message: "document does not start with a top-level title",
	}}
}

func checkEmptySections(path, content string) []docreview.ReviewFinding {
	var findings []docreview.ReviewFinding
	for _, sec := range splitSections(content) {
		if sec.heading != "" && strings.TrimSpace(sec.body) == "" {
			findings = append(findings, docreview.ReviewFinding{
				Kind:    docreview.FindingWarning,
				File:    path,
				Message: fmt.Sprintf("section %q has no content", sec.heading),
			})
		}
	}
	return findings
}

var todoPattern = regexp.MustCompile(`\b(TODO|FIXME|TBD)\b`)

func checkTodoMarkers(path, content string) []docreview.ReviewFinding {
	var findings []docreview.ReviewFinding
	for i, line := range strings.Split(content, "\n") {
		if m := todoPattern.FindString(line); m != "" {
			findings = append(findings, docreview.ReviewFinding{
				Kind:    docreview.FindingInfo,
				File:    path,
				Message: fmt.Sprintf("%s marker on line %d", m, i+1),
			})
		}
	}
	return findings
}

var (
	refLinkUse = regexp.MustCompile(`\[[^\]]+\]\[([^\]]+)\]`)
	refLinkDef = regexp.MustCompile(`(?m)^\s*\[([^\]]+)\]:\s+\S`)
)

func checkReferenceLinks(path, content string) []docreview.ReviewFinding {
	defined := make(map[string]bool)
	for _, m := range refLinkDef.FindAllStringSubmatch(content, -1) {
		defined[strings.ToLower(m[1])] = true
	}

	var findings []docreview.ReviewFinding
	seen := make(map[string]bool)
	for _, m := range refLinkUse.FindAllStringSubmatch(content, -1) {
		ref := strings.ToLower(m[1])
		if defined[ref] || seen[ref] {
			continue
		}
		seen[ref] = true
		findings = append(findings, docreview.ReviewFinding{
			Kind:    docreview.FindingWarning,
			File:    path,
			Message: fmt.Sprintf("reference-style link %q has no definition", m[1]),
		})
	}
	return findings
}

func checkUnclosedFences(path, content string) []docreview.ReviewFinding {
	fences := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			fences++
		}
	}
	if fences%2 == 0 {
		return nil
	}
	return []docreview.ReviewFinding{{
		Kind:    docreview.FindingError,
		File:    path,
		Message: "unclosed code fence",
	}}
}
