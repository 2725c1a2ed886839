package analysis

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/docpilot/docpilot/internal/docreview"
)

// section is one logical markdown section: a heading and everything below it
// up to the next heading.
type section struct {
	heading string
	body    string
}

// DiffSections compares the logical sections of two markdown revisions and
// classifies each change as added, removed, modified or moved. Section order
// in the result follows the new document for added/modified/moved entries,
// with removals appended in old-document order.
func DiffSections(oldContent, newContent string) docreview.SemanticDiff {
	oldSecs := splitSections(oldContent)
	newSecs := splitSections(newContent)

	matcher := difflib.NewMatcher(headings(oldSecs), headings(newSecs))
	opCodes := matcher.GetOpCodes()

	// First pass: everything the heading alignment could not match on the
	// old side is a removal candidate. Second pass then pulls moved and
	// retitled-in-place sections back out of that pool.
	var removedPool []section
	for _, op := range opCodes {
		if op.Tag == 'r' || op.Tag == 'd' {
			removedPool = append(removedPool, oldSecs[op.I1:op.I2]...)
		}
	}

	var changes []docreview.SectionChange
	for _, op := range opCodes {
		switch op.Tag {
		case 'e':
			for k := 0; k < op.I2-op.I1; k++ {
				oldS := oldSecs[op.I1+k]
				newS := newSecs[op.J1+k]
				if strings.TrimSpace(oldS.body) != strings.TrimSpace(newS.body) {
					changes = append(changes, docreview.SectionChange{
						Kind:       docreview.ChangeModified,
						NewHeading: newS.heading,
					})
				}
			}
		case 'r', 'i':
			for _, newS := range newSecs[op.J1:op.J2] {
				changes = append(changes, classifyUnmatched(newS, &removedPool))
			}
		}
	}

	for _, oldS := range removedPool {
		changes = append(changes, docreview.SectionChange{
			Kind:       docreview.ChangeRemoved,
			OldHeading: oldS.heading,
		})
	}

	return docreview.SemanticDiff{
		Stats:    computeStats(changes),
		Sections: changes,
	}
}

// classifyUnmatched decides what an out-of-position new section is. A
// heading that also left the old document unchanged in content moved; with
// changed content it was modified; otherwise it is new.
func classifyUnmatched(newS section, removedPool *[]section) docreview.SectionChange {
	for i, oldS := range *removedPool {
		if oldS.heading != newS.heading {
			continue
		}
		*removedPool = append((*removedPool)[:i], (*removedPool)[i+1:]...)
		kind := docreview.ChangeMoved
		if strings.TrimSpace(oldS.body) != strings.TrimSpace(newS.body) {
			kind = docreview.ChangeModified
		}
		return docreview.SectionChange{Kind: kind, NewHeading: newS.heading}
	}
	return docreview.SectionChange{Kind: docreview.ChangeAdded, NewHeading: newS.heading}
}

func computeStats(changes []docreview.SectionChange) docreview.DiffStats {
	var stats docreview.DiffStats
	for _, c := range changes {
		switch c.Kind {
		case docreview.ChangeAdded:
			stats.Added++
		case docreview.ChangeRemoved:
			stats.Removed++
		case docreview.ChangeModified:
			stats.Modified++
		case docreview.ChangeMoved:
			stats.Moved++
		}
	}
	return stats
}

// splitSections breaks a markdown document into heading-delimited sections.
// Content before the first heading becomes an unnamed preamble section.
// Headings inside fenced code blocks are body text, not section breaks.
func splitSections(content string) []section {
	var sections []section
	current := section{heading: ""}
	inFence := false
	hasContent := false

	flush := func() {
		if current.heading != "" || strings.TrimSpace(current.body) != "" {
			sections = append(sections, current)
		}
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
		}
		if !inFence && isHeading(trimmed) {
			if hasContent || current.heading != "" {
				flush()
			}
			current = section{heading: headingText(trimmed)}
			hasContent = true
			continue
		}
		current.body += line + "\n"
		if trimmed != "" {
			hasContent = true
		}
	}
	flush()

	return sections
}

func isHeading(line string) bool {
	if !strings.HasPrefix(line, "#") {
		return false
	}
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	return level <= 6 && level < len(line) && line[level] == ' '
}

func headingText(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "#"))
}

func headings(secs []section) []string {
	hs := make([]string, 0, len(secs))
	for _, s := range secs {
		hs = append(hs, s.heading)
	}
	return hs
}
