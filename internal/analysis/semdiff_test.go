package analysis

import (
	"testing"

	"github.com/docpilot/docpilot/internal/docreview"
)

const baseDoc = `# Tool

Intro text.

## Install

Run make install.

## Usage

Run the tool.

## License

MIT.
`

func kinds(diff docreview.SemanticDiff) []docreview.ChangeKind {
	var out []docreview.ChangeKind
	for _, c := range diff.Sections {
		out = append(out, c.Kind)
	}
	return out
}

func TestDiffSections_NoChange(t *testing.T) {
	diff := DiffSections(baseDoc, baseDoc)
	if len(diff.Sections) != 0 {
		t.Errorf("expected no changes, got %v", diff.Sections)
	}
	if diff.Stats != (docreview.DiffStats{}) {
		t.Errorf("expected zero stats, got %+v", diff.Stats)
	}
}

func TestDiffSections_Added(t *testing.T) {
	newDoc := baseDoc + "\n## Contributing\n\nPRs welcome.\n"
	diff := DiffSections(baseDoc, newDoc)

	if diff.Stats.Added != 1 {
		t.Fatalf("Added = %d, want 1; sections: %v", diff.Stats.Added, diff.Sections)
	}
	found := false
	for _, c := range diff.Sections {
		if c.Kind == docreview.ChangeAdded && c.NewHeading == "Contributing" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing added Contributing section: %v", diff.Sections)
	}
}

func TestDiffSections_Removed(t *testing.T) {
	newDoc := `# Tool

Intro text.

## Install

Run make install.

## Usage

Run the tool.
`
	diff := DiffSections(baseDoc, newDoc)

	if diff.Stats.Removed != 1 {
		t.Fatalf("Removed = %d, want 1; sections: %v", diff.Stats.Removed, diff.Sections)
	}
	if diff.Sections[len(diff.Sections)-1].OldHeading != "License" {
		t.Errorf("removed section should carry the old heading: %v", diff.Sections)
	}
}

func TestDiffSections_Modified(t *testing.T) {
	newDoc := `# Tool

Intro text.

## Install

Run go install instead.

## Usage

Run the tool.

## License

MIT.
`
	diff := DiffSections(baseDoc, newDoc)

	if diff.Stats.Modified != 1 {
		t.Fatalf("Modified = %d, want 1; got %v", diff.Stats.Modified, kinds(diff))
	}
	if diff.Sections[0].NewHeading != "Install" {
		t.Errorf("modified section = %+v", diff.Sections[0])
	}
}

func TestDiffSections_Moved(t *testing.T) {
	newDoc := `# Tool

Intro text.

## Usage

Run the tool.

## Install

Run make install.

## License

MIT.
`
	diff := DiffSections(baseDoc, newDoc)

	moved := 0
	for _, c := range diff.Sections {
		if c.Kind == docreview.ChangeMoved {
			moved++
		}
	}
	if moved == 0 {
		t.Errorf("expected at least one moved section, got %v", diff.Sections)
	}
	if diff.Stats.Added != 0 || diff.Stats.Removed != 0 {
		t.Errorf("a pure reorder should not count adds/removes: %+v", diff.Stats)
	}
}

func TestDiffSections_MovedAndEdited(t *testing.T) {
	newDoc := `# Tool

Intro text.

## Usage

Run the tool differently.

## Install

Run make install.

## License

MIT.
`
	diff := DiffSections(baseDoc, newDoc)

	// Usage moved and changed content; that reads as modified, not moved.
	var usage *docreview.SectionChange
	for i := range diff.Sections {
		if diff.Sections[i].Heading() == "Usage" {
			usage = &diff.Sections[i]
		}
	}
	if usage == nil {
		t.Fatalf("no change recorded for Usage: %v", diff.Sections)
	}
	if usage.Kind != docreview.ChangeModified {
		t.Errorf("Usage kind = %s, want modified", usage.Kind)
	}
}

func TestDiffSections_HeadingsInsideFences(t *testing.T) {
	doc := "# Doc\n\n```\n# not a heading\n```\n\n## Real\n\ntext\n"
	diff := DiffSections(doc, doc)
	if len(diff.Sections) != 0 {
		t.Errorf("fenced pseudo-headings must not create sections: %v", diff.Sections)
	}
}

func TestDiffSections_FromEmpty(t *testing.T) {
	diff := DiffSections("", baseDoc)
	if diff.Stats.Added == 0 {
		t.Errorf("new document should report added sections, got %+v", diff.Stats)
	}
	if diff.Stats.Removed != 0 {
		t.Errorf("nothing to remove from an empty base, got %+v", diff.Stats)
	}
}

func TestSplitSections(t *testing.T) {
	secs := splitSections(baseDoc)
	want := []string{"Tool", "Install", "Usage", "License"}
	if len(secs) != len(want) {
		t.Fatalf("got %d sections, want %d", len(secs), len(want))
	}
	for i, h := range want {
		if secs[i].heading != h {
			t.Errorf("section %d heading = %q, want %q", i, secs[i].heading, h)
		}
	}
}

func TestSplitSections_Preamble(t *testing.T) {
	secs := splitSections("some preamble\n\n# Title\n\nbody\n")
	if len(secs) != 2 {
		t.Fatalf("got %d sections, want 2 (preamble + title)", len(secs))
	}
	if secs[0].heading != "" {
		t.Errorf("preamble should have empty heading, got %q", secs[0].heading)
	}
}

func TestIsHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"# Title", true},
		{"###### Deep", true},
		{"####### TooDeep", false},
		{"#NoSpace", false},
		{"plain", false},
		{"#", false},
	}
	for _, tt := range tests {
		if got := isHeading(tt.line); got != tt.want {
			t.Errorf("isHeading(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
