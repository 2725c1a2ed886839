package docreview

// PRContext carries the pull request metadata supplied by the webhook layer.
// It is immutable for the duration of a synthesis attempt.
type PRContext struct {
	Title   string `json:"title"`
	Body    string `json:"body,omitempty"`
	Author  string `json:"author"`
	BaseRef string `json:"baseRef"`
	HeadRef string `json:"headRef"`
}

// DocTypeClassification is a labeled guess at what kind of document changed.
type DocTypeClassification struct {
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// DiffStats counts section-level changes in a semantic diff.
type DiffStats struct {
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
	Moved    int `json:"moved"`
}

// ChangeKind identifies the variant of a SectionChange.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeRemoved  ChangeKind = "removed"
	ChangeModified ChangeKind = "modified"
	ChangeMoved    ChangeKind = "moved"
)

// SectionChange is one section-level change in a markdown document.
// Removed changes carry the old heading; every other variant carries the new one.
type SectionChange struct {
	Kind       ChangeKind `json:"kind"`
	NewHeading string     `json:"newHeading,omitempty"`
	OldHeading string     `json:"oldHeading,omitempty"`
}

// Heading returns the heading appropriate to the change variant.
func (c SectionChange) Heading() string {
	if c.Kind == ChangeRemoved {
		return c.OldHeading
	}
	return c.NewHeading
}

// SemanticDiff is a structured comparison of a document's logical sections
// between two revisions.
type SemanticDiff struct {
	Stats    DiffStats       `json:"stats"`
	Sections []SectionChange `json:"sections"`
}

// FindingKind classifies a static review finding.
type FindingKind string

const (
	FindingError   FindingKind = "error"
	FindingWarning FindingKind = "warning"
	FindingInfo    FindingKind = "info"
)

// ReviewFinding is one static finding from the document lint pass.
type ReviewFinding struct {
	Kind    FindingKind `json:"kind"`
	File    string      `json:"file,omitempty"`
	Message string      `json:"message"`
}

// CodeFileInfo describes one changed file in the pull request.
type CodeFileInfo struct {
	Filename  string `json:"filename"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Patch     string `json:"patch,omitempty"`
}

// RiskItem is a model-produced risk. Sub-fields are carried as the model
// returned them; only the enum vocabulary below is suggested in the prompt.
type RiskItem struct {
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Evidence    string `json:"evidence"`
	Suggestion  string `json:"suggestion"`
}

// ChecklistItem is one model-produced reviewer checklist entry.
type ChecklistItem struct {
	Category string `json:"category"`
	Item     string `json:"item"`
	Priority string `json:"priority"`
}

// BodySection is one suggested PR description section.
type BodySection struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// BodySuggestion is the model's suggested PR description, section by section.
type BodySuggestion struct {
	Sections []BodySection `json:"sections"`
}

// Verdict values the model may return.
const (
	VerdictApproved         = "approved"
	VerdictChangesRequested = "changes_requested"
	VerdictCommented        = "commented"
)

// Verdict is the model's categorical recommendation plus confidence.
type Verdict struct {
	Verdict    string  `json:"verdict"`
	Confidence float64 `json:"confidence"`
	Summary    string  `json:"summary"`
}

// ReviewOutput is the validated structured review. Intent, Overview and
// Verdict are required; everything else defaults when the model omits it.
type ReviewOutput struct {
	Intent     string          `json:"prIntent"`
	Overview   string          `json:"changeOverview"`
	KeyRisks   []RiskItem      `json:"keyRisks"`
	Checklist  []ChecklistItem `json:"checklist"`
	Suggestion BodySuggestion  `json:"prBodySuggestion"`
	Verdict    Verdict         `json:"verdict"`
}

// ReviewInput bundles the precomputed signals a synthesis attempt consumes.
type ReviewInput struct {
	PR       PRContext
	DocType  DocTypeClassification
	Diff     SemanticDiff
	Findings []ReviewFinding
	Files    []CodeFileInfo
}

// ModelConfig carries the per-call provider credentials. Credentials are read
// fresh from here on every attempt; nothing is cached process-wide.
type ModelConfig struct {
	APIKey  string
	GroupID string
}

// Configured reports whether both credentials are present.
func (c ModelConfig) Configured() bool {
	return c.APIKey != "" && c.GroupID != ""
}
