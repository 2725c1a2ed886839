// Package pipeline wires the analysis collaborators, the review synthesizer
// and the GitHub surface into one per-PR review flow.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/docpilot/docpilot/internal/analysis"
	"github.com/docpilot/docpilot/internal/docreview"
	"github.com/docpilot/docpilot/internal/redact"
	"github.com/docpilot/docpilot/internal/usage"
)

// GitHubAPI is the outbound GitHub surface the pipeline needs.
type GitHubAPI interface {
	ChangedFiles(ctx context.Context, owner, repo string, number int) ([]docreview.CodeFileInfo, error)
	FileContent(ctx context.Context, owner, repo, path, ref string) (string, error)
	PostComment(ctx context.Context, owner, repo string, number int, body string) error
	UpdatePRBody(ctx context.Context, owner, repo string, number int, body string) error
}

// PullRequest identifies the pull request under review plus the metadata the
// prompt needs. Decoded once at the webhook boundary.
type PullRequest struct {
	Owner   string
	Repo    string
	Number  int
	Title   string
	Body    string
	Author  string
	BaseRef string
	HeadRef string
	BaseSHA string
	HeadSHA string
}

func (pr PullRequest) repoSlug() string {
	return pr.Owner + "/" + pr.Repo
}

// Pipeline runs the review flow for one pull request at a time. It holds no
// per-request state; concurrent Review calls are independent.
type Pipeline struct {
	gh         GitHubAPI
	strategies []docreview.Strategy
	creds      docreview.ModelConfig
	usage      usage.Recorder
	log        *zap.Logger
}

// New creates a Pipeline. The strategies run in order; the first success
// wins. A nil recorder disables usage tracking and a nil logger disables
// diagnostics.
func New(gh GitHubAPI, strategies []docreview.Strategy, creds docreview.ModelConfig, rec usage.Recorder, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{gh: gh, strategies: strategies, creds: creds, usage: rec, log: log}
}

// Review computes the signals for the pull request's primary document,
// attempts each strategy in order, and publishes the first successful
// result. Model-side failures degrade to the next strategy and finally to
// doing nothing; only GitHub API failures return an error.
func (p *Pipeline) Review(ctx context.Context, pr PullRequest) error {
	log := p.log.With(
		zap.String("repo", pr.repoSlug()),
		zap.Int("pr", pr.Number),
	)

	files, err := p.gh.ChangedFiles(ctx, pr.Owner, pr.Repo, pr.Number)
	if err != nil {
		return fmt.Errorf("listing changed files: %w", err)
	}

	docPath := primaryDocument(files)
	if docPath == "" {
		log.Info("no markdown files in PR, skipping review")
		return nil
	}

	in, err := p.buildInput(ctx, pr, docPath, files)
	if err != nil {
		return err
	}

	for _, strat := range p.strategies {
		res, ok := strat.Generate(ctx, in, p.creds)
		if !ok {
			log.Info("strategy produced no result", zap.String("strategy", strat.Name()))
			continue
		}
		return p.publish(ctx, pr, strat.Name(), res, log)
	}

	log.Warn("all review strategies failed, posting nothing")
	p.record(ctx, pr, usage.OutcomeUnavailable)
	return nil
}

func (p *Pipeline) buildInput(ctx context.Context, pr PullRequest, docPath string, files []docreview.CodeFileInfo) (docreview.ReviewInput, error) {
	oldContent, err := p.gh.FileContent(ctx, pr.Owner, pr.Repo, docPath, pr.BaseSHA)
	if err != nil {
		return docreview.ReviewInput{}, fmt.Errorf("fetching base revision: %w", err)
	}
	newContent, err := p.gh.FileContent(ctx, pr.Owner, pr.Repo, docPath, pr.HeadSHA)
	if err != nil {
		return docreview.ReviewInput{}, fmt.Errorf("fetching head revision: %w", err)
	}

	// Secrets in the PR body or patch hunks must not reach the provider.
	redacted := make([]docreview.CodeFileInfo, len(files))
	for i, f := range files {
		f.Patch = redact.Secrets(f.Patch)
		redacted[i] = f
	}

	return docreview.ReviewInput{
		PR: docreview.PRContext{
			Title:   pr.Title,
			Body:    redact.Secrets(pr.Body),
			Author:  pr.Author,
			BaseRef: pr.BaseRef,
			HeadRef: pr.HeadRef,
		},
		DocType:  analysis.ClassifyDocument(docPath, newContent),
		Diff:     analysis.DiffSections(oldContent, newContent),
		Findings: analysis.LintDocument(docPath, newContent),
		Files:    redacted,
	}, nil
}

func (p *Pipeline) publish(ctx context.Context, pr PullRequest, strategy string, res docreview.Result, log *zap.Logger) error {
	if err := p.gh.PostComment(ctx, pr.Owner, pr.Repo, pr.Number, res.Comment); err != nil {
		return err
	}
	log.Info("posted review", zap.String("strategy", strategy))

	outcome := usage.OutcomeLegacy
	if res.Output != nil {
		outcome = usage.OutcomeRich
		// Only fill in an empty description; never overwrite the author's.
		if desc := docreview.GenerateV2PRDescription(res.Output); desc != "" && strings.TrimSpace(pr.Body) == "" {
			if err := p.gh.UpdatePRBody(ctx, pr.Owner, pr.Repo, pr.Number, desc); err != nil {
				log.Warn("updating PR description failed", zap.Error(err))
			}
		}
	}
	p.record(ctx, pr, outcome)
	return nil
}

func (p *Pipeline) record(ctx context.Context, pr PullRequest, outcome usage.Outcome) {
	if p.usage == nil {
		return
	}
	if err := p.usage.Record(ctx, pr.repoSlug(), outcome); err != nil {
		p.log.Warn("recording usage failed", zap.Error(err))
	}
}

// primaryDocument picks the document the review centers on: the first
// README in the changeset, else the first markdown file.
func primaryDocument(files []docreview.CodeFileInfo) string {
	first := ""
	for _, f := range files {
		if !isMarkdown(f.Filename) {
			continue
		}
		if first == "" {
			first = f.Filename
		}
		base := strings.ToLower(f.Filename)
		if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
			base = base[idx+1:]
		}
		if strings.HasPrefix(base, "readme") {
			return f.Filename
		}
	}
	return first
}

func isMarkdown(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}
