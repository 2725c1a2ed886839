// Package github wraps the GitHub API surface the review pipeline needs:
// listing changed files, fetching file content at a ref, and publishing the
// review back to the pull request.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gogithub "github.com/google/go-github/v68/github"

	"github.com/docpilot/docpilot/internal/docreview"
)

// Client is a thin wrapper over the go-github client.
type Client struct {
	gh *gogithub.Client
}

// NewAppClient authenticates as a GitHub App installation using a private
// key on disk.
func NewAppClient(appID, installationID int64, privateKeyPath string) (*Client, error) {
	itr, err := ghinstallation.NewKeyFromFile(http.DefaultTransport, appID, installationID, privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("creating installation transport: %w", err)
	}
	return &Client{gh: gogithub.NewClient(&http.Client{Transport: itr})}, nil
}

// NewTokenClient authenticates with a personal access token. An empty token
// yields an unauthenticated client.
func NewTokenClient(token string) *Client {
	gh := gogithub.NewClient(nil)
	if token != "" {
		gh = gh.WithAuthToken(token)
	}
	return &Client{gh: gh}
}

// NewFromGitHub wraps an existing go-github client, mainly for tests.
func NewFromGitHub(gh *gogithub.Client) *Client {
	return &Client{gh: gh}
}

// SetBaseURL points the client at a different API root, mainly for tests.
// go-github requires the trailing slash.
func (c *Client) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing base URL: %w", err)
	}
	c.gh.BaseURL = u
	return nil
}

// ChangedFiles lists the files changed in a pull request, in API order.
func (c *Client) ChangedFiles(ctx context.Context, owner, repo string, number int) ([]docreview.CodeFileInfo, error) {
	opts := &gogithub.ListOptions{PerPage: 100}
	var files []docreview.CodeFileInfo
	for {
		page, resp, err := c.gh.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing PR files: %w", err)
		}
		for _, f := range page {
			files = append(files, docreview.CodeFileInfo{
				Filename:  f.GetFilename(),
				Additions: f.GetAdditions(),
				Deletions: f.GetDeletions(),
				Patch:     f.GetPatch(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return files, nil
}

// FileContent fetches a file's decoded content at the given ref. A missing
// file returns "" and no error, so callers can diff against an empty
// revision for newly added documents.
func (c *Client) FileContent(ctx context.Context, owner, repo, path, ref string) (string, error) {
	content, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, path,
		&gogithub.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", fmt.Errorf("fetching %s@%s: %w", path, ref, err)
	}
	if content == nil {
		return "", fmt.Errorf("%s@%s is not a file", path, ref)
	}
	decoded, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("decoding %s@%s: %w", path, ref, err)
	}
	return decoded, nil
}

// PostComment adds an issue comment to the pull request.
func (c *Client) PostComment(ctx context.Context, owner, repo string, number int, body string) error {
	_, _, err := c.gh.Issues.CreateComment(ctx, owner, repo, number,
		&gogithub.IssueComment{Body: gogithub.Ptr(body)})
	if err != nil {
		return fmt.Errorf("posting comment: %w", err)
	}
	return nil
}

// UpdatePRBody replaces the pull request description.
func (c *Client) UpdatePRBody(ctx context.Context, owner, repo string, number int, body string) error {
	_, _, err := c.gh.PullRequests.Edit(ctx, owner, repo, number,
		&gogithub.PullRequest{Body: gogithub.Ptr(body)})
	if err != nil {
		return fmt.Errorf("updating PR body: %w", err)
	}
	return nil
}
