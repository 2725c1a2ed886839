package webhook

import (
	"encoding/json"
	"fmt"

	gogithub "github.com/google/go-github/v68/github"

	"github.com/docpilot/docpilot/internal/pipeline"
)

// Event is the tagged union of webhook deliveries this service understands.
// Payloads are decoded and validated exactly once, here at the boundary;
// nothing past this point touches raw JSON.
type Event interface {
	eventType() string
}

// PullRequestEvent is a pull_request delivery with the fields the pipeline
// consumes.
type PullRequestEvent struct {
	Action         string
	InstallationID int64
	PR             pipeline.PullRequest
}

func (PullRequestEvent) eventType() string { return "pull_request" }

// Actionable reports whether this action should trigger a review.
func (e PullRequestEvent) Actionable() bool {
	switch e.Action {
	case "opened", "edited", "synchronize":
		return true
	}
	return false
}

// PingEvent is GitHub's webhook handshake.
type PingEvent struct{}

func (PingEvent) eventType() string { return "ping" }

// IgnoredEvent is any delivery type this service does not act on.
type IgnoredEvent struct {
	Type string
}

func (e IgnoredEvent) eventType() string { return e.Type }

// ParseEvent decodes a webhook delivery into a typed event. Unknown event
// types are not an error; they decode to IgnoredEvent so the handler can
// acknowledge them.
func ParseEvent(eventType string, payload []byte) (Event, error) {
	switch eventType {
	case "ping":
		return PingEvent{}, nil
	case "pull_request":
		return parsePullRequestEvent(payload)
	default:
		return IgnoredEvent{Type: eventType}, nil
	}
}

func parsePullRequestEvent(payload []byte) (Event, error) {
	var raw gogithub.PullRequestEvent
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("decoding pull_request payload: %w", err)
	}

	pr := raw.GetPullRequest()
	repo := raw.GetRepo()
	if pr == nil || repo == nil {
		return nil, fmt.Errorf("pull_request payload missing pull_request or repository")
	}

	ev := PullRequestEvent{
		Action:         raw.GetAction(),
		InstallationID: raw.GetInstallation().GetID(),
		PR: pipeline.PullRequest{
			Owner:   repo.GetOwner().GetLogin(),
			Repo:    repo.GetName(),
			Number:  raw.GetNumber(),
			Title:   pr.GetTitle(),
			Body:    pr.GetBody(),
			Author:  pr.GetUser().GetLogin(),
			BaseRef: pr.GetBase().GetRef(),
			HeadRef: pr.GetHead().GetRef(),
			BaseSHA: pr.GetBase().GetSHA(),
			HeadSHA: pr.GetHead().GetSHA(),
		},
	}

	if ev.PR.Owner == "" || ev.PR.Repo == "" || ev.PR.Number == 0 {
		return nil, fmt.Errorf("pull_request payload missing repository identity")
	}

	return ev, nil
}
