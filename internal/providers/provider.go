// Package providers contains the chat-completion clients used to reach the
// remote model. Exactly one attempt is made per request; degradation between
// strategies is the caller's job, not retry logic here.
package providers

import "context"

// Request is one bounded completion request. Credentials travel with the
// request so nothing is cached across calls.
type Request struct {
	APIKey      string
	GroupID     string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Response is the portion of the provider reply the pipeline consumes.
type Response struct {
	Content string
}

// Completer issues a single blocking completion call.
type Completer interface {
	Complete(ctx context.Context, req Request) (Response, error)
	Name() string
}
