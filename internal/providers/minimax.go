package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultMiniMaxURL   = "https://api.minimax.chat/v1/text/chatcompletion_v2"
	defaultMiniMaxModel = "MiniMax-Text-01"
)

// MiniMax implements Completer against a MiniMax-style chat completion
// endpoint.
type MiniMax struct {
	model   string
	baseURL string
	client  *http.Client
}

// MiniMaxOption customizes a MiniMax client.
type MiniMaxOption func(*MiniMax)

// WithBaseURL overrides the completion endpoint, mainly for tests.
func WithBaseURL(url string) MiniMaxOption {
	return func(m *MiniMax) { m.baseURL = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) MiniMaxOption {
	return func(m *MiniMax) { m.client = c }
}

// NewMiniMax creates a MiniMax completion client. An empty model selects the
// default.
func NewMiniMax(model string, opts ...MiniMaxOption) *MiniMax {
	if model == "" {
		model = defaultMiniMaxModel
	}
	m := &MiniMax{
		model:   model,
		baseURL: defaultMiniMaxURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MiniMax) Name() string { return "minimax" }

// Complete issues exactly one POST to the completion endpoint and returns
// the first choice's message content. Non-2xx statuses surface as a
// *StatusError; the caller decides whether that is fatal.
func (m *MiniMax) Complete(ctx context.Context, req Request) (Response, error) {
	body := minimaxRequest{
		Model: m.model,
		Messages: []minimaxMessage{
			{Role: "user", Content: req.Prompt},
		},
		GroupID:     req.GroupID,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", m.baseURL, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+req.APIKey)

	httpResp, err := m.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("sending request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return Response{}, &StatusError{StatusCode: httpResp.StatusCode, Body: string(respBody)}
	}

	var result minimaxResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return Response{}, fmt.Errorf("parsing response: %w", err)
	}

	// Absent choices yield empty content; the parser downstream decides
	// what that means.
	var content string
	if len(result.Choices) > 0 {
		content = result.Choices[0].Message.Content
	}

	return Response{Content: content}, nil
}

// StatusError is a non-2xx reply from the provider.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}

type minimaxRequest struct {
	Model       string           `json:"model"`
	Messages    []minimaxMessage `json:"messages"`
	GroupID     string           `json:"groupId"`
	Temperature float64          `json:"temperature"`
	MaxTokens   int              `json:"max_tokens"`
}

type minimaxMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type minimaxResponse struct {
	Choices []minimaxChoice `json:"choices"`
}

type minimaxChoice struct {
	Message minimaxMessage `json:"message"`
}
