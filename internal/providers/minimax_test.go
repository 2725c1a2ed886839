package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMiniMax_Complete(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello"}}]}`))
	}))
	defer srv.Close()

	m := NewMiniMax("test-model", WithBaseURL(srv.URL))
	resp, err := m.Complete(context.Background(), Request{
		APIKey:      "key-123",
		GroupID:     "group-9",
		Prompt:      "say hello",
		MaxTokens:   2000,
		Temperature: 0.3,
	})

	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if resp.Content != "hello" {
		t.Errorf("Content = %q", resp.Content)
	}
	if gotAuth != "Bearer key-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotBody["model"] != "test-model" {
		t.Errorf("model = %v", gotBody["model"])
	}
	if gotBody["groupId"] != "group-9" {
		t.Errorf("groupId = %v", gotBody["groupId"])
	}
	if gotBody["temperature"] != 0.3 {
		t.Errorf("temperature = %v", gotBody["temperature"])
	}
	if gotBody["max_tokens"] != float64(2000) {
		t.Errorf("max_tokens = %v", gotBody["max_tokens"])
	}
	msgs, ok := gotBody["messages"].([]any)
	if !ok || len(msgs) != 1 {
		t.Fatalf("messages = %v", gotBody["messages"])
	}
	msg := msgs[0].(map[string]any)
	if msg["role"] != "user" || msg["content"] != "say hello" {
		t.Errorf("message = %v", msg)
	}
}

func TestMiniMax_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	m := NewMiniMax("", WithBaseURL(srv.URL))
	_, err := m.Complete(context.Background(), Request{APIKey: "k", GroupID: "g", Prompt: "p"})

	var statusErr *StatusError
	if err == nil {
		t.Fatal("expected error for non-2xx status")
	}
	if se, ok := err.(*StatusError); ok {
		statusErr = se
	} else {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d", statusErr.StatusCode)
	}
}

func TestMiniMax_SingleAttempt(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	m := NewMiniMax("", WithBaseURL(srv.URL))
	_, _ = m.Complete(context.Background(), Request{APIKey: "k", GroupID: "g", Prompt: "p"})

	if calls != 1 {
		t.Errorf("expected exactly one attempt, got %d", calls)
	}
}

func TestMiniMax_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	m := NewMiniMax("", WithBaseURL(srv.URL))
	resp, err := m.Complete(context.Background(), Request{APIKey: "k", GroupID: "g", Prompt: "p"})

	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if resp.Content != "" {
		t.Errorf("Content = %q, want empty for absent choices", resp.Content)
	}
}

func TestMiniMax_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMiniMax("", WithBaseURL(srv.URL))
	if _, err := m.Complete(ctx, Request{APIKey: "k", GroupID: "g", Prompt: "p"}); err == nil {
		t.Error("expected error from canceled context")
	}
}

func TestNewMiniMax_Defaults(t *testing.T) {
	m := NewMiniMax("")
	if m.model != defaultMiniMaxModel {
		t.Errorf("model = %q", m.model)
	}
	if m.baseURL != defaultMiniMaxURL {
		t.Errorf("baseURL = %q", m.baseURL)
	}
}
