// Package webhook is the inbound HTTP surface: it receives GitHub webhook
// deliveries, decodes them into typed events, and hands actionable pull
// requests to the review pipeline. Signature verification is deliberately
// not performed here; deploy behind an ingress that does it.
package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docpilot/docpilot/internal/pipeline"
)

// maxPayloadBytes bounds webhook bodies; GitHub caps payloads at 25 MB.
const maxPayloadBytes = 25 << 20

// Reviewer runs the review flow for one pull request.
type Reviewer interface {
	Review(ctx context.Context, pr pipeline.PullRequest) error
}

// Server is the webhook HTTP server.
type Server struct {
	reviewer Reviewer
	log      *zap.Logger
}

// New creates a Server. A nil logger disables diagnostics.
func New(reviewer Reviewer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{reviewer: reviewer, log: log}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type", "X-GitHub-Event", "X-GitHub-Delivery"},
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/webhook", s.handleWebhook)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleWebhook acknowledges every well-formed delivery with 200. A degraded
// or failed review never fails the webhook request; the worst case is that
// no review gets posted.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	delivery := r.Header.Get("X-GitHub-Delivery")
	if delivery == "" {
		delivery = uuid.NewString()
	}
	log := s.log.With(zap.String("delivery", delivery))

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		log.Warn("reading webhook body failed", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
		return
	}

	ev, err := ParseEvent(r.Header.Get("X-GitHub-Event"), payload)
	if err != nil {
		log.Warn("malformed webhook payload", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed payload"})
		return
	}

	switch ev := ev.(type) {
	case PingEvent:
		writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
	case PullRequestEvent:
		if !ev.Actionable() {
			log.Info("ignoring pull_request action", zap.String("action", ev.Action))
			writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
			return
		}
		log.Info("reviewing pull request",
			zap.String("repo", ev.PR.Owner+"/"+ev.PR.Repo),
			zap.Int("pr", ev.PR.Number),
			zap.String("action", ev.Action))
		if err := s.reviewer.Review(r.Context(), ev.PR); err != nil {
			// GitHub API trouble, not a reason to make the sender retry.
			log.Error("review pipeline failed", zap.Error(err))
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	default:
		log.Info("ignoring event", zap.String("type", r.Header.Get("X-GitHub-Event")))
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
