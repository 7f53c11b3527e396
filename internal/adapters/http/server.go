// Package http exposes the operational surface: health, metrics, a generic
// JSON message endpoint and the active-session listing.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blocksecure/tradedesk/pkg/domain"
)

// Engine defines what the HTTP surface needs from the conversation core.
type Engine interface {
	Handle(ctx context.Context, userID, text string) ([]domain.Prompt, error)
	ActiveSessions(ctx context.Context) ([]string, error)
}

// MessageRequest is the inbound payload of POST /v1/messages.
type MessageRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

// MessageResponse carries the prompts to deliver back to the user.
type MessageResponse struct {
	Prompts []domain.Prompt `json:"prompts"`
}

// Server wires the engine into chi handlers.
type Server struct {
	engine Engine
	logger *slog.Logger
}

// NewHandler builds the HTTP handler.
func NewHandler(engine Engine, logger *slog.Logger) http.Handler {
	s := &Server{engine: engine, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/v1/messages", s.postMessage)
	r.Get("/v1/sessions", s.listSessions)
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	var body MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if body.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	prompts, err := s.engine.Handle(r.Context(), body.UserID, body.Text)
	if err != nil {
		s.logger.Error("message handling failed", "user_id", body.UserID, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Prompts: prompts})
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.engine.ActiveSessions(r.Context())
	if err != nil {
		s.logger.Error("session listing failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
