// Package http exposes a running conversation over HTTP: decoders submit messages,
// operators watch the phase, and scrapers collect metrics.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/qso/internal/logging"
	"github.com/aretw0/qso/pkg/ft8"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the HTTP surface to a queue and a tracker.
type Server struct {
	Queue   *Queue
	Tracker *Tracker
	// Graph is the pre-rendered phase graph served on GET /graph.
	Graph    string
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// SubmitRequest is the body of POST /messages.
type SubmitRequest struct {
	Message  string   `json:"message,omitempty"`
	Messages []string `json:"messages,omitempty"`
}

// SubmitResponse is the reply of POST /messages.
type SubmitResponse struct {
	Accepted int `json:"accepted"`
}

// NewHandler creates the HTTP handler for the server.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/messages", s.submit)
	r.Post("/close", s.close)
	r.Get("/status", s.status)
	r.Get("/graph", s.graph)
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	var body SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	msgs := body.Messages
	if body.Message != "" {
		msgs = append([]string{body.Message}, msgs...)
	}
	if len(msgs) == 0 {
		http.Error(w, "No messages", http.StatusBadRequest)
		return
	}

	accepted := 0
	for _, raw := range msgs {
		msg := ft8.Normalize(raw)
		if msg == "" {
			continue
		}
		if err := s.Queue.Submit(r.Context(), msg); err != nil {
			status := http.StatusServiceUnavailable
			if errors.Is(err, ErrQueueClosed) {
				status = http.StatusConflict
			}
			http.Error(w, fmt.Sprintf("Submit error: %v", err), status)
			return
		}
		accepted++
	}

	s.Logger.Debug("messages submitted", "count", accepted)
	writeJSON(w, http.StatusAccepted, SubmitResponse{Accepted: accepted})
}

func (s *Server) close(w http.ResponseWriter, r *http.Request) {
	s.Queue.Close()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Tracker.Snapshot())
}

func (s *Server) graph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, s.Graph)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
