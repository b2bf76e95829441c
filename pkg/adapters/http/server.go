package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/tableau"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/table"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes a table.Manager over HTTP.
type Server struct {
	Tables  *table.Manager
	Streams *StreamManager
}

// NewHandler creates a new HTTP handler for the tables.
// Streams may be nil; events are then never published.
func NewHandler(tables *table.Manager, streams *StreamManager) http.Handler {
	if streams == nil {
		streams = NewStreamManager()
	}
	server := &Server{
		Tables:  tables,
		Streams: streams,
	}

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/tables", func(r chi.Router) {
		r.Get("/", server.ListTables)
		r.Post("/", server.CreateTable)
		r.Route("/{tableID}", func(r chi.Router) {
			r.Get("/", server.GetTable)
			r.Delete("/", server.DeleteTable)
			r.Post("/pointer", server.Pointer)
			r.Post("/moves", server.Move)
			r.Post("/revert", server.Revert)
			r.Get("/events", server.SubscribeEvents)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CreateTableRequest is the body of POST /tables.
type CreateTableRequest struct {
	ID string `json:"id,omitempty"`
}

// MoveRequest is the body of POST /tables/{id}/moves.
type MoveRequest struct {
	CardID string `json:"card_id"`
	SlotID string `json:"slot_id"`
}

// RevertRequest is the body of POST /tables/{id}/revert.
type RevertRequest struct {
	CardID string `json:"card_id"`
}

// GestureResponse reports the outcome of a gesture along with the resulting layout.
type GestureResponse struct {
	Result   *domain.DropResult `json:"result"`
	Snapshot domain.Snapshot    `json:"snapshot"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "tableau-http",
		"version": strings.TrimSpace(tableau.Version),
	})
}

// ListTables handles the GET /tables request.
func (s *Server) ListTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"tables": s.Tables.List()})
}

// CreateTable handles the POST /tables request.
// An empty body or ID gets a generated identifier.
func (s *Server) CreateTable(w http.ResponseWriter, r *http.Request) {
	var body CreateTableRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			slog.Warn("CreateTable: Invalid request body", "error", err)
			return
		}
	}
	if body.ID == "" {
		body.ID = uuid.NewString()
	}

	if _, err := s.Tables.Create(r.Context(), body.ID); err != nil {
		writeError(w, "CreateTable", err)
		return
	}

	var snap domain.Snapshot
	err := s.Tables.WithTable(r.Context(), body.ID, func(_ context.Context, t *tableau.Table) error {
		snap = t.Snapshot()
		return nil
	})
	if err != nil {
		writeError(w, "CreateTable", err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

// GetTable handles the GET /tables/{id} request.
func (s *Server) GetTable(w http.ResponseWriter, r *http.Request) {
	var snap domain.Snapshot
	err := s.Tables.WithTable(r.Context(), chi.URLParam(r, "tableID"), func(_ context.Context, t *tableau.Table) error {
		snap = t.Snapshot()
		return nil
	})
	if err != nil {
		writeError(w, "GetTable", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// DeleteTable handles the DELETE /tables/{id} request.
func (s *Server) DeleteTable(w http.ResponseWriter, r *http.Request) {
	if err := s.Tables.Delete(r.Context(), chi.URLParam(r, "tableID")); err != nil {
		writeError(w, "DeleteTable", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Pointer handles the POST /tables/{id}/pointer request.
func (s *Server) Pointer(w http.ResponseWriter, r *http.Request) {
	var ev domain.PointerEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		slog.Warn("Pointer: Invalid request body", "error", err)
		return
	}
	switch ev.Phase {
	case domain.PointerDown, domain.PointerMove, domain.PointerUp:
	default:
		http.Error(w, fmt.Sprintf("Invalid pointer phase %q", ev.Phase), http.StatusBadRequest)
		return
	}

	var resp GestureResponse
	err := s.Tables.WithTable(r.Context(), chi.URLParam(r, "tableID"), func(ctx context.Context, t *tableau.Table) error {
		resp.Result = t.Pointer(ctx, ev)
		resp.Snapshot = t.Snapshot()
		return nil
	})
	if err != nil {
		writeError(w, "Pointer", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Move handles the POST /tables/{id}/moves request.
func (s *Server) Move(w http.ResponseWriter, r *http.Request) {
	var body MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.CardID == "" || body.SlotID == "" {
		http.Error(w, "Invalid request body: card_id and slot_id are required", http.StatusBadRequest)
		slog.Warn("Move: Invalid request body", "error", err)
		return
	}

	var resp GestureResponse
	err := s.Tables.WithTable(r.Context(), chi.URLParam(r, "tableID"), func(ctx context.Context, t *tableau.Table) error {
		result, err := t.Move(ctx, body.CardID, body.SlotID)
		if err != nil {
			return err
		}
		resp.Result = &result
		resp.Snapshot = t.Snapshot()
		return nil
	})
	if err != nil {
		writeError(w, "Move", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Revert handles the POST /tables/{id}/revert request.
// The result is null when the card was not dragging.
func (s *Server) Revert(w http.ResponseWriter, r *http.Request) {
	var body RevertRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.CardID == "" {
		http.Error(w, "Invalid request body: card_id is required", http.StatusBadRequest)
		slog.Warn("Revert: Invalid request body", "error", err)
		return
	}

	var resp GestureResponse
	err := s.Tables.WithTable(r.Context(), chi.URLParam(r, "tableID"), func(ctx context.Context, t *tableau.Table) error {
		result, ok, err := t.Revert(ctx, body.CardID)
		if err != nil {
			return err
		}
		if ok {
			resp.Result = &result
		}
		resp.Snapshot = t.Snapshot()
		return nil
	})
	if err != nil {
		writeError(w, "Revert", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SubscribeEvents handles the GET /tables/{id}/events request (SSE).
// The optional watch query parameter filters by event type, e.g. ?watch=drop,layout.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		slog.Error("SubscribeEvents: Streaming not supported")
		return
	}

	tableID := chi.URLParam(r, "tableID")
	if err := s.Tables.WithTable(r.Context(), tableID, func(context.Context, *tableau.Table) error { return nil }); err != nil {
		writeError(w, "SubscribeEvents", err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	slog.Info("SSE: Subscribing to table events", "table", tableID)
	ch, cancel := s.Streams.Subscribe(tableID)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	watch := make(map[domain.EventType]bool)
	if raw := r.URL.Query().Get("watch"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			watch[domain.EventType(strings.TrimSpace(name))] = true
		}
	}

	for {
		select {
		case <-r.Context().Done():
			slog.Info("SSE Client Disconnected", "table", tableID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(watch) > 0 && !watch[msg.Type] {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Type, msg.Data)
			flusher.Flush()
		}
	}
}

// -- Helpers --

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrTableNotFound),
		errors.Is(err, domain.ErrSlotNotFound),
		errors.Is(err, domain.ErrCardNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrDuplicateID),
		errors.Is(err, domain.ErrCardDragging):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
		slog.Error(op+" failed", "error", err)
	}
}
