package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/summit-pack/internal/catalog"
	"github.com/eugenenazirov/summit-pack/internal/condition"
	"github.com/eugenenazirov/summit-pack/internal/grid"
	"github.com/eugenenazirov/summit-pack/internal/session"
	"github.com/eugenenazirov/summit-pack/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// SessionFactory starts a new session. A zero capacity selects the
// configured default.
type SessionFactory func(capacity int) (*session.Session, error)

// Handler wires the catalog, session factory and storage into HTTP handlers.
type Handler struct {
	catalog    *catalog.Catalog
	storage    storage.Storage
	newSession SessionFactory
	logger     *zap.Logger

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithHandlerLogger sets the logger used for unexpected lookups and failures.
func WithHandlerLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(items *catalog.Catalog, store storage.Storage, factory SessionFactory, opts ...HandlerOption) *Handler {
	h := &Handler{
		catalog:    items,
		storage:    store,
		newSession: factory,
		logger:     zap.NewNop(),
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
		Sessions:  h.storage.Len(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := catalogResponse{
		Items:      h.catalog.Items(),
		Capacities: grid.Capacities(),
		Options:    make(map[condition.Field][]optionResponse, len(condition.Fields)),
	}
	for _, f := range condition.Fields {
		for _, v := range condition.Options(f) {
			resp.Options[f] = append(resp.Options[f], optionResponse{Value: v, Label: condition.Label(v)})
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// decodeJSON reads an optional JSON body into v. An empty body leaves v
// untouched unless required is set.
func decodeJSON(r *http.Request, v any, required bool) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) && !required {
		return nil
	}
	return err
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Sessions  int       `json:"sessions"`
}

type optionResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type catalogResponse struct {
	Items      []catalog.Item                       `json:"items"`
	Capacities []int                                `json:"capacities"`
	Options    map[condition.Field][]optionResponse `json:"options"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
