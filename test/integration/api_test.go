package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/summit-pack/internal/application"
	"github.com/eugenenazirov/summit-pack/internal/config"
	"github.com/eugenenazirov/summit-pack/internal/grid"
	"github.com/eugenenazirov/summit-pack/internal/scoring"
	"github.com/eugenenazirov/summit-pack/internal/session"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Config{
		Port:                 ":0",
		ShutdownGracePeriod:  time.Second,
		ReadHeaderTimeout:    time.Second,
		WriteTimeout:         time.Second,
		IdleTimeout:          time.Second,
		LogLevel:             "debug",
		DefaultCapacity:      grid.DefaultCapacity,
		GeneratorMaxAttempts: 100,
		ConditionSeed:        2024,
	}
	app, err := application.New(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("application.New: %v", err)
	}

	srv := httptest.NewServer(app.Server().Handler)
	t.Cleanup(srv.Close)
	return srv
}

func performRequest(t *testing.T, srv *httptest.Server, method, target string, payload any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader = http.NoBody
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, srv.URL+target, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func mustStatus(t *testing.T, resp *http.Response, body []byte, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s %s: expected %d, got %d: %s", resp.Request.Method, resp.Request.URL.Path, want, resp.StatusCode, body)
	}
}

type sessionPayload struct {
	ID          string               `json:"id"`
	Capacity    int                  `json:"capacity"`
	Placements  []grid.Placement     `json:"placements"`
	EmptyCells  int                  `json:"emptyCells"`
	InstanceID  string               `json:"instanceId"`
	Compression *grid.CompressReport `json:"compression"`
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return v
}

func TestIntegrationFlow(t *testing.T) {
	srv := newServer(t)

	resp, body := performRequest(t, srv, http.MethodGet, "/api/health", nil)
	mustStatus(t, resp, body, http.StatusOK)

	resp, body = performRequest(t, srv, http.MethodPost, "/api/sessions", map[string]int{"capacity": 30})
	mustStatus(t, resp, body, http.StatusCreated)
	sess := decode[sessionPayload](t, body)
	if sess.Capacity != 30 || sess.EmptyCells != 28 {
		t.Fatalf("unexpected new session %+v", sess)
	}
	base := "/api/sessions/" + sess.ID

	altitude, wind := 1000, 0
	resp, body = performRequest(t, srv, http.MethodPut, base+"/condition", map[string]any{
		"altitude": altitude,
		"weather":  "clear",
		"season":   "summer",
		"wind":     wind,
		"states":   []string{"normal"},
		"plan":     "daytrip",
	})
	mustStatus(t, resp, body, http.StatusOK)

	resp, body = performRequest(t, srv, http.MethodPost, base+"/items", map[string]any{"itemId": "rainwear", "x": 0, "y": 6, "drop": true})
	mustStatus(t, resp, body, http.StatusOK)
	placed := decode[sessionPayload](t, body)
	if placed.InstanceID == "" || len(placed.Placements) != 1 {
		t.Fatalf("unexpected placement response %+v", placed)
	}
	if got := placed.Placements[0]; got.X != 0 || got.Y+got.Height != 7 {
		t.Fatalf("expected rainwear to rest on the bottom row, got %+v", got)
	}

	resp, body = performRequest(t, srv, http.MethodPost, base+"/items", map[string]any{"itemId": "rainwear", "x": 3, "y": 0})
	mustStatus(t, resp, body, http.StatusConflict)

	resp, body = performRequest(t, srv, http.MethodPost, base+"/compress", nil)
	mustStatus(t, resp, body, http.StatusOK)
	compressed := decode[sessionPayload](t, body)
	if compressed.Compression == nil || !slices.Contains(compressed.Compression.Pressed, placed.InstanceID) {
		t.Fatalf("expected rainwear to be pressed, got %+v", compressed.Compression)
	}

	resp, body = performRequest(t, srv, http.MethodGet, base+"/checklist", nil)
	mustStatus(t, resp, body, http.StatusOK)
	list := decode[session.Checklist](t, body)
	if len(list.Packed) != 1 || list.Packed[0].ItemID != "rainwear" {
		t.Fatalf("unexpected checklist %+v", list)
	}

	resp, body = performRequest(t, srv, http.MethodPost, base+"/finish", nil)
	mustStatus(t, resp, body, http.StatusOK)
	result := decode[scoring.Result](t, body)
	if result.Rank == "" {
		t.Fatalf("expected a rank")
	}
	for _, m := range result.Necessity.MissingRequired {
		if m.ItemID == "rainwear" {
			t.Fatalf("packed rainwear reported missing")
		}
	}

	resp, body = performRequest(t, srv, http.MethodDelete, base, nil)
	mustStatus(t, resp, body, http.StatusNoContent)

	resp, body = performRequest(t, srv, http.MethodGet, base, nil)
	mustStatus(t, resp, body, http.StatusNotFound)
}

func TestIntegrationServesUI(t *testing.T) {
	srv := newServer(t)

	resp, body := performRequest(t, srv, http.MethodGet, "/", nil)
	mustStatus(t, resp, body, http.StatusOK)
	if !strings.Contains(string(body), "/static/css/style.css") {
		t.Fatalf("expected index page to link the stylesheet")
	}

	resp, body = performRequest(t, srv, http.MethodGet, "/static/css/style.css", nil)
	mustStatus(t, resp, body, http.StatusOK)
}
