package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sweeney/stepwatch/internal/status"
)

func newTestServer() (*Server, *status.Tracker) {
	tracker := status.NewTracker(time.Now(), status.Config{Broker: "tcp://localhost:1883"})
	return New(":0", tracker), tracker
}

func TestStatusJSONEndpoint(t *testing.T) {
	srv, tracker := newTestServer()
	tracker.Update("04:00:15", "24/01", "12H", "CLOCK", 42, 60)

	req := httptest.NewRequest(http.MethodGet, "/status.json", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var decoded status.StatusJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Status.Steps != 42 || decoded.Status.Screen != "CLOCK" {
		t.Errorf("decoded = %+v", decoded.Status)
	}
}

func TestIndexRedirectsToStatus(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/status.json" {
		t.Errorf("Location = %q", loc)
	}
}

func TestUnknownPathIs404(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
