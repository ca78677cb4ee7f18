package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/parley-mcp/parley/internal/handler"
	"github.com/parley-mcp/parley/internal/models"
)

func TestHealthOK(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "data", "confirmations.jsonl")
	h := handler.NewHealthHandler("1.2.3", logPath)

	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var body models.HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "healthy" || body.Version != "1.2.3" {
		t.Errorf("body = %+v", body)
	}
	if body.Checks["confirmation_log"] != "ok" {
		t.Errorf("checks = %v", body.Checks)
	}
}

func TestHealthDegradedWhenLogUnwritable(t *testing.T) {
	// a directory at the log path makes the append probe fail
	logPath := filepath.Join(t.TempDir(), "confirmations.jsonl")
	if err := os.Mkdir(logPath, 0o755); err != nil {
		t.Fatal(err)
	}

	h := handler.NewHealthHandler("1.2.3", logPath)
	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
	var body models.HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "degraded" {
		t.Errorf("status = %q, want degraded", body.Status)
	}
}
