package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/parley-mcp/parley/internal/models"
)

// HealthHandler handles GET /health with a confirmation-log probe.
type HealthHandler struct {
	version string
	logPath string
}

func NewHealthHandler(version, logPath string) *HealthHandler {
	return &HealthHandler{version: version, logPath: logPath}
}

// Health reports degraded when the confirmation log cannot be opened
// for append, since an unwritable log means exchanges would go
// unrecorded.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"server": "ok"}
	status := "healthy"

	if err := h.probeLog(); err != nil {
		checks["confirmation_log"] = "unavailable: " + err.Error()
		status = "degraded"
	} else {
		checks["confirmation_log"] = "ok"
	}

	statusCode := http.StatusOK
	if status == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	models.WriteJSON(w, statusCode, models.HealthResponse{
		Status:  status,
		Version: h.version,
		Checks:  checks,
	})
}

func (h *HealthHandler) probeLog() error {
	if dir := filepath.Dir(h.logPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(h.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}
