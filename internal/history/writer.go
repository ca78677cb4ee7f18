package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/parley-mcp/parley/internal/models"
)

// Writer appends confirmation records to a newline-delimited JSON
// log. Appends are serialized by a mutex and each record goes out in
// a single write, so concurrent transactions cannot interleave
// partial lines. Every failure is swallowed and debug-logged: audit
// output is best-effort and must never abort an in-flight
// elicitation.
type Writer struct {
	path string
	mu   sync.Mutex
}

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the log file location.
func (w *Writer) Path() string { return w.path }

// Append serializes one record and appends it to the log.
func (w *Writer) Append(rec models.ConfirmationRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			// keep going; the open below decides whether the path is usable
			log.Debug().Err(err).Str("dir", dir).Msg("confirmation log directory not ensured")
		}
	}

	data, err := json.Marshal(rec)
	if err != nil {
		log.Debug().Err(err).Msg("confirmation record not serializable, dropping")
		return
	}

	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Debug().Err(err).Str("path", w.path).Msg("confirmation log not writable, dropping record")
		return
	}
	defer file.Close()

	if _, err := file.Write(append(data, '\n')); err != nil {
		log.Debug().Err(err).Str("path", w.path).Msg("confirmation record not appended")
		return
	}
	if err := file.Sync(); err != nil {
		log.Debug().Err(err).Str("path", w.path).Msg("confirmation log not synced")
	}
}
