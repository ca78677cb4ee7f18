package history_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/parley-mcp/parley/internal/history"
	"github.com/parley-mcp/parley/internal/models"
)

func testRecord(msg string) models.ConfirmationRecord {
	return models.ConfirmationRecord{
		Timestamp:        "2026-08-20T10:00:00Z",
		ConfirmationType: models.TypeConfirmation,
		Request:          models.ElicitationRequest{Message: msg, TimeoutMs: 5000},
		Response:         models.Outcome{Action: models.ActionAccept, Content: map[string]any{"confirmed": true}},
		ResponseTimeMs:   100,
		Success:          true,
	}
}

func TestAppendCreatesDirectoryAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "confirmations.jsonl")
	w := history.NewWriter(path)

	w.Append(testRecord("first"))
	w.Append(testRecord("second"))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var rec models.ConfirmationRecord
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("first line not valid JSON: %v", err)
	}
	if rec.Request.Message != "first" {
		t.Errorf("message = %q, want first", rec.Request.Message)
	}
}

func TestAppendFailureIsSwallowed(t *testing.T) {
	// the parent "directory" is a regular file, so both the ensure
	// and the open must fail quietly
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("prepare blocker: %v", err)
	}
	w := history.NewWriter(filepath.Join(blocker, "confirmations.jsonl"))
	w.Append(testRecord("dropped"))
}

func TestConcurrentAppendsDoNotInterleave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "confirmations.jsonl")
	w := history.NewWriter(path)

	const writers = 10
	const perWriter = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				w.Append(testRecord(fmt.Sprintf("writer %d message %d", i, j)))
			}
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != writers*perWriter {
		t.Fatalf("expected %d lines, got %d", writers*perWriter, len(lines))
	}
	seen := make(map[string]bool)
	for i, line := range lines {
		var rec models.ConfirmationRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("line %d corrupt: %v", i+1, err)
		}
		seen[rec.Request.Message] = true
	}
	if len(seen) != writers*perWriter {
		t.Errorf("expected %d distinct messages, got %d", writers*perWriter, len(seen))
	}
}
