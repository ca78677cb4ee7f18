package history

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/sync/singleflight"

	"github.com/parley-mcp/parley/internal/models"
)

// maxLineBytes caps a single record line. Requests carry small
// schemas, so real records stay far below this.
const maxLineBytes = 1024 * 1024

// Reader loads the confirmation log in full. Concurrent loads share
// one underlying file read through singleflight.
type Reader struct {
	path string
	sf   singleflight.Group
}

func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Load reads every record in the log. A missing file yields zero
// records; a line that fails to parse fails the whole read.
func (r *Reader) Load() ([]models.ConfirmationRecord, error) {
	v, err, _ := r.sf.Do("load", func() (any, error) {
		return r.load()
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.ConfirmationRecord), nil
}

func (r *Reader) load() ([]models.ConfirmationRecord, error) {
	file, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open confirmation log: %w", err)
	}
	defer file.Close()

	var records []models.ConfirmationRecord
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var rec models.ConfirmationRecord
		if err := json.Unmarshal(text, &rec); err != nil {
			return nil, fmt.Errorf("confirmation log line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read confirmation log: %w", err)
	}
	return records, nil
}
