// Package watermark persists the latest-processed timestamp between runs.
package watermark

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// FileStore keeps the watermark as a single integer line in a file. There
// is a single writer per cycle so no locking protocol is needed.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a file-backed watermark store.
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create watermark directory: %w", err)
	}
	return &FileStore{path: path, logger: logger}, nil
}

// Load returns the saved watermark. A missing file means no watermark has
// ever been saved, which triggers bootstrap mode.
func (s *FileStore) Load() (int64, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read watermark file: %w", err)
	}

	ts, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt watermark file %s: %w", s.path, err)
	}
	return ts, true, nil
}

// Save records a new watermark.
func (s *FileStore) Save(ts int64) error {
	if err := os.WriteFile(s.path, []byte(strconv.FormatInt(ts, 10)+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write watermark file: %w", err)
	}
	s.logger.Debug("Saved watermark", zap.Int64("watermark", ts))
	return nil
}
