// Package progress persists the repeat queue and error log to a local JSON file.
package progress

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/example/coniugatore/pkg/models"
)

// Data is the durable progress record.
type Data struct {
	RepeatQueue []models.RepeatItem `json:"repeat_queue"`
	ErrorLog    []models.Attempt    `json:"error_log"`
}

// Store reads and writes one local progress file. Multiple sessions must use
// distinct paths; concurrent writers to the same path are not coordinated.
type Store struct {
	path string
}

// NewStore creates a store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the progress file. A missing or malformed file yields empty
// defaults, never an error.
func (s *Store) Load() Data {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return Data{}
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return Data{}
	}
	return data
}

// Save writes the progress file, creating the parent directory if needed.
func (s *Store) Save(data Data) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}
