package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwren/pennyledger/internal/ledger"
)

// JSONFile persists snapshots as one JSON document on disk, the local-file
// analogue of the browser's local storage.
type JSONFile struct {
	path string
}

// NewJSONFile returns a store writing to path. The parent directory is
// created on first save.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

func (f *JSONFile) Load(_ context.Context) (*ledger.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	var snap ledger.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return &snap, nil
}

// Save writes the whole document atomically: marshal, write a sibling temp
// file, rename over the target.
func (f *JSONFile) Save(_ context.Context, snap *ledger.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("mkdir state dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
