// Package store persists the application state as a single JSON blob under
// the fixed key "motiondevis-data", either on disk or in Redis.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/noah-isme/motiondevis/internal/devis"
)

// Key is the fixed storage identifier of the state blob.
const Key = "motiondevis-data"

// FileStore keeps the blob in a JSON document on disk. Saves go through a
// temp file and rename so a crash never leaves a half-written document.
type FileStore struct {
	Path string
}

// NewFileStore builds a file store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Path: filepath.Join(dir, Key+".json")}
}

// Load reads the persisted state. A missing file maps to devis.ErrNotFound.
func (f *FileStore) Load(_ context.Context) (devis.State, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return devis.State{}, devis.ErrNotFound
		}
		return devis.State{}, fmt.Errorf("read state: %w", err)
	}
	var st devis.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return devis.State{}, fmt.Errorf("decode state: %w", err)
	}
	return st, nil
}

// Ping verifies the state directory exists or can be created.
func (f *FileStore) Ping(_ context.Context) error {
	dir := filepath.Dir(f.Path)
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.MkdirAll(dir, 0o755)
		}
		return fmt.Errorf("stat state dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("state path %s is not a directory", dir)
	}
	return nil
}

// Save overwrites the whole snapshot.
func (f *FileStore) Save(_ context.Context, st devis.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		return fmt.Errorf("swap state: %w", err)
	}
	return nil
}
