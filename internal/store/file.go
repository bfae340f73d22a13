package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileDocuments keeps each document as <dir>/<name>.
// Save rewrites the file in place; a crash mid-write can leave it truncated.
type FileDocuments struct {
	dir string
}

// NewFileDocuments creates the directory if needed.
func NewFileDocuments(dir string) (*FileDocuments, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}
	return &FileDocuments{dir: dir}, nil
}

// Dir returns the data directory.
func (f *FileDocuments) Dir() string { return f.dir }

func (f *FileDocuments) path(name string) string {
	return filepath.Join(f.dir, filepath.Base(name))
}

// Load decodes the file into v, or leaves v alone when the file is missing.
func (f *FileDocuments) Load(_ context.Context, name string, v any) error {
	data, err := os.ReadFile(f.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("store: decode %s: %w", name, err)
	}
	return nil
}

// Save writes doc as indented JSON, overwriting the previous content.
func (f *FileDocuments) Save(_ context.Context, name string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", name, err)
	}
	if err := os.WriteFile(f.path(name), data, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	return nil
}

// Ping checks that the data directory is still there.
func (f *FileDocuments) Ping(context.Context) error {
	info, err := os.Stat(f.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("store: %s is not a directory", f.dir)
	}
	return nil
}

func (f *FileDocuments) Close() error { return nil }
