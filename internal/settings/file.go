package settings

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/lox/holdem-table/internal/fileutil"
)

// FileStore keeps settings as flat TOML string keys
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the file. A missing file yields the defaults.
func (f *FileStore) Load(_ context.Context) (Settings, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings: %w", err)
	}

	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return Settings{}, fmt.Errorf("parsing settings %s: %w", f.path, err)
	}

	// hand-edited files may hold bare numbers and booleans
	values := make(map[string]string, len(raw))
	for k, v := range raw {
		values[k] = fmt.Sprint(v)
	}
	return FromValues(values), nil
}

// Save writes the file atomically
func (f *FileStore) Save(_ context.Context, s Settings) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s.Values()); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}
	return fileutil.WriteFileAtomic(f.path, buf.Bytes(), 0o644)
}
