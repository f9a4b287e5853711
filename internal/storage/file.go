package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultDir = "~/.local/share/duka"

// FileAdapter stores each document as <dir>/<name>.toml.
type FileAdapter struct {
	dir string
}

// DefaultDir returns the default storage directory.
func DefaultDir() string {
	return defaultDir
}

// NewFileAdapter resolves dir (empty uses the default) and ensures it exists.
func NewFileAdapter(dir string) (*FileAdapter, error) {
	resolved, err := resolveDir(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileAdapter{dir: resolved}, nil
}

// Dir returns the resolved storage directory.
func (a *FileAdapter) Dir() string { return a.dir }

// Load implements Adapter. A corrupt document is treated as missing so a bad
// write never wedges the client.
func (a *FileAdapter) Load(name string, dest any) (bool, error) {
	raw, err := os.ReadFile(a.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := toml.Unmarshal(raw, dest); err != nil {
		return false, nil // Graceful degradation
	}
	return true, nil
}

// Save implements Adapter.
func (a *FileAdapter) Save(name string, value any) error {
	raw, err := toml.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := os.WriteFile(a.path(name), raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Delete implements Adapter.
func (a *FileAdapter) Delete(name string) error {
	if err := os.Remove(a.path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

func (a *FileAdapter) path(name string) string {
	return filepath.Join(a.dir, name+".toml")
}

func resolveDir(dir string) (string, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		trimmed = defaultDir
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
