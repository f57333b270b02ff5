package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// LocalStorage keeps report files in a directory on the local filesystem.
// It is the default backend.
type LocalStorage struct {
	dir string
}

// Ensure LocalStorage implements StorageInterface
var _ StorageInterface = (*LocalStorage)(nil)

// NewLocalStorage creates the report directory if needed
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("output directory is required")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	return &LocalStorage{dir: dir}, nil
}

// Dir returns the directory reports are written to
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Store writes a report file to the output directory
func (s *LocalStorage) Store(filename string, data []byte) error {
	path := filepath.Join(s.dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logrus.Infof("Stored report %s", path)
	return nil
}

// Retrieve reads a report file from the output directory
func (s *LocalStorage) Retrieve(filename string) ([]byte, error) {
	path := filepath.Join(s.dir, filepath.Base(filename))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// List returns the names of stored reports matching prefix
func (s *LocalStorage) List(prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), prefix) {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}

// Delete removes a stored report
func (s *LocalStorage) Delete(filename string) error {
	path := filepath.Join(s.dir, filepath.Base(filename))
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}

	logrus.Infof("Deleted report %s", path)
	return nil
}
