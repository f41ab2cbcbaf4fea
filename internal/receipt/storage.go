package receipt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Storage defines the interface for receipt file operations
type Storage interface {
	// Save writes a file and returns its path
	Save(filename string, data []byte) (string, error)

	// Get reads a file by name
	Get(name string) ([]byte, error)

	// List returns the paths of stored receipts, most recent first
	List() ([]string, error)
}

// LocalStorage implements the Storage interface using a local directory.
// The directory is created on the first Save.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage rooted at basePath
func NewLocalStorage(basePath string) *LocalStorage {
	return &LocalStorage{
		basePath: basePath,
	}
}

// Save writes a file to local storage
func (l *LocalStorage) Save(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(l.basePath, 0755); err != nil {
		return "", fmt.Errorf("creating storage directory: %w", err)
	}

	path := filepath.Join(l.basePath, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return path, nil
}

// Get reads a file from local storage. Only the base name of name is used.
func (l *LocalStorage) Get(name string) ([]byte, error) {
	fullPath := filepath.Join(l.basePath, filepath.Base(name))
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

// List returns the receipt files in local storage sorted by name, newest first
func (l *LocalStorage) List() ([]string, error) {
	entries, err := os.ReadDir(l.basePath)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading receipts directory: %w", err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "Receipt_") || !strings.HasSuffix(name, ".txt") {
			continue
		}
		paths = append(paths, filepath.Join(l.basePath, name))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	return paths, nil
}
