package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gitlab.com/tinyland/lab/lc-wrapped/pkg/fsutil"
)

// ErrNotFound is returned by Storage.Get when the key was never written.
var ErrNotFound = errors.New("theme: key not found")

// Storage is durable string key/value storage.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// FileStorage keeps one file per key under Dir.
type FileStorage struct {
	Dir string
}

// NewFileStorage returns storage rooted at dir. The directory is created on
// first write.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{Dir: dir}
}

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.Dir, filepath.Base(key))
}

// Get reads the value for key.
func (f *FileStorage) Get(key string) (string, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("theme: read %s: %w", key, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Set writes value atomically.
func (f *FileStorage) Set(key, value string) error {
	if err := fsutil.WriteFileAtomic(f.path(key), []byte(value+"\n"), 0o644); err != nil {
		return fmt.Errorf("theme: write %s: %w", key, err)
	}
	return nil
}

// MemoryStorage is process-local storage.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryStorage returns empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
