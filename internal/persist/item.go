package persist

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

// FileItem is a configuration item backed by a file.
type FileItem struct {
	Path string
}

func (f FileItem) Location() string { return f.Path }

func (f FileItem) Read(context.Context) ([]byte, error) {
	return os.ReadFile(f.Path)
}

// Write replaces the file through a temporary sibling so a failed write never
// leaves a truncated office behind. An existing file keeps its permissions;
// a new one is created with mode 0644.
func (f FileItem) Write(_ context.Context, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(f.Path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), filepath.Base(f.Path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.Path)
}

// MemoryItem is an in-memory configuration item, safe for concurrent use.
type MemoryItem struct {
	Name string

	mu   sync.RWMutex
	data []byte
}

// NewMemoryItem returns an item holding a copy of data.
func NewMemoryItem(name string, data []byte) *MemoryItem {
	return &MemoryItem{Name: name, data: append([]byte(nil), data...)}
}

func (m *MemoryItem) Location() string { return m.Name }

func (m *MemoryItem) Read(context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryItem) Write(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

// Bytes returns a copy of the stored data.
func (m *MemoryItem) Bytes() []byte {
	data, _ := m.Read(context.Background())
	return data
}
