package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/talentnest247/Talentnest-sub001/domain"
)

// MemoryStore is an in-process domain.DocumentStore for local runs and tests
type MemoryStore struct {
	mu    sync.RWMutex
	files map[string]memoryFile
}

type memoryFile struct {
	contentType string
	data        []byte
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string]memoryFile)}
}

// Put implements domain.DocumentStore
func (s *MemoryStore) Put(ctx context.Context, path, contentType string, content io.Reader, size int64) (*domain.StoredFile, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, content)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	s.mu.Lock()
	s.files[path] = memoryFile{contentType: contentType, data: buf.Bytes()}
	s.mu.Unlock()

	return &domain.StoredFile{
		Path:        path,
		URL:         "memory://" + path,
		ContentType: contentType,
		SizeBytes:   n,
	}, nil
}

// Delete implements domain.DocumentStore
func (s *MemoryStore) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	delete(s.files, path)
	s.mu.Unlock()
	return nil
}

// Stat implements domain.DocumentStore
func (s *MemoryStore) Stat(ctx context.Context, path string) (*domain.StoredFile, error) {
	s.mu.RLock()
	f, ok := s.files[path]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrFileNotStored
	}
	return &domain.StoredFile{
		Path:        path,
		URL:         "memory://" + path,
		ContentType: f.contentType,
		SizeBytes:   int64(len(f.data)),
	}, nil
}

// Get returns a stored file's bytes
func (s *MemoryStore) Get(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[path]
	return f.data, ok
}

// Len returns the number of stored files
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

var _ domain.DocumentStore = (*MemoryStore)(nil)
