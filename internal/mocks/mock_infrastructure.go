package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/talentnest247/Talentnest-sub001/domain"
)

// MockDocumentStore implements domain.DocumentStore interface for testing
type MockDocumentStore struct {
	PutFunc    func(ctx context.Context, path, contentType string, content io.Reader, size int64) (*domain.StoredFile, error)
	DeleteFunc func(ctx context.Context, path string) error
	StatFunc   func(ctx context.Context, path string) (*domain.StoredFile, error)

	mu      sync.Mutex
	Stored  []string
	Deleted []string
	// Files maps each stored path to its size
	Files   map[string]int64
}

// NewMockDocumentStore creates a new MockDocumentStore with default behaviors
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{Files: make(map[string]int64)}
}

func (m *MockDocumentStore) Put(ctx context.Context, path, contentType string, content io.Reader, size int64) (*domain.StoredFile, error) {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, path, contentType, content, size)
	}
	m.mu.Lock()
	m.Stored = append(m.Stored, path)
	m.Files[path] = size
	m.mu.Unlock()
	return &domain.StoredFile{Path: path, ContentType: contentType, SizeBytes: size}, nil
}

func (m *MockDocumentStore) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	m.Deleted = append(m.Deleted, path)
	m.mu.Unlock()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, path)
	}
	return nil
}

func (m *MockDocumentStore) Stat(ctx context.Context, path string) (*domain.StoredFile, error) {
	if m.StatFunc != nil {
		return m.StatFunc(ctx, path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	size, ok := m.Files[path]
	if !ok {
		return nil, domain.ErrFileNotStored
	}
	return &domain.StoredFile{Path: path, SizeBytes: size}, nil
}

// MockProfileLocker implements domain.ProfileLocker interface for testing
type MockProfileLocker struct {
	AcquireFunc func(ctx context.Context, key string) (func(context.Context) error, error)

	Acquired []string
	Released int
}

// NewMockProfileLocker creates a locker that always succeeds
func NewMockProfileLocker() *MockProfileLocker {
	return &MockProfileLocker{}
}

func (m *MockProfileLocker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	if m.AcquireFunc != nil {
		return m.AcquireFunc(ctx, key)
	}
	m.Acquired = append(m.Acquired, key)
	return func(context.Context) error {
		m.Released++
		return nil
	}, nil
}

// PublishedEvent is an event captured by MockEventPublisher
type PublishedEvent struct {
	Subject string
	Payload interface{}
}

// MockEventPublisher implements domain.EventPublisher interface for testing
type MockEventPublisher struct {
	PublishFunc func(ctx context.Context, subject string, payload interface{}) error

	mu        sync.Mutex
	Published []PublishedEvent
}

// NewMockEventPublisher creates a new MockEventPublisher with default behaviors
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	m.mu.Lock()
	m.Published = append(m.Published, PublishedEvent{Subject: subject, Payload: payload})
	m.mu.Unlock()
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, subject, payload)
	}
	return nil
}

// MockAuditLogger implements domain.AuditLogger interface for testing
type MockAuditLogger struct {
	LogEventFunc func(ctx context.Context, event *domain.AuditEvent) error

	mu     sync.Mutex
	Events []*domain.AuditEvent
}

// NewMockAuditLogger creates a new MockAuditLogger with default behaviors
func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

func (m *MockAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) error {
	m.mu.Lock()
	m.Events = append(m.Events, event)
	m.mu.Unlock()
	if m.LogEventFunc != nil {
		return m.LogEventFunc(ctx, event)
	}
	return nil
}

var (
	_ domain.DocumentStore  = (*MockDocumentStore)(nil)
	_ domain.ProfileLocker  = (*MockProfileLocker)(nil)
	_ domain.EventPublisher = (*MockEventPublisher)(nil)
	_ domain.AuditLogger    = (*MockAuditLogger)(nil)
)
