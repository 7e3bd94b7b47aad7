package blob

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemoryBlobStore is an in-memory BlobStore for tests and local runs
type MemoryBlobStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
}

// NewMemoryBlobStore creates an empty in-memory blob store. URLs are
// generated under baseURL ("memory://blobs" when empty).
func NewMemoryBlobStore(baseURL string) *MemoryBlobStore {
	if baseURL == "" {
		baseURL = "memory://blobs"
	}
	return &MemoryBlobStore{
		objects: make(map[string][]byte),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Put implements BlobStore.Put
func (m *MemoryBlobStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", NewBlobError("Put", key, ErrInvalidKey)
	}
	if len(data) == 0 {
		return "", NewBlobError("Put", key, ErrInvalidData)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	m.objects[key] = stored

	return fmt.Sprintf("%s/%s", m.baseURL, key), nil
}

// Get implements BlobStore.Get
func (m *MemoryBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.objects[key]
	if !ok {
		return nil, NewBlobError("Get", key, ErrObjectNotFound)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Delete implements BlobStore.Delete
func (m *MemoryBlobStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[key]; !ok {
		return NewBlobError("Delete", key, ErrObjectNotFound)
	}
	delete(m.objects, key)
	return nil
}

// Exists implements BlobStore.Exists
func (m *MemoryBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.objects[key]
	return ok, nil
}

// Close implements BlobStore.Close
func (m *MemoryBlobStore) Close() error {
	return nil
}

// Len returns the number of stored objects (test helper)
func (m *MemoryBlobStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
