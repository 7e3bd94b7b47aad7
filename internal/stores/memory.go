package stores

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is an in-memory RecordStore. It backs tests and local
// development; production containers swap in the SQLite implementation.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// copyRecord deep-copies a record through JSON so callers can never
// mutate stored state through a returned reference. The round trip also
// normalizes numeric types the same way the SQLite store does.
func copyRecord(rec Record) Record {
	data, err := json.Marshal(rec)
	if err != nil {
		// Records are built from decoded JSON, so this cannot fail for
		// any value the handlers produce.
		out := make(Record, len(rec))
		for k, v := range rec {
			out[k] = v
		}
		return normalizeRecord(out)
	}
	var out Record
	if err := json.Unmarshal(data, &out); err != nil {
		return normalizeRecord(rec)
	}
	return out
}

// Scan implements RecordStore.Scan
func (s *MemoryStore) Scan(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, copyRecord(rec))
	}
	return out, nil
}

// Filter implements RecordStore.Filter
func (s *MemoryStore) Filter(ctx context.Context, filters map[string]any) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0)
	for _, rec := range s.records {
		if recordMatches(rec, filters) {
			out = append(out, copyRecord(rec))
		}
	}
	return out, nil
}

// Query implements RecordStore.Query
func (s *MemoryStore) Query(ctx context.Context, field, value string) ([]Record, error) {
	return s.Filter(ctx, map[string]any{field: value})
}

// Get implements RecordStore.Get
func (s *MemoryStore) Get(ctx context.Context, key string) (Record, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[key]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return copyRecord(rec), nil
}

// Put implements RecordStore.Put
func (s *MemoryStore) Put(ctx context.Context, key string, rec Record) error {
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = copyRecord(rec)
	return nil
}

// UpdateFields implements RecordStore.UpdateFields
func (s *MemoryStore) UpdateFields(ctx context.Context, key string, fields map[string]any) (Record, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		return nil, ErrRecordNotFound
	}

	updated := copyRecord(rec)
	for k, v := range fields {
		updated[k] = normalizeValue(v)
	}
	s.records[key] = updated
	return copyRecord(updated), nil
}

// Delete implements RecordStore.Delete
func (s *MemoryStore) Delete(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.records[key]
	delete(s.records, key)
	return existed, nil
}

// recordMatches reports whether rec satisfies every filter entry
func recordMatches(rec Record, filters map[string]any) bool {
	for field, want := range filters {
		stored, ok := rec[field]
		if !ok || !valueEquals(stored, want) {
			return false
		}
	}
	return true
}
