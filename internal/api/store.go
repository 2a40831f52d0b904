package api

import (
	"context"
	"sync"
	"time"
)

// Document statuses.
const (
	StatusUploaded   = "uploaded"
	StatusProcessing = "processing"
)

// DocumentStore records document processing status.
type DocumentStore interface {
	// SetStatus sets the status of the document with the given id, creating
	// the record if needed.
	SetStatus(ctx context.Context, id, status string) error
	// Status returns the status of the document and whether it exists.
	Status(ctx context.Context, id string) (string, bool, error)
}

type documentRecord struct {
	status    string
	updatedAt time.Time
}

// MemoryStore is an in-process DocumentStore. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]documentRecord
	now  func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]documentRecord),
		now:  time.Now,
	}
}

func (s *MemoryStore) SetStatus(ctx context.Context, id, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = documentRecord{status: status, updatedAt: s.now()}
	return nil
}

func (s *MemoryStore) Status(ctx context.Context, id string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.docs[id]
	return rec.status, ok, nil
}

// Len returns the number of tracked documents.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
