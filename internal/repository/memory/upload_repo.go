// Package memory keeps two-phase uploads in process memory. Records do not
// survive a restart and are not shared between replicas.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"docextract/internal/domain"
	"docextract/internal/port"
)

type uploadRepo struct {
	mu      sync.RWMutex
	uploads map[uuid.UUID]domain.UploadRecord
}

// NewUploadRepo creates a new in-memory UploadRepository.
func NewUploadRepo() port.UploadRepository {
	return &uploadRepo{uploads: make(map[uuid.UUID]domain.UploadRecord)}
}

func (r *uploadRepo) Save(_ context.Context, rec *domain.UploadRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uploads[rec.ID] = *rec
	return nil
}

func (r *uploadRepo) Get(_ context.Context, id uuid.UUID) (*domain.UploadRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.uploads[id]
	if !ok {
		return nil, domain.ErrUploadNotFound
	}
	return &rec, nil
}

func (r *uploadRepo) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id := range r.uploads {
		rec := r.uploads[id]
		if rec.Expired(now) {
			delete(r.uploads, id)
			n++
		}
	}
	return n, nil
}

func (r *uploadRepo) Ping(_ context.Context) error {
	return nil
}
