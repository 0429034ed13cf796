package loan

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	byOwner map[string][]Loan
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byOwner: make(map[string][]Loan)}
}

func (r *MemoryRepo) CreateBatch(ctx context.Context, loans []Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range loans {
		r.byOwner[l.ReaderID] = append(r.byOwner[l.ReaderID], l)
	}
	return nil
}

func (r *MemoryRepo) ListByReader(ctx context.Context, readerID string) ([]Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src := r.byOwner[readerID]
	out := make([]Loan, len(src))
	copy(out, src)
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, readerID, id string) (Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.byOwner[readerID] {
		if l.ID == id {
			return l, nil
		}
	}
	return Loan{}, ErrNotFound
}

func (r *MemoryRepo) Update(ctx context.Context, l Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	loans := r.byOwner[l.ReaderID]
	for i := range loans {
		if loans[i].ID == l.ID {
			loans[i] = l
			return nil
		}
	}
	return ErrNotFound
}

// Forget drops every loan of readerID. Sessions call it on expiry.
func (r *MemoryRepo) Forget(readerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byOwner, readerID)
}
