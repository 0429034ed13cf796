package contact

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	messages []Message
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(ctx context.Context, m Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
	return nil
}

// List returns the newest messages first.
func (r *MemoryRepo) List(ctx context.Context, limit int) ([]Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Message, 0, min(limit, len(r.messages)))
	for i := len(r.messages) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.messages[i])
	}
	return out, nil
}
