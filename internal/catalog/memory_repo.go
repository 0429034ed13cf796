package catalog

import (
	"context"
)

// MemoryRepo serves a fixed in-process catalog.
type MemoryRepo struct {
	books []Book
}

func NewMemoryRepo(books []Book) *MemoryRepo {
	cp := make([]Book, len(books))
	copy(cp, books)
	return &MemoryRepo{books: cp}
}

func (r *MemoryRepo) List(ctx context.Context, f FilterState) ([]Book, error) {
	return Filter(r.books, f), nil
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	return len(r.books), nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id int) (Book, error) {
	for _, b := range r.books {
		if b.ID == id {
			return b, nil
		}
	}
	return Book{}, ErrNotFound
}
