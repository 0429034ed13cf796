package catalog

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=catalog

// Repository defines the contract for catalog storage.
type Repository interface {
	List(ctx context.Context, f FilterState) ([]Book, error)
	Count(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id int) (Book, error)
}
