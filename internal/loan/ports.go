package loan

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=loan

// Repository defines the contract for loan storage.
type Repository interface {
	CreateBatch(ctx context.Context, loans []Loan) error
	ListByReader(ctx context.Context, readerID string) ([]Loan, error)
	Get(ctx context.Context, readerID, id string) (Loan, error)
	Update(ctx context.Context, l Loan) error
}
