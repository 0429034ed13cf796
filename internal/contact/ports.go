package contact

import "context"

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=contact

// Repository stores delivered messages.
type Repository interface {
	Create(ctx context.Context, m Message) error
	List(ctx context.Context, limit int) ([]Message, error)
}
