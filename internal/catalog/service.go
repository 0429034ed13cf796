package catalog

import (
	"context"
)

// Service provides catalog browsing.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search applies the filter and reports the catalog size alongside the matches.
func (s *Service) Search(ctx context.Context, f FilterState) (Result, error) {
	books, err := s.repo.List(ctx, f)
	if err != nil {
		return Result{}, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return Result{}, err
	}
	if books == nil {
		books = []Book{}
	}
	return Result{Books: books, Total: total}, nil
}

func (s *Service) Get(ctx context.Context, id int) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Featured returns the first n catalog entries for the home page.
func (s *Service) Featured(ctx context.Context, n int) ([]Book, error) {
	books, err := s.repo.List(ctx, FilterState{Category: CategoryAll})
	if err != nil {
		return nil, err
	}
	if len(books) > n {
		books = books[:n]
	}
	return books, nil
}
