package cart

import (
	"context"
	"errors"
	"fmt"

	"libraryhub/internal/catalog"
	"libraryhub/internal/loan"
	"libraryhub/internal/notify"
)

// Receipt describes a completed checkout.
type Receipt struct {
	Count int         `json:"count"`
	Loans []loan.Loan `json:"loans"`
}

// Service applies cart transitions and reports each one as a toast.
type Service struct {
	books *catalog.Service
	loans *loan.Service
}

func NewService(books *catalog.Service, loans *loan.Service) *Service {
	return &Service{books: books, loans: loans}
}

// Add looks up bookID and places it in c.
func (s *Service) Add(ctx context.Context, c *Cart, n notify.Notifier, bookID int) (Entry, error) {
	b, err := s.books.Get(ctx, bookID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			n.Notify(notify.Destructive("Book Not Found", "That book is not in our catalog"))
		}
		return Entry{}, err
	}

	e, err := c.Add(b)
	switch {
	case errors.Is(err, ErrUnavailable):
		n.Notify(notify.Destructive("Unavailable", fmt.Sprintf("%q is currently borrowed", b.Title)))
		return Entry{}, err
	case errors.Is(err, ErrAlreadyInCart):
		n.Notify(notify.Destructive("Already in Cart", fmt.Sprintf("%q is already in your cart", b.Title)))
		return Entry{}, err
	case err != nil:
		return Entry{}, err
	}

	n.Notify(notify.Info("Added to Cart", fmt.Sprintf("%q has been added to your cart", b.Title)))
	return e, nil
}

func (s *Service) Remove(ctx context.Context, c *Cart, n notify.Notifier, bookID int) (Entry, error) {
	e, err := c.Remove(bookID)
	if err != nil {
		return Entry{}, err
	}
	n.Notify(notify.Info("Removed from Cart", fmt.Sprintf("%q has been removed", e.Title)))
	return e, nil
}

// Checkout borrows every entry in c for readerID and empties the cart. The
// cart is left as it was if the loans cannot be recorded.
func (s *Service) Checkout(ctx context.Context, readerID string, c *Cart, n notify.Notifier) (Receipt, error) {
	var loans []loan.Loan
	entries, err := c.Checkout(func(entries []Entry) error {
		items := make([]loan.Item, 0, len(entries))
		for _, e := range entries {
			items = append(items, loan.Item{BookID: e.BookID, Title: e.Title, Author: e.Author, DueDate: e.DueDate})
		}
		var err error
		loans, err = s.loans.Borrow(ctx, readerID, items)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			n.Notify(notify.Destructive("Cart is Empty", "Add some books before checking out"))
		} else {
			n.Notify(notify.Destructive("Checkout Failed", "Your books could not be borrowed, please try again"))
		}
		return Receipt{}, err
	}

	n.Notify(notify.Info("Books Borrowed Successfully", fmt.Sprintf("You have borrowed %s", Books(len(entries)))))
	return Receipt{Count: len(entries), Loans: loans}, nil
}

// Books renders a book count, e.g. "1 book" or "3 books".
func Books(n int) string {
	if n == 1 {
		return "1 book"
	}
	return fmt.Sprintf("%d books", n)
}
