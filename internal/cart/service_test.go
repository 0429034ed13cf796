package cart

import (
	"context"
	"errors"
	"testing"

	"libraryhub/internal/catalog"
	"libraryhub/internal/loan"
	"libraryhub/internal/notify"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(loanRepo loan.Repository) *Service {
	books := catalog.NewService(catalog.NewMemoryRepo(catalog.Static()))
	loans := loan.NewService(loanRepo, DefaultBorrowPeriod, clock)
	return NewService(books, loans)
}

func TestService_AddNotifies(t *testing.T) {
	svc := newService(loan.NewMemoryRepo())
	c := New(WithClock(clock))
	var rec notify.Recorder
	ctx := context.Background()

	_, err := svc.Add(ctx, c, &rec, 1)
	require.NoError(t, err)
	last, _ := rec.Last()
	assert.Equal(t, notify.Info("Added to Cart", `"The Great Gatsby" has been added to your cart`), last)

	_, err = svc.Add(ctx, c, &rec, 7)
	assert.ErrorIs(t, err, ErrUnavailable)
	last, _ = rec.Last()
	assert.Equal(t, notify.VariantDestructive, last.Variant)

	_, err = svc.Add(ctx, c, &rec, 99)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	assert.Equal(t, 1, c.Len())
}

func TestService_RemoveThenCheckout(t *testing.T) {
	loans := loan.NewMemoryRepo()
	svc := newService(loans)
	c := New(WithClock(clock))
	var rec notify.Recorder
	ctx := context.Background()

	_, _ = svc.Add(ctx, c, &rec, 1)
	_, _ = svc.Add(ctx, c, &rec, 2)

	_, err := svc.Remove(ctx, c, &rec, 1)
	require.NoError(t, err)
	last, _ := rec.Last()
	assert.Equal(t, "Removed from Cart", last.Title)
	assert.Equal(t, `"The Great Gatsby" has been removed`, last.Description)

	receipt, err := svc.Checkout(ctx, "reader", c, &rec)
	require.NoError(t, err)
	assert.Equal(t, 1, receipt.Count)
	require.Len(t, receipt.Loans, 1)
	assert.Equal(t, 2, receipt.Loans[0].BookID)
	last, _ = rec.Last()
	assert.Equal(t, notify.Info("Books Borrowed Successfully", "You have borrowed 1 book"), last)
	assert.True(t, c.Empty())

	stored, err := loans.ListByReader(ctx, "reader")
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestService_CheckoutEmptyCart(t *testing.T) {
	svc := newService(loan.NewMemoryRepo())
	var rec notify.Recorder

	_, err := svc.Checkout(context.Background(), "reader", New(), &rec)

	assert.ErrorIs(t, err, ErrEmptyCart)
	last, _ := rec.Last()
	assert.Equal(t, notify.Destructive("Cart is Empty", "Add some books before checking out"), last)
}

func TestService_CheckoutIsAllOrNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := loan.NewMockRepository(ctrl)
	svc := newService(repo)
	c := New(WithClock(clock))
	var rec notify.Recorder
	ctx := context.Background()

	_, _ = svc.Add(ctx, c, &rec, 1)
	_, _ = svc.Add(ctx, c, &rec, 2)

	dbErr := errors.New("db down")
	repo.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(dbErr)

	_, err := svc.Checkout(ctx, "reader", c, &rec)

	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, 2, c.Len())
	last, _ := rec.Last()
	assert.Equal(t, "Checkout Failed", last.Title)
}

func TestBooks(t *testing.T) {
	assert.Equal(t, "1 book", Books(1))
	assert.Equal(t, "2 books", Books(2))
	assert.Equal(t, "0 books", Books(0))
}
