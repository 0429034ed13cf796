package loan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const period = 14 * 24 * time.Hour

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestService_BorrowRenewReturn(t *testing.T) {
	now := time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)
	svc := NewService(NewMemoryRepo(), period, fixedClock(now))
	ctx := context.Background()

	loans, err := svc.Borrow(ctx, "reader-1", []Item{
		{BookID: 1, Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", DueDate: time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)},
		{BookID: 2, Title: "To Kill a Mockingbird", Author: "Harper Lee", DueDate: time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
	require.Len(t, loans, 2)
	assert.NotEqual(t, loans[0].ID, loans[1].ID)
	assert.Equal(t, 14, loans[0].DaysLeft(now))

	active, err := svc.Active(ctx, "reader-1")
	require.NoError(t, err)
	assert.Len(t, active, 2)

	other, err := svc.Active(ctx, "reader-2")
	require.NoError(t, err)
	assert.Empty(t, other)

	renewed, err := svc.Renew(ctx, "reader-1", loans[0].ID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC), renewed.DueDate)
	assert.Equal(t, 1, renewed.Renewals)

	returned, err := svc.Return(ctx, "reader-1", loans[1].ID)
	require.NoError(t, err)
	require.NotNil(t, returned.ReturnedAt)

	history, err := svc.History(ctx, "reader-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 2, history[0].BookID)

	_, err = svc.Return(ctx, "reader-1", loans[1].ID)
	assert.ErrorIs(t, err, ErrNotActive)

	_, err = svc.Renew(ctx, "reader-1", loans[1].ID)
	assert.ErrorIs(t, err, ErrNotActive)

	_, err = svc.Renew(ctx, "reader-2", loans[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_RenewLimit(t *testing.T) {
	svc := NewService(NewMemoryRepo(), period, nil)
	ctx := context.Background()

	loans, err := svc.Borrow(ctx, "r", []Item{{BookID: 4, Title: "Pride and Prejudice", DueDate: time.Now()}})
	require.NoError(t, err)

	for i := 0; i < MaxRenewals; i++ {
		_, err := svc.Renew(ctx, "r", loans[0].ID)
		require.NoError(t, err)
	}
	_, err = svc.Renew(ctx, "r", loans[0].ID)
	assert.ErrorIs(t, err, ErrRenewLimit)
}

func TestService_BorrowRejectsEmptyBatch(t *testing.T) {
	svc := NewService(NewMemoryRepo(), period, nil)

	_, err := svc.Borrow(context.Background(), "r", nil)
	assert.ErrorIs(t, err, ErrInvalidBatch)

	_, err = svc.Borrow(context.Background(), "", []Item{{BookID: 1}})
	assert.ErrorIs(t, err, ErrInvalidBatch)
}

func TestService_BorrowPropagatesRepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	svc := NewService(mockRepo, period, nil)

	dbErr := errors.New("db down")
	mockRepo.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(dbErr)

	_, err := svc.Borrow(context.Background(), "r", []Item{{BookID: 1}})
	assert.ErrorIs(t, err, dbErr)
}

func TestLoan_DaysLeft(t *testing.T) {
	now := time.Date(2024, 12, 10, 23, 30, 0, 0, time.UTC)
	l := Loan{DueDate: time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, 5, l.DaysLeft(now))

	overdue := Loan{DueDate: time.Date(2024, 12, 8, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, -2, overdue.DaysLeft(now))
}

func TestService_ImportHistory(t *testing.T) {
	now := time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)
	svc := NewService(NewMemoryRepo(), period, fixedClock(now))
	ctx := context.Background()

	older := now.AddDate(0, 0, -20)
	newer := now.AddDate(0, 0, -5)
	require.NoError(t, svc.Import(ctx, "reader-1", []Loan{
		{BookID: 3, Title: "1984", ReturnedAt: &older},
		{BookID: 4, Title: "Pride and Prejudice", ReturnedAt: &newer},
	}))

	history, err := svc.History(ctx, "reader-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 4, history[0].BookID)
	assert.NotEmpty(t, history[0].ID)
	assert.Equal(t, "reader-1", history[1].ReaderID)

	assert.ErrorIs(t, svc.Import(ctx, "", nil), ErrInvalidBatch)
}
