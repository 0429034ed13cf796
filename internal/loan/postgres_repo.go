package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) CreateBatch(ctx context.Context, loans []Loan) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return err
	}
	defer tx.Rollback(timeoutCtx)

	const insertSQL = `
	INSERT INTO loans (id, reader_id, book_id, title, author, borrowed_at, due_date, returned_at, renewals)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	batch := &pgx.Batch{}
	for _, l := range loans {
		batch.Queue(insertSQL,
			l.ID, l.ReaderID, l.BookID, l.Title, l.Author, l.BorrowedAt, l.DueDate, l.ReturnedAt, l.Renewals,
		)
	}

	results := tx.SendBatch(timeoutCtx, batch)
	for _, l := range loans {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("insert loan for book %d: %w", l.BookID, err)
		}
	}
	if err := results.Close(); err != nil {
		return err
	}

	return tx.Commit(timeoutCtx)
}

const selectLoan = `
	SELECT id, reader_id, book_id, title, author, borrowed_at, due_date, returned_at, renewals
	FROM loans
`

func scanLoan(row pgx.Row) (Loan, error) {
	var l Loan
	err := row.Scan(&l.ID, &l.ReaderID, &l.BookID, &l.Title, &l.Author, &l.BorrowedAt, &l.DueDate, &l.ReturnedAt, &l.Renewals)
	return l, err
}

func (r *PostgresRepo) ListByReader(ctx context.Context, readerID string) ([]Loan, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, selectLoan+`WHERE reader_id = $1 ORDER BY borrowed_at ASC, book_id ASC`, readerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Get(ctx context.Context, readerID, id string) (Loan, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	l, err := scanLoan(r.db.QueryRow(timeoutCtx, selectLoan+`WHERE reader_id = $1 AND id = $2`, readerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Loan{}, ErrNotFound
		}
		return Loan{}, err
	}
	return l, nil
}

func (r *PostgresRepo) Update(ctx context.Context, l Loan) error {
	const query = `
	UPDATE loans SET due_date = $3, returned_at = $4, renewals = $5
	WHERE reader_id = $1 AND id = $2
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.db.Exec(timeoutCtx, query, l.ReaderID, l.ID, l.DueDate, l.ReturnedAt, l.Renewals)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
