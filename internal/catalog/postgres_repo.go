package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	dialectPostgres = "postgres"
	tableBooks      = "catalog_books"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

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

// listQuery builds the catalog filter as SQL. It must agree with FilterState.Matches.
func listQuery(f FilterState) (string, []any, error) {
	ds := goqu.Dialect(dialectPostgres).
		From(tableBooks).
		Select("id", "title", "author", "category", "rating", "available").
		Order(goqu.C("id").Asc()).
		Prepared(true)

	if f.Category != "" && f.Category != CategoryAll {
		ds = ds.Where(goqu.C("category").Eq(string(f.Category)))
	}
	if f.Search != "" {
		pattern := "%" + likeEscaper.Replace(f.Search) + "%"
		ds = ds.Where(goqu.Or(
			goqu.C("title").ILike(pattern),
			goqu.C("author").ILike(pattern),
		))
	}
	return ds.ToSQL()
}

func (r *PostgresRepo) List(ctx context.Context, f FilterState) ([]Book, error) {
	sqlQuery, args, err := listQuery(f)
	if err != nil {
		return nil, fmt.Errorf("build catalog query: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		var b Book
		var category string
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &category, &b.Rating, &b.Available); err != nil {
			return nil, err
		}
		b.Category = Category(category)
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Count(ctx context.Context) (int, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var count int
	err := r.db.QueryRow(timeoutCtx, "SELECT COUNT(*) FROM "+tableBooks).Scan(&count)
	return count, err
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int) (Book, error) {
	const query = `
	SELECT id, title, author, category, rating, available
	FROM catalog_books
	WHERE id = $1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var b Book
	var category string
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(&b.ID, &b.Title, &b.Author, &category, &b.Rating, &b.Available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("get book %d: %w", id, err)
	}
	b.Category = Category(category)
	return b, nil
}
