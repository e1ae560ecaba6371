package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jucamargo/juju-library/internal/domain/entity"
	"github.com/jucamargo/juju-library/internal/domain/repository"
	"github.com/jucamargo/juju-library/pkg/apperr"
)

type BookRepository struct {
	pool *pgxpool.Pool
}

func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

const bookColumns = `id, title, author, year, status, cover_url, created_at, updated_at`

func scanBook(row pgx.Row) (*entity.Book, error) {
	b := &entity.Book{}
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Status, &b.CoverURL, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "book not found")
		}
		return nil, apperr.Wrap(apperr.Storage, "scan book", err)
	}
	return b, nil
}

func (r *BookRepository) Create(ctx context.Context, b *entity.Book) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO books (title, author, year, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, cover_url, created_at, updated_at
	`, b.Title, b.Author, b.Year, b.Status)

	if err := row.Scan(&b.ID, &b.CoverURL, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return apperr.Wrap(apperr.Storage, "insert book", err)
	}
	return nil
}

func (r *BookRepository) GetByID(ctx context.Context, id string) (*entity.Book, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+bookColumns+`
		FROM books
		WHERE id = $1
	`, id)
	return scanBook(row)
}

func (r *BookRepository) List(ctx context.Context) ([]*entity.Book, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookColumns+`
		FROM books
		ORDER BY created_at
	`)
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "list books", err)
	}
	defer rows.Close()
	return collectBooks(rows)
}

// SearchByTitle matches fragment as a substring. Titles are stored
// upper-cased, so callers normalize the fragment the same way.
func (r *BookRepository) SearchByTitle(ctx context.Context, fragment string) ([]*entity.Book, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookColumns+`
		FROM books
		WHERE title LIKE '%' || $1 || '%'
		ORDER BY title
	`, fragment)
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "search books", err)
	}
	defer rows.Close()
	return collectBooks(rows)
}

func collectBooks(rows pgx.Rows) ([]*entity.Book, error) {
	books := make([]*entity.Book, 0)
	for rows.Next() {
		b := &entity.Book{}
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Status, &b.CoverURL, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, apperr.Wrap(apperr.Storage, "scan book", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Storage, "read books", err)
	}
	return books, nil
}

// Update overwrites title, author and year; the other columns stay untouched.
// A vanished row surfaces as NotFound so a concurrent delete is not silently
// swallowed.
func (r *BookRepository) Update(ctx context.Context, b *entity.Book) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE books
		SET title = $1, author = $2, year = $3, updated_at = now()
		WHERE id = $4
		RETURNING status, cover_url, created_at, updated_at
	`, b.Title, b.Author, b.Year, b.ID)

	if err := row.Scan(&b.Status, &b.CoverURL, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.New(apperr.NotFound, "book not found")
		}
		return apperr.Wrap(apperr.Storage, "update book", err)
	}
	return nil
}

// UpdateStatus overwrites only status and returns the resulting row.
func (r *BookRepository) UpdateStatus(ctx context.Context, id string, status bool) (*entity.Book, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE books
		SET status = $1, updated_at = now()
		WHERE id = $2
		RETURNING `+bookColumns+`
	`, status, id)
	return scanBook(row)
}

func (r *BookRepository) SetCoverURL(ctx context.Context, id, url string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE books
		SET cover_url = $1, updated_at = now()
		WHERE id = $2
	`, url, id)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "set cover url", err)
	}
	if res.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "book not found")
	}
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM books
		WHERE id = $1
	`, id)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "delete book", err)
	}
	if res.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "book not found")
	}
	return nil
}

// ExistsByID reports whether a book row exists. A value that is not a UUID
// can never match a row, so it reports false instead of tripping a cast
// error inside Postgres; the guard's format rule reports the shape problem.
func (r *BookRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return false, apperr.Wrap(apperr.Storage, "book exists", err)
	}
	return exists, nil
}

var _ repository.BookRepository = (*BookRepository)(nil)
