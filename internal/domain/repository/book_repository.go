package repository

import (
	"context"

	"github.com/jucamargo/juju-library/internal/domain/entity"
)

// BookRepository defines the interface for book-related database operations.
// SearchByTitle expects an already-normalized (upper-cased) fragment and
// matches it as a substring. ExistsByID is the idempotent read backing the
// validation guard's existence rule.
type BookRepository interface {
	Create(ctx context.Context, b *entity.Book) error
	GetByID(ctx context.Context, id string) (*entity.Book, error)
	List(ctx context.Context) ([]*entity.Book, error)
	SearchByTitle(ctx context.Context, fragment string) ([]*entity.Book, error)
	Update(ctx context.Context, b *entity.Book) error
	UpdateStatus(ctx context.Context, id string, status bool) (*entity.Book, error)
	SetCoverURL(ctx context.Context, id, url string) error
	Delete(ctx context.Context, id string) error
	ExistsByID(ctx context.Context, id string) (bool, error)
}
