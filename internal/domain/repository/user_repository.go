package repository

import (
	"context"

	"github.com/jucamargo/juju-library/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// ExistsByEmail backs both the uniqueness rule on registration and the
// existence rule on login.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
