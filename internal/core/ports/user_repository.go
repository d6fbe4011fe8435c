package ports

import (
	"context"

	"github.com/adminsync/portal-api/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	// FindByEmail looks up a user by normalized email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update persists the full user record, including session and reset
	// token fields.
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.User, error)
}

// UserCache is a read-through cache for the user listing. Implementations
// must treat every miss or error as "not cached".
type UserCache interface {
	GetList(ctx context.Context) ([]domain.User, bool)
	SetList(ctx context.Context, users []domain.User) error
	Invalidate(ctx context.Context) error
}
