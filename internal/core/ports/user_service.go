package ports

import (
	"context"
	"time"

	"github.com/adminsync/portal-api/internal/core/domain"
)

// CreateUserInput carries the data needed to add a user. Role defaults to
// employee when empty (users created through this path are added by admins).
type CreateUserInput struct {
	Name        string
	Email       string
	Password    string
	Role        string
	DateOfBirth *time.Time
	PhoneNumber string
	Address     string
}

// UpdateUserInput carries a partial update; empty fields are left untouched.
// Role changes are only applied when the acting user is an admin.
type UpdateUserInput struct {
	Name        string
	Email       string
	Password    string
	Role        string
	DateOfBirth *time.Time
	PhoneNumber string
	Address     string
}

// UserService defines use-case operations over user records.
type UserService interface {
	AddUser(ctx context.Context, in CreateUserInput) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, id string, in UpdateUserInput, actorRole domain.Role) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
