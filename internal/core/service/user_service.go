package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/adminsync/portal-api/internal/core/domain"
	"github.com/adminsync/portal-api/internal/core/ports"
	"github.com/adminsync/portal-api/internal/pkg/password"
)

// UserService implements the admin-facing user CRUD operations. The user
// listing is served through a read cache that every mutation invalidates.
type UserService struct {
	users      ports.UserRepository
	cache      ports.UserCache
	log        zerolog.Logger
	bcryptCost int
}

func NewUserService(users ports.UserRepository, cache ports.UserCache, log zerolog.Logger, bcryptCost int) *UserService {
	return &UserService{users: users, cache: cache, log: log, bcryptCost: bcryptCost}
}

// AddUser creates a user account. Users added without an explicit role
// default to employee, since this path is admin-driven.
func (s *UserService) AddUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	email := domain.NormalizeEmail(in.Email)
	if in.Name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	role := domain.RoleEmployee
	if in.Role != "" {
		parsed, err := domain.ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := password.Hash(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		DateOfBirth:  in.DateOfBirth,
		PhoneNumber:  in.PhoneNumber,
		Address:      in.Address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user added")
	pub := created.Public()
	return &pub, nil
}

// GetUser returns a single user without credential fields.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}

// ListUsers returns all users without credential fields, served from the
// cache when possible.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	if cached, ok := s.cache.GetList(ctx); ok {
		return cached, nil
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	public := make([]domain.User, len(users))
	for i, u := range users {
		public[i] = u.Public()
	}

	if err := s.cache.SetList(ctx, public); err != nil {
		s.log.Warn().Err(err).Msg("failed to cache user listing")
	}
	return public, nil
}

// UpdateUser applies a partial update. Only admins may change roles; role
// values outside the closed set are rejected. A changed email must remain
// unique. A supplied password is re-hashed before storage.
func (s *UserService) UpdateUser(ctx context.Context, id string, in ports.UpdateUserInput, actorRole domain.Role) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != "" {
		email := domain.NormalizeEmail(in.Email)
		if email != user.Email {
			if _, err := s.users.FindByEmail(ctx, email); err == nil {
				return nil, domain.ErrEmailExists
			} else if !errors.Is(err, domain.ErrUserNotFound) {
				return nil, err
			}
			user.Email = email
		}
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.DateOfBirth != nil {
		user.DateOfBirth = in.DateOfBirth
	}
	if in.PhoneNumber != "" {
		user.PhoneNumber = in.PhoneNumber
	}
	if in.Address != "" {
		user.Address = in.Address
	}

	if in.Role != "" && actorRole == domain.RoleAdmin {
		role, err := domain.ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}

	if in.Password != "" {
		if len(in.Password) < minPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
		}
		hash, err := password.Hash(in.Password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)

	s.log.Info().Str("user_id", user.ID).Msg("user updated")
	pub := user.Public()
	return &pub, nil
}

// DeleteUser removes a user record.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateListing(ctx)
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) invalidateListing(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to invalidate user listing cache")
	}
}

// EnsureAdmin creates an admin account with the given credentials when no
// user holds that email yet. Used at startup to bootstrap a fresh deployment.
func EnsureAdmin(ctx context.Context, users ports.UserRepository, email, pwd string, bcryptCost int, log zerolog.Logger) error {
	email = domain.NormalizeEmail(email)
	if email == "" || pwd == "" {
		return nil
	}

	if _, err := users.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := password.Hash(pwd, bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	admin := &domain.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Info().Str("email", email).Msg("bootstrap admin created")
	return nil
}
