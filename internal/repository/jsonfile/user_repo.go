package jsonfile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/lock"
	"github.com/cinelog/cinelog/internal/repository"
)

// userRepository implements repository.UserRepository over a JSON file.
type userRepository struct {
	store *Store[domain.User]
}

// NewUserRepository creates a user repository backed by the document at path.
func NewUserRepository(path string, locker lock.Locker, logger zerolog.Logger) repository.UserRepository {
	return &userRepository{
		store: NewStore[domain.User](path, locker, logger),
	}
}

// Create appends a new user unless the username is already taken.
// The duplicate check runs inside the locked update so two concurrent
// registrations of the same name cannot both succeed.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.store.Update(ctx, func(users []domain.User) ([]domain.User, error) {
		for i := range users {
			if users[i].Username == user.Username {
				return nil, domain.ErrUserExists
			}
		}
		return append(users, *user), nil
	})
}

// GetByUsername retrieves a user by exact username.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	users, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Username == username {
			u := users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ExistsByUsername checks if a user with the given username exists.
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	users, err := r.store.Load(ctx)
	if err != nil {
		return false, err
	}

	for i := range users {
		if users[i].Username == username {
			return true, nil
		}
	}
	return false, nil
}

// List returns all users in document order.
func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	users, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.User, len(users))
	for i := range users {
		u := users[i]
		out[i] = &u
	}
	return out, nil
}

// Ensure userRepository implements repository.UserRepository.
var _ repository.UserRepository = (*userRepository)(nil)
