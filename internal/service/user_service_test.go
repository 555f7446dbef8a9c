package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cinelog/cinelog/internal/domain"
)

// MockUserRepository is a map-backed implementation of repository.UserRepository.
type MockUserRepository struct {
	users     map[string]*domain.User
	order     []string
	createErr error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	m.users[user.Username] = user
	m.order = append(m.order, user.Username)
	return nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if u, exists := m.users[username]; exists {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, exists := m.users[username]
	return exists, nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.users[name])
	}
	return out, nil
}

// =============================================================================
// Tests
// =============================================================================

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name      string
		input     RegisterInput
		wantErr   error
		setupRepo func(*MockUserRepository)
	}{
		{
			name:    "success",
			input:   RegisterInput{Username: "alice", Password: "secret"},
			wantErr: nil,
		},
		{
			name:    "success with matching confirmation",
			input:   RegisterInput{Username: "alice", Password: "secret", ConfirmPassword: "secret"},
			wantErr: nil,
		},
		{
			name:    "empty username",
			input:   RegisterInput{Username: "", Password: "secret"},
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "empty password",
			input:   RegisterInput{Username: "alice", Password: ""},
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "confirmation mismatch",
			input:   RegisterInput{Username: "alice", Password: "secret", ConfirmPassword: "other"},
			wantErr: domain.ErrPasswordMismatch,
		},
		{
			name:    "duplicate username",
			input:   RegisterInput{Username: "alice", Password: "secret"},
			wantErr: domain.ErrUserExists,
			setupRepo: func(m *MockUserRepository) {
				m.users["alice"] = domain.NewUser("alice", "earlier")
				m.order = append(m.order, "alice")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockUserRepository()
			if tt.setupRepo != nil {
				tt.setupRepo(repo)
			}

			svc := NewUserService(repo, zerolog.Nop())

			user, err := svc.Register(context.Background(), tt.input)

			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.wantErr)
				}
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.Username != tt.input.Username {
				t.Errorf("expected username %s, got %s", tt.input.Username, user.Username)
			}
		})
	}
}

func TestUserService_RegisterDuplicateLeavesOneRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewMockUserRepository()
	svc := NewUserService(repo, zerolog.Nop())

	if _, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "one"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "two"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	users, _ := repo.List(ctx)
	if len(users) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(users))
	}
	if users[0].Password != "one" {
		t.Errorf("second registration must not overwrite the first")
	}
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	repo := NewMockUserRepository()
	repo.users["alice"] = domain.NewUser("alice", "secret")

	svc := NewUserService(repo, zerolog.Nop())

	user, err := svc.Authenticate(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("expected alice, got %s", user.Username)
	}

	if _, err := svc.Authenticate(ctx, "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "bob", "secret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}
