package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/sharesplit/internal/models"
	"github.com/mmynk/sharesplit/internal/storage"
)

// memoryUsers is an in-memory storage.UserStore.
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[string]*models.User)}
}

func (m *memoryUsers) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *memoryUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, storage.ErrNotFound)
}

func (m *memoryUsers) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
}

func (m *memoryUsers) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	out := make(map[string]*models.User)
	for _, id := range ids {
		if u, err := m.GetUserByID(ctx, id); err == nil {
			out[id] = u
		}
	}
	return out, nil
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	authenticator := NewPasswordAuthenticator(newMemoryUsers(), bcrypt.MinCost)

	user, err := authenticator.Register(ctx, " Alice@Example.com ", "", "correct-horse")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Email = %q, want normalized alice@example.com", user.Email)
	}
	if user.DisplayName != "alice" {
		t.Errorf("DisplayName = %q, want alice", user.DisplayName)
	}
	if user.PasswordHash == "correct-horse" {
		t.Error("password stored in plain text")
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, err := authenticator.Register(ctx, "alice@example.com", "Alice", "another-password")
		if !errors.Is(err, ErrEmailExists) {
			t.Errorf("Register() error = %v, want ErrEmailExists", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := authenticator.Register(ctx, "bob@example.com", "Bob", "short")
		if !errors.Is(err, ErrWeakPassword) {
			t.Errorf("Register() error = %v, want ErrWeakPassword", err)
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := authenticator.Register(ctx, "not-an-email", "Bob", "long-enough")
		if !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("Register() error = %v, want ErrInvalidEmail", err)
		}
	})

	t.Run("authenticate", func(t *testing.T) {
		got, err := authenticator.Authenticate(ctx, "ALICE@example.com", "correct-horse")
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("Authenticate() user = %s, want %s", got.ID, user.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := authenticator.Authenticate(ctx, "alice@example.com", "wrong-password")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := authenticator.Authenticate(ctx, "nobody@example.com", "whatever1")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
		}
	})
}
