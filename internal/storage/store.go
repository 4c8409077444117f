// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/sharesplit/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for expense and user storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	ExpenseStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}

// ExpenseStore persists expenses together with their shares.
type ExpenseStore interface {
	// CreateExpense persists a new expense and all of its shares atomically.
	// The expense.ID, share IDs and timestamps are populated by the store.
	// If any write fails, nothing is persisted.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense and its shares by ID.
	// Returns an error wrapping ErrNotFound if the expense does not exist.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByParticipant returns every expense in which userID holds a share,
	// newest first.
	ListExpensesByParticipant(ctx context.Context, userID string) ([]*models.Expense, error)

	// ListExpenses returns all expenses, newest first.
	ListExpenses(ctx context.Context) ([]*models.Expense, error)
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail and GetUserByID return an error wrapping ErrNotFound
	// if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUsersByIDs returns a map of user ID to User. Unknown IDs are omitted.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}
