package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/sharesplit/internal/models"
	"github.com/mmynk/sharesplit/internal/storage"
)

const expenseColumns = "id, description, total_amount, split_method, created_by, created_at, updated_at"

// CreateExpense persists a new expense and its shares in a single transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate IDs if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.UpdatedAt == 0 {
		expense.UpdatedAt = expense.CreatedAt
	}
	if expense.SplitMethod == "" {
		expense.SplitMethod = models.SplitMethodEqual
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses ("+expenseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		expense.ID, expense.Description, expense.TotalAmount.String(), string(expense.SplitMethod),
		expense.CreatedBy, expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range expense.Shares {
		share := &expense.Shares[i]
		if share.ID == "" {
			share.ID = uuid.New().String()
		}
		share.ExpenseID = expense.ID

		var percentage any
		if share.Percentage.Valid {
			percentage = share.Percentage.Decimal.String()
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO expense_shares (id, expense_id, user_id, position, amount, percentage)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			share.ID, expense.ID, share.UserID, i, share.Amount.String(), percentage,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including its shares.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := scanExpense(s.db.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ?",
		expenseID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := s.loadShares(ctx, []*models.Expense{expense}); err != nil {
		return nil, err
	}

	return expense, nil
}

// ListExpensesByParticipant returns the expenses userID holds a share in.
func (s *SQLiteStore) ListExpensesByParticipant(ctx context.Context, userID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses
		 WHERE id IN (SELECT expense_id FROM expense_shares WHERE user_id = ?)
		 ORDER BY created_at DESC, rowid DESC`,
		userID,
	)
}

// ListExpenses returns every expense.
func (s *SQLiteStore) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses ORDER BY created_at DESC, rowid DESC",
	)
}

func (s *SQLiteStore) listExpenses(ctx context.Context, query string, args ...any) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*models.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	if err := s.loadShares(ctx, expenses); err != nil {
		return nil, err
	}

	return expenses, nil
}

// loadShares fills in Shares for each expense with one query.
func (s *SQLiteStore) loadShares(ctx context.Context, expenses []*models.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	byID := make(map[string]*models.Expense, len(expenses))
	ids := make([]string, len(expenses))
	for i, e := range expenses {
		byID[e.ID] = e
		ids[i] = e.ID
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, expense_id, user_id, amount, percentage
		 FROM expense_shares
		 WHERE expense_id IN (?`+repeatPlaceholder(len(ids)-1)+`)
		 ORDER BY expense_id, position`,
		stringArgs(ids)...,
	)
	if err != nil {
		return fmt.Errorf("failed to get expense shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var share models.ExpenseShare
		var amount decimal.NullDecimal
		if err := rows.Scan(&share.ID, &share.ExpenseID, &share.UserID, &amount, &share.Percentage); err != nil {
			return fmt.Errorf("failed to scan expense share: %w", err)
		}
		share.Amount = amount.Decimal
		if e, ok := byID[share.ExpenseID]; ok {
			e.Shares = append(e.Shares, share)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expense shares: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var method string
	if err := row.Scan(
		&expense.ID,
		&expense.Description,
		&expense.TotalAmount,
		&method,
		&expense.CreatedBy,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	); err != nil {
		return nil, err
	}
	expense.SplitMethod = models.SplitMethod(method)
	return expense, nil
}
