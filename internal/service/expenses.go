package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/mmynk/sharesplit/internal/calculator"
	"github.com/mmynk/sharesplit/internal/models"
	"github.com/mmynk/sharesplit/internal/storage"
	"github.com/mmynk/sharesplit/pkg/api/apiconnect"
)

// CreateExpenseInput is a create request in domain terms. A nil TotalAmount
// means the caller left it out.
type CreateExpenseInput struct {
	Description string
	TotalAmount *decimal.Decimal
	SplitMethod string
	Entries     []calculator.Entry
}

// BalanceSheet is the state of every expense and what each user owes or is owed.
type BalanceSheet struct {
	GeneratedAt time.Time
	Expenses    []*models.Expense
	Balances    []calculator.MemberBalance
	Debts       []calculator.DebtEdge
	// Users holds every user that appears in Balances, keyed by ID.
	Users map[string]*models.User
}

// ExpenseService implements expense creation and the read views, and serves them
// as the Connect ExpenseService.
type ExpenseService struct {
	apiconnect.UnimplementedExpenseServiceHandler
	store storage.Store
	now   func() time.Time
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store, now: time.Now}
}

// Create validates the input, computes every share and stores the expense with its
// shares in one transaction. Nothing is written unless validation passes.
func (s *ExpenseService) Create(ctx context.Context, creatorID string, in CreateExpenseInput) (*models.Expense, error) {
	expense, err := s.buildExpense(ctx, creatorID, in)
	if err != nil {
		if verr, ok := calculator.AsValidation(err); ok {
			validationFailures.WithLabelValues(string(verr.Kind)).Inc()
			slog.Info("Expense rejected", "user_id", creatorID, "kind", verr.Kind, "error", verr.Message)
		}
		return nil, err
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	expensesCreated.WithLabelValues(string(expense.SplitMethod)).Inc()
	slog.Info("Expense created",
		"expense_id", expense.ID,
		"user_id", creatorID,
		"split_method", expense.SplitMethod,
		"total", expense.TotalAmount.String(),
		"shares", len(expense.Shares),
	)
	return expense, nil
}

func (s *ExpenseService) buildExpense(ctx context.Context, creatorID string, in CreateExpenseInput) (*models.Expense, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, calculator.NewValidationError(calculator.KindInvalidDescription, "Description is required")
	}
	if utf8.RuneCountInString(description) > models.MaxDescriptionLength {
		return nil, calculator.NewValidationError(calculator.KindInvalidDescription,
			fmt.Sprintf("Description must be at most %d characters", models.MaxDescriptionLength))
	}

	if in.TotalAmount == nil {
		return nil, calculator.NewValidationError(calculator.KindInvalidAmount, "Total amount is required")
	}
	total := *in.TotalAmount

	split, err := calculator.BuildSplit(in.SplitMethod, in.Entries)
	if err != nil {
		return nil, err
	}

	shares, err := calculator.Calculate(ctx, total, split, calculator.ResolverFunc(s.resolveParticipant))
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Description: description,
		TotalAmount: total,
		SplitMethod: split.Method(),
		CreatedBy:   creatorID,
		Shares:      make([]models.ExpenseShare, len(shares)),
	}
	for i, sh := range shares {
		expense.Shares[i] = models.ExpenseShare{
			UserID:     sh.UserID,
			Amount:     sh.Amount,
			Percentage: sh.Percentage,
		}
	}
	return expense, nil
}

// resolveParticipant maps a participant reference to a user ID. A reference
// containing "@" is looked up as an email address.
func (s *ExpenseService) resolveParticipant(ctx context.Context, ref string) (string, error) {
	var (
		user *models.User
		err  error
	)
	if strings.Contains(ref, "@") {
		user, err = s.store.GetUserByEmail(ctx, ref)
	} else {
		user, err = s.store.GetUserByID(ctx, ref)
	}
	if errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("%w: %s", calculator.ErrUnknownParticipant, ref)
	}
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// Get returns an expense if userID created it or holds a share in it. Other
// users get an error wrapping storage.ErrNotFound.
func (s *ExpenseService) Get(ctx context.Context, userID, expenseID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.CreatedBy != userID && !expense.HasParticipant(userID) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return expense, nil
}

// ListForUser returns the expenses userID holds a share in, newest first.
func (s *ExpenseService) ListForUser(ctx context.Context, userID string) ([]*models.Expense, error) {
	expenses, err := s.store.ListExpensesByParticipant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for user: %w", err)
	}
	return expenses, nil
}

// ListAll returns every expense, newest first.
func (s *ExpenseService) ListAll(ctx context.Context) ([]*models.Expense, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// BalanceSheet aggregates all expenses. The creator of each expense counts as
// the one who paid its total.
func (s *ExpenseService) BalanceSheet(ctx context.Context) (*BalanceSheet, error) {
	expenses, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	forBalance := make([]calculator.ExpenseForBalance, len(expenses))
	for i, e := range expenses {
		shares := make([]calculator.Share, len(e.Shares))
		for j, sh := range e.Shares {
			shares[j] = calculator.Share{UserID: sh.UserID, Amount: sh.Amount, Percentage: sh.Percentage}
		}
		forBalance[i] = calculator.ExpenseForBalance{
			Total:   e.TotalAmount,
			PayerID: e.CreatedBy,
			Shares:  shares,
		}
	}
	balances, debts := calculator.CalculateBalances(forBalance)

	ids := make([]string, len(balances))
	for i, b := range balances {
		ids[i] = b.UserID
	}
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	return &BalanceSheet{
		GeneratedAt: s.now(),
		Expenses:    expenses,
		Balances:    balances,
		Debts:       debts,
		Users:       users,
	}, nil
}

// DisplayName returns the display name for userID, or the ID itself.
func (b *BalanceSheet) DisplayName(userID string) string {
	if u, ok := b.Users[userID]; ok && u.DisplayName != "" {
		return u.DisplayName
	}
	return userID
}
