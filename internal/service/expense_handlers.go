package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/sharesplit/internal/auth"
	"github.com/mmynk/sharesplit/internal/middleware"
	"github.com/mmynk/sharesplit/pkg/api"
)

// currentUser returns the user set by the auth interceptor.
func currentUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// CreateExpense validates and stores a new expense for the authenticated user.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	expense, err := s.Create(ctx, userID, InputFromAPI(req.Msg))
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.CreateExpenseResponse{
		Message:   "Expense created successfully",
		ExpenseID: expense.ID,
		Expense:   ExpenseToAPI(expense),
	}), nil
}

// GetExpense returns a single expense visible to the authenticated user.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	expense, err := s.Get(ctx, userID, req.Msg.ExpenseID)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.GetExpenseResponse{Expense: ExpenseToAPI(expense)}), nil
}

// ListMyExpenses returns the expenses the authenticated user has a share in.
func (s *ExpenseService) ListMyExpenses(ctx context.Context, req *connect.Request[api.ListMyExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	expenses, err := s.ListForUser(ctx, userID)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: ExpensesToAPI(expenses)}), nil
}

// ListExpenses returns all expenses.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	if _, err := currentUser(ctx); err != nil {
		return nil, err
	}

	expenses, err := s.ListAll(ctx)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: ExpensesToAPI(expenses)}), nil
}

// GetBalanceSheet returns all expenses with per-user balances and suggested debts.
func (s *ExpenseService) GetBalanceSheet(ctx context.Context, req *connect.Request[api.GetBalanceSheetRequest]) (*connect.Response[api.GetBalanceSheetResponse], error) {
	if _, err := currentUser(ctx); err != nil {
		return nil, err
	}

	sheet, err := s.BalanceSheet(ctx)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(BalanceSheetToAPI(sheet)), nil
}
