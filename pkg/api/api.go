// Package api defines the wire messages of the sharesplit v1 API.
//
// The same messages back both the Connect services in package apiconnect and the
// REST routes, so a JSON body accepted by one is accepted by the other. Money
// fields are decimals and marshal as JSON strings ("25.5").
package api

import "github.com/shopspring/decimal"

// ShareInput is one participant entry of a CreateExpenseRequest.
// Amount is required for EXACT splits and Percentage for PERCENTAGE splits.
type ShareInput struct {
	UserID     string           `json:"user_id"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// CreateExpenseRequest creates an expense. TotalAmount is required.
type CreateExpenseRequest struct {
	Description string           `json:"description"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
	SplitMethod string           `json:"split_method,omitempty"`
	Shares      []ShareInput     `json:"shares"`
}

type CreateExpenseResponse struct {
	Message   string   `json:"message"`
	ExpenseID string   `json:"expense_id"`
	Expense   *Expense `json:"expense"`
}

type Share struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	Amount     decimal.Decimal  `json:"amount"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	SplitMethod string          `json:"split_method"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   int64           `json:"created_at"`
	UpdatedAt   int64           `json:"updated_at"`
	Shares      []Share         `json:"shares"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListMyExpensesRequest struct{}

type ListExpensesRequest struct{}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type GetBalanceSheetRequest struct{}

// MemberBalance is one user's position across all expenses.
// Positive NetBalance means the user is owed money.
type MemberBalance struct {
	UserID      string          `json:"user_id"`
	DisplayName string          `json:"display_name"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	TotalOwed   decimal.Decimal `json:"total_owed"`
	NetBalance  decimal.Decimal `json:"net_balance"`
}

// Debt is a suggested payment that settles part of the balance sheet.
type Debt struct {
	FromUserID string          `json:"from_user_id"`
	ToUserID   string          `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
}

type GetBalanceSheetResponse struct {
	GeneratedAt int64            `json:"generated_at"`
	Expenses    []*Expense       `json:"expenses"`
	Balances    []*MemberBalance `json:"balances"`
	Debts       []*Debt          `json:"debts"`
}

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// ErrorResponse is the REST error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
