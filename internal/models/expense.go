package models

import "github.com/shopspring/decimal"

// SplitMethod is the rule used to divide an expense total among its participants.
type SplitMethod string

const (
	SplitMethodEqual      SplitMethod = "EQUAL"
	SplitMethodExact      SplitMethod = "EXACT"
	SplitMethodPercentage SplitMethod = "PERCENTAGE"
)

// MaxDescriptionLength is the longest description an expense may carry.
const MaxDescriptionLength = 255

// Expense represents a shared cost to be divided among participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is the human-readable label for the expense (e.g., "Groceries").
	Description string

	// TotalAmount is the full cost of the expense. Never negative.
	TotalAmount decimal.Decimal

	// SplitMethod records how TotalAmount was divided.
	SplitMethod SplitMethod

	// CreatedBy is the ID of the user who recorded the expense.
	// The balance sheet treats this user as the one who paid.
	CreatedBy string

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64

	// Shares is the per-participant breakdown. The amounts sum to TotalAmount.
	Shares []ExpenseShare
}

// ExpenseShare represents one participant's portion of an expense.
type ExpenseShare struct {
	// ID is the unique identifier for the share (UUID format).
	ID string

	// ExpenseID is the expense this share belongs to.
	ExpenseID string

	// UserID is the participant who owes this share.
	UserID string

	// Amount is what the participant owes.
	Amount decimal.Decimal

	// Percentage is only set for PERCENTAGE splits.
	Percentage decimal.NullDecimal
}

// HasParticipant reports whether userID holds a share of the expense.
func (e *Expense) HasParticipant(userID string) bool {
	for _, s := range e.Shares {
		if s.UserID == userID {
			return true
		}
	}
	return false
}
