package service

import (
	"github.com/mmynk/sharesplit/internal/calculator"
	"github.com/mmynk/sharesplit/internal/models"
	"github.com/mmynk/sharesplit/pkg/api"
)

// EntriesFromAPI converts request share inputs into calculator entries.
func EntriesFromAPI(in []api.ShareInput) []calculator.Entry {
	entries := make([]calculator.Entry, len(in))
	for i, s := range in {
		entries[i] = calculator.Entry{UserID: s.UserID, Amount: s.Amount, Percentage: s.Percentage}
	}
	return entries
}

// InputFromAPI converts a create request into a CreateExpenseInput.
func InputFromAPI(req *api.CreateExpenseRequest) CreateExpenseInput {
	return CreateExpenseInput{
		Description: req.Description,
		TotalAmount: req.TotalAmount,
		SplitMethod: req.SplitMethod,
		Entries:     EntriesFromAPI(req.Shares),
	}
}

func ExpenseToAPI(e *models.Expense) *api.Expense {
	out := &api.Expense{
		ID:          e.ID,
		Description: e.Description,
		TotalAmount: e.TotalAmount,
		SplitMethod: string(e.SplitMethod),
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		Shares:      make([]api.Share, len(e.Shares)),
	}
	for i, s := range e.Shares {
		out.Shares[i] = api.Share{ID: s.ID, UserID: s.UserID, Amount: s.Amount}
		if s.Percentage.Valid {
			p := s.Percentage.Decimal
			out.Shares[i].Percentage = &p
		}
	}
	return out
}

func ExpensesToAPI(expenses []*models.Expense) []*api.Expense {
	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = ExpenseToAPI(e)
	}
	return out
}

func UserToAPI(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

// BalanceSheetToAPI renders a balance sheet as its wire message.
func BalanceSheetToAPI(b *BalanceSheet) *api.GetBalanceSheetResponse {
	out := &api.GetBalanceSheetResponse{
		GeneratedAt: b.GeneratedAt.Unix(),
		Expenses:    ExpensesToAPI(b.Expenses),
		Balances:    make([]*api.MemberBalance, len(b.Balances)),
		Debts:       make([]*api.Debt, len(b.Debts)),
	}
	for i, m := range b.Balances {
		out.Balances[i] = &api.MemberBalance{
			UserID:      m.UserID,
			DisplayName: b.DisplayName(m.UserID),
			TotalPaid:   m.TotalPaid,
			TotalOwed:   m.TotalOwed,
			NetBalance:  m.NetBalance,
		}
	}
	for i, d := range b.Debts {
		out.Debts[i] = &api.Debt{FromUserID: d.From, ToUserID: d.To, Amount: d.Amount.Round(2)}
	}
	return out
}
