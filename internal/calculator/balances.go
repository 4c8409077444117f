package calculator

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// cent is the smallest balance worth reporting; anything below it is division noise.
var cent = decimal.New(1, -2)

// ExpenseForBalance represents an expense with the minimal information needed for balance calculations.
type ExpenseForBalance struct {
	Total   decimal.Decimal
	PayerID string
	Shares  []Share
}

// MemberBalance represents the balance information for one user.
type MemberBalance struct {
	UserID     string
	NetBalance decimal.Decimal // Positive = owed money, Negative = owes money
	TotalPaid  decimal.Decimal // Total amount paid across all expenses
	TotalOwed  decimal.Decimal // Total amount this person owes
}

// DebtEdge represents a debt from one person to another.
type DebtEdge struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

// CalculateBalances aggregates who paid what and who owes what across expenses.
// It returns member balances sorted by user ID and a simplified list of debts.
//
// Algorithm:
//   - For each expense: payer contributed +total, each participant owes their share
//   - Aggregate: net_balance = total_paid - total_owed
//   - Debt list: greedy matching of the largest debtor with the largest creditor
func CalculateBalances(expenses []ExpenseForBalance) ([]MemberBalance, []DebtEdge) {
	balances := make(map[string]*MemberBalance)
	get := func(userID string) *MemberBalance {
		b, ok := balances[userID]
		if !ok {
			b = &MemberBalance{UserID: userID}
			balances[userID] = b
		}
		return b
	}

	for _, e := range expenses {
		// Skip expenses without payer (can't calculate balances)
		if e.PayerID == "" {
			continue
		}
		payer := get(e.PayerID)
		payer.TotalPaid = payer.TotalPaid.Add(e.Total)

		for _, s := range e.Shares {
			member := get(s.UserID)
			member.TotalOwed = member.TotalOwed.Add(s.Amount)
		}
	}

	memberBalances := make([]MemberBalance, 0, len(balances))
	for _, b := range balances {
		b.NetBalance = b.TotalPaid.Sub(b.TotalOwed)
		memberBalances = append(memberBalances, *b)
	}
	slices.SortFunc(memberBalances, func(a, b MemberBalance) int {
		return cmp.Compare(a.UserID, b.UserID)
	})

	return memberBalances, simplifyDebts(memberBalances)
}

func simplifyDebts(balances []MemberBalance) []DebtEdge {
	type party struct {
		userID    string
		remaining decimal.Decimal
	}

	var creditors, debtors []party
	for _, b := range balances {
		switch {
		case b.NetBalance.GreaterThanOrEqual(cent):
			creditors = append(creditors, party{b.UserID, b.NetBalance})
		case b.NetBalance.Neg().GreaterThanOrEqual(cent):
			debtors = append(debtors, party{b.UserID, b.NetBalance.Neg()})
		}
	}

	byLargest := func(a, b party) int {
		if c := b.remaining.Cmp(a.remaining); c != 0 {
			return c
		}
		return cmp.Compare(a.userID, b.userID)
	}
	slices.SortFunc(creditors, byLargest)
	slices.SortFunc(debtors, byLargest)

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		d, c := &debtors[i], &creditors[j]

		amount := decimal.Min(d.remaining, c.remaining)
		if amount.GreaterThanOrEqual(cent) {
			edges = append(edges, DebtEdge{From: d.userID, To: c.userID, Amount: amount})
		}

		d.remaining = d.remaining.Sub(amount)
		c.remaining = c.remaining.Sub(amount)

		if d.remaining.LessThan(cent) {
			i++
		}
		if c.remaining.LessThan(cent) {
			j++
		}
	}

	return edges
}
