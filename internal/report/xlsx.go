package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mmynk/sharesplit/pkg/api"
)

const (
	expensesSheet = "Expenses"
	balancesSheet = "Balances"
)

// BuildXLSX renders the balance sheet as a workbook with an Expenses sheet (one
// row per share) and a Balances sheet (one row per user, then suggested debts).
// An expense without shares still gets a single row with empty share cells.
func BuildXLSX(sheet *api.GetBalanceSheetResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", expensesSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(balancesSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	names := displayNames(sheet)

	expenseRows := [][]any{{"Date", "Description", "Method", "Total", "Paid By", "Participant", "Share", "Percentage"}}
	for _, e := range sheet.Expenses {
		date := time.Unix(e.CreatedAt, 0).UTC().Format("2006-01-02")
		if len(e.Shares) == 0 {
			expenseRows = append(expenseRows, []any{
				date, e.Description, e.SplitMethod, e.TotalAmount.String(), nameOf(names, e.CreatedBy), "", "", "",
			})
			continue
		}
		for _, s := range e.Shares {
			percentage := ""
			if s.Percentage != nil {
				percentage = s.Percentage.String()
			}
			expenseRows = append(expenseRows, []any{
				date, e.Description, e.SplitMethod, e.TotalAmount.String(),
				nameOf(names, e.CreatedBy), nameOf(names, s.UserID), s.Amount.StringFixed(2), percentage,
			})
		}
	}
	if err := writeRows(f, expensesSheet, expenseRows); err != nil {
		return nil, err
	}

	balanceRows := [][]any{{"User", "Total Paid", "Total Owed", "Net Balance"}}
	for _, b := range sheet.Balances {
		balanceRows = append(balanceRows, []any{
			b.DisplayName, b.TotalPaid.StringFixed(2), b.TotalOwed.StringFixed(2), b.NetBalance.StringFixed(2),
		})
	}
	if len(sheet.Debts) > 0 {
		balanceRows = append(balanceRows, []any{}, []any{"From", "To", "Amount"})
		for _, d := range sheet.Debts {
			balanceRows = append(balanceRows, []any{
				nameOf(names, d.FromUserID), nameOf(names, d.ToUserID), d.Amount.StringFixed(2),
			})
		}
	}
	if err := writeRows(f, balancesSheet, balanceRows); err != nil {
		return nil, err
	}

	f.SetColWidth(expensesSheet, "A", "A", 12)
	f.SetColWidth(expensesSheet, "B", "B", 30)
	f.SetColWidth(expensesSheet, "C", "H", 14)
	f.SetColWidth(balancesSheet, "A", "D", 16)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
