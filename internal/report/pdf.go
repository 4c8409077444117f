package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/mmynk/sharesplit/pkg/api"
)

// BuildPDF renders the balance sheet as a one-document A4 report.
func BuildPDF(sheet *api.GetBalanceSheetResponse) ([]byte, error) {
	names := displayNames(sheet)

	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; runes outside it render as a placeholder.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Balance Sheet", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Balance Sheet")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Generated: %s", time.Unix(sheet.GeneratedAt, 0).UTC().Format("2006-01-02 15:04 MST")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Balances")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(70, 7, "User")
	pdf.Cell(40, 7, "Paid")
	pdf.Cell(40, 7, "Owed")
	pdf.Cell(40, 7, "Net")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 11)
	for _, b := range sheet.Balances {
		pdf.Cell(70, 7, tr(b.DisplayName))
		pdf.Cell(40, 7, b.TotalPaid.StringFixed(2))
		pdf.Cell(40, 7, b.TotalOwed.StringFixed(2))
		pdf.Cell(40, 7, b.NetBalance.StringFixed(2))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	if len(sheet.Debts) > 0 {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Suggested Payments")
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "", 11)
		for _, d := range sheet.Debts {
			pdf.Cell(0, 7, tr(fmt.Sprintf("%s pays %s %s",
				nameOf(names, d.FromUserID), nameOf(names, d.ToUserID), d.Amount.StringFixed(2))))
			pdf.Ln(7)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Expenses")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(30, 7, "Date")
	pdf.Cell(70, 7, "Description")
	pdf.Cell(30, 7, "Method")
	pdf.Cell(30, 7, "Total")
	pdf.Cell(30, 7, "Paid By")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 11)
	for _, e := range sheet.Expenses {
		pdf.Cell(30, 7, time.Unix(e.CreatedAt, 0).UTC().Format("2006-01-02"))
		pdf.Cell(70, 7, tr(e.Description))
		pdf.Cell(30, 7, e.SplitMethod)
		pdf.Cell(30, 7, e.TotalAmount.StringFixed(2))
		pdf.Cell(30, 7, tr(nameOf(names, e.CreatedBy)))
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
