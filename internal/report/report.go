// Package report renders the balance sheet as downloadable documents.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/sharesplit/pkg/api"
)

// Format is a balance sheet download format.
type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat parses a format name. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatXLSX, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q", s)
	}
}

// ContentType is the MIME type of a rendered document.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

// Filename is the attachment name for a sheet generated at t.
func (f Format) Filename(t time.Time) string {
	return fmt.Sprintf("balance_sheet_%s.%s", t.UTC().Format("20060102"), f)
}

func displayNames(sheet *api.GetBalanceSheetResponse) map[string]string {
	names := make(map[string]string, len(sheet.Balances))
	for _, b := range sheet.Balances {
		names[b.UserID] = b.DisplayName
	}
	return names
}

func nameOf(names map[string]string, userID string) string {
	if n, ok := names[userID]; ok && n != "" {
		return n
	}
	return userID
}
