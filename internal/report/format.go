package report

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/mmynk/myfintrack/internal/calculator"
	"github.com/mmynk/myfintrack/internal/models"
)

// FormatCurrency formats amount in the given ISO 4217 currency, e.g.
// "$1,234.56" for USD. Amounts are rounded half away from zero to the
// currency's minor unit. Unknown codes fall back to USD.
func FormatCurrency(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		cur = money.GetCurrency(money.USD)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// FormatPercent formats part as a share of total with one decimal, e.g.
// "42.5%". A zero total gives "0.0%".
func FormatPercent(part, total decimal.Decimal) string {
	return calculator.Percentage(part, total).StringFixed(1) + "%"
}

// FormatDate formats d for display, e.g. "Jan 02, 2006". The zero date
// renders as an empty string.
func FormatDate(d models.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Display()
}

// cell makes free text safe inside a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
