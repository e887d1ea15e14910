// Package report renders fintrack data as markdown documents.
package report

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"github.com/mmynk/myfintrack/internal/calculator"
	"github.com/mmynk/myfintrack/internal/models"
	"github.com/mmynk/myfintrack/internal/service"
)

//go:embed templates/*.md
var templates embed.FS

// Style names accepted by Display besides glamour's standard styles.
const (
	StyleRaw  = "raw"
	StyleAuto = "auto"
)

// Renderer turns dashboards and record lists into markdown.
type Renderer struct {
	currency string
	tmpl     *template.Template
}

// New creates a Renderer formatting amounts in currency.
func New(currency string) *Renderer {
	r := &Renderer{currency: currency}
	r.tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
		"money":      r.money,
		"pct":        FormatPercent,
		"date":       FormatDate,
		"optdate":    optionalDate,
		"optmoney":   r.optionalMoney,
		"optrate":    optionalRate,
		"cell":       cell,
		"signed":     r.signed,
		"recurrence": recurrence,
		"index2":     monthAt,
	}).ParseFS(templates, "templates/*.md"))
	return r
}

// Dashboard renders the financial overview.
func (r *Renderer) Dashboard(d service.Dashboard) (string, error) {
	return r.execute("dashboard.md", d)
}

// Income renders income entries as a table.
func (r *Renderer) Income(items []models.Income) (string, error) {
	return r.execute("income.md", items)
}

// Expenses renders expenses as a table.
func (r *Renderer) Expenses(items []models.Expense) (string, error) {
	return r.execute("expenses.md", items)
}

// Assets renders assets as a table.
func (r *Renderer) Assets(items []models.Asset) (string, error) {
	return r.execute("assets.md", items)
}

// Liabilities renders liabilities as a table.
func (r *Renderer) Liabilities(items []models.Liability) (string, error) {
	return r.execute("liabilities.md", items)
}

// User renders the signed in user, or a hint to sign in.
func (r *Renderer) User(u *models.User) (string, error) {
	return r.execute("user.md", u)
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var b strings.Builder
	if err := r.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return b.String(), nil
}

// Display writes a markdown document to w. StyleRaw writes it unchanged;
// StyleAuto picks a glamour style from the terminal; any other value
// names a glamour standard style such as "dark" or "notty".
func Display(w io.Writer, doc, style string, width int) error {
	if style == StyleRaw {
		_, err := io.WriteString(w, doc)
		return err
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == StyleAuto {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(doc)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func (r *Renderer) money(amount decimal.Decimal) string {
	return FormatCurrency(amount, r.currency)
}

func (r *Renderer) optionalMoney(amount *decimal.Decimal) string {
	if amount == nil {
		return ""
	}
	return r.money(*amount)
}

// signed prefixes income with + and expenses with -.
func (r *Renderer) signed(t calculator.Transaction) string {
	if t.Kind == calculator.KindIncome {
		return "+" + r.money(t.Amount)
	}
	return "-" + r.money(t.Amount)
}

func optionalDate(d *models.Date) string {
	if d == nil {
		return ""
	}
	return FormatDate(*d)
}

func optionalRate(rate *decimal.Decimal) string {
	if rate == nil {
		return ""
	}
	return rate.StringFixed(2) + "%"
}

func recurrence(r *models.Recurrence) string {
	if r == nil {
		return "No"
	}
	if r.EndDate != nil {
		return fmt.Sprintf("%s until %s", r.Frequency, FormatDate(*r.EndDate))
	}
	return string(r.Frequency)
}

// monthAt returns the i-th entry of months, or the zero value.
func monthAt(months []calculator.MonthValue, i int) calculator.MonthValue {
	if i < 0 || i >= len(months) {
		return calculator.MonthValue{Value: decimal.Zero}
	}
	return months[i]
}
