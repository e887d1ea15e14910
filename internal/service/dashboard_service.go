package service

import (
	"github.com/mmynk/myfintrack/internal/calculator"
	"github.com/mmynk/myfintrack/internal/models"
	"github.com/mmynk/myfintrack/internal/state"
	"github.com/shopspring/decimal"
)

// Dashboard is the financial overview derived from the current state.
type Dashboard struct {
	User  *models.User
	Today models.Date

	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	NetWorth         decimal.Decimal

	IncomeBySource     []calculator.CategoryTotal
	ExpensesByCategory []calculator.CategoryTotal
	AssetsByType       []calculator.CategoryTotal
	LiabilitiesByType  []calculator.CategoryTotal

	Trend        calculator.TimeSeries
	Recent       []calculator.Transaction
	UpcomingDues []models.Liability

	// DueWindowDays is the horizon UpcomingDues covers.
	DueWindowDays int
}

// DashboardOptions sizes the dashboard's lists and windows.
type DashboardOptions struct {
	TrendMonths   int
	RecentLimit   int
	DueWindowDays int
}

// DefaultDashboardOptions matches the web dashboard.
var DefaultDashboardOptions = DashboardOptions{
	TrendMonths:   6,
	RecentLimit:   5,
	DueWindowDays: 7,
}

// StateReader is the read-only part of state.Store.
type StateReader interface {
	State() state.AppState
}

// DashboardService builds dashboards from the store's state.
type DashboardService struct {
	store StateReader
	opts  DashboardOptions
	today func() models.Date
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(store StateReader, opts DashboardOptions) *DashboardService {
	return &DashboardService{store: store, opts: opts, today: models.Today}
}

// Build computes the dashboard for the current state.
func (s *DashboardService) Build() Dashboard {
	return BuildDashboard(s.store.State(), s.today(), s.opts)
}

// BuildDashboard computes the dashboard for st as seen on today.
func BuildDashboard(st state.AppState, today models.Date, opts DashboardOptions) Dashboard {
	data := st.Data
	return Dashboard{
		User:  st.User,
		Today: today,

		TotalIncome:      calculator.TotalIncome(data.Income),
		TotalExpenses:    calculator.TotalExpenses(data.Expenses),
		TotalAssets:      calculator.TotalAssets(data.Assets),
		TotalLiabilities: calculator.TotalLiabilities(data.Liabilities),
		NetWorth:         calculator.NetWorth(data.Assets, data.Liabilities),

		IncomeBySource: calculator.CategoryTotals(
			calculator.GroupBy(data.Income, calculator.IncomeSource), calculator.IncomeAmount),
		ExpensesByCategory: calculator.CategoryTotals(
			calculator.GroupBy(data.Expenses, calculator.ExpenseCategory), calculator.ExpenseAmount),
		AssetsByType: calculator.CategoryTotals(
			calculator.GroupBy(data.Assets, calculator.AssetType), calculator.AssetValue),
		LiabilitiesByType: calculator.CategoryTotals(
			calculator.GroupBy(data.Liabilities, calculator.LiabilityType), calculator.LiabilityBalance),

		Trend:        calculator.BuildTimeSeries(data.Income, data.Expenses, opts.TrendMonths, today),
		Recent:       calculator.RecentTransactions(data.Income, data.Expenses, opts.RecentLimit),
		UpcomingDues: calculator.UpcomingDues(data.Liabilities, today, opts.DueWindowDays),

		DueWindowDays: opts.DueWindowDays,
	}
}
