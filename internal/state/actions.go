package state

import "github.com/mmynk/myfintrack/internal/models"

// Action is a closed set of state transitions. Only types in this package
// implement it; Reduce matches every one of them.
type Action interface {
	// Name is the stable identifier used in logs and metrics.
	Name() string

	isAction()
}

type action struct{}

func (action) isAction() {}

// Sequence names one of the four record sequences of FinancialData.
type Sequence string

const (
	SequenceIncome      Sequence = "income"
	SequenceExpenses    Sequence = "expenses"
	SequenceAssets      Sequence = "assets"
	SequenceLiabilities Sequence = "liabilities"
)

// Mutation is implemented by the add, update and delete actions.
type Mutation interface {
	Action
	Sequence() Sequence
}

// RecordAction is implemented by actions carrying a full record.
type RecordAction interface {
	Mutation

	// OwnerID returns the record's UserID.
	OwnerID() string

	// WithOwner returns a copy of the action whose record belongs to userID.
	WithOwner(userID string) Action
}

// SetUser authenticates user.
type SetUser struct {
	action
	User *models.User
}

// Logout resets the state and clears persisted aggregates.
type Logout struct{ action }

// SetLoading toggles the loading flag.
type SetLoading struct {
	action
	Loading bool
}

// SetError records an error message and clears the loading flag.
type SetError struct {
	action
	Message string
}

// LoadData replaces the financial data wholesale without persisting it.
type LoadData struct {
	action
	Data models.FinancialData
}

type AddIncome struct {
	action
	Income models.Income
}

type UpdateIncome struct {
	action
	Income models.Income
}

type DeleteIncome struct {
	action
	ID string
}

type AddExpense struct {
	action
	Expense models.Expense
}

type UpdateExpense struct {
	action
	Expense models.Expense
}

type DeleteExpense struct {
	action
	ID string
}

type AddAsset struct {
	action
	Asset models.Asset
}

type UpdateAsset struct {
	action
	Asset models.Asset
}

type DeleteAsset struct {
	action
	ID string
}

type AddLiability struct {
	action
	Liability models.Liability
}

type UpdateLiability struct {
	action
	Liability models.Liability
}

type DeleteLiability struct {
	action
	ID string
}

func (SetUser) Name() string         { return "SET_USER" }
func (Logout) Name() string          { return "LOGOUT" }
func (SetLoading) Name() string      { return "SET_LOADING" }
func (SetError) Name() string        { return "SET_ERROR" }
func (LoadData) Name() string        { return "LOAD_DATA" }
func (AddIncome) Name() string       { return "ADD_INCOME" }
func (UpdateIncome) Name() string    { return "UPDATE_INCOME" }
func (DeleteIncome) Name() string    { return "DELETE_INCOME" }
func (AddExpense) Name() string      { return "ADD_EXPENSE" }
func (UpdateExpense) Name() string   { return "UPDATE_EXPENSE" }
func (DeleteExpense) Name() string   { return "DELETE_EXPENSE" }
func (AddAsset) Name() string        { return "ADD_ASSET" }
func (UpdateAsset) Name() string     { return "UPDATE_ASSET" }
func (DeleteAsset) Name() string     { return "DELETE_ASSET" }
func (AddLiability) Name() string    { return "ADD_LIABILITY" }
func (UpdateLiability) Name() string { return "UPDATE_LIABILITY" }
func (DeleteLiability) Name() string { return "DELETE_LIABILITY" }

func (AddIncome) Sequence() Sequence       { return SequenceIncome }
func (UpdateIncome) Sequence() Sequence    { return SequenceIncome }
func (DeleteIncome) Sequence() Sequence    { return SequenceIncome }
func (AddExpense) Sequence() Sequence      { return SequenceExpenses }
func (UpdateExpense) Sequence() Sequence   { return SequenceExpenses }
func (DeleteExpense) Sequence() Sequence   { return SequenceExpenses }
func (AddAsset) Sequence() Sequence        { return SequenceAssets }
func (UpdateAsset) Sequence() Sequence     { return SequenceAssets }
func (DeleteAsset) Sequence() Sequence     { return SequenceAssets }
func (AddLiability) Sequence() Sequence    { return SequenceLiabilities }
func (UpdateLiability) Sequence() Sequence { return SequenceLiabilities }
func (DeleteLiability) Sequence() Sequence { return SequenceLiabilities }

func (a AddIncome) OwnerID() string       { return a.Income.UserID }
func (a UpdateIncome) OwnerID() string    { return a.Income.UserID }
func (a AddExpense) OwnerID() string      { return a.Expense.UserID }
func (a UpdateExpense) OwnerID() string   { return a.Expense.UserID }
func (a AddAsset) OwnerID() string        { return a.Asset.UserID }
func (a UpdateAsset) OwnerID() string     { return a.Asset.UserID }
func (a AddLiability) OwnerID() string    { return a.Liability.UserID }
func (a UpdateLiability) OwnerID() string { return a.Liability.UserID }

func (a AddIncome) WithOwner(id string) Action       { a.Income.UserID = id; return a }
func (a UpdateIncome) WithOwner(id string) Action    { a.Income.UserID = id; return a }
func (a AddExpense) WithOwner(id string) Action      { a.Expense.UserID = id; return a }
func (a UpdateExpense) WithOwner(id string) Action   { a.Expense.UserID = id; return a }
func (a AddAsset) WithOwner(id string) Action        { a.Asset.UserID = id; return a }
func (a UpdateAsset) WithOwner(id string) Action     { a.Asset.UserID = id; return a }
func (a AddLiability) WithOwner(id string) Action    { a.Liability.UserID = id; return a }
func (a UpdateLiability) WithOwner(id string) Action { a.Liability.UserID = id; return a }
