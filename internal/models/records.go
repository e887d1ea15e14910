package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are persisted as JSON numbers, the layout earlier versions wrote.
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrInvalidRecord is wrapped by every Validate failure.
var ErrInvalidRecord = errors.New("invalid record")

var hundred = decimal.NewFromInt(100)

// Income represents money received.
type Income struct {
	// ID is unique within the income sequence.
	ID string

	// Amount is the non-negative amount received.
	Amount decimal.Decimal

	// Source is one of IncomeSources or a free-text override.
	Source string

	Date        Date
	Description string

	// Recurrence is nil for one-off income.
	Recurrence *Recurrence

	UserID string
}

type incomeJSON struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Source      string          `json:"source"`
	Date        Date            `json:"date"`
	Description string          `json:"description,omitempty"`
	recurrenceJSON
	UserID string `json:"userId"`
}

// MarshalJSON encodes the income in its persisted layout.
func (i Income) MarshalJSON() ([]byte, error) {
	return json.Marshal(incomeJSON{
		ID:             i.ID,
		Amount:         i.Amount,
		Source:         i.Source,
		Date:           i.Date,
		Description:    i.Description,
		recurrenceJSON: flattenRecurrence(i.Recurrence),
		UserID:         i.UserID,
	})
}

// UnmarshalJSON decodes the persisted layout.
func (i *Income) UnmarshalJSON(data []byte) error {
	var w incomeJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*i = Income{
		ID:          w.ID,
		Amount:      w.Amount,
		Source:      w.Source,
		Date:        w.Date,
		Description: w.Description,
		Recurrence:  w.recurrenceJSON.expand(),
		UserID:      w.UserID,
	}
	return nil
}

// Validate checks the fields a form must provide before dispatching.
func (i Income) Validate() error {
	if err := validateTransaction(i.ID, i.Amount, i.Date, i.Recurrence); err != nil {
		return err
	}
	if i.Source == "" {
		return fmt.Errorf("%w: source is required", ErrInvalidRecord)
	}
	return nil
}

// Expense represents money spent.
type Expense struct {
	// ID is unique within the expense sequence.
	ID string

	// Amount is the non-negative amount spent.
	Amount decimal.Decimal

	// Category is one of ExpenseCategories or a free-text override.
	Category string

	Date Date

	// PaymentMethod is one of PaymentMethods or a free-text override.
	PaymentMethod string

	Description string

	// Recurrence is nil for one-off expenses.
	Recurrence *Recurrence

	UserID string
}

type expenseJSON struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Date          Date            `json:"date"`
	PaymentMethod string          `json:"paymentMethod"`
	Description   string          `json:"description,omitempty"`
	recurrenceJSON
	UserID string `json:"userId"`
}

// MarshalJSON encodes the expense in its persisted layout.
func (e Expense) MarshalJSON() ([]byte, error) {
	return json.Marshal(expenseJSON{
		ID:             e.ID,
		Amount:         e.Amount,
		Category:       e.Category,
		Date:           e.Date,
		PaymentMethod:  e.PaymentMethod,
		Description:    e.Description,
		recurrenceJSON: flattenRecurrence(e.Recurrence),
		UserID:         e.UserID,
	})
}

// UnmarshalJSON decodes the persisted layout.
func (e *Expense) UnmarshalJSON(data []byte) error {
	var w expenseJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = Expense{
		ID:            w.ID,
		Amount:        w.Amount,
		Category:      w.Category,
		Date:          w.Date,
		PaymentMethod: w.PaymentMethod,
		Description:   w.Description,
		Recurrence:    w.recurrenceJSON.expand(),
		UserID:        w.UserID,
	}
	return nil
}

// Validate checks the fields a form must provide before dispatching.
func (e Expense) Validate() error {
	if err := validateTransaction(e.ID, e.Amount, e.Date, e.Recurrence); err != nil {
		return err
	}
	if e.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidRecord)
	}
	if e.PaymentMethod == "" {
		return fmt.Errorf("%w: payment method is required", ErrInvalidRecord)
	}
	return nil
}

func validateTransaction(id string, amount decimal.Decimal, date Date, r *Recurrence) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidRecord)
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidRecord)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRecord)
	}
	if r != nil {
		if _, err := ParseFrequency(string(r.Frequency)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
		}
		if r.EndDate != nil && r.EndDate.Before(date) {
			return fmt.Errorf("%w: end date %s is before %s", ErrInvalidRecord, r.EndDate, date)
		}
	}
	return nil
}

// Asset represents something the user owns.
type Asset struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	CurrentValue decimal.Decimal `json:"currentValue"`
	DateAcquired *Date           `json:"dateAcquired,omitempty"`
	Description  string          `json:"description,omitempty"`
	UserID       string          `json:"userId"`
}

// Validate checks the fields a form must provide before dispatching.
func (a Asset) Validate() error {
	switch {
	case a.ID == "":
		return fmt.Errorf("%w: id is required", ErrInvalidRecord)
	case a.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidRecord)
	case a.Type == "":
		return fmt.Errorf("%w: type is required", ErrInvalidRecord)
	case a.CurrentValue.IsNegative():
		return fmt.Errorf("%w: current value must not be negative", ErrInvalidRecord)
	}
	return nil
}

// Liability represents something the user owes.
type Liability struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Type               string           `json:"type"`
	OutstandingBalance decimal.Decimal  `json:"outstandingBalance"`
	OriginalAmount     *decimal.Decimal `json:"originalAmount,omitempty"`

	// InterestRate is an annual percentage between 0 and 100.
	InterestRate *decimal.Decimal `json:"interestRate,omitempty"`

	MinimumPayment *decimal.Decimal `json:"minimumPayment,omitempty"`
	DueDate        *Date            `json:"dueDate,omitempty"`
	Description    string           `json:"description,omitempty"`
	UserID         string           `json:"userId"`
}

// Validate checks the fields a form must provide before dispatching.
func (l Liability) Validate() error {
	switch {
	case l.ID == "":
		return fmt.Errorf("%w: id is required", ErrInvalidRecord)
	case l.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidRecord)
	case l.Type == "":
		return fmt.Errorf("%w: type is required", ErrInvalidRecord)
	case l.OutstandingBalance.IsNegative():
		return fmt.Errorf("%w: outstanding balance must not be negative", ErrInvalidRecord)
	case l.OriginalAmount != nil && l.OriginalAmount.IsNegative():
		return fmt.Errorf("%w: original amount must not be negative", ErrInvalidRecord)
	case l.MinimumPayment != nil && l.MinimumPayment.IsNegative():
		return fmt.Errorf("%w: minimum payment must not be negative", ErrInvalidRecord)
	case l.InterestRate != nil && (l.InterestRate.IsNegative() || l.InterestRate.GreaterThan(hundred)):
		return fmt.Errorf("%w: interest rate must be between 0 and 100", ErrInvalidRecord)
	}
	return nil
}
