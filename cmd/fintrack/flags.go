package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mmynk/myfintrack/internal/models"
)

// transactionFlags are shared by income and expense commands.
type transactionFlags struct {
	amount      string
	date        string
	description string
	recurring   bool
	frequency   string
	endDate     string
}

func (f *transactionFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.amount, "amount", "", "Amount, e.g. 1250.00")
	flags.StringVar(&f.date, "date", "", "Date as YYYY-MM-DD (default: today)")
	flags.StringVar(&f.description, "description", "", "Free-text description")
	flags.BoolVar(&f.recurring, "recurring", false, "Whether the entry repeats")
	flags.StringVar(&f.frequency, "frequency", string(models.Monthly), "Repeat frequency: weekly, bi-weekly, monthly, quarterly, yearly")
	flags.StringVar(&f.endDate, "end-date", "", "Last date of a recurring entry (YYYY-MM-DD)")
	completeWith(cmd, "frequency", frequencyNames())
}

// transaction holds the fields common to income and expenses.
type transaction struct {
	Amount      decimal.Decimal
	Date        models.Date
	Description string
	Recurrence  *models.Recurrence
}

// apply overlays the flags that were set on t. Unset flags keep t's values.
func (f *transactionFlags) apply(flags *pflag.FlagSet, t transaction) (transaction, error) {
	var err error
	if flags.Changed("amount") {
		if t.Amount, err = parseAmount("amount", f.amount); err != nil {
			return t, err
		}
	}
	if flags.Changed("date") {
		if t.Date, err = models.ParseDate(f.date); err != nil {
			return t, fmt.Errorf("invalid --date: %w", err)
		}
	}
	if flags.Changed("description") {
		t.Description = f.description
	}

	recurring := t.Recurrence != nil
	switch {
	case flags.Changed("recurring"):
		recurring = f.recurring
	case flags.Changed("frequency"), flags.Changed("end-date"):
		recurring = true
	}
	if !recurring {
		t.Recurrence = nil
		return t, nil
	}

	r := models.Recurrence{Frequency: models.Monthly}
	if t.Recurrence != nil {
		r = *t.Recurrence
	}
	if flags.Changed("frequency") {
		if r.Frequency, err = models.ParseFrequency(f.frequency); err != nil {
			return t, err
		}
	}
	if flags.Changed("end-date") {
		if r.EndDate, err = parseOptionalDate("end-date", f.endDate); err != nil {
			return t, err
		}
	}
	t.Recurrence = &r
	return t, nil
}

func parseAmount(flag, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", flag, s, err)
	}
	return d, nil
}

// parseOptionalAmount returns nil for an empty string.
func parseOptionalAmount(flag, s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := parseAmount(flag, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseOptionalDate returns nil for an empty string.
func parseOptionalDate(flag, s string) (*models.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", flag, err)
	}
	return &d, nil
}

func frequencyNames() []string {
	names := make([]string, len(models.Frequencies))
	for i, f := range models.Frequencies {
		names[i] = string(f)
	}
	return names
}

// completeWith offers values for a flag in shell completion.
func completeWith(cmd *cobra.Command, flag string, values []string) {
	cmd.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
}
