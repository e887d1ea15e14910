package models

import (
	"errors"
	"fmt"
)

// Frequency is how often a recurring record repeats.
type Frequency string

const (
	Weekly    Frequency = "weekly"
	BiWeekly  Frequency = "bi-weekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

// Frequencies lists every valid Frequency in increasing period order.
var Frequencies = []Frequency{Weekly, BiWeekly, Monthly, Quarterly, Yearly}

// ErrInvalidFrequency is returned when parsing an unknown frequency.
var ErrInvalidFrequency = errors.New("invalid frequency")

// ParseFrequency validates s as a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	for _, f := range Frequencies {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
}

// Recurrence holds the repeat schedule of an Income or Expense.
// A record that does not repeat has a nil Recurrence.
type Recurrence struct {
	Frequency Frequency

	// EndDate bounds the schedule; nil means it repeats indefinitely.
	EndDate *Date
}

// recurrenceJSON is the flattened wire form of an optional Recurrence.
type recurrenceJSON struct {
	IsRecurring bool      `json:"isRecurring"`
	Frequency   Frequency `json:"frequency,omitempty"`
	EndDate     *Date     `json:"endDate,omitempty"`
}

func flattenRecurrence(r *Recurrence) recurrenceJSON {
	if r == nil {
		return recurrenceJSON{}
	}
	return recurrenceJSON{IsRecurring: true, Frequency: r.Frequency, EndDate: r.EndDate}
}

// expand drops frequency and end date when the record is not recurring.
// A recurring record without a frequency defaults to monthly.
func (w recurrenceJSON) expand() *Recurrence {
	if !w.IsRecurring {
		return nil
	}
	f := w.Frequency
	if f == "" {
		f = Monthly
	}
	return &Recurrence{Frequency: f, EndDate: w.EndDate}
}
