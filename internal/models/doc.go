// Package models defines the core domain records for MyFinTrack.
//
// # Records
//
// A single user owns four insertion-ordered sequences, bundled in
// FinancialData:
//   - Income: money coming in, optionally recurring
//   - Expense: money going out, optionally recurring
//   - Asset: something the user owns, valued at CurrentValue
//   - Liability: something the user owes, valued at OutstandingBalance
//
// # Design Principles
//
// 1. **Plain data**: records carry no behavior beyond validation and JSON encoding
// 2. **Exact money**: amounts are decimal.Decimal, never float64
// 3. **Structural invariants**: a non-recurring record has no Recurrence at all,
// so a frequency or end date cannot exist without it
// 4. **Stable wire shape**: the JSON encoding is the persisted layout and stays
// compatible with payloads written by earlier versions (RFC 3339 dates are accepted)
//
// Record IDs are unique within their own sequence only. UserID references the
// owning User; the store does not cross-check it, see the middleware package.
package models
