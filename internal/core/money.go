// Package core holds the budget domain types shared by the fetch layer and
// the report engine: dates, milliunit amounts, categories, transactions and
// the month-relative reporting week.
package core

// Milliunits is an amount in thousandths of a currency unit, the exact
// integer representation used at the API boundary. Negative values are
// outflows.
type Milliunits int64

// Units converts to currency units for display. Division by 1000 is exact
// for amounts the budgeting API produces; any residual floating error is an
// accepted limitation of the float report columns.
func (m Milliunits) Units() float64 {
	return float64(m) / 1000.0
}
