// Package report builds the weekly spending report: it normalizes raw
// categories and transactions into flat rows, restricts spending to a
// reporting week, joins categories against spending and aggregates per
// category group. All amounts leave this package in currency units; the
// normalizers are the only place milliunits are converted.
package report

import (
	"fmt"

	"weeknab/internal/core"
)

// SplitCategory is the sentinel category name the budgeting API puts on a
// split transaction. It never attributes spending by itself.
const SplitCategory = "Split"

// CategoryRow is a report-ready category with monetary fields converted to
// currency units.
type CategoryRow struct {
	ID          string
	Name        string
	GroupName   string // empty when the category has no group
	Budgeted    float64
	Balance     float64
	GoalCadence *int
	GoalTarget  *float64
	Hidden      bool
}

// SpendEvent is a single per-category spend attribution. Amount keeps the
// source sign convention: outflows are negative.
type SpendEvent struct {
	ID           string
	Date         core.Date
	Amount       float64
	PayeeName    string
	CategoryName string
}

// CategoryRows converts categories into report rows, scaling budgeted,
// balance and goal target from milliunits to currency units. Nothing is
// filtered out; hidden categories pass through for downstream display
// decisions.
func CategoryRows(categories []core.Category) ([]CategoryRow, error) {
	rows := make([]CategoryRow, 0, len(categories))
	for i, c := range categories {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: category %d (id %q) has no name", core.ErrMalformedInput, i, c.ID)
		}
		row := CategoryRow{
			ID:          c.ID,
			Name:        c.Name,
			GroupName:   c.CategoryGroupName,
			Budgeted:    c.Budgeted.Units(),
			Balance:     c.Balance.Units(),
			GoalCadence: c.GoalCadence,
			Hidden:      c.Hidden,
		}
		if c.GoalTarget != nil {
			target := c.GoalTarget.Units()
			row.GoalTarget = &target
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SpendEvents flattens transactions into per-category spend events.
//
// A plain transaction with a real category yields one event. A split
// transaction yields one event per categorized subtransaction, carrying the
// parent's id and date and inheriting the parent's payee when the
// subtransaction has none. Transactions that resolve to no category at all
// are dropped; that is normal data, not an error. Source encounter order is
// preserved, with a split's events in subtransaction order.
func SpendEvents(transactions []core.Transaction) ([]SpendEvent, error) {
	var events []SpendEvent
	for i, t := range transactions {
		if t.Date.IsZero() {
			return nil, fmt.Errorf("%w: transaction %d (id %q) has no date", core.ErrMalformedInput, i, t.ID)
		}

		if len(t.Subtransactions) == 0 {
			if t.CategoryName == "" || t.CategoryName == SplitCategory {
				continue
			}
			events = append(events, SpendEvent{
				ID:           t.ID,
				Date:         t.Date,
				Amount:       t.Amount.Units(),
				PayeeName:    t.PayeeName,
				CategoryName: t.CategoryName,
			})
			continue
		}

		// Split transaction: only the subtransactions attribute spending,
		// never the parent's own category or amount.
		for _, sub := range t.Subtransactions {
			if sub.CategoryName == "" {
				continue
			}
			payee := sub.PayeeName
			if payee == "" {
				payee = t.PayeeName
			}
			events = append(events, SpendEvent{
				ID:           t.ID,
				Date:         t.Date,
				Amount:       sub.Amount.Units(),
				PayeeName:    payee,
				CategoryName: sub.CategoryName,
			})
		}
	}
	return events, nil
}

// FilterRange keeps events dated within [start, end] inclusive. A reversed
// interval yields an empty result rather than an error.
func FilterRange(events []SpendEvent, start, end core.Date) []SpendEvent {
	kept := make([]SpendEvent, 0, len(events))
	if start.After(end.Time) {
		return kept
	}
	for _, e := range events {
		if e.Date.Within(start, end) {
			kept = append(kept, e)
		}
	}
	return kept
}
