package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"weeknab/internal/report"
)

// CSV writes the per-category report rows as a CSV document with a header
// row. Optional goal fields are left empty when absent.
func CSV(w io.Writer, rows []report.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"category_name", "category_group_name", "budgeted", "balance", "spent", "goal_cadence", "goal_target",
	}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range rows {
		cadence := ""
		if r.GoalCadence != nil {
			cadence = strconv.Itoa(*r.GoalCadence)
		}
		target := ""
		if r.GoalTarget != nil {
			target = formatAmount(*r.GoalTarget)
		}
		record := []string{
			r.CategoryName,
			r.GroupName,
			formatAmount(r.Budgeted),
			formatAmount(r.Balance),
			formatAmount(r.Spent),
			cadence,
			target,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// GroupTotalsCSV writes the group totals as a CSV document.
func GroupTotalsCSV(w io.Writer, totals []report.GroupTotal) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category_group_name", "budgeted", "spent", "balance"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range totals {
		record := []string{
			t.GroupName,
			formatAmount(t.Budgeted),
			formatAmount(t.Spent),
			formatAmount(t.Balance),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
