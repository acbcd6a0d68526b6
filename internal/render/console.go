// Package render turns the finished report tables into their output
// shapes: an aligned console table, CSV documents, or a colored HTML page.
// Renderers only read the tables; they never reorder or recompute them.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"weeknab/internal/report"
)

// Console writes the week header, the per-category table and the group
// totals as aligned plain text.
func Console(w io.Writer, header string, rows []report.Row, totals []report.GroupTotal) error {
	if _, err := fmt.Fprintln(w, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tGROUP\tBUDGETED\tSPENT\tBALANCE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%.2f\n",
			r.CategoryName, r.GroupName, r.Budgeted, r.Spent, r.Balance)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush report table: %w", err)
	}

	if _, err := fmt.Fprintln(w, "\nCategory group totals"); err != nil {
		return err
	}
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tBUDGETED\tSPENT\tBALANCE")
	for _, t := range totals {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\n", t.GroupName, t.Budgeted, t.Spent, t.Balance)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush totals table: %w", err)
	}
	return nil
}
