package core

import "fmt"

// ReportingWeek is a month-relative week: the month is partitioned into
// consecutive 7-day spans starting at day 1, the last span clamped at the
// month boundary. Number is 1-based within the month.
type ReportingWeek struct {
	Start  Date // inclusive
	End    Date // inclusive
	Number int
}

// ResolveWeek maps a date to the reporting week containing it.
//
// week index = (day-1)/7, start = 1 + 7*index, end = min(start+6, last day
// of the month). The final week of a month may span fewer than 7 days; it
// never spills into the next month.
func ResolveWeek(d Date) (ReportingWeek, error) {
	if d.IsZero() {
		return ReportingWeek{}, fmt.Errorf("%w: zero date", ErrInvalidDate)
	}

	year, month, day := d.Date()
	index := (day - 1) / 7

	start := NewDate(year, int(month), 1+7*index)
	end := NewDate(year, int(month), 1+7*index+6)
	lastOfMonth := NewDate(year, int(month)+1, 1).AddDate(0, 0, -1)
	if end.After(lastOfMonth) {
		end = Date{Time: lastOfMonth}
	}

	return ReportingWeek{
		Start:  start,
		End:    end,
		Number: index + 1,
	}, nil
}

// Label renders the human-readable week header, e.g.
// "Week 2 of 2024, starting on Monday 2024-03-11 and ending on Sunday 2024-03-17".
func (w ReportingWeek) Label() string {
	return fmt.Sprintf("Week %d of %d, starting on %s and ending on %s",
		w.Number,
		w.Start.Year(),
		w.Start.Format("Monday 2006-01-02"),
		w.End.Format("Monday 2006-01-02"))
}

// ShortLabel renders the compact form used by the visual report, e.g.
// "Week 2 (Mar 11 - Mar 17)".
func (w ReportingWeek) ShortLabel() string {
	return fmt.Sprintf("Week %d (%s - %s)", w.Number, shortDate(w.Start), shortDate(w.End))
}

func shortDate(d Date) string {
	return fmt.Sprintf("%s %d", d.Format("Jan"), d.Day())
}
