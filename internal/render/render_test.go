package render

import (
	"bytes"
	"strings"
	"testing"

	"weeknab/internal/core"
	"weeknab/internal/report"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func testRows() []report.Row {
	return []report.Row{
		{
			CategoryName: "Groceries", GroupName: "Essentials",
			Budgeted: 50, Balance: 31.5, Spent: 18.5,
			GoalCadence: intPtr(1), GoalTarget: floatPtr(60),
		},
		{
			CategoryName: "Rent", GroupName: "Essentials",
			Budgeted: 100, Balance: 75, Spent: 0,
			GoalCadence: intPtr(12),
		},
		{
			CategoryName: "Books", GroupName: "Fun",
			Budgeted: 10, Balance: 6, Spent: 4,
		},
	}
}

func testTotals() []report.GroupTotal {
	return []report.GroupTotal{
		{GroupName: "Essentials", Budgeted: 150, Spent: 18.5, Balance: 106.5},
		{GroupName: "Fun", Budgeted: 10, Spent: 4, Balance: 6},
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, testRows()); err != nil {
		t.Fatalf("CSV: %v", err)
	}

	want := "category_name,category_group_name,budgeted,balance,spent,goal_cadence,goal_target\n" +
		"Groceries,Essentials,50,31.5,18.5,1,60\n" +
		"Rent,Essentials,100,75,0,12,\n" +
		"Books,Fun,10,6,4,,\n"
	if got := buf.String(); got != want {
		t.Fatalf("CSV output:\n%s\nwant:\n%s", got, want)
	}
}

func TestGroupTotalsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := GroupTotalsCSV(&buf, testTotals()); err != nil {
		t.Fatalf("GroupTotalsCSV: %v", err)
	}

	want := "category_group_name,budgeted,spent,balance\n" +
		"Essentials,150,18.5,106.5\n" +
		"Fun,10,4,6\n"
	if got := buf.String(); got != want {
		t.Fatalf("totals CSV:\n%s\nwant:\n%s", got, want)
	}
}

func TestCSVZeroSpentIsRendered(t *testing.T) {
	var buf bytes.Buffer
	rows := []report.Row{{CategoryName: "Rent", GroupName: "Essentials", Budgeted: 100, Balance: 75, Spent: 0}}
	if err := CSV(&buf, rows); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Rent,Essentials,100,75,0,,") {
		t.Fatalf("zero spent must render as 0:\n%s", buf.String())
	}
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	header := "Week 2 of 2024, starting on Monday 2024-03-11 and ending on Sunday 2024-03-17"
	if err := Console(&buf, header, testRows(), testTotals()); err != nil {
		t.Fatalf("Console: %v", err)
	}

	out := buf.String()
	for _, want := range []string{header, "CATEGORY", "Groceries", "18.50", "Category group totals", "Essentials", "106.50"} {
		if !strings.Contains(out, want) {
			t.Fatalf("console output lacks %q:\n%s", want, out)
		}
	}
}

func TestHTML(t *testing.T) {
	watchList := core.WatchList{
		{Group: "Fun", Color: "#f4dccb"},
		{Group: "Essentials", Color: "#dfe7f5"},
	}

	var buf bytes.Buffer
	if err := HTML(&buf, "Week 2 (Mar 11 - Mar 17)", 2024, testRows(), watchList); err != nil {
		t.Fatalf("HTML: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Week 2 (Mar 11 - Mar 17)", "#f4dccb", "#dfe7f5", "Groceries", "Rent"} {
		if !strings.Contains(out, want) {
			t.Fatalf("html output lacks %q", want)
		}
	}

	// Watch list order drives section order: Fun before Essentials.
	if strings.Index(out, ">Fun</caption>") > strings.Index(out, ">Essentials</caption>") {
		t.Fatal("watch list order not respected")
	}
}

func TestHTMLUnwatchedGroupGetsDefaultColor(t *testing.T) {
	var buf bytes.Buffer
	rows := []report.Row{{CategoryName: "Misc", GroupName: "Ungrouped", Budgeted: 5, Spent: 1}}
	if err := HTML(&buf, "Week 1", 2024, rows, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), defaultGroupColor) {
		t.Fatal("unwatched group should fall back to the default color")
	}
}
