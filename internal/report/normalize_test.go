package report

import (
	"errors"
	"testing"

	"weeknab/internal/core"
)

func intPtr(v int) *int { return &v }

func milliPtr(v core.Milliunits) *core.Milliunits { return &v }

func testCategories() []core.Category {
	return []core.Category{
		{
			ID: "c1", Name: "Groceries", CategoryGroupName: "Essentials",
			Budgeted: 50000, Balance: 31500,
			GoalCadence: intPtr(1), GoalTarget: milliPtr(60000),
		},
		{
			ID: "c2", Name: "Rent", CategoryGroupName: "Essentials",
			Budgeted: 100000, Balance: 75000,
			GoalCadence: intPtr(12), GoalTarget: milliPtr(120000),
		},
		{
			ID: "c3", Name: "Books", CategoryGroupName: "Fun",
			Budgeted: 10000, Balance: 6000, GoalCadence: intPtr(1),
		},
		{
			ID: "c4", Name: "Games", CategoryGroupName: "Fun",
			Budgeted: 20000, Balance: 17000, GoalCadence: intPtr(1),
		},
	}
}

func testTransactions() []core.Transaction {
	return []core.Transaction{
		{
			ID: "t1", Date: core.NewDate(2024, 3, 12), Amount: -12500,
			PayeeName: "Market", CategoryName: "Groceries",
		},
		{
			ID: "t4", Date: core.NewDate(2024, 3, 13), Amount: -10000,
			PayeeName: "Market", CategoryName: SplitCategory,
			Subtransactions: []core.SubTransaction{
				{Amount: -6000, CategoryName: "Groceries"},
				{Amount: -4000, CategoryName: "Books"},
			},
		},
		{
			ID: "t3", Date: core.NewDate(2024, 3, 14), Amount: -25000,
			PayeeName: "Landlord", CategoryName: "Rent",
		},
		{
			ID: "t2", Date: core.NewDate(2024, 3, 15), Amount: -3000,
			PayeeName: "Arcade", CategoryName: "Games",
		},
	}
}

func TestCategoryRowsConvertsMilliunits(t *testing.T) {
	rows, err := CategoryRows(testCategories())
	if err != nil {
		t.Fatalf("CategoryRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	groceries := rows[0]
	if groceries.Name != "Groceries" || groceries.GroupName != "Essentials" {
		t.Fatalf("unexpected first row %+v", groceries)
	}
	if groceries.Budgeted != 50.0 || groceries.Balance != 31.5 {
		t.Fatalf("Groceries budgeted/balance = %v/%v", groceries.Budgeted, groceries.Balance)
	}
	if groceries.GoalTarget == nil || *groceries.GoalTarget != 60.0 {
		t.Fatalf("Groceries goal target = %v", groceries.GoalTarget)
	}
	if rows[2].GoalTarget != nil {
		t.Fatalf("Books has no goal target, got %v", *rows[2].GoalTarget)
	}
}

func TestCategoryRowsKeepsHidden(t *testing.T) {
	rows, err := CategoryRows([]core.Category{
		{ID: "c9", Name: "Old Hobby", Hidden: true, Budgeted: 1000},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || !rows[0].Hidden {
		t.Fatalf("hidden category must pass through, got %+v", rows)
	}
}

func TestCategoryRowsRejectsNameless(t *testing.T) {
	_, err := CategoryRows([]core.Category{{ID: "c1"}})
	if !errors.Is(err, core.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestSpendEventsExpandsSplits(t *testing.T) {
	events, err := SpendEvents(testTransactions())
	if err != nil {
		t.Fatalf("SpendEvents: %v", err)
	}

	want := []SpendEvent{
		{ID: "t1", Date: core.NewDate(2024, 3, 12), Amount: -12.5, PayeeName: "Market", CategoryName: "Groceries"},
		{ID: "t4", Date: core.NewDate(2024, 3, 13), Amount: -6.0, PayeeName: "Market", CategoryName: "Groceries"},
		{ID: "t4", Date: core.NewDate(2024, 3, 13), Amount: -4.0, PayeeName: "Market", CategoryName: "Books"},
		{ID: "t3", Date: core.NewDate(2024, 3, 14), Amount: -25.0, PayeeName: "Landlord", CategoryName: "Rent"},
		{ID: "t2", Date: core.NewDate(2024, 3, 15), Amount: -3.0, PayeeName: "Arcade", CategoryName: "Games"},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, w := range want {
		if events[i] != w {
			t.Fatalf("event[%d] = %+v, want %+v", i, events[i], w)
		}
	}
}

func TestSpendEventsDropsUnattributable(t *testing.T) {
	events, err := SpendEvents([]core.Transaction{
		// no category, no subtransactions
		{ID: "t1", Date: core.NewDate(2024, 3, 12), Amount: -5000, PayeeName: "Shop"},
		// split sentinel without subtransactions
		{ID: "t2", Date: core.NewDate(2024, 3, 12), Amount: -4000, CategoryName: SplitCategory},
		// split whose subtransactions are all uncategorized
		{
			ID: "t3", Date: core.NewDate(2024, 3, 12), Amount: -2000, CategoryName: SplitCategory,
			Subtransactions: []core.SubTransaction{{Amount: -2000}},
		},
		{ID: "t4", Date: core.NewDate(2024, 3, 12), Amount: -3000, PayeeName: "Store", CategoryName: "Groceries"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].ID != "t4" {
		t.Fatalf("only t4 should survive, got %+v", events)
	}
}

func TestSpendEventsSubtransactionPayeeOverrides(t *testing.T) {
	events, err := SpendEvents([]core.Transaction{{
		ID: "t1", Date: core.NewDate(2024, 3, 12), Amount: -9000,
		PayeeName: "Parent", CategoryName: SplitCategory,
		Subtransactions: []core.SubTransaction{
			{Amount: -5000, PayeeName: "Child", CategoryName: "Books"},
			{Amount: -4000, CategoryName: "Games"},
		},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if events[0].PayeeName != "Child" {
		t.Fatalf("subtransaction payee should win, got %q", events[0].PayeeName)
	}
	if events[1].PayeeName != "Parent" {
		t.Fatalf("missing payee should inherit parent, got %q", events[1].PayeeName)
	}
}

func TestSpendEventsRejectsZeroDate(t *testing.T) {
	_, err := SpendEvents([]core.Transaction{{ID: "t1", CategoryName: "Groceries"}})
	if !errors.Is(err, core.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestFilterRange(t *testing.T) {
	events, err := SpendEvents(testTransactions())
	if err != nil {
		t.Fatal(err)
	}

	filtered := FilterRange(events, core.NewDate(2024, 3, 12), core.NewDate(2024, 3, 14))
	if len(filtered) != 4 {
		t.Fatalf("got %d events, want 4 (t2 on the 15th excluded)", len(filtered))
	}
	for _, e := range filtered {
		if e.ID == "t2" {
			t.Fatal("t2 is out of range")
		}
	}

	if got := FilterRange(events, core.NewDate(2024, 3, 20), core.NewDate(2024, 3, 10)); len(got) != 0 {
		t.Fatalf("reversed interval must be empty, got %d events", len(got))
	}
}
