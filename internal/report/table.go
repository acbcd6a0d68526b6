package report

// Row is one report line per watched category.
type Row struct {
	CategoryName string
	GroupName    string // empty when the category has no group
	Budgeted     float64
	Balance      float64
	Spent        float64 // sign-normalized, always >= 0 for outflows
	GoalCadence  *int
	GoalTarget   *float64
}

// GroupTotal sums the rows of one category group.
type GroupTotal struct {
	GroupName string
	Budgeted  float64
	Spent     float64
	Balance   float64
}

// BuildTable joins categories against spend events: categories are
// restricted to the allowed name set, events are summed per category name
// and negated into a positive "spent", and every retained category gets a
// row even with no spending (spent 0). Row order follows the category
// input. Events for categories outside the allowed set contribute nothing;
// that is how only watch-listed categories surface in the report.
func BuildTable(categories []CategoryRow, events []SpendEvent, allowed map[string]struct{}) []Row {
	spentByCategory := make(map[string]float64, len(allowed))
	for _, e := range events {
		if _, ok := allowed[e.CategoryName]; !ok {
			continue
		}
		spentByCategory[e.CategoryName] -= e.Amount
	}

	rows := make([]Row, 0, len(categories))
	for _, c := range categories {
		if _, ok := allowed[c.Name]; !ok {
			continue
		}
		rows = append(rows, Row{
			CategoryName: c.Name,
			GroupName:    c.GroupName,
			Budgeted:     c.Budgeted,
			Balance:      c.Balance,
			Spent:        spentByCategory[c.Name],
			GoalCadence:  c.GoalCadence,
			GoalTarget:   c.GoalTarget,
		})
	}
	return rows
}

// BuildGroupTotals sums budgeted, spent and balance per category group, in
// first-seen row order. Every group with at least one row appears, spending
// or not. Rows without a group are bucketed under ungroupedLabel; an empty
// label drops them instead.
func BuildGroupTotals(rows []Row, ungroupedLabel string) []GroupTotal {
	index := make(map[string]int, 8)
	totals := make([]GroupTotal, 0, 8)

	for _, r := range rows {
		group := r.GroupName
		if group == "" {
			if ungroupedLabel == "" {
				continue
			}
			group = ungroupedLabel
		}
		i, ok := index[group]
		if !ok {
			i = len(totals)
			index[group] = i
			totals = append(totals, GroupTotal{GroupName: group})
		}
		totals[i].Budgeted += r.Budgeted
		totals[i].Spent += r.Spent
		totals[i].Balance += r.Balance
	}
	return totals
}

// NonZeroSpent keeps only rows with spending, the default display filter
// when show-all-rows is off.
func NonZeroSpent(rows []Row) []Row {
	kept := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.Spent != 0 {
			kept = append(kept, r)
		}
	}
	return kept
}

// CategoryNames collects the allowed-name set for BuildTable from the
// categories chosen by the watch list.
func CategoryNames(rows []CategoryRow) map[string]struct{} {
	names := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		names[r.Name] = struct{}{}
	}
	return names
}
