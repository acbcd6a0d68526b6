package report

import "weeknab/internal/core"

// BudgetID resolves a human-chosen budget name to its id. The second
// return is false when no summary matches; absence is the caller's problem
// to judge, not an error here.
func BudgetID(summaries []core.BudgetSummary, name string) (string, bool) {
	for _, s := range summaries {
		if s.Name == name {
			return s.ID, true
		}
	}
	return "", false
}

// MissingGroups returns the watch-list group names with no matching
// category group, the configuration-drift signal surfaced before a report
// is built.
func MissingGroups(groups []core.CategoryGroup, watchList core.WatchList) map[string]struct{} {
	present := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		present[g.Name] = struct{}{}
	}

	missing := make(map[string]struct{})
	for _, e := range watchList {
		if _, ok := present[e.Group]; !ok {
			missing[e.Group] = struct{}{}
		}
	}
	return missing
}

// CategoriesToWatch flattens the categories of every watched group,
// preserving group-then-category source order.
func CategoriesToWatch(groups []core.CategoryGroup, watchList core.WatchList) []core.Category {
	var categories []core.Category
	for _, g := range groups {
		if !watchList.Contains(g.Name) {
			continue
		}
		categories = append(categories, g.Categories...)
	}
	return categories
}
