package render

import (
	"fmt"
	"html/template"
	"io"

	"weeknab/internal/core"
	"weeknab/internal/report"
)

const defaultGroupColor = "#e8e8e8"

type htmlGroup struct {
	Name  string
	Color string
	Rows  []report.Row
}

type htmlPage struct {
	WeekLabel string
	Year      int
	Groups    []htmlGroup
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Weekly spending report {{.Year}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; color: #222; }
h1 { font-size: 1.4rem; }
table { border-collapse: collapse; margin-bottom: 1.5rem; width: 100%; max-width: 48rem; }
th, td { text-align: left; padding: 0.35rem 0.75rem; border-bottom: 1px solid #ddd; }
td.amount, th.amount { text-align: right; }
caption { text-align: left; font-weight: 600; padding: 0.5rem 0; }
</style>
</head>
<body>
<h1>{{.WeekLabel}}</h1>
{{range .Groups}}
<table>
<caption style="background-color: {{.Color}}">{{.Name}}</caption>
<tr><th>Category</th><th class="amount">Budgeted</th><th class="amount">Spent</th><th class="amount">Balance</th></tr>
{{range .Rows}}
<tr>
<td>{{.CategoryName}}</td>
<td class="amount">{{printf "%.2f" .Budgeted}}</td>
<td class="amount">{{printf "%.2f" .Spent}}</td>
<td class="amount">{{printf "%.2f" .Balance}}</td>
</tr>
{{end}}
</table>
{{end}}
</body>
</html>
`))

// HTML writes the visual report: one table per category group, in watch
// list order first and first-seen row order after that, each colored with
// the group's configured color.
func HTML(w io.Writer, weekLabel string, year int, rows []report.Row, watchList core.WatchList) error {
	page := htmlPage{
		WeekLabel: weekLabel,
		Year:      year,
		Groups:    groupRows(rows, watchList),
	}
	if err := reportTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("execute report template: %w", err)
	}
	return nil
}

func groupRows(rows []report.Row, watchList core.WatchList) []htmlGroup {
	index := make(map[string]int)
	var groups []htmlGroup

	add := func(name string) int {
		color, ok := watchList.Color(name)
		if !ok {
			color = defaultGroupColor
		}
		index[name] = len(groups)
		groups = append(groups, htmlGroup{Name: name, Color: color})
		return len(groups) - 1
	}

	// Watch list order drives section order for watched groups.
	byGroup := make(map[string][]report.Row)
	for _, r := range rows {
		byGroup[r.GroupName] = append(byGroup[r.GroupName], r)
	}
	for _, name := range watchList.Groups() {
		if rs, ok := byGroup[name]; ok {
			i := add(name)
			groups[i].Rows = rs
		}
	}
	// Remaining groups (including the ungrouped bucket) in row order.
	for _, r := range rows {
		if _, seen := index[r.GroupName]; seen {
			continue
		}
		i := add(r.GroupName)
		groups[i].Rows = byGroup[r.GroupName]
	}
	return groups
}
