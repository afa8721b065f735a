package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"aqimap/internal/aqi"
	"aqimap/internal/region"
)

func tableColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Region", Width: 28},
		{Title: "AQI", Width: 4},
		{Title: "Category", Width: 32},
		{Title: "Points", Width: 7},
		{Title: "Days", Width: 5},
	}
}

// refreshTable rebuilds the region table from the current snapshot.
func (m *Model) refreshTable() {
	regions := m.reg.Regions()
	rows := make([]table.Row, 0, len(regions))
	for i, r := range regions {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			r.Name,
			fmt.Sprintf("%d", r.Current),
			r.Current.String(),
			fmt.Sprintf("%d", len(r.Points)),
			fmt.Sprintf("%d", len(r.Series)),
		})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tableColumns())
	m.tbl.SetRows(rows)
}

// applyUpdates rewrites the AQI columns of the rows named in updates.
func (m *Model) applyUpdates(updates []region.Update) {
	rows := m.tbl.Rows()
	index := make(map[string]int, len(rows))
	for i, row := range rows {
		index[row[1]] = i
	}
	for _, u := range updates {
		i, ok := index[u.Name]
		if !ok {
			continue
		}
		row := append(table.Row(nil), rows[i]...)
		row[2] = fmt.Sprintf("%d", u.Category)
		row[3] = u.Category.String()
		rows[i] = row
	}
	m.tbl.SetRows(rows)
}

// legendLines lists every category in its own color.
func legendLines() []string {
	out := make([]string, 0, aqi.NumCategories)
	for _, c := range aqi.All() {
		out = append(out, categoryStyles[c].Render("██")+" "+aqi.Label(c))
	}
	return out
}
