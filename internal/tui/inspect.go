package tui

import (
	"fmt"
	"strings"

	"aqimap/internal/aqi"
	"aqimap/internal/geom"
)

// inspectNearest finds the region whose centroid is closest to the viewport center.
func (m Model) inspectNearest() (string, bool) {
	l := m.layout()
	w, h := l.mapW, l.mapH
	cx, cy := w/2, h/2
	bestD := 1<<31 - 1
	best := ""
	for _, r := range m.reg.Regions() {
		c, ok := geom.Centroid(r.Points)
		if !ok {
			continue
		}
		sx, sy, ok := m.screenXY(c[0], c[1], w, h)
		if !ok {
			continue
		}
		dx := sx - cx
		dy := sy - cy
		d := dx*dx + dy*dy
		if d < bestD {
			bestD = d
			best = r.Name
		}
	}
	return best, best != ""
}

func (m Model) describeRegion(name string) string {
	r, ok := m.reg.Get(name)
	if !ok {
		return "unknown region: " + name
	}
	date := m.reg.Date().String()
	if date == "" {
		date = "not selected"
	}
	meta := []string{
		fmt.Sprintf("name: %s", r.Name),
		fmt.Sprintf("date: %s", date),
		"aqi: " + badgeStyle(r.Current).Render(aqi.Label(r.Current)),
		fmt.Sprintf("days with data: %d", len(r.Series)),
		fmt.Sprintf("points: %d", len(r.Points)),
	}
	if c, ok := geom.Centroid(r.Points); ok {
		meta = append(meta, fmt.Sprintf("centroid: lon=%.5f lat=%.5f", c[0], c[1]))
	}
	if a := geom.AreaKm2(r.Points); a > 0 {
		meta = append(meta, fmt.Sprintf("area: %.0f km²", a))
	}
	return strings.Join(meta, "\n")
}
