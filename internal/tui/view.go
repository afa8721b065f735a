package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"aqimap/internal/aqi"
)

const (
	sidebarWidth = 28
	legendWidth  = 54
	headerHeight = 1
	footerHeight = 2
)

type layout struct {
	contentW, contentH int
	mapX, mapY         int
	mapW, mapH         int
	legend             bool
}

func (m Model) contentHeight() int {
	return max(4, m.height-headerHeight-footerHeight)
}

// layout must match the composition in View; mouse hit-testing depends on it.
func (m Model) layout() layout {
	l := layout{contentW: max(10, m.width), contentH: m.contentHeight(), mapY: headerHeight}
	l.mapW = l.contentW
	if m.showSidebar {
		l.mapX = sidebarWidth + 1
		l.mapW -= sidebarWidth + 1
	}
	if m.showLegend && l.mapW-legendWidth-1 >= 20 {
		l.legend = true
		l.mapW -= legendWidth + 1
	}
	l.mapW = max(10, l.mapW)
	l.mapH = l.contentH
	return l
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.layout()

	// Update list size with accurate content height when sidebar visible
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, l.contentH-2)
	}

	// Header
	date := m.reg.Date().String()
	if date == "" {
		date = "no date selected"
	}
	header := titleStyle.Render(" aqimap ─ air quality by region ") + dimStyle.Render(" "+date+" ")
	header = lipgloss.NewStyle().Width(l.contentW).Padding(0).Render(header)

	var mapView string
	switch {
	case m.showTable:
		m.tbl.SetWidth(min(l.mapW, 90) - 4)
		m.tbl.SetHeight(min(l.mapH-2, 20))
		box := boxStyle.Render(m.tbl.View())
		mapView = lipgloss.Place(l.mapW, l.mapH, lipgloss.Center, lipgloss.Center, box)
	case m.dateMode:
		box := boxStyle.Render(titleStyle.Render("Select date") + "\n" + m.ti.View() + "\n" +
			dimStyle.Render(rangeText(m.dates)))
		mapView = lipgloss.Place(l.mapW, l.mapH, lipgloss.Center, lipgloss.Center, box)
	default:
		mapView = lipgloss.NewStyle().Width(l.mapW).Height(l.mapH).Render(m.renderMap(l.mapW, l.mapH))
	}

	cols := []string{}
	if m.showSidebar {
		cols = append(cols, lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View()), " ")
	}
	cols = append(cols, mapView)
	if l.legend {
		legend := boxStyle.Width(legendWidth - 2).Render(titleStyle.Render("AQI") + "\n" + strings.Join(legendLines(), "\n"))
		cols = append(cols, " ", legend)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	// Build inspect popup box (center-left overlay)
	popup := ""
	if m.inspectPopup != "" && !m.showTable {
		maxPopupW := max(20, min(48, l.contentW/2))
		box := boxStyle.MaxWidth(maxPopupW).Render(m.inspectPopup)
		popup = lipgloss.Place(l.contentW, lipgloss.Height(box), lipgloss.Left, lipgloss.Center, box)
	}

	footer := m.renderFooter(l.contentW)
	ui := lipgloss.JoinVertical(lipgloss.Left, header, popup, body, footer)
	return appStyle.Width(l.contentW).Height(m.height).Render(ui)
}

func (m Model) renderFooter(width int) string {
	status := dimStyle.Render(" " + m.status + " ")
	if strings.HasPrefix(m.status, "failed") {
		status = errStyle.Render(" " + m.status + " ")
	}
	if m.job != nil {
		label := m.progress.Label
		if !m.progress.Indeterminate() {
			label = fmt.Sprintf("%s %d/%d", label, m.progress.Step, m.progress.Total)
		}
		status = " " + m.spin.View() + " " + dimStyle.Render(label+"  esc cancel ")
	}

	// hovered region and coordinates at bottom-right
	coords := ""
	if m.hoverHasGeo {
		coords = fmt.Sprintf("lon=%.5f lat=%.5f", m.hoverLon, m.hoverLat)
		if m.hoverRegion != "" {
			c := m.reg.CategoryOf(m.hoverRegion)
			coords = m.hoverRegion + " " + categoryStyles[c].Render(c.String()) + dimStyle.Render("  "+coords)
		} else {
			coords = dimStyle.Render(coords)
		}
		coords = "  " + coords + "  "
	}
	spacerW := max(0, width-lipgloss.Width(status)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	line1 := lipgloss.NewStyle().Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, status, right))
	return lipgloss.JoinVertical(lipgloss.Left, line1, m.renderHelp())
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"n/p day",
		"N/P month",
		"d date",
		"t table",
		"i inspect",
		"Tab files",
		"r reload",
		"l legend",
		"esc cancel",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}

func rangeText(r aqi.Range) string {
	bound := func(t time.Time) string {
		if t.IsZero() {
			return "open"
		}
		return aqi.KeyOf(t).String()
	}
	return bound(r.Min) + " to " + bound(r.Max)
}
