package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	spinner "github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"aqimap/internal/aqi"
	"aqimap/internal/geom"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.contentHeight()-2)
		}
	case reloadMsg:
		cmd := m.startLoad()
		return m, cmd
	case pollMsg:
		cmd := m.poll(msg)
		return m, cmd
	case spinner.TickMsg:
		if m.job == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.dateMode {
			return m.updateDateEntry(msg)
		}
		if m.showTable {
			switch msg.String() {
			case "esc", "t":
				m.showTable = false
				return m, nil
			case "ctrl+c", "q":
				m.cancelJob()
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancelJob()
			return m, tea.Quit
		case "esc":
			switch {
			case m.job != nil:
				m.cancelJob()
			case m.inspectPopup != "":
				m.inspectPopup = ""
			case m.showSidebar:
				m.showSidebar = false
			}
			return m, nil
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "0":
			m.zoom = 1.0
			m.offsetX, m.offsetY = 0, 0
			m.status = "view reset"
		case "n":
			cmd := m.shiftDate(0, 1)
			return m, cmd
		case "p":
			cmd := m.shiftDate(0, -1)
			return m, cmd
		case "N":
			cmd := m.shiftDate(1, 0)
			return m, cmd
		case "P":
			cmd := m.shiftDate(-1, 0)
			return m, cmd
		case "d":
			m.dateMode = true
			m.ti.SetValue(m.reg.Date().String())
			m.ti.CursorEnd()
			m.status = "date: enter dd/mm/yyyy"
			cmd := m.ti.Focus()
			return m, cmd
		case "r":
			cmd := m.startLoad()
			return m, cmd
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.contentHeight()-2)
			}
			return m, nil
		case "h":
			m.helpVisible = !m.helpVisible
		case "l":
			m.showLegend = !m.showLegend
		case "t":
			m.showTable = true
			m.refreshTable()
			return m, nil
		case "i":
			if r, ok := m.inspectNearest(); ok {
				m.inspectPopup = m.describeRegion(r)
				m.status = "inspect " + r
			} else {
				m.inspectPopup = "no region nearby"
				m.status = m.inspectPopup
			}
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					cmd := m.openBoundary(it.path)
					return m, cmd
				}
			}
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		m.trackHover(msg.X, msg.Y)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateDateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.dateMode = false
		m.ti.Blur()
		m.status = "date entry cancelled"
		return m, nil
	case "enter":
		v := strings.TrimSpace(m.ti.Value())
		key, err := aqi.ParseDate(v)
		if err != nil {
			m.status = "invalid date: " + v
			return m, nil
		}
		m.dateMode = false
		m.ti.Blur()
		t, _ := key.Time()
		cmd := m.selectDate(t)
		return m, cmd
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

// trackHover records the lon/lat under the mouse and the region containing it.
func (m *Model) trackHover(cx, cy int) {
	l := m.layout()
	if cx < l.mapX || cx >= l.mapX+l.mapW || cy < l.mapY || cy >= l.mapY+l.mapH {
		m.hovering = false
		m.hoverHasGeo = false
		return
	}
	m.hovering = true
	lon, lat, ok := m.cellToLonLat(cx-l.mapX, cy-l.mapY, l.mapW, l.mapH)
	m.hoverHasGeo = ok
	if !ok {
		m.hoverRegion = ""
		return
	}
	m.hoverLon, m.hoverLat = lon, lat
	m.hoverRegion = ""
	for _, r := range m.reg.Regions() {
		if r.Renderable() && geom.Contains(r.Points, lon, lat) {
			m.hoverRegion = r.Name
			break
		}
	}
}
