package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"aqimap/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

// refreshDir lists boundary files in the working directory and its
// Resources folder.
func (m *Model) refreshDir() {
	var items []list.Item
	for _, dir := range []string{m.cwd, filepath.Join(m.cwd, "Resources")} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !geom.Supported(e.Name()) {
				continue
			}
			p := filepath.Join(dir, e.Name())
			title, _ := filepath.Rel(m.cwd, p)
			items = append(items, fileItem{title: title, desc: strings.ToLower(filepath.Ext(p)), path: p})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no boundary files in current directory"
	}
}

// openBoundary switches the boundary source and reloads.
func (m *Model) openBoundary(p string) tea.Cmd {
	m.src.Boundary = p
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.showSidebar = false
	return m.startLoad()
}
