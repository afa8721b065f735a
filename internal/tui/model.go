package tui

import (
	"context"
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	spinner "github.com/charmbracelet/bubbles/spinner"
	table "github.com/charmbracelet/bubbles/table"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"aqimap/internal/aqi"
	"aqimap/internal/frame"
	"aqimap/internal/geom"
	"aqimap/internal/pipeline"
	"aqimap/internal/region"
	"aqimap/internal/task"
)

const pollInterval = 100 * time.Millisecond

// Options configures a Model.
type Options struct {
	Sources pipeline.Sources
	Range   aqi.Range
	// Runner defaults to a runner without observer.
	Runner *task.Runner
}

type Model struct {
	ctx    context.Context
	runner *task.Runner
	src    pipeline.Sources
	dates  aqi.Range

	width  int
	height int

	showSidebar bool
	showLegend  bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status  string
	summary []string

	// File explorer
	cwd   string
	l     list.Model
	items []list.Item

	// Data
	reg   *region.Registry
	frame *frame.Frame
	bbox  geom.BBox

	// task in flight
	job      *task.Handle[*pipeline.Result]
	jobID    int
	progress task.Progress
	spin     spinner.Model

	// date entry
	dateMode bool
	ti       textinput.Model

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64
	hoverRegion string

	// region table
	showTable bool
	tbl       table.Model
}

type pollMsg struct{ id int }

type reloadMsg struct{}

func New(ctx context.Context, opts Options) Model {
	runner := opts.Runner
	if runner == nil {
		runner = task.NewRunner(nil)
	}
	m := Model{
		ctx:         ctx,
		runner:      runner,
		src:         opts.Sources,
		dates:       opts.Range,
		showLegend:  true,
		helpVisible: true,
		zoom:        1.0,
		status:      "aqimap ready",
		reg:         region.Empty(),
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Boundaries"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// date entry
	m.ti = textinput.New()
	m.ti.Placeholder = "dd/mm/yyyy"
	m.ti.CharLimit = 10
	m.ti.Width = 12
	// region table
	m.tbl = table.New(table.WithFocused(true), table.WithColumns(tableColumns()))
	m.tbl.SetHeight(12)
	m.spin = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.refreshDir()
	return m
}

// Init starts the initial load.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return reloadMsg{} }
}

// Registry returns the snapshot currently on screen.
func (m Model) Registry() *region.Registry { return m.reg }

// Busy reports whether the model waits on a task.
func (m Model) Busy() bool { return m.job != nil }

func pollCmd(id int) tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg { return pollMsg{id: id} })
}
