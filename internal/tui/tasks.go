package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"aqimap/internal/aqi"
	"aqimap/internal/geom"
	"aqimap/internal/pipeline"
	"aqimap/internal/task"
)

// startLoad runs a full load of m.src as a task.
func (m *Model) startLoad() tea.Cmd {
	src := m.src
	// keep the selected date across reloads
	if d := m.reg.Date(); d != "" {
		src.Date = d
	}
	return m.start("load", func(ctx context.Context, rep task.Reporter) (*pipeline.Result, error) {
		return pipeline.Load(ctx, src, rep)
	})
}

// selectDate clamps t to the configured window and runs a date update.
func (m *Model) selectDate(t time.Time) tea.Cmd {
	key := aqi.KeyOf(m.dates.Clamp(t))
	reg := m.reg
	return m.start("update "+key.String(), func(ctx context.Context, rep task.Reporter) (*pipeline.Result, error) {
		return pipeline.Update(ctx, reg, key, rep)
	})
}

func (m *Model) start(name string, work task.Work[*pipeline.Result]) tea.Cmd {
	h, err := task.Start(m.ctx, m.runner, name, work)
	if errors.Is(err, task.ErrBusy) {
		m.status = "busy: esc cancels the running task"
		return nil
	}
	if err != nil {
		m.status = "task error: " + err.Error()
		return nil
	}
	m.job = h
	m.jobID++
	m.progress = task.Progress{Label: name}
	m.status = name
	return tea.Batch(m.spin.Tick, pollCmd(m.jobID))
}

// cancelJob abandons the running task. The previous snapshot stays on screen.
func (m *Model) cancelJob() {
	if m.job == nil {
		return
	}
	if m.job.Cancel() {
		m.status = "cancelled " + m.job.Name()
	}
	m.job = nil
}

// poll is the cooperative tick: it reads the handle and keeps ticking while
// the task runs.
func (m *Model) poll(msg pollMsg) tea.Cmd {
	if m.job == nil || msg.id != m.jobID {
		return nil
	}
	status, p := m.job.Poll()
	switch status {
	case task.Running:
		m.progress = p
		return pollCmd(m.jobID)
	case task.Completed:
		h := m.job
		m.job = nil
		res, err := h.Result()
		if err != nil {
			m.status = "failed: " + err.Error()
			return nil
		}
		m.apply(h.Name(), res)
	default:
		m.job = nil
	}
	return nil
}

// apply swaps in the snapshot and frame produced by a task.
func (m *Model) apply(name string, res *pipeline.Result) {
	first := m.reg.Len() == 0
	m.reg = res.Registry
	m.frame = res.Frame
	if name == "load" || first {
		m.bbox = bboxOf(res)
		m.summary = pipeline.Summary(res.Registry.Report())
	}
	if m.showTable {
		if name == "load" {
			m.refreshTable()
		} else {
			m.applyUpdates(res.Updates)
		}
	}
	if name == "load" {
		parts := []string{fmt.Sprintf("loaded %d regions", m.reg.Len())}
		if m.src.Boundary != "" {
			parts = append(parts, filepath.Base(m.src.Boundary))
		}
		parts = append(parts, m.summary...)
		m.status = strings.Join(parts, "  ")
		return
	}
	m.status = fmt.Sprintf("%s  %d regions updated", m.reg.Date(), len(res.Updates))
}

func bboxOf(res *pipeline.Result) geom.BBox {
	regions := res.Registry.Regions()
	outlines := make([]geom.Outline, 0, len(regions))
	for _, r := range regions {
		outlines = append(outlines, geom.Outline{Name: r.Name, Points: r.Points})
	}
	return geom.BBoxOf(outlines)
}

// currentDate is the selected date, or the first day of the window when
// nothing is selected yet.
func (m Model) currentDate() (time.Time, bool) {
	if t, err := m.reg.Date().Time(); err == nil && m.reg.Date() != "" {
		return t, true
	}
	if !m.dates.Min.IsZero() {
		return m.dates.Min, false
	}
	return time.Date(time.Now().Year(), 1, 1, 0, 0, 0, 0, time.UTC), false
}

// shiftDate moves the selection by days and months. With no selection the
// first step lands on the start of the window.
func (m *Model) shiftDate(months, days int) tea.Cmd {
	t, selected := m.currentDate()
	if selected {
		t = t.AddDate(0, months, days)
	}
	return m.selectDate(t)
}
