// Package pipeline wires the sources, the registry and the frame builder into
// the two operations the view runs as tasks: a full load and a date update.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"aqimap/internal/aqi"
	"aqimap/internal/frame"
	"aqimap/internal/geom"
	"aqimap/internal/region"
	"aqimap/internal/series"
	"aqimap/internal/task"
)

// Sources names the inputs of a load. An empty path is skipped.
type Sources struct {
	Boundary string
	AQI      string
	// Date is selected right after the merge when set.
	Date aqi.DateKey
}

func (s Sources) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("boundary", s.Boundary),
		slog.String("aqi", s.AQI),
		slog.String("date", s.Date.String()),
	)
}

// Result is the outcome of Load or Update.
type Result struct {
	Registry *region.Registry
	Frame    *frame.Frame
	// Updates is empty when no date was selected.
	Updates []region.Update
}

const (
	loadSteps   = 5
	updateSteps = 2
)

// Load parses both sources, merges them and builds the first frame. A source
// that cannot be read is logged and counted in the registry report; the load
// continues with whatever the other source provides.
func Load(ctx context.Context, src Sources, rep task.Reporter) (*Result, error) {
	if rep == nil {
		rep = task.Discard
	}
	logger := ctxlog.From(ctx)
	sourceErrors := 0

	rep.Report(task.Progress{Step: 1, Total: loadSteps, Label: "parse geometry"})
	var outlines []geom.Outline
	if src.Boundary != "" {
		var err error
		outlines, err = geom.LoadRegions(src.Boundary)
		if err != nil {
			sourceErrors++
			logger.Warn("boundary source unreadable", "path", src.Boundary, "error", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "load cancelled", goerr.V("step", "parse geometry"))
	}

	rep.Report(task.Progress{Step: 2, Total: loadSteps, Label: "parse aqi series"})
	var set *series.Set
	if src.AQI != "" {
		var err error
		set, err = series.Load(src.AQI)
		if err != nil {
			sourceErrors++
			set = nil
			logger.Warn("aqi source unreadable", "path", src.AQI, "error", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "load cancelled", goerr.V("step", "parse aqi series"))
	}

	rep.Report(task.Progress{Step: 3, Total: loadSteps, Label: "merge regions"})
	reg, err := region.Build(ctx, outlines, set)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to merge regions")
	}
	reg = reg.WithSourceErrors(sourceErrors)

	rep.Report(task.Progress{Step: 4, Total: loadSteps, Label: "select date"})
	var updates []region.Update
	if src.Date != "" {
		reg, updates, err = reg.SelectDate(ctx, src.Date)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to select initial date")
		}
	}

	rep.Report(task.Progress{Step: 5, Total: loadSteps, Label: "build frame"})
	f, err := frame.Build(ctx, reg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build frame")
	}

	report := reg.Report()
	logger.Info("regions loaded", "sources", src, "report", report)
	for _, line := range Summary(report) {
		logger.Warn(line)
	}

	return &Result{Registry: reg, Frame: f, Updates: updates}, nil
}

// Update selects key on reg and builds the matching frame. reg itself is not
// modified.
func Update(ctx context.Context, reg *region.Registry, key aqi.DateKey, rep task.Reporter) (*Result, error) {
	if rep == nil {
		rep = task.Discard
	}

	rep.Report(task.Progress{Step: 1, Total: updateSteps, Label: "select date"})
	next, updates, err := reg.SelectDate(ctx, key)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to select date", goerr.V("date", key.String()))
	}

	rep.Report(task.Progress{Step: 2, Total: updateSteps, Label: "build frame"})
	f, err := frame.Build(ctx, next)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build frame", goerr.V("date", key.String()))
	}

	ctxlog.From(ctx).Debug("date selected",
		"date", key.String(),
		"version", next.Version(),
		"regions", next.Len(),
	)
	return &Result{Registry: next, Frame: f, Updates: updates}, nil
}

// Summary turns the non-fatal findings of a report into short sentences.
func Summary(r region.Report) []string {
	var out []string
	if r.WithoutData > 0 {
		out = append(out, fmt.Sprintf("%d regions had no AQI data", r.WithoutData))
	}
	if r.WithoutGeometry > 0 {
		out = append(out, fmt.Sprintf("%d regions had no boundary", r.WithoutGeometry))
	}
	if r.DuplicateNames > 0 {
		out = append(out, fmt.Sprintf("%d duplicate boundary names ignored", r.DuplicateNames))
	}
	if r.SkippedEntries > 0 {
		out = append(out, fmt.Sprintf("%d AQI entries skipped", r.SkippedEntries))
	}
	if r.SourceErrors > 0 {
		out = append(out, fmt.Sprintf("%d sources could not be read", r.SourceErrors))
	}
	return out
}
