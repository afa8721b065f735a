package frame_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"aqimap/internal/aqi"
	"aqimap/internal/frame"
	"aqimap/internal/geom"
	"aqimap/internal/region"
	"aqimap/internal/series"
)

func repeat(rgb aqi.RGB, n int) []float32 {
	out := make([]float32, 0, 3*n)
	for i := 0; i < n; i++ {
		out = append(out, rgb.R, rgb.G, rgb.B)
	}
	return out
}

func build(t *testing.T, date aqi.DateKey) *region.Registry {
	t.Helper()
	ctx := context.Background()
	reg, err := region.Build(ctx,
		[]geom.Outline{
			{Name: "X", Points: [][2]float64{{0, 0}, {1, 0}, {1, 1}}},
			{Name: "Y", Points: [][2]float64{{5, 5}, {6, 6}}},
		},
		&series.Set{Regions: map[string]series.Series{
			"X": {"01/01/2023": aqi.Moderate},
			"Z": {"01/01/2023": aqi.Hazardous},
		}})
	gt.NoError(t, err)
	if date != "" {
		reg, _, err = reg.SelectDate(ctx, date)
		gt.NoError(t, err)
	}
	return reg
}

func TestBuild(t *testing.T) {
	ctx := context.Background()
	reg := build(t, "01/01/2023")
	f, err := frame.Build(ctx, reg)
	gt.NoError(t, err)

	t.Run("buffers are aligned", func(t *testing.T) {
		gt.Equal(t, f.Len(), reg.Len())
		gt.Equal(t, len(f.Vertices), reg.Len())
		gt.Equal(t, len(f.Colors), reg.Len())
		for i := range f.Names {
			gt.Equal(t, len(f.Colors[i])*2, len(f.Vertices[i])*3)
		}
	})

	t.Run("region with data gets its category color per vertex", func(t *testing.T) {
		gt.Equal(t, f.Names[0], "X")
		gt.Equal(t, f.Vertices[0], []float32{0, 0, 1, 0, 1, 1})
		gt.Equal(t, f.Colors[0], repeat(aqi.ColorOf(aqi.Moderate), 3))
		gt.Equal(t, f.Categories[0], aqi.Moderate)
	})

	t.Run("region without series is grey", func(t *testing.T) {
		gt.Equal(t, f.Names[1], "Y")
		gt.Equal(t, f.Colors[1], repeat(aqi.ColorOf(aqi.NoData), 2))
		x, y := f.Point(1, 1)
		gt.Equal(t, x, float32(6))
		gt.Equal(t, y, float32(6))
	})

	t.Run("region without geometry contributes nothing renderable", func(t *testing.T) {
		gt.Equal(t, f.Names[2], "Z")
		gt.Equal(t, len(f.Vertices[2]), 0)
		gt.Equal(t, len(f.Colors[2]), 0)
		gt.Equal(t, f.PointCount(2), 0)
		gt.Equal(t, f.Categories[2], aqi.Hazardous)
	})

	t.Run("frame carries snapshot identity", func(t *testing.T) {
		gt.Equal(t, f.Version, reg.Version())
		gt.Equal(t, f.Date, aqi.DateKey("01/01/2023"))
	})

	t.Run("same date twice yields identical frame", func(t *testing.T) {
		again, _, err := reg.SelectDate(ctx, "01/01/2023")
		gt.NoError(t, err)
		f2, err := frame.Build(ctx, again)
		gt.NoError(t, err)
		gt.Equal(t, f2.Names, f.Names)
		gt.Equal(t, f2.Vertices, f.Vertices)
		gt.Equal(t, f2.Colors, f.Colors)
	})
}

func TestBuildBeforeSelection(t *testing.T) {
	f, err := frame.Build(context.Background(), build(t, ""))
	gt.NoError(t, err)
	gt.Equal(t, f.Colors[0], repeat(aqi.ColorOf(aqi.NoData), 3))
}

func TestBuildEmpty(t *testing.T) {
	f, err := frame.Build(context.Background(), region.Empty())
	gt.NoError(t, err)
	gt.Equal(t, f.Len(), 0)
	var nilFrame *frame.Frame
	gt.Equal(t, nilFrame.Len(), 0)
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := frame.Build(ctx, build(t, "01/01/2023"))
	gt.True(t, errors.Is(err, context.Canceled))
}

func TestRegionAccessor(t *testing.T) {
	f, err := frame.Build(context.Background(), build(t, "01/01/2023"))
	gt.NoError(t, err)
	name, v, c := f.Region(0)
	gt.Equal(t, name, "X")
	gt.Equal(t, len(v), 6)
	gt.Equal(t, len(c), 9)
}
