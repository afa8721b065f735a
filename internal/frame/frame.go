// Package frame turns a registry snapshot into per-region vertex and color
// buffers for the map surface.
package frame

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"aqimap/internal/aqi"
	"aqimap/internal/region"
)

// Frame holds index-aligned buffers: Vertices[i] and Colors[i] belong to Names[i].
// Vertices are flat x,y pairs; Colors are flat r,g,b triples, one per vertex.
type Frame struct {
	Version    uint64
	Date       aqi.DateKey
	Names      []string
	Categories []aqi.Category
	Vertices   [][]float32
	Colors     [][]float32
}

// Len returns the number of regions in the frame.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Names)
}

// Region returns the name and buffers of region i.
func (f *Frame) Region(i int) (name string, vertices, colors []float32) {
	return f.Names[i], f.Vertices[i], f.Colors[i]
}

// PointCount returns the number of vertices of region i.
func (f *Frame) PointCount(i int) int {
	return len(f.Vertices[i]) / 2
}

// Point returns vertex j of region i.
func (f *Frame) Point(i, j int) (x, y float32) {
	v := f.Vertices[i]
	return v[2*j], v[2*j+1]
}

// Build produces one buffer pair per region in registry order. Regions
// without geometry yield empty buffers.
func Build(ctx context.Context, reg *region.Registry) (*Frame, error) {
	regions := reg.Regions()
	f := &Frame{
		Version:    reg.Version(),
		Date:       reg.Date(),
		Names:      make([]string, 0, len(regions)),
		Categories: make([]aqi.Category, 0, len(regions)),
		Vertices:   make([][]float32, 0, len(regions)),
		Colors:     make([][]float32, 0, len(regions)),
	}
	for _, r := range regions {
		if err := ctx.Err(); err != nil {
			return nil, goerr.Wrap(err, "frame build cancelled", goerr.V("version", reg.Version()))
		}
		c := reg.CategoryOf(r.Name)
		rgb := aqi.ColorOf(c)
		vertices := make([]float32, 0, 2*len(r.Points))
		colors := make([]float32, 0, 3*len(r.Points))
		for _, p := range r.Points {
			vertices = append(vertices, float32(p[0]), float32(p[1]))
			// flat shading: the same triple for every vertex
			colors = append(colors, rgb.R, rgb.G, rgb.B)
		}
		f.Names = append(f.Names, r.Name)
		f.Categories = append(f.Categories, c)
		f.Vertices = append(f.Vertices, vertices)
		f.Colors = append(f.Colors, colors)
	}
	return f, nil
}
