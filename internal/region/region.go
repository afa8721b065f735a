// Package region merges boundary geometry and AQI series into versioned,
// immutable registry snapshots.
package region

import (
	"aqimap/internal/aqi"
	"aqimap/internal/series"
)

// Region is one named administrative area.
type Region struct {
	Name string
	// Points is the boundary outline; empty when the geometry source had no entry.
	Points [][2]float64
	// Series is shared between snapshots and never mutated after Build.
	Series series.Series
	// Current is the category resolved for the snapshot's selected date.
	Current aqi.Category
}

// Renderable reports whether the region contributes geometry to a frame.
func (r *Region) Renderable() bool {
	return len(r.Points) > 0
}

// HasData reports whether the AQI source had at least one entry for the region.
func (r *Region) HasData() bool {
	return len(r.Series) > 0
}

// Lookup resolves key against the region's series. A miss is category 0.
func (r *Region) Lookup(key aqi.DateKey) aqi.Category {
	if c, ok := r.Series[key]; ok {
		return c
	}
	return aqi.NoData
}

// Update is one (region, category) pair for the table display.
type Update struct {
	Name     string
	Category aqi.Category
}
