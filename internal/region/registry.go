package region

import (
	"context"
	"log/slog"
	"sort"

	"github.com/m-mizutani/goerr/v2"

	"aqimap/internal/aqi"
	"aqimap/internal/geom"
	"aqimap/internal/series"
)

// Report summarizes what Build merged.
type Report struct {
	GeometryRegions int
	SeriesRegions   int
	Regions         int
	WithoutData     int
	WithoutGeometry int
	DuplicateNames  int
	SkippedEntries  int
	SourceErrors    int
}

func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("geometry_regions", r.GeometryRegions),
		slog.Int("series_regions", r.SeriesRegions),
		slog.Int("regions", r.Regions),
		slog.Int("without_data", r.WithoutData),
		slog.Int("without_geometry", r.WithoutGeometry),
		slog.Int("duplicate_names", r.DuplicateNames),
		slog.Int("skipped_entries", r.SkippedEntries),
		slog.Int("source_errors", r.SourceErrors),
	)
}

// Registry is an immutable snapshot of all regions. Snapshots derived by
// SelectDate share geometry and series with their parent.
type Registry struct {
	version uint64
	date    aqi.DateKey
	order   []string
	regions map[string]*Region
	report  Report
}

// Empty returns a registry with no regions.
func Empty() *Registry {
	return &Registry{regions: map[string]*Region{}}
}

// Build merges outlines and series by exact name. Geometry order comes first,
// then names only present in the series, sorted.
func Build(ctx context.Context, outlines []geom.Outline, set *series.Set) (*Registry, error) {
	reg := &Registry{version: 1, regions: make(map[string]*Region, len(outlines))}

	for _, o := range outlines {
		if err := ctx.Err(); err != nil {
			return nil, goerr.Wrap(err, "build cancelled")
		}
		if _, dup := reg.regions[o.Name]; dup {
			reg.report.DuplicateNames++
			continue
		}
		reg.regions[o.Name] = &Region{Name: o.Name, Points: o.Points}
		reg.order = append(reg.order, o.Name)
	}
	reg.report.GeometryRegions = len(reg.order)

	if set != nil {
		reg.report.SeriesRegions = len(set.Regions)
		reg.report.SkippedEntries = set.Skipped
		var extra []string
		for name, ser := range set.Regions {
			if err := ctx.Err(); err != nil {
				return nil, goerr.Wrap(err, "build cancelled")
			}
			if r, ok := reg.regions[name]; ok {
				r.Series = ser
				continue
			}
			reg.regions[name] = &Region{Name: name, Series: ser}
			extra = append(extra, name)
		}
		sort.Strings(extra)
		reg.order = append(reg.order, extra...)
		reg.report.WithoutGeometry = len(extra)
	}

	for _, r := range reg.regions {
		if !r.HasData() {
			reg.report.WithoutData++
		}
	}
	reg.report.Regions = len(reg.order)
	return reg, nil
}

// SelectDate resolves every region's category for key and returns the new
// snapshot together with one update per region, in iteration order.
func (g *Registry) SelectDate(ctx context.Context, key aqi.DateKey) (*Registry, []Update, error) {
	next := &Registry{
		version: g.version + 1,
		date:    key,
		order:   g.order,
		regions: make(map[string]*Region, len(g.regions)),
		report:  g.report,
	}
	updates := make([]Update, 0, len(g.order))
	for _, name := range g.order {
		if err := ctx.Err(); err != nil {
			return nil, nil, goerr.Wrap(err, "date selection cancelled", goerr.V("date", key.String()))
		}
		prev := g.regions[name]
		r := *prev
		r.Current = prev.Lookup(key)
		next.regions[name] = &r
		updates = append(updates, Update{Name: name, Category: r.Current})
	}
	return next, updates, nil
}

// WithSourceErrors returns a copy of g whose report counts n unreadable sources.
func (g *Registry) WithSourceErrors(n int) *Registry {
	next := *g
	next.report.SourceErrors = n
	return &next
}

// CategoryOf returns the last resolved category for name, or 0.
func (g *Registry) CategoryOf(name string) aqi.Category {
	if r, ok := g.regions[name]; ok {
		return r.Current
	}
	return aqi.NoData
}

// Get returns a copy of the named region.
func (g *Registry) Get(name string) (Region, bool) {
	r, ok := g.regions[name]
	if !ok {
		return Region{}, false
	}
	return *r, true
}

// Regions returns the regions in iteration order. The returned values are
// copies; their Points and Series are shared and must not be modified.
func (g *Registry) Regions() []Region {
	out := make([]Region, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, *g.regions[name])
	}
	return out
}

// Names returns region names in iteration order.
func (g *Registry) Names() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

func (g *Registry) Len() int          { return len(g.order) }
func (g *Registry) Version() uint64   { return g.version }
func (g *Registry) Date() aqi.DateKey { return g.date }
func (g *Registry) Report() Report    { return g.report }
