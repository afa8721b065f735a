// Package series reads per-region AQI category time series.
package series

import (
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"aqimap/internal/aqi"
)

// Series maps a date key to the AQI category recorded for that day.
type Series map[aqi.DateKey]aqi.Category

// Set is the parsed content of one AQI source.
type Set struct {
	// Regions maps region name to its series.
	Regions map[string]Series
	// Skipped counts malformed entries dropped while parsing.
	Skipped int
}

func newSet() *Set {
	return &Set{Regions: map[string]Series{}}
}

// Len returns the number of regions in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Regions)
}

// add validates one raw entry and stores it; invalid entries are counted, not stored.
// When several raw dates normalize to the same key the first one added wins and
// the rest count as skipped.
func (s *Set) add(region, date string, category int) {
	region = strings.TrimSpace(region)
	if region == "" {
		s.Skipped++
		return
	}
	key, err := aqi.ParseDate(date)
	if err != nil {
		s.Skipped++
		return
	}
	c, ok := aqi.FromInt(category)
	if !ok {
		s.Skipped++
		return
	}
	ser, ok := s.Regions[region]
	if !ok {
		ser = Series{}
		s.Regions[region] = ser
	}
	if _, dup := ser[key]; dup {
		s.Skipped++
		return
	}
	ser[key] = c
}

// ensure registers a region even if none of its entries survive validation.
func (s *Set) ensure(region string) {
	region = strings.TrimSpace(region)
	if region == "" {
		return
	}
	if _, ok := s.Regions[region]; !ok {
		s.Regions[region] = Series{}
	}
}

// Extensions lists the AQI formats Load understands.
var Extensions = []string{".json", ".csv", ".yaml", ".yml", ".db", ".sqlite", ".sqlite3"}

// Supported reports whether path has an AQI source extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load parses an AQI source, dispatching on the file extension.
func Load(path string) (*Set, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return LoadJSON(path)
	case ".csv":
		return LoadCSV(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(path)
	}
	return nil, goerr.New("unsupported aqi format", goerr.V("path", path), goerr.V("ext", ext))
}
