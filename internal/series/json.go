package series

import (
	"encoding/json"
	"math"
	"os"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// LoadJSON reads {"Region": {"dd/mm/yyyy": category, ...}, ...}.
func LoadJSON(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read aqi json", goerr.V("path", path))
	}
	return DecodeJSON(data)
}

func DecodeJSON(data []byte) (*Set, error) {
	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, goerr.Wrap(err, "aqi json: malformed document")
	}
	return fromNested(raw), nil
}

// LoadYAML reads the same nested layout as LoadJSON from YAML.
func LoadYAML(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read aqi yaml", goerr.V("path", path))
	}
	return DecodeYAML(data)
}

func DecodeYAML(data []byte) (*Set, error) {
	var raw map[string]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, goerr.Wrap(err, "aqi yaml: malformed document")
	}
	return fromNested(raw), nil
}

func fromNested(raw map[string]map[string]any) *Set {
	s := newSet()
	// sorted: names and dates that collide after normalization resolve the same way every run
	regions := make([]string, 0, len(raw))
	for region := range raw {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	for _, region := range regions {
		days := raw[region]
		s.ensure(region)
		dates := make([]string, 0, len(days))
		for date := range days {
			dates = append(dates, date)
		}
		sort.Strings(dates)
		for _, date := range dates {
			n, ok := toInt(days[date])
			if !ok {
				s.Skipped++
				continue
			}
			s.add(region, date, n)
		}
	}
	return s
}

// toInt accepts whole numbers only.
func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case uint64:
		return int(x), true
	case float64:
		if x != math.Trunc(x) {
			return 0, false
		}
		return int(x), true
	}
	return 0, false
}
