package geom

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	geojson "github.com/paulmach/go.geojson"
)

// nameKeys are the feature properties tried, in order, for a region name.
var nameKeys = []string{"name", "NAME", "st_nm", "state", "STATE", "NAME_1", "region"}

// LoadGeoJSON reads Polygon/MultiPolygon features as named outlines.
func LoadGeoJSON(path string) ([]Outline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read geojson", goerr.V("path", path))
	}
	return DecodeGeoJSON(data)
}

// DecodeGeoJSON accepts a FeatureCollection or a single Feature.
func DecodeGeoJSON(data []byte) ([]Outline, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, goerr.Wrap(err, "geojson: malformed document")
	}
	var features []*geojson.Feature
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, goerr.Wrap(err, "geojson: malformed feature collection")
		}
		features = fc.Features
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, goerr.Wrap(err, "geojson: malformed feature")
		}
		features = []*geojson.Feature{f}
	default:
		return nil, goerr.New("unsupported geojson type", goerr.V("type", head.Type))
	}

	var out []Outline
	for _, f := range features {
		if f == nil || f.Geometry == nil {
			continue
		}
		name := featureName(f)
		if name == "" {
			continue
		}
		var rings [][][2]float64
		switch {
		case f.Geometry.IsPolygon():
			if len(f.Geometry.Polygon) > 0 {
				rings = append(rings, toPairs(f.Geometry.Polygon[0]))
			}
		case f.Geometry.IsMultiPolygon():
			for _, poly := range f.Geometry.MultiPolygon {
				if len(poly) > 0 {
					rings = append(rings, toPairs(poly[0]))
				}
			}
		}
		pts := pickRing(rings)
		if len(pts) == 0 {
			continue
		}
		out = append(out, Outline{Name: name, Points: pts})
	}
	if len(out) == 0 {
		return nil, goerr.New("geojson: no named polygons found")
	}
	return out, nil
}

func featureName(f *geojson.Feature) string {
	for _, k := range nameKeys {
		v, ok := f.Properties[k]
		if !ok || v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		default:
			s = fmt.Sprint(t)
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

func toPairs(ring [][]float64) [][2]float64 {
	out := make([][2]float64, 0, len(ring))
	for _, c := range ring {
		if len(c) < 2 {
			continue
		}
		out = append(out, [2]float64{c[0], c[1]})
	}
	return out
}
