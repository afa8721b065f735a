package geom

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// LoadCSV reads region outlines from a CSV file. Two layouts are accepted:
// name + wkt columns (one region per row), or name + lon + lat columns
// (one vertex per row, rows of a region kept in order).
// Column detection is case-insensitive.
func LoadCSV(path string) ([]Outline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open csv", goerr.V("path", path))
	}
	defer f.Close()
	return DecodeCSV(f)
}

func DecodeCSV(r io.Reader) ([]Outline, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, goerr.Wrap(err, "csv: malformed file")
	}
	if len(recs) == 0 {
		return nil, goerr.New("empty csv")
	}
	idxName, idxWKT, idxLat, idxLon := -1, -1, -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name", "region", "state":
			if idxName == -1 {
				idxName = i
			}
		case "wkt", "geometry", "geom":
			if idxWKT == -1 {
				idxWKT = i
			}
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		}
	}
	if idxName == -1 {
		return nil, goerr.New("csv: name column not found")
	}

	var out []Outline
	switch {
	case idxWKT != -1:
		for _, row := range recs[1:] {
			if idxName >= len(row) || idxWKT >= len(row) {
				continue
			}
			name := strings.TrimSpace(row[idxName])
			if name == "" {
				continue
			}
			pts, err := ParseWKTOutline(row[idxWKT])
			if err != nil {
				continue
			}
			out = append(out, Outline{Name: name, Points: pts})
		}
	case idxLat != -1 && idxLon != -1:
		index := map[string]int{}
		for _, row := range recs[1:] {
			if idxName >= len(row) || idxLon >= len(row) || idxLat >= len(row) {
				continue
			}
			lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
			lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
			name := strings.TrimSpace(row[idxName])
			if err1 != nil || err2 != nil || name == "" {
				continue
			}
			i, ok := index[name]
			if !ok {
				i = len(out)
				index[name] = i
				out = append(out, Outline{Name: name})
			}
			out[i].Points = append(out[i].Points, [2]float64{lon, lat})
		}
	default:
		return nil, goerr.New("csv: need a wkt column or lon/lat columns")
	}
	if len(out) == 0 {
		return nil, goerr.New("csv: no valid outlines parsed")
	}
	return out, nil
}
