package geom

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ParseWKTOutline returns the outline ring of a LINESTRING, POLYGON or MULTIPOLYGON.
// For polygons only outer rings are considered; the largest one wins.
func ParseWKTOutline(wkt string) ([][2]float64, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, goerr.New("empty wkt")
	}
	up := strings.ToUpper(s)
	var rings [][][2]float64
	switch {
	case strings.HasPrefix(up, "MULTIPOLYGON"):
		i := strings.Index(s, "(((")
		j := strings.LastIndex(s, ")))")
		if i < 0 || j <= i {
			return nil, goerr.New("wkt multipolygon: invalid")
		}
		body := normalizeSeparators(s[i+3 : j])
		for _, poly := range strings.Split(body, ")),((") {
			// the outer ring comes first
			outer := strings.SplitN(poly, "),(", 2)[0]
			rings = append(rings, parseTuples(outer))
		}
	case strings.HasPrefix(up, "POLYGON"):
		i := strings.Index(s, "((")
		j := strings.LastIndex(s, "))")
		if i < 0 || j <= i {
			return nil, goerr.New("wkt polygon: invalid")
		}
		body := normalizeSeparators(s[i+2 : j])
		rings = append(rings, parseTuples(strings.SplitN(body, "),(", 2)[0]))
	case strings.HasPrefix(up, "LINESTRING"):
		i := strings.Index(s, "(")
		j := strings.LastIndex(s, ")")
		if i < 0 || j <= i {
			return nil, goerr.New("wkt linestring: invalid")
		}
		rings = append(rings, parseTuples(s[i+1:j]))
	default:
		return nil, goerr.New("unsupported wkt type", goerr.V("wkt", truncate(s, 32)))
	}
	pts := pickRing(rings)
	if len(pts) == 0 {
		return nil, goerr.New("wkt: no coordinates parsed")
	}
	return pts, nil
}

// ParseWKTLines reads "name<TAB>WKT" lines. Blank lines and lines starting with # are ignored.
func ParseWKTLines(text string) ([]Outline, error) {
	var out []Outline
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, wkt, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		pts, err := ParseWKTOutline(wkt)
		if err != nil {
			continue
		}
		out = append(out, Outline{Name: strings.TrimSpace(name), Points: pts})
	}
	if err := sc.Err(); err != nil {
		return nil, goerr.Wrap(err, "wkt: failed to scan")
	}
	if len(out) == 0 {
		return nil, goerr.New("wkt: no named outlines parsed")
	}
	return out, nil
}

func normalizeSeparators(s string) string {
	for _, from := range []string{"), (", ") ,(", ") , ("} {
		s = strings.ReplaceAll(s, from, "),(")
	}
	return s
}

func parseTuples(block string) [][2]float64 {
	var out [][2]float64
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.Trim(strings.TrimSpace(tup), "()"))
		if len(parts) < 2 {
			continue
		}
		x, e1 := strconv.ParseFloat(parts[0], 64)
		y, e2 := strconv.ParseFloat(parts[1], 64)
		if e1 != nil || e2 != nil {
			continue
		}
		out = append(out, [2]float64{x, y})
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
