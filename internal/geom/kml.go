package geom

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

type kmlRing struct {
	Coordinates string `xml:"LinearRing>coordinates"`
}

type kmlPolygon struct {
	Outer kmlRing `xml:"outerBoundaryIs"`
}

type kmlPlacemark struct {
	Name     string       `xml:"name"`
	Polygons []kmlPolygon `xml:"Polygon"`
	Multi    []kmlPolygon `xml:"MultiGeometry>Polygon"`
	Line     *struct {
		Coordinates string `xml:"coordinates"`
	} `xml:"LineString"`
}

// LoadKML extracts named region outlines from Placemarks at any depth.
// KML coordinates are "lon,lat[,alt]"; we ignore altitude.
func LoadKML(path string) ([]Outline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open kml", goerr.V("path", path))
	}
	defer f.Close()
	return DecodeKML(f)
}

// DecodeKML reads Placemarks from r. Placemarks without a name or usable ring are skipped.
func DecodeKML(r io.Reader) ([]Outline, error) {
	dec := xml.NewDecoder(r)
	var out []Outline
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "kml: malformed document")
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return nil, goerr.Wrap(err, "kml: malformed placemark")
		}
		name := strings.TrimSpace(pm.Name)
		if name == "" {
			continue
		}
		var rings [][][2]float64
		for _, p := range append(pm.Polygons, pm.Multi...) {
			rings = append(rings, parseKMLCoords(p.Outer.Coordinates))
		}
		if pm.Line != nil {
			rings = append(rings, parseKMLCoords(pm.Line.Coordinates))
		}
		pts := pickRing(rings)
		if len(pts) == 0 {
			continue
		}
		out = append(out, Outline{Name: name, Points: pts})
	}
	if len(out) == 0 {
		return nil, goerr.New("kml: no placemarks found")
	}
	return out, nil
}

func parseKMLCoords(s string) [][2]float64 {
	var pts [][2]float64
	// tuples are separated by whitespace
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		pts = append(pts, [2]float64{lon, lat})
	}
	return pts
}
