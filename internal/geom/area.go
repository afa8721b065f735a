package geom

import (
	"github.com/golang/geo/s2"
)

const earthRadiusKm = 6371.0088

func loopOf(points [][2]float64) *s2.Loop {
	pts := make([]s2.Point, 0, len(points))
	for _, p := range points {
		pts = append(pts, s2.PointFromLatLng(s2.LatLngFromDegrees(p[1], p[0])))
	}
	l := s2.LoopFromPoints(pts)
	// outlines come in either winding; keep the smaller side
	l.Normalize()
	return l
}

// AreaKm2 returns the spherical area enclosed by an outline.
func AreaKm2(points [][2]float64) float64 {
	if len(points) < 3 {
		return 0
	}
	return loopOf(points).Area() * earthRadiusKm * earthRadiusKm
}

// Centroid returns the lon/lat centroid of the outline's enclosed area.
// Degenerate outlines fall back to the vertex mean.
func Centroid(points [][2]float64) ([2]float64, bool) {
	if len(points) == 0 {
		return [2]float64{}, false
	}
	if len(points) >= 3 {
		c := loopOf(points).Centroid()
		if c.Norm() > 0 {
			ll := s2.LatLngFromPoint(s2.Point{Vector: c.Normalize()})
			return [2]float64{ll.Lng.Degrees(), ll.Lat.Degrees()}, true
		}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p[0]
		sy += p[1]
	}
	n := float64(len(points))
	return [2]float64{sx / n, sy / n}, true
}
