package geom

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Valid reports whether the box has a positive extent on both axes.
func (b BBox) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

// Outline is a named region boundary: one ring of lon/lat points, not closed.
type Outline struct {
	Name   string
	Points [][2]float64
}

// BBoxOf returns the bounding box of all points of all outlines.
func BBoxOf(outlines []Outline) BBox {
	var bb BBox
	first := true
	for _, o := range outlines {
		for _, pt := range o.Points {
			if first {
				bb = BBox{MinX: pt[0], MinY: pt[1], MaxX: pt[0], MaxY: pt[1]}
				first = false
				continue
			}
			if pt[0] < bb.MinX {
				bb.MinX = pt[0]
			}
			if pt[1] < bb.MinY {
				bb.MinY = pt[1]
			}
			if pt[0] > bb.MaxX {
				bb.MaxX = pt[0]
			}
			if pt[1] > bb.MaxY {
				bb.MaxY = pt[1]
			}
		}
	}
	return bb
}

// pickRing keeps the ring with the most vertices and drops a repeated closing vertex.
func pickRing(rings [][][2]float64) [][2]float64 {
	var best [][2]float64
	for _, r := range rings {
		if len(r) > len(best) {
			best = r
		}
	}
	if n := len(best); n > 1 && best[0] == best[n-1] {
		best = best[:n-1]
	}
	return best
}

// Contains reports whether (x, y) lies inside ring using the even-odd rule.
func Contains(ring [][2]float64, x, y float64) bool {
	in := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a[1] > y) != (b[1] > y) && x < (b[0]-a[0])*(y-a[1])/(b[1]-a[1])+a[0] {
			in = !in
		}
	}
	return in
}
