package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// brailleBuf is a 2x4 micro-pixel grid per terminal cell. Each cell also
// remembers which region painted it last, so the cell can take that region's
// color.
type brailleBuf struct {
	w, h  int       // in cells
	m     [][]uint8 // per-cell 8-bit mask
	owner [][]int32 // region index per cell, -1 when empty
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	owner := make([][]int32, h)
	for i := range m {
		m[i] = make([]uint8, w)
		owner[i] = make([]int32, w)
		for j := range owner[i] {
			owner[i][j] = -1
		}
	}
	return &brailleBuf{w: w, h: h, m: m, owner: owner}
}

var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell) on behalf of region idx.
func (b *brailleBuf) setPixel(mx, my int, idx int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dotBits[rx][ry]
	b.owner[cy][cx] = int32(idx)
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, idx int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, idx)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fillRing paints the inside of ring with the even-odd rule, one micro row at a time.
func (b *brailleBuf) fillRing(ring [][2]int, idx int) {
	if len(ring) < 3 {
		return
	}
	hMic := b.h * 4
	var xs []int
	for yMic := 0; yMic < hMic; yMic++ {
		xs = xs[:0]
		for i := 0; i < len(ring); i++ {
			a := ring[i]
			c := ring[(i+1)%len(ring)]
			if a[1] == c[1] {
				continue
			}
			y0, y1 := a[1], c[1]
			x0, x1 := a[0], c[0]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= xs[i+1] && xMic < b.w*2; xMic++ {
				b.setPixel(xMic, yMic, idx)
			}
		}
	}
}

// toLines returns the plain braille rows.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			row[x] = glyph(b.m[y][x])
		}
		out[y] = string(row)
	}
	return out
}

// toStyledLines renders each run of cells owned by the same region with
// that region's style.
func (b *brailleBuf) toStyledLines(styles []lipgloss.Style) []string {
	out := make([]string, b.h)
	var sb strings.Builder
	for y := 0; y < b.h; y++ {
		sb.Reset()
		x := 0
		for x < b.w {
			owner := b.owner[y][x]
			start := x
			for x < b.w && b.owner[y][x] == owner {
				x++
			}
			run := make([]rune, 0, x-start)
			for i := start; i < x; i++ {
				run = append(run, glyph(b.m[y][i]))
			}
			if owner >= 0 && int(owner) < len(styles) {
				sb.WriteString(styles[owner].Render(string(run)))
			} else {
				sb.WriteString(string(run))
			}
		}
		out[y] = sb.String()
	}
	return out
}

func glyph(mask uint8) rune {
	if mask == 0 {
		return ' '
	}
	return rune(0x2800 + int(mask))
}
