package aqi

import "fmt"

// RGB holds normalized [0,1] color components.
type RGB struct {
	R, G, B float32
}

// palette is the canonical category palette, also used by the legend.
var palette = [NumCategories]RGB{
	{0.502, 0.502, 0.502}, // no data
	{0, 1, 0.333},         // good
	{1, 1, 0},             // moderate
	{1, 0.4, 0},           // unhealthy for sensitive groups
	{1, 0, 0},             // unhealthy
	{0.6, 0, 1},           // very unhealthy
	{0.6, 0, 0},           // hazardous
}

// ColorOf returns the palette entry for c; anything outside [0,6] gets the no-data color.
func ColorOf(c Category) RGB {
	if !c.Valid() {
		return palette[NoData]
	}
	return palette[c]
}

// Hex returns the #rrggbb form of c.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B))
}

// Hex returns the #rrggbb form of the category color.
func Hex(c Category) string {
	return ColorOf(c).Hex()
}

// TextHex picks black or white text for a category background by luminance.
func TextHex(c Category) string {
	rgb := ColorOf(c)
	lum := 0.299*float64(to8(rgb.R)) + 0.587*float64(to8(rgb.G)) + 0.114*float64(to8(rgb.B))
	if lum/255.0 > 0.5 {
		return "#000000"
	}
	return "#ffffff"
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
