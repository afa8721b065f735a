package aqi

// Category is an air-quality severity tier, independent of the raw AQI score.
type Category uint8

const (
	NoData Category = iota
	Good
	Moderate
	UnhealthySensitive
	Unhealthy
	VeryUnhealthy
	Hazardous
)

// NumCategories is the size of the fixed category set.
const NumCategories = 7

// Valid reports whether c is one of the seven fixed categories.
func (c Category) Valid() bool {
	return c < NumCategories
}

// FromInt converts a raw source value. Values outside [0,6] are rejected.
func FromInt(v int) (Category, bool) {
	if v < 0 || v >= NumCategories {
		return NoData, false
	}
	return Category(v), true
}

var labels = [NumCategories]string{
	"0 - AQI not selected",
	"1 - Good (0 to 50)",
	"2 - Moderate (51 to 100)",
	"3 - Unhealthy for Sensitive Groups (101 to 150)",
	"4 - Unhealthy (151 to 200)",
	"5 - Very Unhealthy (201 to 300)",
	"6 - Hazardous (301 and higher)",
}

var names = [NumCategories]string{
	"no data",
	"good",
	"moderate",
	"unhealthy for sensitive groups",
	"unhealthy",
	"very unhealthy",
	"hazardous",
}

// Label returns the legend text for c.
func Label(c Category) string {
	if !c.Valid() {
		c = NoData
	}
	return labels[c]
}

func (c Category) String() string {
	if !c.Valid() {
		return names[NoData]
	}
	return names[c]
}

// All returns the categories in legend order.
func All() []Category {
	out := make([]Category, NumCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}
