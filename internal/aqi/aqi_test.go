package aqi_test

import (
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"aqimap/internal/aqi"
)

func TestColorOf(t *testing.T) {
	expected := map[aqi.Category]aqi.RGB{
		aqi.NoData:             {0.502, 0.502, 0.502},
		aqi.Good:               {0, 1, 0.333},
		aqi.Moderate:           {1, 1, 0},
		aqi.UnhealthySensitive: {1, 0.4, 0},
		aqi.Unhealthy:          {1, 0, 0},
		aqi.VeryUnhealthy:      {0.6, 0, 1},
		aqi.Hazardous:          {0.6, 0, 0},
	}
	for c, want := range expected {
		t.Run(c.String(), func(t *testing.T) {
			gt.Equal(t, aqi.ColorOf(c), want)
		})
	}

	t.Run("out of range maps to no data", func(t *testing.T) {
		for _, c := range []aqi.Category{7, 8, 42, 255} {
			gt.Equal(t, aqi.ColorOf(c), aqi.ColorOf(aqi.NoData))
		}
	})
}

func TestFromInt(t *testing.T) {
	for v := 0; v < aqi.NumCategories; v++ {
		c, ok := aqi.FromInt(v)
		gt.True(t, ok)
		gt.Equal(t, int(c), v)
	}
	for _, v := range []int{-1, 7, 100} {
		_, ok := aqi.FromInt(v)
		gt.False(t, ok)
	}
}

func TestLegendConsistency(t *testing.T) {
	gt.Equal(t, len(aqi.All()), aqi.NumCategories)
	gt.Equal(t, aqi.Hex(aqi.NoData), "#808080")
	gt.Equal(t, aqi.Hex(aqi.Good), "#00ff55")
	gt.Equal(t, aqi.Hex(aqi.UnhealthySensitive), "#ff6600")
	gt.Equal(t, aqi.Hex(aqi.Hazardous), "#990000")
	gt.Equal(t, aqi.Hex(99), aqi.Hex(aqi.NoData))
	gt.Equal(t, aqi.Label(aqi.Moderate), "2 - Moderate (51 to 100)")
	gt.Equal(t, aqi.TextHex(aqi.Moderate), "#000000")
	gt.Equal(t, aqi.TextHex(aqi.Hazardous), "#ffffff")
}

func TestParseDate(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  aqi.DateKey
	}{
		{name: "canonical", input: "01/01/2023", want: "01/01/2023"},
		{name: "short fields", input: "5/3/2023", want: "05/03/2023"},
		{name: "dashes", input: "31-12-2023", want: "31/12/2023"},
		{name: "iso", input: "2023-07-04", want: "04/07/2023"},
		{name: "whitespace", input: "  02/02/2023 ", want: "02/02/2023"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := aqi.ParseDate(tc.input)
			gt.NoError(t, err)
			gt.Equal(t, got, tc.want)
		})
	}

	t.Run("rejects malformed dates", func(t *testing.T) {
		for _, s := range []string{"", "2023", "32/01/2023", "29/02/2023", "aa/bb/cccc", "01/13/2023"} {
			_, err := aqi.ParseDate(s)
			gt.Error(t, err)
			gt.True(t, errors.Is(err, aqi.ErrInvalidDate))
		}
	})
}

func TestDateKeyRoundTrip(t *testing.T) {
	day := time.Date(2023, 3, 9, 0, 0, 0, 0, time.UTC)
	key := aqi.KeyOf(day)
	gt.Equal(t, key, aqi.DateKey("09/03/2023"))
	back, err := key.Time()
	gt.NoError(t, err)
	gt.True(t, back.Equal(day))
}

func TestRangeClamp(t *testing.T) {
	r := aqi.DefaultRange()
	early := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	mid := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	gt.True(t, r.Clamp(early).Equal(r.Min))
	gt.True(t, r.Clamp(late).Equal(r.Max))
	gt.True(t, r.Clamp(mid).Equal(mid))
	gt.True(t, aqi.Range{}.Clamp(early).Equal(early))
}
