package series_test

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	_ "modernc.org/sqlite"

	"aqimap/internal/aqi"
	"aqimap/internal/series"
)

func TestDecodeJSON(t *testing.T) {
	doc := `{
	  "Delhi": {"01/01/2023": 5, "2/1/2023": 4, "03/01/2023": 9, "bad": 1, "04/01/2023": "x", "05/01/2023": 2.5},
	  "Goa": {},
	  "Kerala": {"01/01/2023": 1}
	}`
	set, err := series.DecodeJSON([]byte(doc))
	gt.NoError(t, err)
	gt.Equal(t, set.Len(), 3)
	gt.Equal(t, set.Skipped, 4)

	delhi := set.Regions["Delhi"]
	gt.Equal(t, len(delhi), 2)
	gt.Equal(t, delhi["01/01/2023"], aqi.VeryUnhealthy)
	gt.Equal(t, delhi["02/01/2023"], aqi.Unhealthy)

	t.Run("region with no entries still exists", func(t *testing.T) {
		goa, ok := set.Regions["Goa"]
		gt.True(t, ok)
		gt.Equal(t, len(goa), 0)
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := series.DecodeJSON([]byte(`[1,2,3]`))
		gt.Error(t, err)
	})
}

func TestDecodeYAML(t *testing.T) {
	doc := "Punjab:\n  \"01/01/2023\": 3\n  \"2023-01-02\": 6\n  \"03/01/2023\": -1\n"
	set, err := series.DecodeYAML([]byte(doc))
	gt.NoError(t, err)
	gt.Equal(t, set.Skipped, 1)
	gt.Equal(t, set.Regions["Punjab"]["01/01/2023"], aqi.UnhealthySensitive)
	gt.Equal(t, set.Regions["Punjab"]["02/01/2023"], aqi.Hazardous)
}

func TestDecodeCSV(t *testing.T) {
	doc := "Region,Date,Category\nBihar,01/01/2023,4\nBihar,02/01/2023,oops\nAssam,01/01/2023,1\nshort,row\nTripura,13/13/2023,2\n"
	set, err := series.DecodeCSV(strings.NewReader(doc))
	gt.NoError(t, err)
	gt.Equal(t, set.Len(), 3)
	gt.Equal(t, set.Skipped, 3)
	gt.Equal(t, set.Regions["Bihar"]["01/01/2023"], aqi.Unhealthy)
	gt.Equal(t, set.Regions["Assam"]["01/01/2023"], aqi.Good)

	t.Run("missing columns", func(t *testing.T) {
		_, err := series.DecodeCSV(strings.NewReader("name,value\na,1\n"))
		gt.Error(t, err)
	})

	t.Run("empty input yields empty set", func(t *testing.T) {
		set, err := series.DecodeCSV(strings.NewReader(""))
		gt.NoError(t, err)
		gt.Equal(t, set.Len(), 0)
	})
}

func TestLoadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aqi.db")
	db, err := sql.Open("sqlite", path)
	gt.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE aqi (region TEXT, date TEXT, category INTEGER)`)
	gt.NoError(t, err)
	_, err = db.Exec(`INSERT INTO aqi (region, date, category) VALUES
		('Sikkim', '01/01/2023', 1),
		('Sikkim', '02/01/2023', 7),
		('Manipur', '2023-01-01', 2),
		('Manipur', '02/01/2023', NULL)`)
	gt.NoError(t, err)
	gt.NoError(t, db.Close())

	set, err := series.Load(path)
	gt.NoError(t, err)
	gt.Equal(t, set.Len(), 2)
	gt.Equal(t, set.Skipped, 2)
	gt.Equal(t, set.Regions["Sikkim"]["01/01/2023"], aqi.Good)
	gt.Equal(t, set.Regions["Manipur"]["01/01/2023"], aqi.Moderate)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("dispatches on extension", func(t *testing.T) {
		p := filepath.Join(dir, "aqi_data.json")
		gt.NoError(t, os.WriteFile(p, []byte(`{"X":{"01/01/2023":2}}`), 0o644))
		set, err := series.Load(p)
		gt.NoError(t, err)
		gt.Equal(t, set.Regions["X"]["01/01/2023"], aqi.Moderate)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := series.Load(filepath.Join(dir, "nope.json"))
		gt.Error(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := series.Load(filepath.Join(dir, "aqi.xml"))
		gt.Error(t, err)
	})
}

func TestCollidingDates(t *testing.T) {
	doc := []byte(`{"A": {"1/1/2023": 2, "01/01/2023": 5, "2023-01-01": 3}}`)

	t.Run("json resolves to the same category every time", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			set, err := series.DecodeJSON(doc)
			gt.NoError(t, err)
			gt.Equal(t, set.Regions["A"]["01/01/2023"], aqi.VeryUnhealthy)
			gt.Equal(t, len(set.Regions["A"]), 1)
			gt.Equal(t, set.Skipped, 2)
		}
	})

	t.Run("yaml follows the same rule", func(t *testing.T) {
		y := []byte("A:\n  \"2023-01-01\": 3\n  \"1/1/2023\": 2\n  \"01/01/2023\": 5\n")
		for i := 0; i < 50; i++ {
			set, err := series.DecodeYAML(y)
			gt.NoError(t, err)
			gt.Equal(t, set.Regions["A"]["01/01/2023"], aqi.VeryUnhealthy)
		}
	})

	t.Run("csv keeps the first row", func(t *testing.T) {
		set, err := series.DecodeCSV(strings.NewReader("region,date,category\nA,2023-01-01,3\nA,01/01/2023,5\n"))
		gt.NoError(t, err)
		gt.Equal(t, set.Regions["A"]["01/01/2023"], aqi.UnhealthySensitive)
		gt.Equal(t, set.Skipped, 1)
	})
}
