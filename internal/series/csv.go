package series

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// LoadCSV reads rows of region,date,category. Header names are matched case-insensitively.
func LoadCSV(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open aqi csv", goerr.V("path", path))
	}
	defer f.Close()
	return DecodeCSV(f)
}

func DecodeCSV(r io.Reader) (*Set, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return newSet(), nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "aqi csv: failed to read header")
	}
	idxRegion, idxDate, idxCat := -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "region", "name", "state":
			idxRegion = i
		case "date", "day":
			idxDate = i
		case "category", "aqi", "level":
			idxCat = i
		}
	}
	if idxRegion == -1 || idxDate == -1 || idxCat == -1 {
		return nil, goerr.New("aqi csv: region, date and category columns are required",
			goerr.V("header", header))
	}
	s := newSet()
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.Skipped++
			continue
		}
		if idxRegion >= len(row) || idxDate >= len(row) || idxCat >= len(row) {
			s.Skipped++
			continue
		}
		s.ensure(row[idxRegion])
		n, err := strconv.Atoi(strings.TrimSpace(row[idxCat]))
		if err != nil {
			s.Skipped++
			continue
		}
		s.add(row[idxRegion], row[idxDate], n)
	}
	return s, nil
}
