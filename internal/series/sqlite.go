package series

import (
	"database/sql"

	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite"
)

const selectAQI = `SELECT region, date, category FROM aqi`

// LoadSQLite reads the aqi(region TEXT, date TEXT, category INTEGER) table.
func LoadSQLite(path string) (*Set, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open aqi database", goerr.V("path", path))
	}
	defer db.Close()
	return ReadSQL(db)
}

// ReadSQL loads a Set from an open database holding the aqi table.
func ReadSQL(db *sql.DB) (*Set, error) {
	rows, err := db.Query(selectAQI)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query aqi table")
	}
	defer rows.Close()

	s := newSet()
	for rows.Next() {
		var (
			region, date string
			category     sql.NullInt64
		)
		if err := rows.Scan(&region, &date, &category); err != nil {
			s.Skipped++
			continue
		}
		s.ensure(region)
		if !category.Valid {
			s.Skipped++
			continue
		}
		s.add(region, date, int(category.Int64))
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate aqi rows")
	}
	return s, nil
}
