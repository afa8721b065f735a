package config

import (
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"aqimap/internal/aqi"
	"aqimap/internal/geom"
	"aqimap/internal/pipeline"
	"aqimap/internal/series"
)

// Sources holds the input files and the date window.
type Sources struct {
	Boundary string
	AQI      string
	Date     string
	MinDate  string
	MaxDate  string
}

// Flags returns CLI flags for Sources configuration
func (s *Sources) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "boundary",
			Aliases:     []string{"b"},
			Usage:       "Region boundary file (" + strings.Join(geom.Extensions, ", ") + ")",
			Category:    "Sources",
			Value:       "Resources/k.kml",
			Sources:     cli.EnvVars("AQIMAP_BOUNDARY"),
			Destination: &s.Boundary,
		},
		&cli.StringFlag{
			Name:        "aqi",
			Aliases:     []string{"a"},
			Usage:       "AQI time series file (" + strings.Join(series.Extensions, ", ") + ")",
			Category:    "Sources",
			Value:       "Resources/aqi_data.json",
			Sources:     cli.EnvVars("AQIMAP_AQI"),
			Destination: &s.AQI,
		},
		&cli.StringFlag{
			Name:        "date",
			Aliases:     []string{"d"},
			Usage:       "Initial date (dd/mm/yyyy)",
			Category:    "Sources",
			Sources:     cli.EnvVars("AQIMAP_DATE"),
			Destination: &s.Date,
		},
		&cli.StringFlag{
			Name:        "min-date",
			Usage:       "First selectable date",
			Category:    "Sources",
			Value:       "01/01/2023",
			Sources:     cli.EnvVars("AQIMAP_MIN_DATE"),
			Destination: &s.MinDate,
		},
		&cli.StringFlag{
			Name:        "max-date",
			Usage:       "Last selectable date",
			Category:    "Sources",
			Value:       "31/12/2023",
			Sources:     cli.EnvVars("AQIMAP_MAX_DATE"),
			Destination: &s.MaxDate,
		},
	}
}

// Validate validates the sources configuration
func (s *Sources) Validate() error {
	if s.Boundary == "" && s.AQI == "" {
		return goerr.New("at least one of boundary or aqi is required")
	}
	if s.Boundary != "" && !geom.Supported(s.Boundary) {
		return goerr.New("unsupported boundary format", goerr.V("path", s.Boundary))
	}
	if s.AQI != "" && !series.Supported(s.AQI) {
		return goerr.New("unsupported aqi format", goerr.V("path", s.AQI))
	}
	if _, err := s.Range(); err != nil {
		return err
	}
	if _, err := s.InitialDate(); err != nil {
		return err
	}
	return nil
}

// Range returns the selectable date window. An empty bound is open.
func (s *Sources) Range() (aqi.Range, error) {
	var r aqi.Range
	if s.MinDate != "" {
		k, err := aqi.ParseDate(s.MinDate)
		if err != nil {
			return r, goerr.Wrap(err, "invalid min-date")
		}
		r.Min, _ = k.Time()
	}
	if s.MaxDate != "" {
		k, err := aqi.ParseDate(s.MaxDate)
		if err != nil {
			return r, goerr.Wrap(err, "invalid max-date")
		}
		r.Max, _ = k.Time()
	}
	if !r.Min.IsZero() && !r.Max.IsZero() && r.Max.Before(r.Min) {
		return r, goerr.New("max-date is before min-date",
			goerr.V("min", s.MinDate), goerr.V("max", s.MaxDate))
	}
	return r, nil
}

// InitialDate returns the --date value clamped to the range, or "" if unset.
func (s *Sources) InitialDate() (aqi.DateKey, error) {
	if s.Date == "" {
		return "", nil
	}
	k, err := aqi.ParseDate(s.Date)
	if err != nil {
		return "", goerr.Wrap(err, "invalid date")
	}
	r, err := s.Range()
	if err != nil {
		return "", err
	}
	t, _ := k.Time()
	return aqi.KeyOf(r.Clamp(t)), nil
}

// Pipeline converts the configuration into load inputs.
func (s *Sources) Pipeline() (pipeline.Sources, error) {
	date, err := s.InitialDate()
	if err != nil {
		return pipeline.Sources{}, err
	}
	return pipeline.Sources{Boundary: s.Boundary, AQI: s.AQI, Date: date}, nil
}

// LogValue returns structured log value
func (s Sources) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("boundary", s.Boundary),
		slog.String("aqi", s.AQI),
		slog.String("date", s.Date),
		slog.String("min_date", s.MinDate),
		slog.String("max_date", s.MaxDate),
	)
}
