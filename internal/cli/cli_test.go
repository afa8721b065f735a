package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"

	"aqimap/internal/cli/config"
)

const boundaryWKT = `# name<TAB>geometry
A	POLYGON((0 0, 1 0, 1 1, 0 0))
B	POLYGON((2 2, 3 2, 3 3, 2 3, 2 2))
`

const seriesCSV = `region,date,category
A,01/01/2023,3
A,02/01/2023,9
C,01/01/2023,6
`

func writeSources(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	boundary := filepath.Join(dir, "regions.wkt")
	data := filepath.Join(dir, "aqi.csv")
	gt.NoError(t, os.WriteFile(boundary, []byte(boundaryWKT), 0o644))
	gt.NoError(t, os.WriteFile(data, []byte(seriesCSV), 0o644))
	return boundary, data
}

func TestRender(t *testing.T) {
	boundary, data := writeSources(t)
	ctx := context.Background()

	t.Run("text output", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run(ctx, []string{
			"aqimap", "--log-format", "json",
			"render", "--boundary", boundary, "--aqi", data, "--date", "1/1/2023",
		}, &stdout, &stderr)
		gt.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		gt.Equal(t, lines, []string{
			"A\t3\t3 - Unhealthy for Sensitive Groups (101 to 150)\t3",
			"B\t0\t0 - AQI not selected\t4",
			"C\t6\t6 - Hazardous (301 and higher)\t0",
		})
		gt.S(t, stderr.String()).Contains("regions had no AQI data")
	})

	t.Run("json output", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run(ctx, []string{
			"aqimap", "--log-format", "json",
			"render", "--boundary", boundary, "--aqi", data, "--date", "01/01/2023", "--format", "json",
		}, &stdout, &stderr)
		gt.NoError(t, err)

		var out jsonFrame
		gt.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
		gt.Equal(t, out.Date, "01/01/2023")
		gt.Equal(t, len(out.Regions), 3)
		gt.Equal(t, out.Regions[0].Vertices, []float32{0, 0, 1, 0, 1, 1})
		gt.Equal(t, len(out.Regions[0].Colors), 9)
		gt.Equal(t, len(out.Regions[2].Vertices), 0)
	})

	t.Run("missing sources are absorbed", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run(ctx, []string{
			"aqimap", "--log-format", "json",
			"render", "--boundary", filepath.Join(t.TempDir(), "none.kml"), "--aqi", data,
		}, &stdout, &stderr)
		gt.NoError(t, err)
		gt.S(t, stdout.String()).Contains("A\t0\t")
		gt.S(t, stderr.String()).Contains("boundary source unreadable")
	})

	t.Run("invalid format", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run(ctx, []string{
			"aqimap", "render", "--boundary", boundary, "--aqi", data, "--format", "xml",
		}, &stdout, &stderr)
		gt.Error(t, err)
	})

	t.Run("invalid date", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run(ctx, []string{
			"aqimap", "render", "--boundary", boundary, "--aqi", data, "--date", "32/01/2023",
		}, &stdout, &stderr)
		gt.Error(t, err)
	})

	t.Run("invalid log level", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run(ctx, []string{
			"aqimap", "--log-level", "chatty", "render", "--boundary", boundary, "--aqi", data,
		}, &stdout, &stderr)
		gt.Error(t, err)
	})
}

func TestJoinFlags(t *testing.T) {
	gt.Equal(t, len(joinFlags(nil, nil)), 0)

	var sources config.Sources
	head := sources.Flags()
	tail := []cli.Flag{&cli.StringFlag{Name: "format"}}
	joined := joinFlags(head, tail)
	gt.Equal(t, len(joined), len(head)+1)
	gt.Equal(t, joined[0].Names()[0], head[0].Names()[0])
	gt.Equal(t, joined[len(joined)-1].Names()[0], "format")
}

func TestCommandFlags(t *testing.T) {
	var sources config.Sources
	want := len(sources.Flags())

	gt.Equal(t, len(cmdView(&config.Logger{}).Flags), want)

	render := cmdRender()
	gt.Equal(t, len(render.Flags), want+1)
	gt.Equal(t, render.Flags[want].Names()[0], "format")
}
