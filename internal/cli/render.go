package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"aqimap/internal/aqi"
	"aqimap/internal/cli/config"
	"aqimap/internal/frame"
	"aqimap/internal/pipeline"
	"aqimap/internal/task"
)

func cmdRender() *cli.Command {
	var (
		sourcesCfg config.Sources
		format     string
	)

	flags := joinFlags(
		sourcesCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "Output format (text, json)",
				Value:       "text",
				Sources:     cli.EnvVars("AQIMAP_FORMAT"),
				Destination: &format,
			},
		},
	)

	return &cli.Command{
		Name:  "render",
		Usage: "Load the sources, select --date and print the frame",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if format != "text" && format != "json" {
				return goerr.New("invalid output format", goerr.V("format", format))
			}
			if err := sourcesCfg.Validate(); err != nil {
				return err
			}
			src, err := sourcesCfg.Pipeline()
			if err != nil {
				return err
			}

			logger := ctxlog.From(ctx)
			logger.Debug("Rendering frame", slog.Any("sources", sourcesCfg))

			runner := task.NewRunner(task.NewLogObserver(logger))
			h, err := task.Start(ctx, runner, "load", func(ctx context.Context, rep task.Reporter) (*pipeline.Result, error) {
				return pipeline.Load(ctx, src, rep)
			})
			if err != nil {
				return err
			}
			status, err := h.Wait(ctx, 100*time.Millisecond)
			if err != nil {
				return err
			}
			if status != task.Completed {
				return goerr.New("load did not complete", goerr.V("status", status.String()))
			}
			res, err := h.Result()
			if err != nil {
				return err
			}

			w := c.Root().Writer
			if format == "json" {
				return writeJSON(w, res.Frame)
			}
			return writeText(w, res.Frame)
		},
	}
}

func writeText(w io.Writer, f *frame.Frame) error {
	for i := 0; i < f.Len(); i++ {
		c := f.Categories[i]
		if _, err := fmt.Fprintf(w, "%s\t%d\t%s\t%d\n", f.Names[i], c, aqi.Label(c), f.PointCount(i)); err != nil {
			return goerr.Wrap(err, "failed to write frame")
		}
	}
	return nil
}

type jsonRegion struct {
	Name     string    `json:"name"`
	Category int       `json:"category"`
	Label    string    `json:"label"`
	Vertices []float32 `json:"vertices"`
	Colors   []float32 `json:"colors"`
}

type jsonFrame struct {
	Version uint64       `json:"version"`
	Date    string       `json:"date"`
	Regions []jsonRegion `json:"regions"`
}

func writeJSON(w io.Writer, f *frame.Frame) error {
	out := jsonFrame{Version: f.Version, Date: f.Date.String(), Regions: make([]jsonRegion, 0, f.Len())}
	for i := 0; i < f.Len(); i++ {
		name, vertices, colors := f.Region(i)
		out.Regions = append(out.Regions, jsonRegion{
			Name:     name,
			Category: int(f.Categories[i]),
			Label:    aqi.Label(f.Categories[i]),
			Vertices: vertices,
			Colors:   colors,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return goerr.Wrap(err, "failed to encode frame")
	}
	return nil
}
