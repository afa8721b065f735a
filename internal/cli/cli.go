package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"aqimap/internal/cli/config"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// .env only fills variables that are not already set
	_ = godotenv.Load(".env")

	var loggerCfg config.Logger
	var closer io.Closer

	app := &cli.Command{
		Name:      "aqimap",
		Usage:     "Air quality index per region on a terminal map",
		Version:   "0.1.0",
		Flags:     loggerCfg.Flags(),
		Writer:    stdout,
		ErrWriter: stderr,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, cl, err := loggerCfg.Configure(stderr)
			if err != nil {
				return nil, err
			}
			closer = cl

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdView(&loggerCfg),
			cmdRender(),
		},
	}

	err := app.Run(ctx, args)
	if err != nil {
		slog.Default().Error("aqimap failed", "error", err)
	}
	if closer != nil {
		_ = closer.Close()
	}
	if err != nil {
		return goerr.Wrap(err, "CLI execution failed")
	}

	return nil
}
