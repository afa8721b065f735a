package cli

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"aqimap/internal/cli/config"
	"aqimap/internal/logging"
	"aqimap/internal/task"
	"aqimap/internal/tui"
)

func cmdView(loggerCfg *config.Logger) *cli.Command {
	var sourcesCfg config.Sources

	return &cli.Command{
		Name:  "view",
		Usage: "Open the interactive map",
		Flags: sourcesCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := sourcesCfg.Validate(); err != nil {
				return err
			}
			src, err := sourcesCfg.Pipeline()
			if err != nil {
				return err
			}
			dates, err := sourcesCfg.Range()
			if err != nil {
				return err
			}

			// the alternate screen owns the terminal; only a log file may be written
			logger := ctxlog.From(ctx)
			if loggerCfg.File == "" {
				logger = logging.Discard()
				slog.SetDefault(logger)
				ctx = ctxlog.With(ctx, logger)
			}
			logger.Info("Starting aqimap view", slog.Any("sources", sourcesCfg))

			m := tui.New(ctx, tui.Options{
				Sources: src,
				Range:   dates,
				Runner:  task.NewRunner(task.NewLogObserver(logger)),
			})
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return goerr.Wrap(err, "interactive view failed")
			}
			return nil
		},
	}
}
