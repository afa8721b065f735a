package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"aqimap/internal/logging"
)

func TestParseLogLevel(t *testing.T) {
	gt.Equal(t, logging.ParseLogLevel("debug"), slog.LevelDebug)
	gt.Equal(t, logging.ParseLogLevel(""), slog.LevelInfo)
	gt.Equal(t, logging.ParseLogLevel("WARNING"), slog.LevelWarn)
	gt.Equal(t, logging.ParseLogLevel("error"), slog.LevelError)
	gt.Equal(t, logging.ParseLogLevel("verbose"), slog.LevelInfo)
}

func TestParseFormat(t *testing.T) {
	f, err := logging.ParseFormat("json")
	gt.NoError(t, err)
	gt.Equal(t, f, logging.FormatJSON)

	f, err = logging.ParseFormat("")
	gt.NoError(t, err)
	gt.Equal(t, f, logging.FormatAuto)

	_, err = logging.ParseFormat("xml")
	gt.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	t.Run("non-terminal writer gets JSON", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewLogger(slog.LevelInfo, &buf)
		logger.Info("regions loaded", "regions", 3)
		logger.Debug("hidden")

		var rec map[string]any
		gt.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		gt.Equal(t, rec["msg"], any("regions loaded"))
		gt.Equal(t, rec["regions"], any(float64(3)))
	})

	t.Run("console format writes text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewLoggerWithFormat(slog.LevelDebug, &buf, logging.FormatConsole)
		logger.Warn("aqi source unreadable", "error", goerr.New("boom", goerr.V("path", "x.json")))
		gt.S(t, buf.String()).Contains("aqi source unreadable")
	})

	t.Run("buffer is not a terminal", func(t *testing.T) {
		gt.False(t, logging.IsTerminal(&bytes.Buffer{}))
	})
}
