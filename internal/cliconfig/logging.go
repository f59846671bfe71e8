package cliconfig

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	logger = zerolog.New(consoleWriter(os.Stderr)).With().Timestamp().Logger()
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}

// Logger returns the console logger used before configuration is loaded.
func Logger() zerolog.Logger {
	return logger
}

// NewLogger builds the run logger: human-readable lines on stderr and one
// JSON object per line appended to the activity log. An empty activityPath
// disables the file sink. The returned closer releases the activity log.
func NewLogger(level, activityPath string) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return logger, nopCloser{}, fmt.Errorf("log level %q: %w", level, err)
	}

	if activityPath == "" {
		return logger.Level(lvl), nopCloser{}, nil
	}

	if dir := filepath.Dir(activityPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return logger, nopCloser{}, fmt.Errorf("activity log dir: %w", err)
		}
	}
	f, err := os.OpenFile(activityPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return logger, nopCloser{}, fmt.Errorf("open activity log: %w", err)
	}

	multi := zerolog.MultiLevelWriter(consoleWriter(os.Stderr), f)
	l := zerolog.New(multi).Level(lvl).With().Timestamp().Logger()
	return l, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
