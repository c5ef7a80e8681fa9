package config

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// ConfigureLogging sets up the default logger from LOG_LEVEL and LOG_FILE.
// When LOG_FILE is set logs are appended there, otherwise they go to
// fallback. The returned closer releases the log file.
func ConfigureLogging(fallback io.Writer) (io.Closer, error) {
	level, err := log.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}

	var out io.Writer = fallback
	var closer io.Closer = nopCloser{}
	if path := GetEnv("LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		out, closer = f, f
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	log.SetDefault(logger)
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
