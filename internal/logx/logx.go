package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// New creates a logger that writes human-readable output to stderr and the
// full event stream to a timestamped file inside logsDir. The returned closer
// should be closed when logging is no longer needed.
func New(logsDir string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("ensure logs directory: %w", err)
	}

	filename := time.Now().Format("20060102-150405") + ".log"
	file, err := os.OpenFile(filepath.Join(logsDir, filename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	logger := zerolog.New(zerolog.MultiLevelWriter(console, file)).With().Timestamp().Logger()
	return logger, file, nil
}

// Console returns a stderr-only logger for contexts where no state directory
// is writable yet.
func Console() zerolog.Logger {
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(console).With().Timestamp().Logger()
}
