// Package logger wires zerolog to a log file in the config directory.
// The terminal belongs to the TUI, so nothing is written to stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// FileName is the log file created inside the config directory
const FileName = "wix.log"

// Setup points the global zerolog logger at dir/wix.log and applies level.
// The returned closer must be closed on exit.
func Setup(dir, level string) (io.Closer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	if err := Configure(f, level); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// Configure installs a logger writing to w at the given level
func Configure(w io.Writer, level string) error {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(w).With().Timestamp().Caller().Logger()
	return nil
}

// Discard silences the global logger
func Discard() {
	log.Logger = zerolog.Nop()
}
