package logging

import (
	"io"
	"os"

	hclog "github.com/hashicorp/go-hclog"
)

// New returns the process logger. Debug forces debug level regardless of level.
func New(level string, debug bool) hclog.Logger {
	return NewWithOutput(os.Stderr, level, debug)
}

func NewWithOutput(w io.Writer, level string, debug bool) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	if debug {
		lvl = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "tracker",
		Level:  lvl,
		Output: w,
	})
}

// Discard is used by tests and by commands that print their own output.
func Discard() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.Off})
}
