// Package logger owns the process-wide zerolog instance. Call Init once
// during startup, then Get from anywhere that cannot take the logger as a
// dependency.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how the logger is built.
type Options struct {
	// Level is the minimum level emitted: trace, debug, info, warn or error.
	// Anything else falls back to info.
	Level string
	// Pretty switches to the coloured console writer. Production deployments
	// leave this off and emit JSON lines.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	instance    zerolog.Logger
	once        sync.Once
	initialized bool
)

// Init builds the singleton. Repeat calls return the logger from the first
// call unchanged.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		lvl := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(lvl)

		instance = zerolog.New(out).
			Level(lvl).
			With().
			Timestamp().
			Caller().
			Logger()

		initialized = true
	})
	return instance
}

// Get returns the singleton. Panics before Init; misconfigured wiring should
// fail loudly, not log to a zero logger.
func Get() zerolog.Logger {
	if !initialized {
		panic("logger: Get() called before Init()")
	}
	return instance
}

// Reset discards the singleton so the next Init rebuilds it. Test helper.
func Reset() {
	once = sync.Once{}
	instance = zerolog.Logger{}
	initialized = false
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
