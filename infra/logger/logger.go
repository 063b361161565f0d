package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	corelogger "github.com/kilianp07/flightcast/core/logger"
)

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger = corelogger.NopLogger

var (
	mu     sync.RWMutex
	output io.Writer = os.Stderr
	level            = zerolog.WarnLevel
)

// Setup sets the level and destination shared by loggers created afterwards.
// Stdout is reserved for the prediction report, so a nil writer selects stderr.
func Setup(lvl string, w io.Writer) error {
	parsed, err := zerolog.ParseLevel(strings.ToLower(lvl))
	if err != nil {
		return err
	}
	if parsed == zerolog.NoLevel {
		parsed = zerolog.WarnLevel
	}
	if w == nil {
		w = os.Stderr
	}
	mu.Lock()
	defer mu.Unlock()
	level = parsed
	output = w
	return nil
}

// New returns a Logger for the given component. The output format is selected
// via the APP_ENV variable.
func New(component string) Logger {
	mu.RLock()
	w, lvl := output, level
	mu.RUnlock()
	return NewZerologLogger(component, w, lvl)
}
