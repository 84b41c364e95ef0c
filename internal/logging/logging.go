package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultLogFile = "trace.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      string
	logFile      *os.File
	sink         = zerolog.Nop()
	stderr       io.Writer = os.Stderr
)

// DefaultPath returns the log location used when tracing is enabled without
// an explicit log file.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "xorg-choose-window", defaultLogFile)
}

// Configure sets the log destination. An empty path disables the file sink.
// Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	path = strings.TrimSpace(path)
	logPath = path
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(stderr, "warning: unable to create log directory: %v\n", err)
		logPath = ""
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(stderr, "warning: unable to open log file: %v\n", err)
		logPath = ""
		return
	}
	logFile = f
	zerolog.TimeFieldFormat = time.RFC3339Nano
	sink = zerolog.New(f).With().Timestamp().Logger()
}

// Path returns the active log file, or "" when file logging is off.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Close flushes and releases the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	sink = zerolog.Nop()
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are being written.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured entry to the log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !traceEnabled {
		return
	}
	ev := sink.Debug().Str("event", event)
	if payload != nil {
		ev = ev.Interface("payload", payload)
	}
	ev.Send()
}

// Error records err in the log file.
func Error(err error) {
	if err == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	sink.Error().Err(err).Send()
}

// Warn prints a non-fatal warning to stderr and mirrors it into the log.
func Warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(stderr, "warning: %s\n", msg)
	sink.Warn().Msg(msg)
}

// SetStderr redirects warning output; it returns a function restoring the
// previous writer.
func SetStderr(w io.Writer) func() {
	mu.Lock()
	prev := stderr
	stderr = w
	mu.Unlock()
	return func() {
		mu.Lock()
		stderr = prev
		mu.Unlock()
	}
}
