// Package debug is prism's diagnostic log. The catalog scan, the defaults
// writer and the TUI report fail-soft problems here (an unreadable bundle,
// a rejected highlight write) instead of surfacing them to the user.
//
// Nothing is recorded unless the root command runs with --debug, in which
// case each launch starts a fresh ~/.prism/debug.log.
package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	LogFileName = "debug.log"
	// LogDirName sits under the user's home and is shared with nothing else.
	LogDirName = ".prism"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  *log.Logger
	logFile *os.File

	// Swapped by tests to keep the log out of the real home directory.
	getLogPath = defaultGetLogPath
)

// Init turns the diagnostic log on or off for this process. When enable is
// true any previous log file is truncated and a session banner carrying the
// pid is written, so overlapping runs can be told apart.
func Init(enable bool) error {
	mu.Lock()
	defer mu.Unlock()

	closeFileLocked()
	enabled = enable
	if !enable {
		logger = discard()
		return nil
	}

	logPath, err := getLogPath()
	if err != nil {
		return fmt.Errorf("determine log path: %w", err)
	}

	//nolint:gosec // G301: directory lives under the user's home
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	//nolint:gosec // G304: path is derived from the home directory
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f

	logger = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	logger.Printf("=== prism debug log started at %s (pid %d) ===", time.Now().Format(time.RFC3339), os.Getpid())
	return nil
}

// SetOutput sends diagnostics to w without timestamps. A nil writer turns
// logging off. Tests use it to assert on skipped bundles and failed writes.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		enabled = false
		logger = discard()
		return
	}
	enabled = true
	logger = log.New(w, "", 0)
}

// Close flushes and releases the log file opened by Init. The root command
// defers it; repeated calls are harmless.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()
}

// Log records v with fmt.Print formatting.
func Log(v ...any) {
	write(func(l *log.Logger) { l.Print(v...) })
}

// Logf records a line with fmt.Printf formatting.
func Logf(format string, v ...any) {
	write(func(l *log.Logger) { l.Printf(format, v...) })
}

// Scoped binds a component tag such as "catalog" or "defaults" so every
// line it writes reads "[catalog] ...".
func Scoped(component string) func(format string, v ...any) {
	prefix := "[" + component + "] "
	return func(format string, v ...any) {
		Logf(prefix+format, v...)
	}
}

func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// GetLogPath reports where Init writes.
func GetLogPath() (string, error) {
	return getLogPath()
}

func write(emit func(*log.Logger)) {
	mu.RLock()
	defer mu.RUnlock()
	if enabled && logger != nil {
		emit(logger)
	}
}

func discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func closeFileLocked() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func defaultGetLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, LogDirName, LogFileName), nil
}
