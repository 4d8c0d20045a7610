// Package debug routes the standard logger to a file while the terminal is
// owned by the UI. With no path configured, log output is discarded.
package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init points the standard logger at path, creating parent directories
// An empty path discards all log output
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()

	if path == "" {
		log.SetOutput(io.Discard)
		return nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}

	logFile = f
	log.SetOutput(f)
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	return nil
}

// Enabled reports whether log output goes to a file
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return logFile != nil
}

// Close detaches the logger and closes the file
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	log.SetOutput(io.Discard)
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
