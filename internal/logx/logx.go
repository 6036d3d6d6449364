package logx

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"tspatch/pkg/fspath"
)

// New creates a logger that writes to a timestamped file inside dir, or
// inside the user-level ~/.tspatch/logs directory when dir is empty. The
// returned closer should be closed when logging is no longer needed.
func New(dir string) (*log.Logger, io.Closer, error) {
	if dir == "" {
		var err error
		dir, err = globalLogsDir()
		if err != nil {
			return nil, nil, err
		}
	}
	if err := fspath.MkdirIfNotExist(dir); err != nil {
		return nil, nil, fmt.Errorf("ensure logs directory: %w", err)
	}

	filename := time.Now().Format("20060102-150405") + ".log"
	filePath := filepath.Join(dir, filename)
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.New(file, "", log.LstdFlags|log.Lmicroseconds)
	return logger, file, nil
}

// globalLogsDir returns the user-level tspatch logs directory
// (~/.tspatch/logs), creating it if needed.
func globalLogsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("detect user home: %w", err)
	}
	dir := filepath.Join(home, ".tspatch", "logs")
	if err := fspath.MkdirIfNotExist(dir); err != nil {
		return "", err
	}
	return dir, nil
}
