// Package logger configures the application logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// New builds a logrus logger writing JSON records. When dir is non-empty a
// timestamped log file is created there and records go to both the file and
// stderr; otherwise records go to stderr only.
func New(dir string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})

	if dir == "" {
		log.SetOutput(os.Stderr)
		return log, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory '%s': %w", dir, err)
	}

	filename := fmt.Sprintf("feelio_%s.log", time.Now().Format("2006-01-02"))
	path := filepath.Join(dir, filename)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file '%s': %w", path, err)
	}

	log.SetOutput(io.MultiWriter(os.Stderr, file))
	return log, nil
}

// Nop returns a logger that discards everything. Use in tests.
func Nop() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
