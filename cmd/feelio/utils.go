package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// defaultAppDir returns the system-appropriate directory for feelio's data.
func defaultAppDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(homeDir, "AppData", "Roaming", "feelio")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "feelio")
	default: // Primarily Linux, but also other UNIX-like systems.
		return filepath.Join(homeDir, ".local", "share", "feelio")
	}
}

func defaultConfigPath() string {
	return filepath.Join(defaultAppDir(), "config.toml")
}

func reminderPrefsPath() string {
	return filepath.Join(defaultAppDir(), "reminder.toml")
}

// resolveAndEnsureDBPath expands ~, absolutizes the path, and creates the
// parent directory if needed.
func resolveAndEnsureDBPath(providedPath string) (string, error) {
	targetPath := providedPath
	if targetPath == "" {
		targetPath = filepath.Join(defaultAppDir(), "feelio.db")
	}

	if strings.HasPrefix(targetPath, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory to expand path '%s': %w", targetPath, err)
		}
		targetPath = filepath.Join(homeDir, targetPath[2:])
	}

	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", targetPath, err)
	}
	targetPath = absPath

	dbDir := filepath.Dir(targetPath)
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory '%s' for database: %w", dbDir, err)
		}
	} else if err != nil {
		return "", fmt.Errorf("failed to stat directory '%s' for database: %w", dbDir, err)
	}

	return targetPath, nil
}

// formatUnix converts a Unix timestamp (seconds since epoch) to a
// human-readable string in RFC3339 format.
func formatUnix(timestamp int64) string {
	return time.Unix(timestamp, 0).Format(time.RFC3339)
}
