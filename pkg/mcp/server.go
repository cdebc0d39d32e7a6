package mcp

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	feelio "github.com/feelio-app/feelio/pkg"
	pkgdb "github.com/feelio-app/feelio/pkg/db"
)

// GetDefaultDBPath returns a system-appropriate default path for the database.
func GetDefaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir can't be determined
		return "feelio.db"
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(homeDir, "AppData", "Roaming", "feelio", "feelio.db")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "feelio", "feelio.db")
	default: // linux and others
		return filepath.Join(homeDir, ".local", "share", "feelio", "feelio.db")
	}
}

type FeelioMCPServer struct {
	mcpServer *server.MCPServer
	db        *sql.DB
	log       *logrus.Logger
	DbPath    string
}

// NewFeelioMCPServer spins up an MCP server backed by the SQLite journal at
// dbPath, ensuring the schema is current before any tool can run.
func NewFeelioMCPServer(dbPath string, log *logrus.Logger) (*FeelioMCPServer, error) {
	if dbPath == "" {
		dbPath = GetDefaultDBPath()
	}

	// Expand ~ to home directory if present
	if strings.HasPrefix(dbPath, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			dbPath = filepath.Join(homeDir, dbPath[2:])
		}
	}

	// Ensure parent directory exists
	dbDir := filepath.Dir(dbPath)
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory for database: %w", err)
		}
	}

	s := server.NewMCPServer(
		"Feelio MCP Server",
		feelio.Version,
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	conn, err := pkgdb.OpenConnection(dbPath, true, "FULL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := pkgdb.EnsureSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ensure database schema for '%s': %w", dbPath, err)
	}

	log.WithField("db_path", dbPath).Info("feelio mcp server ready")

	return &FeelioMCPServer{
		mcpServer: s,
		db:        conn,
		log:       log,
		DbPath:    dbPath,
	}, nil
}

// Start runs the stdio event loop. Make sure to register tools beforehand.
func (s *FeelioMCPServer) Start() error {
	return server.ServeStdio(s.mcpServer)
}

// DB returns the underlying *sql.DB.
func (s *FeelioMCPServer) DB() *sql.DB {
	return s.db
}

// MCPRawServer exposes the raw mcp-go server (useful for additional configuration).
func (s *FeelioMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}

// Close cleans up allocated resources.
func (s *FeelioMCPServer) Close() error {
	if s.db != nil {
		// TRUNCATE mode waits for transactions and writes the WAL back to the main DB.
		if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
			s.log.WithError(err).Warn("WAL checkpoint failed during close")
		}
		return s.db.Close()
	}
	return nil
}
