// Package export produces a single portable snapshot of the entire journal.
package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/feelio-app/feelio/pkg/diary"
)

// AppName identifies the producing application inside export documents.
const AppName = "Feelio"

// Document is the portable export format. Entries carry every stored field
// so that re-importing a document reproduces the journal exactly.
type Document struct {
	App          string        `json:"app"`
	ExportID     uuid.UUID     `json:"export_id"`
	ExportDate   time.Time     `json:"export_date"`
	TotalEntries int           `json:"total_entries"`
	Entries      []diary.Entry `json:"entries"`
}

// Result is the single outcome of an export run. A failure after the file
// was written still reports failure but leaves the file on disk; the export
// is a private, re-creatable artifact, not a second source of truth.
type Result struct {
	Success    bool   `json:"success"`
	EntryCount int    `json:"entry_count"`
	Path       string `json:"path,omitempty"`
	Err        string `json:"error,omitempty"`
}

// BuildDocument reads every entry and wraps it with export metadata.
func BuildDocument(ctx context.Context, conn *sql.DB, now time.Time) (*Document, error) {
	entries, err := diary.ListAllEntries(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("failed to read entries for export: %w", err)
	}

	return &Document{
		App:          AppName,
		ExportID:     uuid.New(),
		ExportDate:   now.UTC(),
		TotalEntries: len(entries),
		Entries:      entries,
	}, nil
}

// FileName returns the conventional export file name for the given instant,
// embedding the export date.
func FileName(now time.Time) string {
	return fmt.Sprintf("feelio-backup-%s.json", now.UTC().Format("2006-01-02"))
}

// WriteDocument serializes the document as indented JSON into dir and
// returns the written file's path.
func WriteDocument(doc *Document, dir string) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize export document: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory '%s': %w", dir, err)
	}

	path := filepath.Join(dir, FileName(doc.ExportDate))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file '%s': %w", path, err)
	}

	return path, nil
}

// Export builds the document, writes it, and folds the outcome into a
// Result. Handing the file to a sharing mechanism is the caller's
// responsibility.
func Export(ctx context.Context, conn *sql.DB, dir string, now time.Time) Result {
	doc, err := BuildDocument(ctx, conn, now)
	if err != nil {
		return Result{Success: false, Err: err.Error()}
	}

	path, err := WriteDocument(doc, dir)
	if err != nil {
		return Result{Success: false, EntryCount: doc.TotalEntries, Err: err.Error()}
	}

	return Result{Success: true, EntryCount: doc.TotalEntries, Path: path}
}
