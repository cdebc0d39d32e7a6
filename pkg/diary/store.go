package diary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrUnknownTable  = errors.New("unknown table")
)

// Table is the closed set of tables the store is allowed to clear. Table
// names never travel as free text.
type Table string

const TableDiary Table = "diary"

const (
	entryColumns = "id, title, content, year, month, day, hour, minute, monthname, timestamp, mood, weather_icon, weather_temp, weather_city, tags, images"

	insertEntryStatement = `
	INSERT INTO diary (title, content, year, month, day, hour, minute, monthname, timestamp, mood, weather_icon, weather_temp, weather_city, tags, images)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	updateEntryStatement = `
	UPDATE diary
	SET title = ?, content = ?, mood = ?, tags = ?, images = ?
	WHERE id = ?
	`

	getEntryStatement = `
	SELECT ` + entryColumns + `
	FROM diary
	WHERE id = ?
	`

	deleteEntryStatement = `
	DELETE FROM diary
	WHERE id = ?
	`

	listEntriesByMonthStatement = `
	SELECT ` + entryColumns + `
	FROM diary
	WHERE year = ? AND monthname = ?
	ORDER BY id DESC
	`

	searchEntriesStatement = `
	SELECT ` + entryColumns + `
	FROM diary
	WHERE title LIKE ? OR content LIKE ?
	ORDER BY id DESC
	`

	listEntriesSinceStatement = `
	SELECT ` + entryColumns + `
	FROM diary
	WHERE timestamp >= ?
	ORDER BY timestamp ASC
	`

	listAllEntriesStatement = `
	SELECT ` + entryColumns + `
	FROM diary
	ORDER BY id DESC
	`
)

// InsertEntry persists a new entry, deriving its tags from the content, and
// returns the assigned id. The insert is a single atomic statement.
func InsertEntry(ctx context.Context, conn *sql.DB, entry NewEntry) (int64, error) {
	tags := ExtractTags(entry.Content)

	var (
		weatherIcon sql.NullString
		weatherTemp sql.NullFloat64
		weatherCity sql.NullString
	)
	if entry.Weather != nil {
		weatherIcon = sql.NullString{String: entry.Weather.Icon, Valid: true}
		weatherTemp = sql.NullFloat64{Float64: float64(entry.Weather.TempC), Valid: true}
		weatherCity = sql.NullString{String: entry.Weather.City, Valid: true}
	}

	res, err := conn.ExecContext(
		ctx,
		insertEntryStatement,
		entry.Title,
		entry.Content,
		entry.CreatedAt.Year,
		entry.CreatedAt.Month,
		entry.CreatedAt.Day,
		entry.CreatedAt.Hour,
		entry.CreatedAt.Minute,
		entry.CreatedAt.MonthName,
		entry.CreatedAt.Unix,
		nullableString(entry.Mood),
		weatherIcon,
		weatherTemp,
		weatherCity,
		nullableString(tags),
		nullableString(joinImages(entry.Images)),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted entry id: %w", err)
	}

	return id, nil
}

// UpdateEntry overwrites an entry's title, content, mood, and images, and
// re-derives its tags from the new content. The creation time fields and the
// weather snapshot are never touched. Returns ErrEntryNotFound if no entry
// has the given id.
func UpdateEntry(ctx context.Context, conn *sql.DB, id int64, title, content, mood string, images []string) error {
	tags := ExtractTags(content)

	res, err := conn.ExecContext(
		ctx,
		updateEntryStatement,
		title,
		content,
		nullableString(mood),
		nullableString(tags),
		nullableString(joinImages(images)),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %d: %w", id, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// GetEntry retrieves a single entry by id, or ErrEntryNotFound.
func GetEntry(ctx context.Context, conn *sql.DB, id int64) (Entry, error) {
	row := conn.QueryRowContext(ctx, getEntryStatement, id)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrEntryNotFound
		}
		return Entry{}, err
	}

	return entry, nil
}

// DeleteEntry removes an entry unconditionally. Deleting an id that does not
// exist is a no-op, not an error.
func DeleteEntry(ctx context.Context, conn *sql.DB, id int64) error {
	if _, err := conn.ExecContext(ctx, deleteEntryStatement, id); err != nil {
		return fmt.Errorf("failed to delete entry %d: %w", id, err)
	}
	return nil
}

// ListEntriesByMonth returns the entries whose stored year and month name
// both match, most recently inserted first.
func ListEntriesByMonth(ctx context.Context, conn *sql.DB, year int, monthName string) ([]Entry, error) {
	return queryEntries(ctx, conn, listEntriesByMonthStatement, year, monthName)
}

// SearchEntries returns the entries whose title or content contains query as
// a substring, most recently inserted first. Matching uses SQLite's default
// LIKE comparison, which is case-insensitive for ASCII. The store applies no
// minimum query length; filtering trivial queries is the caller's concern.
func SearchEntries(ctx context.Context, conn *sql.DB, query string) ([]Entry, error) {
	pattern := "%" + query + "%"
	return queryEntries(ctx, conn, searchEntriesStatement, pattern, pattern)
}

// ListEntriesSince returns the entries created at or after the cutoff,
// ordered ascending by creation timestamp. This is the only ascending query;
// it feeds time-series analytics.
func ListEntriesSince(ctx context.Context, conn *sql.DB, cutoffUnix int64) ([]Entry, error) {
	return queryEntries(ctx, conn, listEntriesSinceStatement, cutoffUnix)
}

// ListAllEntries returns every entry, most recently inserted first.
func ListAllEntries(ctx context.Context, conn *sql.DB) ([]Entry, error) {
	return queryEntries(ctx, conn, listAllEntriesStatement)
}

// ClearTable deletes every row from one of the known tables. Destructive;
// reserved for administrative reset flows.
func ClearTable(ctx context.Context, conn *sql.DB, table Table) error {
	switch table {
	case TableDiary:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	if _, err := conn.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
		return fmt.Errorf("failed to clear table %s: %w", table, err)
	}
	return nil
}

func queryEntries(ctx context.Context, conn *sql.DB, statement string, args ...any) ([]Entry, error) {
	rows, err := conn.QueryContext(ctx, statement, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	return entries, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		entry       Entry
		title       sql.NullString
		content     sql.NullString
		mood        sql.NullString
		weatherIcon sql.NullString
		weatherTemp sql.NullFloat64
		weatherCity sql.NullString
		tags        sql.NullString
		images      sql.NullString
	)

	err := row.Scan(
		&entry.ID,
		&title,
		&content,
		&entry.CreatedAt.Year,
		&entry.CreatedAt.Month,
		&entry.CreatedAt.Day,
		&entry.CreatedAt.Hour,
		&entry.CreatedAt.Minute,
		&entry.CreatedAt.MonthName,
		&entry.CreatedAt.Unix,
		&mood,
		&weatherIcon,
		&weatherTemp,
		&weatherCity,
		&tags,
		&images,
	)
	if err != nil {
		return Entry{}, err
	}

	entry.Title = title.String
	entry.Content = content.String
	entry.Mood = mood.String
	entry.Tags = tags.String
	entry.Images = splitImages(images.String)

	// A weather snapshot is present only if any of its columns were written;
	// they are always written together.
	if weatherIcon.Valid || weatherTemp.Valid || weatherCity.Valid {
		entry.Weather = &Weather{
			Icon:  weatherIcon.String,
			TempC: int(math.Round(weatherTemp.Float64)),
			City:  weatherCity.String,
		}
	}

	return entry, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func joinImages(images []string) string {
	return strings.Join(images, ",")
}

func splitImages(stored string) []string {
	if stored == "" {
		return nil
	}
	parts := strings.Split(stored, ",")
	images := parts[:0]
	for _, p := range parts {
		if p != "" {
			images = append(images, p)
		}
	}
	if len(images) == 0 {
		return nil
	}
	return images
}
