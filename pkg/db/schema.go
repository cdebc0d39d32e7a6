package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// DiaryTable is the name of the single table holding journal entries.
const DiaryTable = "diary"

// createDiaryTable defines the current full shape of the diary table.
// New installs get every column up front; existing installs are brought up
// to date by the additive migrations below.
const createDiaryTable = `
CREATE TABLE IF NOT EXISTS diary (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT,
    content TEXT,
    year INTEGER,
    month INTEGER,
    day INTEGER,
    hour INTEGER,
    minute INTEGER,
    monthname TEXT,
    timestamp INTEGER,
    mood TEXT,
    weather_icon TEXT,
    weather_temp REAL,
    weather_city TEXT,
    tags TEXT,
    images TEXT
);`

// additiveMigrations lists every column added after the original schema.
// Each statement is attempted on every startup; a "duplicate column name"
// error means the column is already there and is not a failure. Columns are
// only ever added, never dropped or renamed.
var additiveMigrations = []string{
	"ALTER TABLE diary ADD COLUMN mood TEXT",
	"ALTER TABLE diary ADD COLUMN weather_icon TEXT",
	"ALTER TABLE diary ADD COLUMN weather_temp REAL",
	"ALTER TABLE diary ADD COLUMN weather_city TEXT",
	"ALTER TABLE diary ADD COLUMN tags TEXT",
	"ALTER TABLE diary ADD COLUMN images TEXT",
}

// EnsureSchema creates the diary table if it is absent and applies all
// additive column migrations. It is safe to call on every application start,
// including against a database already at the latest schema. Existing data
// is never touched.
func EnsureSchema(conn *sql.DB) error {
	if _, err := conn.Exec(createDiaryTable); err != nil {
		return fmt.Errorf("failed to create diary table: %w", err)
	}

	for _, stmt := range additiveMigrations {
		if _, err := conn.Exec(stmt); err != nil {
			if isDuplicateColumnErr(err) {
				continue
			}
			return fmt.Errorf("failed to apply migration %q: %w", stmt, err)
		}
	}

	return nil
}

// isDuplicateColumnErr reports whether err is SQLite complaining that an
// ALTER TABLE ... ADD COLUMN target already exists. go-sqlite3 surfaces this
// as a generic error, so the message text is the only signal available.
func isDuplicateColumnErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate column name")
}
