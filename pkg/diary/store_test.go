package diary

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/feelio-app/feelio/pkg/db"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenConnection(":memory:", true, "NORMAL")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.EnsureSchema(conn); err != nil {
		t.Fatalf("Failed to ensure schema: %v", err)
	}

	return conn
}

func testEntryTime() EntryTime {
	return EntryTimeAt(time.Date(2024, time.March, 14, 9, 30, 0, 0, time.UTC))
}

func insertTestEntry(t *testing.T, ctx context.Context, conn *sql.DB, entry NewEntry) int64 {
	t.Helper()
	id, err := InsertEntry(ctx, conn, entry)
	if err != nil {
		t.Fatalf("InsertEntry failed in insertTestEntry: %v", err)
	}
	return id
}

func TestInsertAndGetEntry(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	created := testEntryTime()
	weather := &Weather{Icon: "01d", TempC: 21, City: "Oslo"}
	images := []string{"file:///photos/1.jpg", "file:///photos/2.jpg"}

	id, err := InsertEntry(ctx, conn, NewEntry{
		Title:     "Pi day",
		Content:   "Ate pie with #friends and #family",
		CreatedAt: created,
		Mood:      "😄",
		Weather:   weather,
		Images:    images,
	})
	if err != nil {
		t.Fatalf("InsertEntry failed: %v", err)
	}
	if id <= 0 {
		t.Fatalf("Expected positive id, got %d", id)
	}

	entry, err := GetEntry(ctx, conn, id)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}

	if entry.Title != "Pi day" {
		t.Errorf("Expected title 'Pi day', got %q", entry.Title)
	}
	if entry.Content != "Ate pie with #friends and #family" {
		t.Errorf("Unexpected content %q", entry.Content)
	}
	if entry.CreatedAt != created {
		t.Errorf("Stored time %+v doesn't match the supplied instant %+v", entry.CreatedAt, created)
	}
	if entry.CreatedAt.MonthName != "March" {
		t.Errorf("Expected month name 'March', got %q", entry.CreatedAt.MonthName)
	}
	if entry.Mood != "😄" {
		t.Errorf("Expected mood 😄, got %q", entry.Mood)
	}
	if entry.Weather == nil {
		t.Fatal("Expected weather snapshot, got nil")
	}
	if *entry.Weather != *weather {
		t.Errorf("Stored weather %+v doesn't match supplied %+v", *entry.Weather, *weather)
	}
	if entry.Tags != "#friends,#family" {
		t.Errorf("Expected derived tags '#friends,#family', got %q", entry.Tags)
	}
	if len(entry.Images) != 2 || entry.Images[0] != images[0] || entry.Images[1] != images[1] {
		t.Errorf("Stored images %v don't match supplied %v", entry.Images, images)
	}
}

func TestInsertEntryOptionalFieldsAbsent(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	id := insertTestEntry(t, ctx, conn, NewEntry{
		Title:     "Bare entry",
		Content:   "no mood, no weather, no images, no tags",
		CreatedAt: testEntryTime(),
	})

	entry, err := GetEntry(ctx, conn, id)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if entry.Mood != "" {
		t.Errorf("Expected empty mood, got %q", entry.Mood)
	}
	if entry.Weather != nil {
		t.Errorf("Expected nil weather, got %+v", entry.Weather)
	}
	if entry.Tags != "" {
		t.Errorf("Expected no tags, got %q", entry.Tags)
	}
	if entry.Images != nil {
		t.Errorf("Expected nil images, got %v", entry.Images)
	}
}

func TestGetEntryNotFound(t *testing.T) {
	conn := setupTestDB(t)

	_, err := GetEntry(context.Background(), conn, 12345)
	if !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("Expected ErrEntryNotFound, got: %v", err)
	}
}

func TestUpdateEntryPreservesTimeAndWeather(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	created := testEntryTime()
	weather := &Weather{Icon: "10d", TempC: 12, City: "Bergen"}
	id := insertTestEntry(t, ctx, conn, NewEntry{
		Title:     "Before",
		Content:   "original #old content",
		CreatedAt: created,
		Mood:      "😐",
		Weather:   weather,
		Images:    []string{"file:///a.jpg"},
	})

	err := UpdateEntry(ctx, conn, id, "After", "rewritten with #new #tags", "🙂", []string{"file:///b.jpg", "file:///c.jpg"})
	if err != nil {
		t.Fatalf("UpdateEntry failed: %v", err)
	}

	entry, err := GetEntry(ctx, conn, id)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}

	if entry.Title != "After" {
		t.Errorf("Expected updated title 'After', got %q", entry.Title)
	}
	if entry.Mood != "🙂" {
		t.Errorf("Expected updated mood 🙂, got %q", entry.Mood)
	}
	if entry.Tags != "#new,#tags" {
		t.Errorf("Expected tags re-derived as '#new,#tags', got %q", entry.Tags)
	}
	if len(entry.Images) != 2 || entry.Images[0] != "file:///b.jpg" {
		t.Errorf("Expected replaced images, got %v", entry.Images)
	}

	// Creation time and weather must be byte-for-byte what they were.
	if entry.CreatedAt != created {
		t.Errorf("UpdateEntry changed the creation time: %+v != %+v", entry.CreatedAt, created)
	}
	if entry.Weather == nil || *entry.Weather != *weather {
		t.Errorf("UpdateEntry changed the weather snapshot: %+v", entry.Weather)
	}
}

func TestUpdateEntryNotFound(t *testing.T) {
	conn := setupTestDB(t)

	err := UpdateEntry(context.Background(), conn, 999, "t", "c", "", nil)
	if !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("Expected ErrEntryNotFound for missing id, got: %v", err)
	}
}

func TestDeleteEntry(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	id := insertTestEntry(t, ctx, conn, NewEntry{Title: "Doomed", Content: "x", CreatedAt: testEntryTime()})

	if err := DeleteEntry(ctx, conn, id); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}

	if _, err := GetEntry(ctx, conn, id); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("Expected ErrEntryNotFound after delete, got: %v", err)
	}

	// Deleting an id that never existed (or was already deleted) is a no-op.
	if err := DeleteEntry(ctx, conn, id); err != nil {
		t.Errorf("Deleting an absent id should not error, got: %v", err)
	}
	if err := DeleteEntry(ctx, conn, 424242); err != nil {
		t.Errorf("Deleting a never-existing id should not error, got: %v", err)
	}
}

func TestListEntriesByMonth(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	march := EntryTimeAt(time.Date(2024, time.March, 2, 8, 0, 0, 0, time.UTC))
	april := EntryTimeAt(time.Date(2024, time.April, 2, 8, 0, 0, 0, time.UTC))
	marchLastYear := EntryTimeAt(time.Date(2023, time.March, 2, 8, 0, 0, 0, time.UTC))

	first := insertTestEntry(t, ctx, conn, NewEntry{Title: "march one", Content: "a", CreatedAt: march})
	insertTestEntry(t, ctx, conn, NewEntry{Title: "april", Content: "b", CreatedAt: april})
	insertTestEntry(t, ctx, conn, NewEntry{Title: "march last year", Content: "c", CreatedAt: marchLastYear})
	second := insertTestEntry(t, ctx, conn, NewEntry{Title: "march two", Content: "d", CreatedAt: march})

	entries, err := ListEntriesByMonth(ctx, conn, 2024, "March")
	if err != nil {
		t.Fatalf("ListEntriesByMonth failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries for March 2024, got %d", len(entries))
	}
	// Ordered by id descending: most recently inserted first.
	if entries[0].ID != second || entries[1].ID != first {
		t.Errorf("Expected ids [%d %d], got [%d %d]", second, first, entries[0].ID, entries[1].ID)
	}
}

func TestSearchEntries(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	when := testEntryTime()
	titleMatch := insertTestEntry(t, ctx, conn, NewEntry{Title: "Mountain trip", Content: "nothing here", CreatedAt: when})
	contentMatch := insertTestEntry(t, ctx, conn, NewEntry{Title: "Plain", Content: "climbed a mountain today", CreatedAt: when})
	insertTestEntry(t, ctx, conn, NewEntry{Title: "Unrelated", Content: "stayed home", CreatedAt: when})

	entries, err := SearchEntries(ctx, conn, "mountain")
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(entries))
	}
	if entries[0].ID != contentMatch || entries[1].ID != titleMatch {
		t.Errorf("Expected descending id order [%d %d], got [%d %d]", contentMatch, titleMatch, entries[0].ID, entries[1].ID)
	}

	// SQLite's default LIKE is case-insensitive for ASCII.
	upper, err := SearchEntries(ctx, conn, "MOUNTAIN")
	if err != nil {
		t.Fatalf("SearchEntries with upper-case query failed: %v", err)
	}
	if len(upper) != 2 {
		t.Errorf("Expected case-insensitive match to return 2 entries, got %d", len(upper))
	}

	none, err := SearchEntries(ctx, conn, "volcano")
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no matches, got %d", len(none))
	}
}

func TestListEntriesSince(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	old := EntryTimeAt(base.AddDate(0, 0, -10))
	recent := EntryTimeAt(base.AddDate(0, 0, -2))
	newest := EntryTimeAt(base)

	insertTestEntry(t, ctx, conn, NewEntry{Title: "old", Content: "a", CreatedAt: old})
	// Inserted out of time order on purpose; the query orders by timestamp.
	newestID := insertTestEntry(t, ctx, conn, NewEntry{Title: "newest", Content: "b", CreatedAt: newest})
	recentID := insertTestEntry(t, ctx, conn, NewEntry{Title: "recent", Content: "c", CreatedAt: recent})

	cutoff := base.AddDate(0, 0, -7).Unix()
	entries, err := ListEntriesSince(ctx, conn, cutoff)
	if err != nil {
		t.Fatalf("ListEntriesSince failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries since cutoff, got %d", len(entries))
	}
	if entries[0].ID != recentID || entries[1].ID != newestID {
		t.Errorf("Expected ascending timestamp order [%d %d], got [%d %d]", recentID, newestID, entries[0].ID, entries[1].ID)
	}
}

func TestListAllEntries(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	when := testEntryTime()
	ids := []int64{
		insertTestEntry(t, ctx, conn, NewEntry{Title: "one", Content: "a", CreatedAt: when}),
		insertTestEntry(t, ctx, conn, NewEntry{Title: "two", Content: "b", CreatedAt: when}),
		insertTestEntry(t, ctx, conn, NewEntry{Title: "three", Content: "c", CreatedAt: when}),
	}

	entries, err := ListAllEntries(ctx, conn)
	if err != nil {
		t.Fatalf("ListAllEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	for i, entry := range entries {
		want := ids[len(ids)-1-i]
		if entry.ID != want {
			t.Errorf("Position %d: expected id %d, got %d", i, want, entry.ID)
		}
	}
}

func TestClearTable(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	insertTestEntry(t, ctx, conn, NewEntry{Title: "gone", Content: "x", CreatedAt: testEntryTime()})

	if err := ClearTable(ctx, conn, Table("diary; DROP TABLE diary")); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("Expected ErrUnknownTable for unknown table, got: %v", err)
	}

	if err := ClearTable(ctx, conn, TableDiary); err != nil {
		t.Fatalf("ClearTable failed: %v", err)
	}

	entries, err := ListAllEntries(ctx, conn)
	if err != nil {
		t.Fatalf("ListAllEntries after clear failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty store after clear, got %d entries", len(entries))
	}
}

// Ids are assigned by AUTOINCREMENT and are never reused, even after the
// highest entry is deleted.
func TestIDsNotReusedAfterDelete(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	first := insertTestEntry(t, ctx, conn, NewEntry{Title: "a", Content: "a", CreatedAt: testEntryTime()})
	if err := DeleteEntry(ctx, conn, first); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}

	second := insertTestEntry(t, ctx, conn, NewEntry{Title: "b", Content: "b", CreatedAt: testEntryTime()})
	if second <= first {
		t.Errorf("Expected id after delete (%d) to be greater than deleted id (%d)", second, first)
	}
}
