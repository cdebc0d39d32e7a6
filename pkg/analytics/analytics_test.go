package analytics

import (
	"testing"
	"time"

	"github.com/feelio-app/feelio/pkg/diary"
)

func entryOn(day time.Time, mood string) diary.Entry {
	return diary.Entry{
		CreatedAt: diary.EntryTimeAt(day),
		Mood:      mood,
	}
}

func TestStreakBreaksOnGapAfterFirstDay(t *testing.T) {
	today := time.Date(2024, time.May, 20, 15, 0, 0, 0, time.UTC)

	// Entries today, yesterday, and 3 days ago, but not 2 days ago. The gap
	// at day 2 ends the streak: today + yesterday = 2, not 1 and not 4.
	entries := []diary.Entry{
		entryOn(today, ""),
		entryOn(today.AddDate(0, 0, -1), ""),
		entryOn(today.AddDate(0, 0, -3), ""),
	}

	if got := Streak(entries, today, 30); got != 2 {
		t.Errorf("Expected streak 2, got %d", got)
	}
}

func TestStreakTodayMissingDoesNotBreak(t *testing.T) {
	today := time.Date(2024, time.May, 20, 15, 0, 0, 0, time.UTC)

	// No entry today, but entries yesterday and the day before. The scan
	// continues past the empty day 0, so the streak is 2.
	entries := []diary.Entry{
		entryOn(today.AddDate(0, 0, -1), ""),
		entryOn(today.AddDate(0, 0, -2), ""),
	}

	if got := Streak(entries, today, 30); got != 2 {
		t.Errorf("Expected streak 2 when today has no entry yet, got %d", got)
	}
}

func TestStreakNoEntries(t *testing.T) {
	today := time.Date(2024, time.May, 20, 15, 0, 0, 0, time.UTC)
	if got := Streak(nil, today, 30); got != 0 {
		t.Errorf("Expected streak 0 for no entries, got %d", got)
	}
}

func TestStreakWindowExhausted(t *testing.T) {
	today := time.Date(2024, time.May, 20, 15, 0, 0, 0, time.UTC)

	// An unbroken run longer than the window caps at the window size.
	var entries []diary.Entry
	for i := 0; i < 40; i++ {
		entries = append(entries, entryOn(today.AddDate(0, 0, -i), ""))
	}

	if got := Streak(entries, today, 30); got != 30 {
		t.Errorf("Expected streak capped at window 30, got %d", got)
	}
}

func TestStreakMultipleEntriesSameDayCountOnce(t *testing.T) {
	today := time.Date(2024, time.May, 20, 15, 0, 0, 0, time.UTC)

	entries := []diary.Entry{
		entryOn(today, ""),
		entryOn(today, ""),
		entryOn(today, ""),
	}

	if got := Streak(entries, today, 30); got != 1 {
		t.Errorf("Expected streak 1 for three entries on one day, got %d", got)
	}
}

func TestWeeklyMoodSeriesFirstMoodWins(t *testing.T) {
	today := time.Date(2024, time.May, 20, 15, 0, 0, 0, time.UTC) // a Monday

	twoDaysAgo := today.AddDate(0, 0, -2)
	entries := []diary.Entry{
		entryOn(today, "😄"),        // day offset 0, score 5
		entryOn(twoDaysAgo, "😕"),   // day offset 2, score 2, first wins
		entryOn(twoDaysAgo, "😄"),   // second entry same day, ignored
		entryOn(today.AddDate(0, 0, -4), ""), // entry without mood scores 0
	}

	series := WeeklyMoodSeries(entries, today)

	if len(series.Labels) != 7 || len(series.Values) != 7 {
		t.Fatalf("Expected 7 labels and 7 values, got %d and %d", len(series.Labels), len(series.Values))
	}

	// Oldest first: index 6 is today, index 4 is two days ago.
	want := []int{0, 0, 0, 0, 2, 0, 5}
	for i, v := range want {
		if series.Values[i] != v {
			t.Errorf("Value[%d]: expected %d, got %d (values: %v)", i, v, series.Values[i], series.Values)
		}
	}

	if !series.HasData {
		t.Error("Expected HasData to be true")
	}

	// Labels run oldest to newest ending on today's weekday.
	if series.Labels[6] != "Mon" {
		t.Errorf("Expected last label 'Mon' for a Monday, got %q", series.Labels[6])
	}
	if series.Labels[0] != "Tue" {
		t.Errorf("Expected first label 'Tue' six days before a Monday, got %q", series.Labels[0])
	}
}

func TestWeeklyMoodSeriesNoMoodsMeansNoData(t *testing.T) {
	today := time.Date(2024, time.May, 20, 15, 0, 0, 0, time.UTC)

	entries := []diary.Entry{
		entryOn(today, ""),
		entryOn(today.AddDate(0, 0, -1), "not-a-marker"),
	}

	series := WeeklyMoodSeries(entries, today)
	if series.HasData {
		t.Error("Expected HasData false for a series with no recognized moods")
	}
	for i, v := range series.Values {
		if v != 0 {
			t.Errorf("Expected all-zero values, got %d at index %d", v, i)
		}
	}
}

func TestCountEntries(t *testing.T) {
	today := time.Date(2024, time.May, 20, 15, 0, 0, 0, time.UTC)
	entries := []diary.Entry{entryOn(today, ""), entryOn(today, "")}
	if got := CountEntries(entries); got != 2 {
		t.Errorf("Expected 2, got %d", got)
	}
	if got := CountEntries(nil); got != 0 {
		t.Errorf("Expected 0 for nil, got %d", got)
	}
}
