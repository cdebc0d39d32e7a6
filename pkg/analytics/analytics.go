// Package analytics derives user-facing statistics from entry sequences.
// Everything here is a pure function over entries already fetched from the
// diary store; nothing performs I/O.
package analytics

import (
	"time"

	"github.com/feelio-app/feelio/pkg/diary"
)

// DefaultStreakWindow bounds how far back the streak scan walks.
const DefaultStreakWindow = 30

// Streak counts consecutive calendar days with at least one entry, walking
// backward from today. Today itself having no entry does not end the scan
// (the streak may have ended yesterday); a gap on any later day does.
func Streak(entries []diary.Entry, today time.Time, windowDays int) int {
	if windowDays <= 0 {
		windowDays = DefaultStreakWindow
	}

	streak := 0
	for i := 0; i < windowDays; i++ {
		day := today.AddDate(0, 0, -i)
		if hasEntryOn(entries, day) {
			streak++
		} else if i > 0 {
			break
		}
	}
	return streak
}

// MoodSeries is a 7-day mood timeseries, oldest day first.
type MoodSeries struct {
	Labels []string `json:"labels"` // weekday names
	Values []int    `json:"values"` // mood scores 1-5, 0 for days without a mood
	// HasData is true when at least one value is non-zero. An all-zero
	// series means "no data", not "all scored zero".
	HasData bool `json:"has_data"`
}

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// WeeklyMoodSeries builds the mood timeseries for the 7 calendar days ending
// today. For each day the first entry carrying a recognized mood marker
// determines the score; days without one score 0.
func WeeklyMoodSeries(entries []diary.Entry, today time.Time) MoodSeries {
	series := MoodSeries{
		Labels: make([]string, 0, 7),
		Values: make([]int, 0, 7),
	}

	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)

		score := 0
		for _, entry := range entries {
			if !sameDay(entry, day) {
				continue
			}
			if s, ok := diary.MoodScores[entry.Mood]; ok {
				score = s
				break // first recognized mood wins
			}
		}

		series.Labels = append(series.Labels, weekdayNames[int(day.Weekday())])
		series.Values = append(series.Values, score)
		if score > 0 {
			series.HasData = true
		}
	}

	return series
}

// CountEntries returns the number of entries in the sequence. Window
// membership is the caller's concern (typically via ListEntriesSince).
func CountEntries(entries []diary.Entry) int {
	return len(entries)
}

func hasEntryOn(entries []diary.Entry, day time.Time) bool {
	for _, entry := range entries {
		if sameDay(entry, day) {
			return true
		}
	}
	return false
}

func sameDay(entry diary.Entry, day time.Time) bool {
	return entry.CreatedAt.Year == day.Year() &&
		entry.CreatedAt.Month == int(day.Month()) &&
		entry.CreatedAt.Day == day.Day()
}
