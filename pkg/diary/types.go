package diary

import "time"

// EntryTime is the decomposed creation instant of an entry. Every field is
// derived from the same capture instant and none of them are recomputed on
// edit.
type EntryTime struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"` // 1-12
	Day       int    `json:"day"`
	Hour      int    `json:"hour"`
	Minute    int    `json:"minute"`
	MonthName string `json:"monthname"`
	Unix      int64  `json:"timestamp"` // seconds since epoch
}

// EntryTimeAt derives the full time decomposition from a single instant.
func EntryTimeAt(t time.Time) EntryTime {
	return EntryTime{
		Year:      t.Year(),
		Month:     int(t.Month()),
		Day:       t.Day(),
		Hour:      t.Hour(),
		Minute:    t.Minute(),
		MonthName: t.Month().String(),
		Unix:      t.Unix(),
	}
}

// Weather is the persisted subset of a weather snapshot, captured once at
// entry creation. Absence means no snapshot was available, not an error.
type Weather struct {
	Icon  string `json:"icon"`
	TempC int    `json:"temp_c"`
	City  string `json:"city"`
}

// Entry represents a single journal record.
type Entry struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt EntryTime `json:"created_at"`
	Mood      string    `json:"mood,omitempty"`
	Weather   *Weather  `json:"weather,omitempty"`
	Tags      string    `json:"tags,omitempty"` // derived from Content, comma-separated
	Images    []string  `json:"images,omitempty"`
}

// NewEntry carries the caller-supplied fields for an insert. Tags are never
// part of the input; they are derived from Content on every write.
type NewEntry struct {
	Title     string
	Content   string
	CreatedAt EntryTime
	Mood      string
	Weather   *Weather
	Images    []string
}

// MoodScores maps each recognized mood marker to its ordinal score. Entries
// may carry any mood string, but only these markers participate in the
// weekly mood series.
var MoodScores = map[string]int{
	"😭": 1,
	"😕": 2,
	"😐": 3,
	"🙂": 4,
	"😄": 5,
}
