package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/feelio-app/feelio/pkg/analytics"
	"github.com/feelio-app/feelio/pkg/diary"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show journaling statistics",
	Long: `Show the current writing streak, this week's entry count, and the 7-day
mood series.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		now := time.Now()

		monthEntries, err := diary.ListEntriesSince(cmd.Context(), dbConn, now.AddDate(0, 0, -analytics.DefaultStreakWindow).Unix())
		if err != nil {
			return fmt.Errorf("failed to read recent entries: %w", err)
		}
		weekEntries, err := diary.ListEntriesSince(cmd.Context(), dbConn, now.AddDate(0, 0, -7).Unix())
		if err != nil {
			return fmt.Errorf("failed to read this week's entries: %w", err)
		}

		streak := analytics.Streak(monthEntries, now, analytics.DefaultStreakWindow)
		series := analytics.WeeklyMoodSeries(weekEntries, now)

		fmt.Printf("Writing streak:    %d day(s)\n", streak)
		fmt.Printf("Entries this week: %d\n", analytics.CountEntries(weekEntries))

		fmt.Println("\nWeekly mood:")
		if !series.HasData {
			fmt.Println("No mood data recorded in the last 7 days.")
			return nil
		}
		for i, label := range series.Labels {
			fmt.Printf("%s: %s\n", label, moodBar(series.Values[i]))
		}
		return nil
	},
}

// moodBar renders a mood score 0-5 as a small bar chart row.
func moodBar(score int) string {
	if score == 0 {
		return "-"
	}
	bar := ""
	for i := 0; i < score; i++ {
		bar += "█"
	}
	return fmt.Sprintf("%s (%d/5)", bar, score)
}

func initStatsCmd() {
	// No flags; the command reads everything it needs from the database.
}
