package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/feelio-app/feelio/pkg/diary"
	"github.com/feelio-app/feelio/pkg/weather"
)

var (
	moodFlag    string
	imagesFlag  string
	withWeather bool
	latFlag     float64
	lonFlag     float64
	yearFlag    int
	monthFlag   string
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Manage journal entries",
	Long:  `Create, read, update, delete, and search journal entries.`,
}

var addEntryCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new journal entry",
	Long: `Add a new journal entry with a title and content. Hashtags in the content
(for example #gratitude) are extracted as tags automatically. With --weather,
a one-time weather snapshot for the given coordinates is attached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		content, _ := cmd.Flags().GetString("content")

		if title == "" {
			return errors.New("entry title is required")
		}
		if content == "" {
			return errors.New("entry content is required")
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entry := diary.NewEntry{
			Title:     title,
			Content:   content,
			CreatedAt: diary.EntryTimeAt(time.Now()),
			Mood:      moodFlag,
			Images:    parseImagesFlag(imagesFlag),
		}

		if withWeather {
			entry.Weather = fetchWeatherSnapshot(cmd)
		}

		id, err := diary.InsertEntry(cmd.Context(), dbConn, entry)
		if err != nil {
			return fmt.Errorf("failed to add entry: %w", err)
		}

		appLog.WithField("entry_id", id).Info("entry added")

		saved, err := diary.GetEntry(cmd.Context(), dbConn, id)
		if err != nil {
			return fmt.Errorf("entry added but could not be read back: %w", err)
		}
		printEntry(saved)
		return nil
	},
}

var getEntryCmd = &cobra.Command{
	Use:   "get [entry-id]",
	Short: "Get an entry by ID",
	Long:  `Retrieve a single journal entry by its numeric ID.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, err := parseEntryID(args[0])
		if err != nil {
			return err
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entry, err := diary.GetEntry(context.Background(), dbConn, entryID)
		if errors.Is(err, diary.ErrEntryNotFound) {
			return fmt.Errorf("entry not found: %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to get entry: %w", err)
		}

		printEntry(entry)
		return nil
	},
}

var editEntryCmd = &cobra.Command{
	Use:   "edit [entry-id]",
	Short: "Edit an entry",
	Long: `Replace an entry's title, content, mood, and images. Tags are re-derived
from the new content. The original creation time and weather snapshot are
kept as they were.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, err := parseEntryID(args[0])
		if err != nil {
			return err
		}

		title, _ := cmd.Flags().GetString("title")
		content, _ := cmd.Flags().GetString("content")

		if title == "" {
			return errors.New("entry title is required")
		}
		if content == "" {
			return errors.New("entry content is required")
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		err = diary.UpdateEntry(cmd.Context(), dbConn, entryID, title, content, moodFlag, parseImagesFlag(imagesFlag))
		if errors.Is(err, diary.ErrEntryNotFound) {
			return fmt.Errorf("entry not found: %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to update entry: %w", err)
		}

		fmt.Println("Entry updated successfully!")
		entry, err := diary.GetEntry(cmd.Context(), dbConn, entryID)
		if err != nil {
			return fmt.Errorf("entry updated but could not be read back: %w", err)
		}
		printEntry(entry)
		return nil
	},
}

var deleteEntryCmd = &cobra.Command{
	Use:   "delete [entry-id]",
	Short: "Delete an entry",
	Long:  `Permanently delete a journal entry. Deleting an entry that no longer exists is not an error.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, err := parseEntryID(args[0])
		if err != nil {
			return err
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		if err := diary.DeleteEntry(cmd.Context(), dbConn, entryID); err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}

		fmt.Printf("Entry %s deleted.\n", args[0])
		return nil
	},
}

var listEntriesCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries",
	Long: `List journal entries, newest first. With --year and --month the listing
is restricted to that calendar month; otherwise every entry is shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		var entries []diary.Entry
		switch {
		case yearFlag != 0 && monthFlag != "":
			entries, err = diary.ListEntriesByMonth(context.Background(), dbConn, yearFlag, monthFlag)
		case yearFlag != 0 || monthFlag != "":
			return errors.New("--year and --month must be given together")
		default:
			entries, err = diary.ListAllEntries(context.Background(), dbConn)
		}
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		printEntryTable(entries)
		return nil
	},
}

var searchEntriesCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search entries by title or content",
	Long:  `Search journal entries whose title or content contains the query, newest first.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entries, err := diary.SearchEntries(context.Background(), dbConn, args[0])
		if err != nil {
			return fmt.Errorf("failed to search entries: %w", err)
		}

		printEntryTable(entries)
		return nil
	},
}

// fetchWeatherSnapshot attaches a current-conditions snapshot to a new entry.
// Weather is strictly best-effort: a missing API key or a failed lookup is
// reported, never fatal.
func fetchWeatherSnapshot(cmd *cobra.Command) *diary.Weather {
	if appCfg.Weather.APIKey == "" {
		cmd.PrintErrln("Weather capture skipped: no API key configured (set [weather] api_key in the config file).")
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), weather.DefaultTimeout)
	defer cancel()

	client := weather.NewClient(appCfg.Weather.APIKey)
	snapshot, err := client.Fetch(ctx, latFlag, lonFlag)
	if err != nil {
		appLog.WithError(err).Warn("weather lookup failed")
		cmd.PrintErrf("Weather capture skipped: %v\n", err)
		return nil
	}
	return snapshot.DiaryWeather()
}

func parseEntryID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid entry ID: %s", raw)
	}
	return id, nil
}

func parseImagesFlag(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	images := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			images = append(images, trimmed)
		}
	}
	return images
}

func initEntriesCmd() {
	addEntryCmd.Flags().String("title", "", "Title of the entry (required)")
	addEntryCmd.Flags().String("content", "", "Content of the entry (required)")
	addEntryCmd.Flags().StringVar(&moodFlag, "mood", "", "Mood marker for the entry (😭 😕 😐 🙂 😄)")
	addEntryCmd.Flags().StringVar(&imagesFlag, "images", "", "Comma-separated list of image paths")
	addEntryCmd.Flags().BoolVar(&withWeather, "weather", false, "Attach a weather snapshot for --lat/--lon")
	addEntryCmd.Flags().Float64Var(&latFlag, "lat", 0, "Latitude for the weather snapshot")
	addEntryCmd.Flags().Float64Var(&lonFlag, "lon", 0, "Longitude for the weather snapshot")
	addEntryCmd.MarkFlagRequired("title")
	addEntryCmd.MarkFlagRequired("content")

	editEntryCmd.Flags().String("title", "", "New title for the entry (required)")
	editEntryCmd.Flags().String("content", "", "New content for the entry (required)")
	editEntryCmd.Flags().StringVar(&moodFlag, "mood", "", "New mood marker for the entry")
	editEntryCmd.Flags().StringVar(&imagesFlag, "images", "", "Comma-separated list of image paths")
	editEntryCmd.MarkFlagRequired("title")
	editEntryCmd.MarkFlagRequired("content")

	listEntriesCmd.Flags().IntVar(&yearFlag, "year", 0, "Restrict the listing to this year (requires --month)")
	listEntriesCmd.Flags().StringVar(&monthFlag, "month", "", "Restrict the listing to this month name, e.g. March (requires --year)")

	entriesCmd.AddCommand(
		addEntryCmd,
		getEntryCmd,
		editEntryCmd,
		deleteEntryCmd,
		listEntriesCmd,
		searchEntriesCmd,
	)
}

func printEntry(entry diary.Entry) {
	fmt.Println("Entry Details:")
	fmt.Printf("ID:         %d\n", entry.ID)
	fmt.Printf("Title:      %s\n", entry.Title)
	fmt.Printf("Created At: %s\n", formatUnix(entry.CreatedAt.Unix))

	if entry.Mood != "" {
		fmt.Printf("Mood:       %s\n", entry.Mood)
	}
	if entry.Weather != nil {
		fmt.Printf("Weather:    %s %d°C in %s\n", entry.Weather.Icon, entry.Weather.TempC, entry.Weather.City)
	}
	if entry.Tags != "" {
		fmt.Printf("Tags:       %s\n", entry.Tags)
	}
	if len(entry.Images) > 0 {
		fmt.Printf("Images:     %s\n", strings.Join(entry.Images, ", "))
	}

	fmt.Println("\nContent:")
	fmt.Println("------------------------------------------------------------")
	fmt.Println(entry.Content)
	fmt.Println("------------------------------------------------------------")
}

func printEntryTable(entries []diary.Entry) {
	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return
	}

	fmt.Println("Entries:")
	fmt.Println("ID | Title | Mood | Tags | Created At")
	fmt.Println("------------------------------------------------------------")
	for _, e := range entries {
		mood := e.Mood
		if mood == "" {
			mood = "-"
		}
		tags := e.Tags
		if tags == "" {
			tags = "-"
		}
		fmt.Printf("%d | %s | %s | %s | %s\n", e.ID, e.Title, mood, tags, formatUnix(e.CreatedAt.Unix))
	}
}
