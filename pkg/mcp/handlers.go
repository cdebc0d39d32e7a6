package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/feelio-app/feelio/pkg/analytics"
	"github.com/feelio-app/feelio/pkg/diary"
	"github.com/feelio-app/feelio/pkg/export"
)

// RegisterAllTools wires every journal tool onto the server.
func (s *FeelioMCPServer) RegisterAllTools() {
	RegisterPingTool(s.mcpServer)
	RegisterAddEntryTool(s.mcpServer, s.db)
	RegisterGetEntryTool(s.mcpServer, s.db)
	RegisterUpdateEntryTool(s.mcpServer, s.db)
	RegisterDeleteEntryTool(s.mcpServer, s.db)
	RegisterListEntriesTool(s.mcpServer, s.db)
	RegisterSearchEntriesTool(s.mcpServer, s.db)
	RegisterJournalStatsTool(s.mcpServer, s.db)
	RegisterExportJournalTool(s.mcpServer, s.db, filepath.Join(filepath.Dir(s.DbPath), "exports"))
}

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the Feelio MCP server is alive."),
	)
	s.AddTool(pingTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("pong_feelio"), nil
	})
}

// RegisterAddEntryTool registers the add_entry tool.
func RegisterAddEntryTool(s *server.MCPServer, db *sql.DB) {
	addEntry := mcp.NewTool("add_entry",
		mcp.WithDescription("Creates a new journal entry dated now. Tags are derived from #tokens in the content."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the entry.")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Free-form content of the entry.")),
		mcp.WithString("mood", mcp.Description("Optional mood marker (one of 😭 😕 😐 🙂 😄).")),
		mcp.WithString("images", mcp.Description("Optional comma-separated list of image locators.")),
	)
	s.AddTool(addEntry, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, titleOk := request.Params.Arguments["title"].(string)
		content, contentOk := request.Params.Arguments["content"].(string)
		if !titleOk || !contentOk {
			return mcp.NewToolResultError("'title' and 'content' parameters are required and must be strings."), nil
		}

		mood, _ := request.Params.Arguments["mood"].(string)
		imagesStr, _ := request.Params.Arguments["images"].(string)

		id, err := diary.InsertEntry(ctx, db, diary.NewEntry{
			Title:     title,
			Content:   content,
			CreatedAt: diary.EntryTimeAt(time.Now()),
			Mood:      mood,
			Images:    splitList(imagesStr),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create entry: %v", err)), nil
		}

		entry, err := diary.GetEntry(ctx, db, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Entry created with id %d but could not be read back: %v", id, err)), nil
		}

		return marshalResult(entry)
	})
}

// RegisterGetEntryTool registers the get_entry tool.
func RegisterGetEntryTool(s *server.MCPServer, db *sql.DB) {
	getEntry := mcp.NewTool("get_entry",
		mcp.WithDescription("Retrieves a journal entry by its id."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("The entry id.")),
	)
	s.AddTool(getEntry, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := entryIDArg(request)
		if !ok {
			return mcp.NewToolResultError("'id' parameter is required and must be a number."), nil
		}

		entry, err := diary.GetEntry(ctx, db, id)
		if err == diary.ErrEntryNotFound {
			return mcp.NewToolResultError(fmt.Sprintf("Entry with id %d not found.", id)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get entry: %v", err)), nil
		}

		return marshalResult(entry)
	})
}

// RegisterUpdateEntryTool registers the update_entry tool.
func RegisterUpdateEntryTool(s *server.MCPServer, db *sql.DB) {
	updateEntry := mcp.NewTool("update_entry",
		mcp.WithDescription("Updates an entry's title, content, mood, and images. Tags are re-derived from the new content; the creation time and weather snapshot never change."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("The entry id.")),
		mcp.WithString("title", mcp.Required(), mcp.Description("New title.")),
		mcp.WithString("content", mcp.Required(), mcp.Description("New content.")),
		mcp.WithString("mood", mcp.Description("New mood marker, empty to clear.")),
		mcp.WithString("images", mcp.Description("New comma-separated image locators, empty to clear.")),
	)
	s.AddTool(updateEntry, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := entryIDArg(request)
		if !ok {
			return mcp.NewToolResultError("'id' parameter is required and must be a number."), nil
		}
		title, titleOk := request.Params.Arguments["title"].(string)
		content, contentOk := request.Params.Arguments["content"].(string)
		if !titleOk || !contentOk {
			return mcp.NewToolResultError("'title' and 'content' parameters are required and must be strings."), nil
		}
		mood, _ := request.Params.Arguments["mood"].(string)
		imagesStr, _ := request.Params.Arguments["images"].(string)

		err := diary.UpdateEntry(ctx, db, id, title, content, mood, splitList(imagesStr))
		if err == diary.ErrEntryNotFound {
			return mcp.NewToolResultError(fmt.Sprintf("Entry with id %d not found.", id)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update entry: %v", err)), nil
		}

		entry, err := diary.GetEntry(ctx, db, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Entry updated but could not be read back: %v", err)), nil
		}

		return marshalResult(entry)
	})
}

// RegisterDeleteEntryTool registers the delete_entry tool.
func RegisterDeleteEntryTool(s *server.MCPServer, db *sql.DB) {
	deleteEntry := mcp.NewTool("delete_entry",
		mcp.WithDescription("Deletes a journal entry by id. Deleting an absent id is a no-op."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("The entry id.")),
	)
	s.AddTool(deleteEntry, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := entryIDArg(request)
		if !ok {
			return mcp.NewToolResultError("'id' parameter is required and must be a number."), nil
		}

		if err := diary.DeleteEntry(ctx, db, id); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete entry: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Entry %d deleted.", id)), nil
	})
}

// RegisterListEntriesTool registers the list_entries tool.
func RegisterListEntriesTool(s *server.MCPServer, db *sql.DB) {
	listEntries := mcp.NewTool("list_entries",
		mcp.WithDescription("Lists entries for a given year and month name, most recent first."),
		mcp.WithNumber("year", mcp.Required(), mcp.Description("Calendar year, e.g. 2024.")),
		mcp.WithString("month", mcp.Required(), mcp.Description("Full month name, e.g. 'March'.")),
	)
	s.AddTool(listEntries, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		yearF, yearOk := request.Params.Arguments["year"].(float64)
		month, monthOk := request.Params.Arguments["month"].(string)
		if !yearOk || !monthOk || month == "" {
			return mcp.NewToolResultError("'year' (number) and 'month' (string) parameters are required."), nil
		}

		entries, err := diary.ListEntriesByMonth(ctx, db, int(yearF), month)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list entries: %v", err)), nil
		}

		if len(entries) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return marshalResult(entries)
	})
}

// RegisterSearchEntriesTool registers the search_entries tool.
func RegisterSearchEntriesTool(s *server.MCPServer, db *sql.DB) {
	searchEntries := mcp.NewTool("search_entries",
		mcp.WithDescription("Searches entries whose title or content contains the query substring."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Substring to search for.")),
	)
	s.AddTool(searchEntries, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, ok := request.Params.Arguments["query"].(string)
		if !ok || query == "" {
			return mcp.NewToolResultError("'query' parameter is required and must be a non-empty string."), nil
		}

		entries, err := diary.SearchEntries(ctx, db, query)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to search entries: %v", err)), nil
		}

		if len(entries) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return marshalResult(entries)
	})
}

// journalStats is the payload returned by the journal_stats tool.
type journalStats struct {
	Streak          int                  `json:"streak"`
	EntriesThisWeek int                  `json:"entries_this_week"`
	WeeklyMood      analytics.MoodSeries `json:"weekly_mood"`
}

// RegisterJournalStatsTool registers the journal_stats tool.
func RegisterJournalStatsTool(s *server.MCPServer, db *sql.DB) {
	statsTool := mcp.NewTool("journal_stats",
		mcp.WithDescription("Returns the current writing streak, this week's entry count, and the 7-day mood series."),
	)
	s.AddTool(statsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		now := time.Now()

		monthEntries, err := diary.ListEntriesSince(ctx, db, now.AddDate(0, 0, -analytics.DefaultStreakWindow).Unix())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read recent entries: %v", err)), nil
		}
		weekEntries, err := diary.ListEntriesSince(ctx, db, now.AddDate(0, 0, -7).Unix())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read this week's entries: %v", err)), nil
		}

		stats := journalStats{
			Streak:          analytics.Streak(monthEntries, now, analytics.DefaultStreakWindow),
			EntriesThisWeek: analytics.CountEntries(weekEntries),
			WeeklyMood:      analytics.WeeklyMoodSeries(weekEntries, now),
		}
		return marshalResult(stats)
	})
}

// RegisterExportJournalTool registers the export_journal tool.
func RegisterExportJournalTool(s *server.MCPServer, db *sql.DB, defaultDir string) {
	exportTool := mcp.NewTool("export_journal",
		mcp.WithDescription("Exports every entry into a portable JSON backup file and returns the outcome."),
		mcp.WithString("dir", mcp.Description("Directory to write the backup into. Defaults to the exports directory next to the database.")),
	)
	s.AddTool(exportTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir, _ := request.Params.Arguments["dir"].(string)
		if dir == "" {
			dir = defaultDir
		}

		result := export.Export(ctx, db, dir, time.Now())
		return marshalResult(result)
	})
}

func marshalResult(v any) (*mcp.CallToolResult, error) {
	jsonResult, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result to JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonResult)), nil
}

func entryIDArg(request mcp.CallToolRequest) (int64, bool) {
	idF, ok := request.Params.Arguments["id"].(float64)
	if !ok {
		return 0, false
	}
	return int64(idF), true
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
