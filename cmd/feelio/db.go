package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/feelio-app/feelio/pkg/diary"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the feelio database",
	Long:  `Provides commands for managing the feelio SQLite database, including schema upgrades and destructive resets.`,
}

var dbUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Ensure the diary table exists with the full current column set",
	Long: `Connects to the SQLite database and applies the additive schema migrations.
Safe to run any number of times; columns that already exist are skipped and
existing data is never touched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		// openDB already ran EnsureSchema; reaching this point means the
		// schema is current.
		appLog.Info("database schema is up to date")
		fmt.Println("Database schema is up to date.")
		return nil
	},
}

var dbResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every journal entry",
	Long:  `Removes all entries from the diary table. Destructive and irreversible; requires --yes.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		confirmed, _ := cmd.Flags().GetBool("yes")
		if !confirmed {
			return fmt.Errorf("refusing to delete all entries without --yes")
		}

		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := diary.ClearTable(context.Background(), conn, diary.TableDiary); err != nil {
			return fmt.Errorf("failed to reset journal: %w", err)
		}

		appLog.Warn("journal cleared")
		fmt.Println("All journal entries deleted.")
		return nil
	},
}

func initDBCmd() {
	dbResetCmd.Flags().Bool("yes", false, "Confirm deleting every entry")
	dbCmd.AddCommand(dbUpgradeCmd, dbResetCmd)
}
