package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/feelio-app/feelio/pkg/export"
)

var exportDirFlag string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the journal to a JSON backup file",
	Long: `Write every journal entry into a portable JSON backup file named
feelio-backup-YYYY-MM-DD.json in the export directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		dir := exportDirFlag
		if dir == "" {
			dir = appCfg.Export.Dir
		}

		result := export.Export(cmd.Context(), dbConn, dir, time.Now())
		if !result.Success {
			appLog.WithField("error", result.Err).Error("export failed")
			return fmt.Errorf("export failed: %s", result.Err)
		}

		appLog.WithField("path", result.Path).Info("journal exported")
		fmt.Printf("Exported %d entries to %s\n", result.EntryCount, result.Path)
		return nil
	},
}

func initExportCmd() {
	exportCmd.Flags().StringVar(&exportDirFlag, "dir", "", "Directory to write the backup into (default: export dir from the config file)")
}
