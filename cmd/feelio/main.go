package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	feelio "github.com/feelio-app/feelio/pkg"
	"github.com/feelio-app/feelio/pkg/config"
	pkgdb "github.com/feelio-app/feelio/pkg/db"
	"github.com/feelio-app/feelio/pkg/logger"
)

var (
	dbPath   string
	cfgPath  string
	walMode  bool
	syncMode string

	appCfg *config.Config
	appLog *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:     "feelio",
	Short:   "A private, local-first journal with moods, weather snapshots, and photos.",
	Long:    ``,
	Version: fmt.Sprintf("v%s", feelio.Version),
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgPath
		if path == "" {
			path = defaultConfigPath()
		}

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		appCfg = cfg

		log, err := logger.New(appCfg.Log.Dir)
		if err != nil {
			// A broken log dir shouldn't keep the journal from working.
			log = logger.Nop()
			fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
		}
		appLog = log
		return nil
	},
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for feelio.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of feelio",
	Long:  `All software has versions. This is feelio's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(feelio.Version)
	},
}

// openDB resolves the database path (flag wins over config), makes sure its
// directory exists, opens the connection, and brings the schema up to date.
// Every command path goes through here, so migrations run on every start.
func openDB() (*sql.DB, error) {
	path := dbPath
	if path == "" {
		path = appCfg.Database.Path
	}

	wal := appCfg.Database.WAL
	if rootCmd.PersistentFlags().Changed("wal") {
		wal = walMode
	}
	sync := appCfg.Database.Sync
	if rootCmd.PersistentFlags().Changed("sync") {
		sync = syncMode
	}

	resolved, err := resolveAndEnsureDBPath(path)
	if err != nil {
		return nil, err
	}

	conn, err := pkgdb.OpenConnection(resolved, wal, sync)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pkgdb.EnsureSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

func initCmd() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "dbpath", "", "Path to the feelio SQLite database file (overrides the config file)")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to the feelio config file (default: per-OS app dir)")
	rootCmd.PersistentFlags().BoolVar(&walMode, "wal", true, "Enable SQLite WAL (Write-Ahead Logging) mode")
	rootCmd.PersistentFlags().StringVar(&syncMode, "sync", "NORMAL", "SQLite synchronous pragma (OFF, NORMAL, FULL, EXTRA)")

	initDBCmd()
	initEntriesCmd()
	initStatsCmd()
	initExportCmd()
	initReminderCmd()

	rootCmd.AddCommand(completionCmd, versionCmd, dbCmd, entriesCmd, statsCmd, exportCmd, reminderCmd, mcpCmd)
}

func main() {
	initCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
