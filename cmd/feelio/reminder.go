package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/feelio-app/feelio/pkg/reminder"
)

var (
	reminderHourFlag   int
	reminderMinuteFlag int
)

var reminderCmd = &cobra.Command{
	Use:   "reminder",
	Short: "Manage the daily writing reminder",
	Long:  `Show, set, or disable the daily writing reminder time.`,
}

var reminderShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current reminder settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, err := reminder.Load(reminderPrefsPath())
		if err != nil {
			return fmt.Errorf("failed to load reminder settings: %w", err)
		}

		if !prefs.Enabled {
			fmt.Println("Reminder is off.")
			return nil
		}
		fmt.Printf("Reminder is on, set for %02d:%02d daily.\n", prefs.Hour, prefs.Minute)
		return nil
	},
}

var reminderSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set and enable the daily reminder time",
	Long:  `Set the daily reminder to the given --hour and --minute and enable it.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs := reminder.Prefs{
			Hour:    reminderHourFlag,
			Minute:  reminderMinuteFlag,
			Enabled: true,
		}

		if err := reminder.Save(reminderPrefsPath(), prefs); err != nil {
			return fmt.Errorf("failed to save reminder settings: %w", err)
		}

		appLog.WithField("time", fmt.Sprintf("%02d:%02d", prefs.Hour, prefs.Minute)).Info("reminder enabled")
		fmt.Printf("Reminder set for %02d:%02d daily.\n", prefs.Hour, prefs.Minute)
		return nil
	},
}

var reminderOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Disable the daily reminder",
	Long:  `Disable the daily reminder. The configured time is kept so it can be re-enabled later.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := reminderPrefsPath()
		prefs, err := reminder.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load reminder settings: %w", err)
		}

		prefs.Enabled = false
		if err := reminder.Save(path, prefs); err != nil {
			return fmt.Errorf("failed to save reminder settings: %w", err)
		}

		appLog.Info("reminder disabled")
		fmt.Println("Reminder turned off.")
		return nil
	},
}

func initReminderCmd() {
	reminderSetCmd.Flags().IntVar(&reminderHourFlag, "hour", 20, "Hour of day for the reminder (0-23)")
	reminderSetCmd.Flags().IntVar(&reminderMinuteFlag, "minute", 0, "Minute of the hour for the reminder (0-59)")

	reminderCmd.AddCommand(reminderShowCmd, reminderSetCmd, reminderOffCmd)
}
