// Package reminder persists the daily journaling reminder preference. This
// is deliberately a separate store from the diary database: scheduling the
// actual notification is a platform concern, the journal core only owns the
// {hour, minute, enabled} triple.
package reminder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the conventional name for the reminder preferences file.
const FileName = "reminder.toml"

// Prefs is the persisted reminder state.
type Prefs struct {
	Hour    int  `toml:"hour"`
	Minute  int  `toml:"minute"`
	Enabled bool `toml:"enabled"`
}

// Validate checks that the reminder time is a valid wall-clock time.
func (p Prefs) Validate() error {
	if p.Hour < 0 || p.Hour > 23 {
		return fmt.Errorf("reminder hour must be between 0 and 23, got %d", p.Hour)
	}
	if p.Minute < 0 || p.Minute > 59 {
		return fmt.Errorf("reminder minute must be between 0 and 59, got %d", p.Minute)
	}
	return nil
}

// Load reads the reminder preferences from path. A missing file means the
// reminder was never configured and yields a disabled zero value.
func Load(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Prefs{}, nil
		}
		return Prefs{}, fmt.Errorf("failed to read reminder prefs '%s': %w", path, err)
	}

	var prefs Prefs
	if err := toml.Unmarshal(data, &prefs); err != nil {
		return Prefs{}, fmt.Errorf("failed to parse reminder prefs '%s': %w", path, err)
	}

	return prefs, nil
}

// Save writes the reminder preferences to path, creating parent directories
// as needed.
func Save(path string, prefs Prefs) error {
	if err := prefs.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create reminder prefs directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create reminder prefs file '%s': %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(prefs); err != nil {
		return fmt.Errorf("failed to encode reminder prefs: %w", err)
	}

	return nil
}
