//go:build windows

package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/windows/registry"
)

const runKey = `SOFTWARE\Microsoft\Windows\CurrentVersion\Run`

// AutostartName is the value written under the per-user Run key.
const AutostartName = "ringotrack"

// IsAutostartEnabled reports whether the Run entry exists.
func IsAutostartEnabled() bool {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer key.Close()

	_, _, err = key.GetStringValue(AutostartName)
	return err == nil
}

// SetAutostart points the Run entry at the running executable, quoted so
// paths with spaces survive, or removes it. Removing a missing entry is not
// an error.
func SetAutostart(enabled bool) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open run key: %w", err)
	}
	defer key.Close()

	if !enabled {
		if err := key.DeleteValue(AutostartName); err != nil && !errors.Is(err, registry.ErrNotExist) {
			return fmt.Errorf("remove autostart entry: %w", err)
		}
		return nil
	}
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	return key.SetStringValue(AutostartName, `"`+filepath.Clean(exePath)+`"`)
}
