//go:build linux

package platform

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (service *platformService) EnableAutostart(appName, execPath string) error {
	if err := checkEntry(appName, execPath, true); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	path, err := service.desktopEntryPath(appName)
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := writeEntry(path, desktopEntry(appName, execPath)); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if err := checkEntry(appName, "", false); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	path, err := service.desktopEntryPath(appName)
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := removeEntry(path); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	return nil
}

func (service *platformService) desktopEntryPath(appName string) (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", entrySlug(appName)+".desktop"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

// desktopEntry renders an XDG autostart entry. Exec paths with spaces are quoted.
func desktopEntry(appName, execPath string) string {
	if strings.ContainsAny(execPath, " \t") && !strings.HasPrefix(execPath, `"`) {
		execPath = `"` + execPath + `"`
	}

	lines := []string{
		"[Desktop Entry]",
		"Type=Application",
		"Name=" + appName,
		"Comment=Interval alerts, countup timer and stopwatch",
		"Exec=" + execPath,
		"Terminal=false",
		"X-GNOME-Autostart-enabled=true",
	}
	return strings.Join(lines, "\n") + "\n"
}
