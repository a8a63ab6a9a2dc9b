//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func (service *platformService) EnableAutostart(appName, execPath string) error {
	if err := checkEntry(appName, execPath, true); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return runReg("enable autostart", "add", registryRunKey, "/v", appName, "/t", "REG_SZ", "/d", quoteWindowsPath(execPath), "/f")
}

func (service *platformService) DisableAutostart(appName string) error {
	if err := checkEntry(appName, "", false); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	return runReg("disable autostart", "delete", registryRunKey, "/v", appName, "/f")
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func runReg(operation string, args ...string) error {
	output, err := exec.Command("reg", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: reg %s: %w: %s", operation, args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}

func quoteWindowsPath(execPath string) string {
	return `"` + strings.Trim(execPath, `"`) + `"`
}
