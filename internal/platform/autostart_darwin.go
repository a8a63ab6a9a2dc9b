//go:build darwin

package platform

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (service *platformService) EnableAutostart(appName, execPath string) error {
	if err := checkEntry(appName, execPath, true); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	path, err := launchAgentPath(appName)
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := writeEntry(path, launchAgentPlist(launchAgentLabel(appName), execPath)); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if err := checkEntry(appName, "", false); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	path, err := launchAgentPath(appName)
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := removeEntry(path); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	return nil
}

func launchAgentPath(appName string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, "Library", "LaunchAgents", launchAgentLabel(appName)+".plist"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

func launchAgentLabel(appName string) string {
	return "app.timeframe." + entrySlug(appName)
}

const plistHeader = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
`

// launchAgentPlist renders a login item that starts execPath once per session.
func launchAgentPlist(label, execPath string) string {
	var builder strings.Builder
	builder.WriteString(plistHeader)
	builder.WriteString("<plist version=\"1.0\">\n<dict>\n")
	writePlistKey(&builder, "Label", "<string>"+escapeXML(label)+"</string>")
	writePlistKey(&builder, "ProgramArguments", "<array><string>"+escapeXML(execPath)+"</string></array>")
	writePlistKey(&builder, "RunAtLoad", "<true/>")
	writePlistKey(&builder, "ProcessType", "<string>Interactive</string>")
	builder.WriteString("</dict>\n</plist>\n")
	return builder.String()
}

func writePlistKey(builder *strings.Builder, key, value string) {
	fmt.Fprintf(builder, "\t<key>%s</key>\n\t%s\n", key, value)
}

func escapeXML(value string) string {
	var builder strings.Builder
	_ = xml.EscapeText(&builder, []byte(value))
	return builder.String()
}
