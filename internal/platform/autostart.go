package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultEntryName = "timeframe"

var (
	// ErrEmptyAppName indicates an autostart request without an entry name.
	ErrEmptyAppName = errors.New("app name is empty")
	// ErrEmptyExecPath indicates an autostart request without an executable.
	ErrEmptyExecPath = errors.New("exec path is empty")
)

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	EnableAutostart(appName, execPath string) error
	DisableAutostart(appName string) error
}

type platformService struct {
	configDir string
}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	if service.configDir != "" {
		return service.configDir, nil
	}

	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// ApplyAutostart registers or removes the current executable as a login item.
func ApplyAutostart(service Service, appName string, enabled bool) error {
	if !enabled {
		return service.DisableAutostart(appName)
	}
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	return service.EnableAutostart(appName, execPath)
}

func entrySlug(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = defaultEntryName
	}
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}

func checkEntry(appName, execPath string, needExec bool) error {
	if strings.TrimSpace(appName) == "" {
		return ErrEmptyAppName
	}
	if needExec && strings.TrimSpace(execPath) == "" {
		return ErrEmptyExecPath
	}
	return nil
}

func writeEntry(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func removeEntry(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}
