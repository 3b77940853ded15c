package config

import (
	"os"
	"path/filepath"
)

// ProjectConfigName is the project-level config file name.
const ProjectConfigName = ".extract-changelog.yml"

// legacyProjectConfigName is the JSON config name accepted for older setups.
const legacyProjectConfigName = ".extract-changelog.json"

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/extract-changelog/config.yml
// - macOS: ~/Library/Application Support/extract-changelog/config.yml
// - Windows: %APPDATA%\extract-changelog\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "extract-changelog", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level config file in dir.
// An empty dir means the current directory.
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, ProjectConfigName)
}

// LegacyProjectConfigPath returns the path to the legacy JSON project config in dir.
func LegacyProjectConfigPath(dir string) string {
	return filepath.Join(dir, legacyProjectConfigName)
}
