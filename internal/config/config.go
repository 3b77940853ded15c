// Package config provides hierarchical configuration management for extract-changelog using koanf.
// Configuration is loaded with priority: environment variables > explicit --config file >
// project config (.extract-changelog.yml) > user config (~/.config/extract-changelog/config.yml)
// > defaults. A legacy JSON project config (.extract-changelog.json) is still honored.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "EXTRACT_CHANGELOG_"

// Configuration represents the extract-changelog CLI configuration
type Configuration struct {
	// ChangelogPath is the document read when no path argument is given.
	// Relative paths resolve against the working directory.
	ChangelogPath string `koanf:"changelog_path" validate:"required"`

	// FailOnMissing makes a missing version exit with a distinct code
	// instead of printing nothing and exiting 0.
	FailOnMissing bool `koanf:"fail_on_missing"`

	Plain   bool `koanf:"plain"`   // Disable colors in listings and errors
	Verbose bool `koanf:"verbose"` // Log debug messages to stderr
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigFile is an explicit config file (--config). It must exist.
	ConfigFile string
	// ProjectDir is the directory searched for project config (default: current directory)
	ProjectDir string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// LoadWithOptions loads configuration from defaults, user, project, explicit
// and environment sources.
// Priority: Environment variables > --config file > Project config > User config > Defaults
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectDir, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadExplicitConfig(k, opts.ConfigFile); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if present.
func loadUserConfig(k *koanf.Koanf) error {
	userPath, err := UserConfigPath()
	if err != nil || !fileExists(userPath) {
		return nil
	}
	if err := loadYAMLConfig(k, userPath, "user"); err != nil {
		return fmt.Errorf("loading user YAML config: %w", err)
	}
	return nil
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON supported).
// Warns if both exist (YAML used, JSON ignored) or if only legacy JSON exists.
func loadProjectConfig(k *koanf.Koanf, dir string, warningWriter io.Writer, skipWarnings bool) error {
	yamlPath := ProjectConfigPath(dir)
	legacyPath := LegacyProjectConfigPath(dir)

	yamlExists := fileExists(yamlPath)
	legacyExists := fileExists(legacyPath)

	if yamlExists {
		if err := loadYAMLConfig(k, yamlPath, "project"); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
		if legacyExists && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n\n", legacyPath, yamlPath)
		}
	} else if legacyExists {
		if err := loadLegacyJSONConfig(k, legacyPath, warningWriter, skipWarnings); err != nil {
			return fmt.Errorf("loading legacy project JSON config: %w", err)
		}
	}
	return nil
}

// loadExplicitConfig loads the file passed with --config, picking the parser
// from its extension.
func loadExplicitConfig(k *koanf.Koanf, path string) error {
	if path == "" {
		return nil
	}
	if !fileExists(path) {
		return fmt.Errorf("config file not found: %s", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load config %s: %w", path, err)
		}
		return nil
	}
	return loadYAMLConfig(k, path, "explicit")
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadLegacyJSONConfig loads legacy JSON and warns about migration
func loadLegacyJSONConfig(k *koanf.Koanf, path string, warningWriter io.Writer, skipWarnings bool) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load legacy project config %s: %w", path, err)
	}
	if !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", path)
		fmt.Fprintf(warningWriter, "  Rename it to %s and convert it to YAML.\n\n", ProjectConfigName)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.ChangelogPath = expandHomePath(cfg.ChangelogPath)

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: EXTRACT_CHANGELOG_FAIL_ON_MISSING -> fail_on_missing
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
