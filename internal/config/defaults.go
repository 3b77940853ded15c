package config

// DefaultChangelogPath is the document read when no path is configured.
const DefaultChangelogPath = "CHANGELOG.md"

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_path": DefaultChangelogPath,
		// fail_on_missing: absence is reported through an empty result, not the exit code.
		"fail_on_missing": false,
		"plain":           false,
		"verbose":         false,
	}
}
