package errors

import (
	"fmt"
	"strings"
)

// Usage is the command synopsis shown with argument errors.
const Usage = "extract-changelog <version> [changelog_path]"

// ListUsage is the synopsis shown when --list is given extra arguments.
const ListUsage = "extract-changelog --list [changelog_path]"

// MissingVersion creates an error for a missing version argument.
func MissingVersion() *CLIError {
	return NewArgumentErrorWithUsage(
		"version is required",
		Usage,
		"Pass the version whose notes you want, e.g. extract-changelog 1.4.2",
		"Use --list to see the versions in the changelog",
	)
}

// TooManyArguments creates an error when more positional arguments are given than accepted.
func TooManyArguments(got int, usage string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("too many arguments: got %d", got),
		usage,
		"Quote versions that contain spaces",
	)
}

// ChangelogUnreadable creates an error when the changelog cannot be read.
func ChangelogUnreadable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		"cannot read changelog",
		fmt.Sprintf("Check that %s exists and is readable", path),
		"Pass the path explicitly: extract-changelog <version> path/to/CHANGELOG.md",
		"Or set changelog_path in .extract-changelog.yml",
	)
}

// VersionNotFound creates an error when the requested version has no section.
// Only reported when missing versions are configured to fail.
func VersionNotFound(version, path string, available []string) *CLIError {
	remediation := []string{
		fmt.Sprintf("Add a \"# %s\" header to %s", version, path),
	}
	if len(available) > 0 {
		remediation = append(remediation, fmt.Sprintf("Versions found: %s", joinVersions(available, 5)))
	}
	return NewRuntimeError(
		fmt.Sprintf("version %q not found in %s", version, path),
		remediation...,
	)
}

// OutputNotWritable creates an error when the --output file cannot be written.
func OutputNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot write to file: %s", path),
		"Ensure parent directory exists and is writable",
	)
}

// ConfigInvalid creates an error for a configuration that failed to load or validate.
func ConfigInvalid(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Check .extract-changelog.yml and ~/.config/extract-changelog/config.yml for syntax errors",
		"Unset EXTRACT_CHANGELOG_* environment variables to rule them out",
	)
}

// joinVersions joins at most limit versions, noting how many were left out.
func joinVersions(versions []string, limit int) string {
	if len(versions) <= limit {
		return strings.Join(versions, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(versions[:limit], ", "), len(versions)-limit)
}
