package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the extract-changelog CLI.
// A missing version exits 0 unless failing on missing versions is enabled,
// so release scripts can treat "no notes" as an empty body.
const (
	// ExitSuccess indicates the command ran, whether or not a section was found
	ExitSuccess = 0

	// ExitFailure indicates a usage error, an unreadable changelog or bad configuration
	ExitFailure = 1

	// ExitVersionNotFound indicates the version has no section (only with --fail-missing)
	ExitVersionNotFound = 3
)

// ExitError carries a process exit code through cobra's error return.
// Err, when set, has already been reported to the user.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the reported cause, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by Execute to a process exit status.
// Errors without an explicit code exit with ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
