//go:build e2e

// Package e2e runs the built extract-changelog binary end to end.
package e2e

import (
	"testing"

	"github.com/relnotes/extract-changelog/internal/cli"
	"github.com/relnotes/extract-changelog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const changelog = `# Changelog

# 0.2.0 - 2024-05-01

### Added
- Support for --list

# 0.1.0

- First public release
`

func TestE2E_ExitCodes(t *testing.T) {
	tests := map[string]struct {
		setup      func(env *testutil.E2EEnv)
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		"extracts a section": {
			args:       []string{"0.2.0"},
			wantCode:   cli.ExitSuccess,
			wantStdout: "### Added\n- Support for --list\n",
		},
		"missing version is silent": {
			args:     []string{"9.9.9"},
			wantCode: cli.ExitSuccess,
		},
		"missing version with fail-missing": {
			args:       []string{"9.9.9", "--fail-missing"},
			wantCode:   cli.ExitVersionNotFound,
			wantStderr: `version "9.9.9" not found`,
		},
		"fail-missing from environment": {
			setup:    func(env *testutil.E2EEnv) { env.Setenv("EXTRACT_CHANGELOG_FAIL_ON_MISSING", "true") },
			args:     []string{"9.9.9"},
			wantCode: cli.ExitVersionNotFound,
		},
		"extra arguments are ignored": {
			args:       []string{"0.1.0", "CHANGELOG.md", "extra"},
			wantCode:   cli.ExitSuccess,
			wantStdout: "- First public release\n",
		},
		"empty version": {
			args:     []string{""},
			wantCode: cli.ExitSuccess,
		},
		"no arguments": {
			args:       nil,
			wantCode:   cli.ExitFailure,
			wantStderr: "version is required",
		},
		"unreadable changelog": {
			args:       []string{"0.1.0", "missing.md"},
			wantCode:   cli.ExitFailure,
			wantStderr: "cannot read changelog",
		},
		"unknown flag": {
			args:       []string{"0.1.0", "--bogus"},
			wantCode:   cli.ExitFailure,
			wantStderr: "unknown flag: --bogus",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env := testutil.NewE2EEnv(t)
			env.WriteFile("CHANGELOG.md", changelog)
			if tt.setup != nil {
				tt.setup(env)
			}

			result := env.Run(tt.args...)

			assert.Equal(t, tt.wantCode, result.ExitCode, "stderr: %s", result.Stderr)
			assert.Equal(t, tt.wantStdout, result.Stdout)
			if tt.wantStderr != "" {
				assert.Contains(t, result.Stderr, tt.wantStderr)
			}
		})
	}
}

func TestE2E_List(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	env.WriteFile("docs/HISTORY.md", changelog)
	env.WriteFile(".extract-changelog.yml", "changelog_path: docs/HISTORY.md\n")

	result := env.Run("--list")
	require.Equal(t, cli.ExitSuccess, result.ExitCode, "stderr: %s", result.Stderr)
	assert.Equal(t, "0.2.0\n0.1.0\n", result.Stdout)
}

func TestE2E_Version(t *testing.T) {
	env := testutil.NewE2EEnv(t)

	result := env.Run("--version")
	require.Equal(t, cli.ExitSuccess, result.ExitCode)
	assert.Contains(t, result.Stdout, "extract-changelog version dev")
}
