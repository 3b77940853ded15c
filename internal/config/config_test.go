package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateUserConfig points the user config directory at an empty temp dir
// and returns it.
func isolateUserConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadWithOptions(t *testing.T) {
	tests := map[string]struct {
		userConfig    string
		projectYAML   string
		projectJSON   string
		explicit      string
		explicitName  string
		env           map[string]string
		want          Configuration
		wantWarning   string
		wantNoWarning bool
	}{
		"defaults": {
			want:          Configuration{ChangelogPath: "CHANGELOG.md"},
			wantNoWarning: true,
		},
		"user config": {
			userConfig: "changelog_path: HISTORY.md\nplain: true\n",
			want:       Configuration{ChangelogPath: "HISTORY.md", Plain: true},
		},
		"project overrides user": {
			userConfig:  "changelog_path: HISTORY.md\nverbose: true\n",
			projectYAML: "changelog_path: docs/CHANGES.md\nfail_on_missing: true\n",
			want:        Configuration{ChangelogPath: "docs/CHANGES.md", FailOnMissing: true, Verbose: true},
		},
		"legacy json project config warns": {
			projectJSON: `{"changelog_path": "legacy.md"}`,
			want:        Configuration{ChangelogPath: "legacy.md"},
			wantWarning: "Warning: Using deprecated JSON config",
		},
		"yaml wins over legacy json": {
			projectYAML: "changelog_path: new.md\n",
			projectJSON: `{"changelog_path": "legacy.md"}`,
			want:        Configuration{ChangelogPath: "new.md"},
			wantWarning: "Legacy JSON config found",
		},
		"explicit yaml overrides project": {
			projectYAML:  "changelog_path: project.md\n",
			explicit:     "changelog_path: explicit.md\nplain: true\n",
			explicitName: "custom.yml",
			want:         Configuration{ChangelogPath: "explicit.md", Plain: true},
		},
		"explicit json": {
			explicit:     `{"fail_on_missing": true}`,
			explicitName: "custom.json",
			want:         Configuration{ChangelogPath: "CHANGELOG.md", FailOnMissing: true},
		},
		"environment overrides files": {
			projectYAML: "changelog_path: project.md\n",
			env: map[string]string{
				"EXTRACT_CHANGELOG_CHANGELOG_PATH":  "env.md",
				"EXTRACT_CHANGELOG_FAIL_ON_MISSING": "true",
			},
			want: Configuration{ChangelogPath: "env.md", FailOnMissing: true},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolateUserConfig(t)
			projectDir := t.TempDir()

			if tt.userConfig != "" {
				userPath, err := UserConfigPath()
				require.NoError(t, err)
				writeFile(t, userPath, tt.userConfig)
			}
			if tt.projectYAML != "" {
				writeFile(t, ProjectConfigPath(projectDir), tt.projectYAML)
			}
			if tt.projectJSON != "" {
				writeFile(t, LegacyProjectConfigPath(projectDir), tt.projectJSON)
			}
			var explicitPath string
			if tt.explicit != "" {
				explicitPath = filepath.Join(t.TempDir(), tt.explicitName)
				writeFile(t, explicitPath, tt.explicit)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			var warnings bytes.Buffer
			cfg, err := LoadWithOptions(LoadOptions{
				ConfigFile:    explicitPath,
				ProjectDir:    projectDir,
				WarningWriter: &warnings,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, *cfg)

			if tt.wantWarning != "" {
				assert.Contains(t, warnings.String(), tt.wantWarning)
			}
			if tt.wantNoWarning {
				assert.Empty(t, warnings.String())
			}
		})
	}
}

func TestLoadWithOptionsSkipWarnings(t *testing.T) {
	isolateUserConfig(t)
	projectDir := t.TempDir()
	writeFile(t, LegacyProjectConfigPath(projectDir), `{"plain": true}`)

	var warnings bytes.Buffer
	cfg, err := LoadWithOptions(LoadOptions{
		ProjectDir:    projectDir,
		WarningWriter: &warnings,
		SkipWarnings:  true,
	})
	require.NoError(t, err)
	assert.True(t, cfg.Plain)
	assert.Empty(t, warnings.String())
}

func TestLoadWithOptionsErrors(t *testing.T) {
	tests := map[string]struct {
		projectYAML string
		configFile  string
		wantErr     string
	}{
		"invalid project yaml": {
			projectYAML: "changelog_path: ok.md\n\tplain: true\n",
			wantErr:     "validating YAML syntax for project config",
		},
		"blank changelog path": {
			projectYAML: "changelog_path: \"   \"\n",
			wantErr:     "field 'changelog_path': must not be blank",
		},
		"empty changelog path": {
			projectYAML: "changelog_path: \"\"\n",
			wantErr:     "field 'changelog_path': is required",
		},
		"missing explicit config": {
			configFile: "does-not-exist.yml",
			wantErr:    "config file not found",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolateUserConfig(t)
			projectDir := t.TempDir()
			if tt.projectYAML != "" {
				writeFile(t, ProjectConfigPath(projectDir), tt.projectYAML)
			}
			configFile := tt.configFile
			if configFile != "" {
				configFile = filepath.Join(projectDir, configFile)
			}

			_, err := LoadWithOptions(LoadOptions{
				ConfigFile:    configFile,
				ProjectDir:    projectDir,
				WarningWriter: &bytes.Buffer{},
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadExpandsHomeInChangelogPath(t *testing.T) {
	home := isolateUserConfig(t)
	projectDir := t.TempDir()
	writeFile(t, ProjectConfigPath(projectDir), "changelog_path: ~/notes/CHANGELOG.md\n")

	cfg, err := LoadWithOptions(LoadOptions{ProjectDir: projectDir, WarningWriter: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "notes", "CHANGELOG.md"), cfg.ChangelogPath)
}

func TestValidateYAMLSyntax(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := map[string]struct {
		content  *string
		wantErr  bool
		wantLine bool
	}{
		"missing file": {
			content: nil,
		},
		"empty file": {
			content: strPtr("   \n"),
		},
		"valid yaml": {
			content: strPtr("changelog_path: CHANGELOG.md\n"),
		},
		"tab indentation": {
			content:  strPtr("changelog_path: x\n\tplain: true\n"),
			wantErr:  true,
			wantLine: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(dir, name+".yml")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o644))
			}

			err := ValidateYAMLSyntax(path)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, path, vErr.FilePath)
			assert.NotEmpty(t, vErr.Message)
			if tt.wantLine {
				assert.Positive(t, vErr.Line)
			}
		})
	}
}

func TestValidationErrorString(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  ValidationError
		want string
	}{
		"with line": {
			err:  ValidationError{FilePath: "a.yml", Line: 3, Column: 2, Message: "bad"},
			want: "a.yml:3:2: bad",
		},
		"with field": {
			err:  ValidationError{FilePath: "config", Field: "changelog_path", Message: "is required"},
			want: "config: field 'changelog_path': is required",
		},
		"message only": {
			err:  ValidationError{FilePath: "a.yml", Message: "permission denied"},
			want: "a.yml: permission denied",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "changelog_path", envTransform("EXTRACT_CHANGELOG_CHANGELOG_PATH"))
	assert.Equal(t, "fail_on_missing", envTransform("EXTRACT_CHANGELOG_FAIL_ON_MISSING"))
}

func strPtr(s string) *string {
	return &s
}
