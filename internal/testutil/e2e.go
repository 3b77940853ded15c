// Package testutil provides test helpers for running the extract-changelog binary.
package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"
)

var (
	// binaryPath caches the built extract-changelog binary path.
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// E2EEnv is an isolated working directory plus HOME for running the binary.
// User and project config lookups only ever see files the test creates.
type E2EEnv struct {
	t       *testing.T
	workDir string
	homeDir string
	extra   []string
}

// CommandResult captures the result of running the binary.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// NewE2EEnv builds the binary (once per test process) and prepares empty
// work and home directories.
func NewE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	buildOnce.Do(func() {
		binaryPath, buildErr = build()
	})
	if buildErr != nil {
		t.Fatalf("building extract-changelog: %v", buildErr)
	}

	root := t.TempDir()
	env := &E2EEnv{
		t:       t,
		workDir: filepath.Join(root, "work"),
		homeDir: filepath.Join(root, "home"),
	}
	for _, dir := range []string{env.workDir, env.homeDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("creating %s: %v", dir, err)
		}
	}
	return env
}

func build() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("determining current file location")
	}
	repoRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")

	tmpDir, err := os.MkdirTemp("", "extract-changelog-build-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir for build: %w", err)
	}

	out := filepath.Join(tmpDir, "extract-changelog")
	cmd := exec.Command("go", "build", "-o", out, "./cmd/extract-changelog")
	cmd.Dir = repoRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%w\nOutput: %s", err, output)
	}
	return out, nil
}

// WorkDir returns the directory the binary runs in.
func (e *E2EEnv) WorkDir() string {
	return e.workDir
}

// WriteFile writes content to a path relative to the work directory.
func (e *E2EEnv) WriteFile(rel, content string) string {
	e.t.Helper()
	path := filepath.Join(e.workDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("creating directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("writing %s: %v", rel, err)
	}
	return path
}

// Setenv adds a variable to the environment of subsequent runs.
func (e *E2EEnv) Setenv(key, value string) {
	e.extra = append(e.extra, key+"="+value)
}

// Run executes the binary with args in the work directory.
func (e *E2EEnv) Run(args ...string) CommandResult {
	e.t.Helper()

	start := time.Now()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = e.workDir
	cmd.Env = e.isolatedEnv()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("running extract-changelog: %v", err)
		}
	}
	return result
}

func (e *E2EEnv) isolatedEnv() []string {
	env := []string{
		"HOME=" + e.homeDir,
		"XDG_CONFIG_HOME=" + filepath.Join(e.homeDir, ".config"),
		"NO_COLOR=1",
	}
	for _, key := range []string{"PATH", "LANG", "LC_ALL", "TMPDIR"} {
		if val, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+val)
		}
	}
	return append(env, e.extra...)
}
