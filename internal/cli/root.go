// Package cli implements the extract-changelog command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/relnotes/extract-changelog/internal/changelog"
	"github.com/relnotes/extract-changelog/internal/config"
	clierrors "github.com/relnotes/extract-changelog/internal/errors"
	"github.com/relnotes/extract-changelog/internal/logger"
	"github.com/relnotes/extract-changelog/internal/version"
	"github.com/spf13/cobra"
)

// rootOptions holds the flag values of a single command invocation.
type rootOptions struct {
	configFile  string
	list        bool
	failMissing bool
	output      string
	plain       bool
	verbose     bool
}

// NewRootCmd builds the extract-changelog command.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "extract-changelog <version> [changelog_path]",
		Short: "Print the changelog section for a version",
		Long: `Print the section of a Markdown changelog that belongs to a version.

A section starts at a header line "# <version> ..." and ends at the next
header shaped like a semantic version ("# 1.2.3") or at the end of the file.
The header itself is dropped and surrounding blank lines are trimmed, so the
output can be used directly as release notes.

The version is matched literally. When it has no section nothing is printed
and the exit status is still 0, unless --fail-missing is given.`,
		Example: `  extract-changelog 1.41.5                       # Notes for 1.41.5 from ./CHANGELOG.md
  extract-changelog 1.41.5 docs/CHANGELOG.md     # Read another file
  extract-changelog 2.0.0 -o release-notes.md    # Write the notes to a file
  extract-changelog 2.0.0 --fail-missing         # Exit 3 if 2.0.0 has no section
  extract-changelog --list                       # List versions in ./CHANGELOG.md`,
		Version:       version.String(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.configFile, "config", "", "Config file (default: .extract-changelog.yml, then ~/.config/extract-changelog/config.yml)")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "List the versions found in the changelog")
	cmd.Flags().BoolVar(&opts.failMissing, "fail-missing", false, "Exit with status 3 when the version has no section")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the section to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Plain output (no colors)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug messages to stderr")

	return cmd
}

// Execute runs the root command with os.Args and reports errors that were
// not already printed. The returned error carries the exit code; see ExitCode.
func Execute() error {
	cmd := NewRootCmd()
	err := cmd.Execute()
	reportError(cmd.ErrOrStderr(), err)
	return err
}

// reportError prints errors that did not come out of the command itself,
// such as unknown flags rejected by cobra.
func reportError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fmt.Fprint(w, clierrors.FormatSimpleError(err, clierrors.Argument))
}

func (o *rootOptions) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ConfigFile:    o.configFile,
		WarningWriter: cmd.ErrOrStderr(),
	})
	if err != nil {
		return o.fail(cmd, clierrors.ConfigInvalid(err), ExitFailure)
	}
	o.applyConfig(cmd, cfg)

	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetVerbose(o.verbose)
	if version.IsDevBuild() {
		logger.Debug("running development build")
	}

	if o.list {
		return o.runList(cmd, args, cfg)
	}
	return o.runExtract(cmd, args, cfg)
}

// applyConfig fills in options whose flags were not set on the command line.
func (o *rootOptions) applyConfig(cmd *cobra.Command, cfg *config.Configuration) {
	flags := cmd.Flags()
	if !flags.Changed("fail-missing") {
		o.failMissing = cfg.FailOnMissing
	}
	if !flags.Changed("plain") {
		o.plain = cfg.Plain
	}
	if !flags.Changed("verbose") {
		o.verbose = cfg.Verbose
	}
}

func (o *rootOptions) runExtract(cmd *cobra.Command, args []string, cfg *config.Configuration) error {
	if len(args) == 0 {
		return o.fail(cmd, clierrors.MissingVersion(), ExitFailure)
	}
	if len(args) > 2 {
		logger.Debug("ignoring extra arguments %q", args[2:])
	}

	ver := args[0]
	path := cfg.ChangelogPath
	if len(args) == 2 {
		path = args[1]
	}

	logger.Debug("reading changelog %s", path)
	doc, err := changelog.ReadFile(path)
	if err != nil {
		return o.fail(cmd, clierrors.ChangelogUnreadable(path, err), ExitFailure)
	}
	logger.Debug("read %d bytes, looking for %q", len(doc), ver)

	section := changelog.Extract(ver, doc)
	if section == "" {
		logger.Info("no section for version %q in %s", ver, path)
		if o.failMissing {
			return o.fail(cmd, clierrors.VersionNotFound(ver, path, changelog.Versions(doc)), ExitVersionNotFound)
		}
		return nil
	}

	if o.output != "" {
		if err := os.WriteFile(o.output, []byte(section+"\n"), 0o644); err != nil {
			return o.fail(cmd, clierrors.OutputNotWritable(o.output, err), ExitFailure)
		}
		logger.Info("wrote %s section to %s", ver, o.output)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), section)
	return nil
}

func (o *rootOptions) runList(cmd *cobra.Command, args []string, cfg *config.Configuration) error {
	if len(args) > 1 {
		return o.fail(cmd, clierrors.TooManyArguments(len(args), clierrors.ListUsage), ExitFailure)
	}

	path := cfg.ChangelogPath
	if len(args) == 1 {
		path = args[0]
	}

	logger.Debug("listing versions in %s", path)
	doc, err := changelog.ReadFile(path)
	if err != nil {
		return o.fail(cmd, clierrors.ChangelogUnreadable(path, err), ExitFailure)
	}

	versions := changelog.Versions(doc)
	if len(versions) == 0 {
		logger.Warn("no version headers found in %s", path)
	}

	if err := changelog.FormatVersions(versions, cmd.OutOrStdout(), changelog.FormatOptions{Plain: o.plain}); err != nil {
		return o.fail(cmd, clierrors.Wrap(err, clierrors.Runtime), ExitFailure)
	}
	return nil
}

// fail reports err on stderr and returns it with the given exit code.
func (o *rootOptions) fail(cmd *cobra.Command, err *clierrors.CLIError, code int) error {
	clierrors.FprintError(cmd.ErrOrStderr(), err, o.plain)
	return &ExitError{Code: code, Err: err}
}
