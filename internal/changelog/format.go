package changelog

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain bool // Disable colors and bullets
}

// fdWriter is implemented by *os.File and lets us detect terminals.
type fdWriter interface {
	Fd() uintptr
}

// FormatVersions writes one version per line to w.
// Styled output is only used when opts.Plain is false and w is a terminal,
// so piped output stays one bare version per line.
func FormatVersions(versions []string, w io.Writer, opts FormatOptions) error {
	styled := !opts.Plain && isTerminal(w)

	bullet := color.New(color.FgGreen)
	name := color.New(color.Bold)
	if styled {
		bullet.EnableColor()
		name.EnableColor()
	}

	for _, v := range versions {
		var err error
		if styled {
			_, err = fmt.Fprintf(w, "%s %s\n", bullet.Sprint("•"), name.Sprint(v))
		} else {
			_, err = fmt.Fprintln(w, v)
		}
		if err != nil {
			return fmt.Errorf("writing version %s: %w", v, err)
		}
	}

	return nil
}

// isTerminal reports whether w is backed by a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
