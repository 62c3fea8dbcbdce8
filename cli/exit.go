package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/sngc/lang"
	"github.com/ardnew/sngc/pkg"
)

// Process exit codes.
const (
	ExitOK      = 0 // success
	ExitFailure = 1 // usage, configuration or I/O failure
	ExitCompile = 2 // lexical, syntax or semantic diagnostic
	ExitCodec   = 3 // value rejected by the image codec
)

// ExitCode returns the process exit code for an error returned by [Run].
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var lerr *lang.Error
	if !errors.As(err, &lerr) {
		return ExitFailure
	}

	if lerr.Kind() == lang.KindCodec {
		return ExitCodec
	}

	return ExitCompile
}

// Diagnose writes err to w as exactly one line. Compile diagnostics keep their
// "<source>:<line>: <message>" form; other errors are prefixed with the
// program name. Styling is applied only when w is a terminal.
func Diagnose(w io.Writer, err error) {
	if err == nil {
		return
	}

	r := lipgloss.NewRenderer(w)
	where := r.NewStyle().Bold(true)
	what := r.NewStyle().Foreground(lipgloss.Color("9"))

	prefix, msg := pkg.Name, err.Error()

	var lerr *lang.Error
	if errors.As(err, &lerr) {
		if pos, ok := lerr.Position(); ok {
			prefix, msg = pos.String(), lerr.Message()
		}
	}

	fmt.Fprintln(w, where.Render(prefix+":"), what.Render(msg))
}
