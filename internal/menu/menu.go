// Package menu presents a list of entries through a dmenu-compatible program
// and returns the line the user picked.
package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/scbrown/nm-dmenu/internal/runner"
)

// DefaultProgram is the menu launcher used when none is configured.
const DefaultProgram = "dmenu"

// CancelledError reports that the menu program exited non-zero, usually
// because the user dismissed it. Code is the program's exit status.
type CancelledError struct {
	Code int
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("menu exited with status %d", e.Code)
}

// Dmenu runs a program that reads entries on stdin, one per line, and prints
// the selected entry on stdout.
type Dmenu struct {
	Runner  runner.Runner
	Program string
	Args    []string
}

// Choose shows entries and returns the selected line. It waits for the user
// without a timeout.
func (d *Dmenu) Choose(ctx context.Context, entries []string) (string, error) {
	prog := d.Program
	if prog == "" {
		prog = DefaultProgram
	}
	res, err := d.Runner.Run(ctx, runner.Cmd{
		Name:  prog,
		Args:  d.Args,
		Stdin: strings.Join(entries, "\n"),
	})
	if err != nil {
		var te *runner.ToolError
		if errors.As(err, &te) && te.ExitCode > 0 {
			return "", &CancelledError{Code: te.ExitCode}
		}
		return "", err
	}
	return strings.TrimRight(res.Stdout, "\n"), nil
}
