// Package runner executes external tools (nmcli, dmenu) and maps their
// failures onto a single error type that carries the tool name.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Cmd describes one invocation of an external tool.
type Cmd struct {
	Name  string
	Args  []string
	Stdin string
	// Timeout bounds the call. Zero means wait for the tool to exit.
	Timeout time.Duration
}

// String renders the command line for logs and error messages.
func (c Cmd) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result holds what a finished tool produced.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs external tools. Implementations return a *ToolError for every
// failure class: missing binary, timeout, and non-zero exit.
type Runner interface {
	Run(ctx context.Context, cmd Cmd) (Result, error)
}

// ToolError reports that an external tool could not be run, timed out, or
// exited with a non-zero status.
type ToolError struct {
	Tool     string
	Args     []string
	ExitCode int // -1 when the tool did not exit on its own
	Timeout  bool
	Stderr   string
	Err      error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("error running %s:\n%s", e.Tool, e.message())
}

func (e *ToolError) message() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("command %q timed out", Cmd{Name: e.Tool, Args: e.Args}.String())
	case e.Stderr != "":
		return e.Stderr
	case e.Err != nil:
		return e.Err.Error()
	default:
		return fmt.Sprintf("exit status %d", e.ExitCode)
	}
}

func (e *ToolError) Unwrap() error { return e.Err }

// DefaultWaitDelay bounds how long Run waits for a killed tool's output pipes
// to close, for example when it left a child process holding them.
const DefaultWaitDelay = 2 * time.Second

// Exec runs tools with os/exec.
type Exec struct {
	// WaitDelay overrides DefaultWaitDelay when positive.
	WaitDelay time.Duration
}

// Run starts cmd, feeds it Stdin, and waits for it to exit or for the timeout
// to elapse. Stdout and stderr are captured in full.
func (e Exec) Run(ctx context.Context, cmd Cmd) (Result, error) {
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.WaitDelay = DefaultWaitDelay
	if e.WaitDelay > 0 {
		c.WaitDelay = e.WaitDelay
	}
	var stdout, stderr bytes.Buffer
	c.Stdout, c.Stderr = &stdout, &stderr
	if cmd.Stdin != "" {
		c.Stdin = strings.NewReader(cmd.Stdin)
	}

	err := c.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: c.ProcessState.ExitCode(),
	}
	if err == nil {
		return res, nil
	}

	te := &ToolError{
		Tool:     cmd.Name,
		Args:     cmd.Args,
		ExitCode: res.ExitCode,
		Stderr:   strings.TrimSpace(res.Stderr),
		Err:      err,
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		te.Timeout = true
		te.ExitCode = -1
	}
	return res, te
}

// ExitCode extracts the tool's exit status from err, or -1 when err is not a
// *ToolError for an exited tool.
func ExitCode(err error) int {
	var te *ToolError
	if errors.As(err, &te) {
		return te.ExitCode
	}
	return -1
}
