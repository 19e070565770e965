package featmatrix

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/leodido/featmatrix/internal/log"
)

// Executor runs an external command to completion.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) Result
}

// ExecFunc adapts a function to the [Executor] interface.
type ExecFunc func(ctx context.Context, name string, args ...string) Result

// Run calls f(ctx, name, args...).
func (f ExecFunc) Run(ctx context.Context, name string, args ...string) Result {
	return f(ctx, name, args...)
}

// Runner invokes a [Command] once per combination of a [Matrix].
//
// Invocations are strictly sequential: exactly one child process is in flight
// at a time, and there is no timeout.
type Runner struct {
	Command Command

	// Out receives progress and failure lines. Defaults to os.Stdout.
	Out io.Writer
	// Stdout and Stderr are handed to the child process.
	// They default to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer

	// Exec overrides how the command is run. Defaults to os/exec.
	Exec Executor

	// DryRun prints each command line to Stderr instead of running it.
	DryRun bool
}

// Run enumerates the matrix and invokes the command for each combination.
//
// It returns nil if every invocation succeeded, or a *[CombinationError]
// for the first one that did not. No combination after a failure is attempted.
func (r *Runner) Run(ctx context.Context, m *Matrix) error {
	it := m.Iter()
	for it.Next() {
		c := it.Combination()
		features := c.String()

		res := r.RunOne(ctx, c)
		if res.OK() {
			continue
		}

		fmt.Fprintf(r.out(), "%s failed. Exiting with code 1.\n", features)
		flush(r.out())

		return &CombinationError{
			Features: features,
			Index:    it.Index(),
			Code:     res.Code,
			Reason:   describeExit(res),
			Err:      res.Err,
		}
	}
	return nil
}

// RunOne announces and runs the command for a single combination.
func (r *Runner) RunOne(ctx context.Context, c Combination) Result {
	features := c.String()

	// The progress line must be visible before the child writes anything.
	fmt.Fprintf(r.out(), "Starting tests with features: %s\n", features)
	flush(r.out())

	argv := r.Command.Argv(features)
	if r.DryRun {
		fmt.Fprintf(r.stderr(), "+ %s\n", strings.Join(argv, " "))
		return Result{}
	}

	log.WithFields(log.Fields{"argv": argv}).Debug("invoking command")
	start := time.Now()
	res := r.executor().Run(ctx, argv[0], argv[1:]...)
	entry := log.WithFields(log.Fields{
		"features": features,
		"code":     res.Code,
		"duration": time.Since(start).Round(time.Millisecond),
	})
	if res.OK() {
		entry.Debug("command finished")
	} else {
		entry.WithField("reason", describeExit(res)).Debug("command failed")
	}
	return res
}

func (r *Runner) out() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return os.Stdout
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}

func (r *Runner) executor() Executor {
	if r.Exec != nil {
		return r.Exec
	}
	return &processExecutor{stdout: r.stdout(), stderr: r.stderr()}
}

type flusher interface {
	Flush() error
}

// flush pushes buffered writers through. os.Stdout is unbuffered.
func flush(w io.Writer) {
	if f, ok := w.(flusher); ok {
		_ = f.Flush()
	}
}

// processExecutor runs commands with os/exec, inheriting stdin.
type processExecutor struct {
	stdout io.Writer
	stderr io.Writer
}

func (p *processExecutor) Run(ctx context.Context, name string, args ...string) Result {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = p.stdout
	cmd.Stderr = p.stderr
	err := cmd.Run()
	code := 0
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) && ee.ExitCode() > 0 {
			code = ee.ExitCode()
		} else {
			// Start failures and abnormal termination (ExitCode -1).
			code = 1
		}
	}
	return Result{Code: code, Err: err}
}

// describeExit returns a short human-readable reason for a failed result.
func describeExit(res Result) string {
	if res.Err == nil {
		return fmt.Sprintf("exit status %d", res.Code)
	}
	var ee *exec.ExitError
	if errors.As(res.Err, &ee) {
		if sig, ok := signalName(ee); ok {
			return "terminated by signal " + sig
		}
		return fmt.Sprintf("exit status %d", ee.ExitCode())
	}
	return "command did not complete"
}
