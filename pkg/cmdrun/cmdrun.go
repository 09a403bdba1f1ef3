// Package cmdrun executes external commands for the publish workflows.
//
// Every invocation is synchronous and blocking.  There are no retries and
// no timeouts: each command mutates shared remote state, so the policy on
// failure is to surface the exact command line to the operator and stop.
package cmdrun

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/warptools/depship/dsapi"
	"github.com/warptools/depship/pkg/logging"
)

// Runner is the narrow command-execution interface the workflows consume.
// Run streams output through the logger; Output captures stdout for the
// few commands whose text the workflows actually parse.
type Runner interface {
	// Run executes the command in dir, relaying its output.
	//
	// Errors:
	//
	//    - depship-error-cmd -- the command exited nonzero or could not start
	Run(ctx context.Context, dir string, args ...string) error

	// Output executes the command in dir and returns its captured stdout.
	//
	// Errors:
	//
	//    - depship-error-cmd -- the command exited nonzero or could not start
	Output(ctx context.Context, dir string, args ...string) (string, error)
}

// Exec is the Runner backed by os/exec.
type Exec struct{}

var _ Runner = Exec{}

// Run implements Runner.
//
// Errors:
//
//    - depship-error-cmd --
func (Exec) Run(ctx context.Context, dir string, args ...string) error {
	if len(args) == 0 {
		return dsapi.ErrorCmd("", errors.New("no command given"))
	}
	log := logging.Ctx(ctx)
	cmdline := strings.Join(args, " ")
	log.Debug(args[0], "running: %s", cmdline)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Stdout = log.InfoWriter(args[0])
	cmd.Stderr = log.InfoWriter(args[0])
	if err := cmd.Run(); err != nil {
		return dsapi.ErrorCmd(cmdline, err)
	}
	return nil
}

// Output implements Runner.  Stderr is still relayed to the logger, since
// tools like gh print diagnostics there that the operator will want on
// failure.
//
// Errors:
//
//    - depship-error-cmd --
func (Exec) Output(ctx context.Context, dir string, args ...string) (string, error) {
	if len(args) == 0 {
		return "", dsapi.ErrorCmd("", errors.New("no command given"))
	}
	log := logging.Ctx(ctx)
	cmdline := strings.Join(args, " ")
	log.Debug(args[0], "running: %s", cmdline)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = log.InfoWriter(args[0])
	if err := cmd.Run(); err != nil {
		return stdout.String(), dsapi.ErrorCmd(cmdline, err)
	}
	return stdout.String(), nil
}
