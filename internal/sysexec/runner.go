// Package sysexec abstracts process execution so installers can run real
// commands, be replaced by fakes in tests, or log-only in dry-run mode.
package sysexec

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// Command describes one process invocation.
type Command struct {
	Name string
	Args []string
	// Env entries are appended to the inherited environment.
	Env []string
	Dir string
}

// String renders the command for logs and error messages.
func (c Command) String() string {
	parts := append([]string{c.Name}, c.Args...)
	return strings.Join(parts, " ")
}

// Runner is the execution boundary for install steps.
type Runner interface {
	Run(ctx context.Context, cmd Command) (string, error)
	LookPath(name string) (string, error)
}

// Local runs commands on the host via os/exec.
type Local struct{}

func (Local) Run(ctx context.Context, cmd Command) (string, error) {
	command := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if len(cmd.Env) > 0 {
		command.Env = append(os.Environ(), cmd.Env...)
	}
	command.Dir = cmd.Dir
	out, err := command.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("%s: %w: %s", cmd.Name, err, firstLine(string(out)))
	}
	return string(out), nil
}

func (Local) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// DryRun records every command it is asked to run, reports success, and
// executes nothing. Lookups still consult the real PATH since they do not
// mutate anything.
type DryRun struct {
	Log      zerolog.Logger
	Recorded []Command
}

func (d *DryRun) Run(_ context.Context, cmd Command) (string, error) {
	d.Recorded = append(d.Recorded, cmd)
	d.Log.Info().Str("cmd", cmd.String()).Msg("dry-run: would execute")
	return "", nil
}

func (d *DryRun) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func firstLine(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
