package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"devhost/internal/paths"
	"devhost/internal/sysexec"
)

// fakeRunner records install commands and fails any whose rendered form
// contains a configured substring.
type fakeRunner struct {
	calls []sysexec.Command
	fail  []string
}

func (f *fakeRunner) Run(_ context.Context, cmd sysexec.Command) (string, error) {
	f.calls = append(f.calls, cmd)
	for _, needle := range f.fail {
		if strings.Contains(cmd.String(), needle) {
			return "", fmt.Errorf("forced failure: %s", needle)
		}
	}
	return "", nil
}

func (f *fakeRunner) LookPath(string) (string, error) {
	return "", errors.New("not on PATH")
}

// fakeProbe answers version probes for binaries that exist on disk. It never
// consults the real PATH so tests stay hermetic.
type fakeProbe struct {
	version string
	fail    bool
}

func (f *fakeProbe) Run(_ context.Context, cmd sysexec.Command) (string, error) {
	if f.fail {
		return "", errors.New("exec format error")
	}
	return fmt.Sprintf("%s %s", filepath.Base(cmd.Name), f.version), nil
}

func (f *fakeProbe) LookPath(string) (string, error) {
	return "", errors.New("not on PATH")
}

func testEnv(t *testing.T) (*Env, *fakeRunner) {
	t.Helper()
	root := t.TempDir()
	system := paths.Layout{
		Prefix:     filepath.Join(root, "opt"),
		BinDir:     filepath.Join(root, "bin"),
		ProfileDir: filepath.Join(root, "profile.d"),
		StateDir:   filepath.Join(root, "state"),
	}
	user := paths.UserAt(filepath.Join(root, "home"))

	runner := &fakeRunner{}
	env := NewEnv(system, user, "devs", false, zerolog.Nop())
	env.Runner = runner
	env.ProbeRunner = &fakeProbe{version: "1.2.3"}
	env.CanSystem = func() bool { return true }
	env.Propagator.LookupGID = func(string) (int, error) { return 100, nil }
	env.Propagator.Chown = func(string, int, int) error { return nil }
	return env, runner
}

// installingStep simulates a successful install by dropping an executable
// where the probe will find it.
func installingStep(t *testing.T) Step {
	t.Helper()
	return func(_ context.Context, _ *Env, tgt Target) error {
		dir := filepath.Join(tgt.Root, "bin")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		name := filepath.Base(tgt.Root)
		return os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), 0o755)
	}
}

func failingStep(_ context.Context, _ *Env, _ Target) error {
	return errors.New("install exploded")
}

func testTool(name string, primary, fallback Step) *Tool {
	return &Tool{
		Name:        name,
		Scope:       ScopeSystem,
		Binaries:    []string{name},
		VersionArgs: []string{"--version"},
		RelBinDirs:  []string{"bin"},
		Primary:     primary,
		Fallback:    fallback,
	}
}

// swapRegistry replaces the static tool registry for a test.
func swapRegistry(t *testing.T, reg map[string]*Tool) {
	t.Helper()
	saved := toolDefinitions
	toolDefinitions = reg
	t.Cleanup(func() { toolDefinitions = saved })
}
