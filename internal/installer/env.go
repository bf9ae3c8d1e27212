package installer

import (
	"os"

	"github.com/rs/zerolog"

	"devhost/internal/expose"
	"devhost/internal/paths"
	"devhost/internal/perms"
	"devhost/internal/sysexec"
)

// Env carries the run-wide collaborators and settings every strategy needs.
// Tests replace the runners and probes with fakes; production code builds it
// with NewEnv.
type Env struct {
	System paths.Layout
	User   paths.Layout
	Group  string
	DryRun bool
	Log    zerolog.Logger

	// Runner executes mutating install commands; in dry-run mode it is a
	// recorder that succeeds without side effects.
	Runner sysexec.Runner
	// ProbeRunner executes read-only version probes and stays real even in
	// dry-run mode so detection reflects the actual host.
	ProbeRunner sysexec.Runner

	// CanSystem reports whether system-scope writes are possible.
	CanSystem func() bool

	// Versions holds per-tool requested version overrides.
	Versions map[string]string

	Propagator *perms.Propagator
}

// NewEnv builds a production environment over the given layouts.
func NewEnv(system, user paths.Layout, group string, dryRun bool, log zerolog.Logger) *Env {
	env := &Env{
		System:      system,
		User:        user,
		Group:       group,
		DryRun:      dryRun,
		Log:         log,
		Runner:      sysexec.Local{},
		ProbeRunner: sysexec.Local{},
		CanSystem:   func() bool { return os.Geteuid() == 0 },
		Versions:    map[string]string{},
		Propagator:  perms.New(dryRun, log),
	}
	if dryRun {
		env.Runner = &sysexec.DryRun{Log: log}
	}
	return env
}

// resolveTarget picks the effective install location for a tool, downgrading
// system scope to per-user when the caller lacks the required privilege.
func (e *Env) resolveTarget(t *Tool) (Target, bool) {
	scope := t.Scope
	downgraded := false
	if scope == ScopeSystem && !e.CanSystem() {
		scope = ScopePerUser
		downgraded = true
	}

	layout := e.System
	if scope == ScopePerUser {
		layout = e.User
	}
	return Target{
		Scope:  scope,
		Layout: layout,
		Root:   layout.ToolRoot(t.Name),
	}, downgraded
}

// activeLayout is where run-wide state (manifest, locks, logs) lives.
func (e *Env) activeLayout() paths.Layout {
	if e.CanSystem() {
		return e.System
	}
	return e.User
}

// exposure builds the exposure manager for a target's layout.
func (e *Env) exposure(layout paths.Layout) *expose.Manager {
	return &expose.Manager{
		BinDir:     layout.BinDir,
		ProfileDir: layout.ProfileDir,
		DryRun:     e.DryRun,
		Log:        e.Log,
	}
}

// ensureDir creates a directory tree, or logs the intent in dry-run mode.
func (e *Env) ensureDir(dir string) error {
	if e.DryRun {
		e.Log.Info().Str("dir", dir).Msg("dry-run: would create directory")
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// version returns the requested version override for a tool, if any.
func (e *Env) version(tool string) string {
	return e.Versions[tool]
}
