package installer

import (
	"context"
	"fmt"
	"os"
	"strings"

	"devhost/internal/perms"
)

// state names the phases of the per-tool install machine. Logged on every
// transition so a failed run can be traced phase by phase.
type state string

const (
	stateDetect    state = "detect"
	statePrimary   state = "primary-install"
	stateFallback  state = "fallback-install"
	statePropagate state = "propagate"
	stateExpose    state = "expose"
	stateVerify    state = "verify"
)

// runTool drives one tool through detect -> install -> propagate -> expose ->
// verify and returns its terminal result. It never panics out; the
// orchestrator additionally guards with a recover.
func runTool(ctx context.Context, env *Env, t *Tool) Result {
	res := Result{Tool: t.Name}
	var notes []string

	tgt, downgraded := env.resolveTarget(t)
	res.Scope = tgt.Scope
	if downgraded {
		notes = append(notes, "system scope unavailable; downgraded to per-user install")
		env.Log.Info().Str("tool", t.Name).Msg("privilege missing for system scope, installing per-user")
	}

	log := env.Log.With().Str("tool", t.Name).Str("scope", string(tgt.Scope)).Logger()

	log.Debug().Str("state", string(stateDetect)).Msg("probing")
	if info, ok := probe(ctx, env, t, tgt); ok {
		res.Status = StatusInstalled
		res.Version = info.Version
		res.Path = info.Path
		res.Detail = detail(append(notes, "already present"))
		log.Info().Str("version", info.Version).Msg("already installed")
		return res
	}

	unlock, err := acquireLock(ctx, env, t.Name)
	if err != nil {
		res.Status = StatusFailed
		res.Detail = detail(append(notes, fmt.Sprintf("acquire install lock: %v", err)))
		return res
	}
	defer unlock()

	log.Info().Str("state", string(statePrimary)).Msg("installing")
	if err := t.Primary(ctx, env, tgt); err != nil {
		log.Warn().Err(err).Msg("primary install failed")
		if t.Fallback == nil {
			res.Status = StatusFailed
			res.Detail = detail(append(notes, fmt.Sprintf("primary install failed: %v", err)))
			return res
		}
		notes = append(notes, "primary install failed; used fallback")
		log.Info().Str("state", string(stateFallback)).Msg("installing via fallback")
		if ferr := t.Fallback(ctx, env, tgt); ferr != nil {
			res.Status = StatusFailed
			res.Detail = detail(append(notes, fmt.Sprintf("primary: %v; fallback: %v", err, ferr)))
			return res
		}
	}

	log.Debug().Str("state", string(statePropagate)).Msg("propagating group permissions")
	res.Warnings = append(res.Warnings, env.Propagator.Apply(perms.Target{
		Path:   tgt.Root,
		Group:  env.Group,
		Setgid: true,
	})...)

	log.Debug().Str("state", string(stateExpose)).Msg("exposing binaries")
	res.Warnings = append(res.Warnings, exposeTool(env, t, tgt)...)

	log.Debug().Str("state", string(stateVerify)).Msg("verifying")
	if env.DryRun {
		res.Status = StatusInstalled
		res.Path = binaryCandidates(t, tgt)[0]
		res.Detail = detail(append(notes, "dry-run: install simulated"))
		return res
	}

	info, ok := probe(ctx, env, t, tgt)
	if !ok {
		// Deliberately no reinstall attempt here: an install that verify
		// rejects needs an operator, not a retry loop.
		res.Status = StatusFailed
		res.Detail = detail(append(notes, verifyDiagnostic(t, tgt)))
		return res
	}

	res.Status = StatusInstalled
	res.Version = info.Version
	res.Path = info.Path
	res.Detail = detail(notes)
	log.Info().Str("version", info.Version).Msg("installed")
	return res
}

// exposeTool symlinks every binary of the tool into the layout's bin
// directory and regenerates the family snippet. All failures are warnings:
// the tool itself is installed and locally usable even when other users
// cannot yet see it on PATH.
func exposeTool(env *Env, t *Tool, tgt Target) []string {
	var warnings []string
	mgr := env.exposure(tgt.Layout)

	mainPath, found := findBinary(env, t, tgt)
	if !found {
		if !env.DryRun {
			warnings = append(warnings, "no binary found to expose")
		}
		return warnings
	}

	if _, err := mgr.EnsureSymlink(t.Binaries[0], mainPath); err != nil {
		warnings = append(warnings, err.Error())
	}
	for _, name := range t.Binaries[1:] {
		path, ok := siblingBinary(mainPath, name)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("secondary binary %s not found", name))
			continue
		}
		if _, err := mgr.EnsureSymlink(name, path); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	if _, err := mgr.WriteSnippet(t.Name, snippetContent(t, tgt)); err != nil {
		warnings = append(warnings, fmt.Sprintf("degraded PATH, snippet not written: %v", err))
	}
	return warnings
}

func verifyDiagnostic(t *Tool, tgt Target) string {
	return fmt.Sprintf("verification failed: %s not functional after install; searched %s; PATH=%s",
		t.Binaries[0], strings.Join(binaryCandidates(t, tgt), ", "), os.Getenv("PATH"))
}

func detail(notes []string) string {
	return strings.Join(notes, "; ")
}
