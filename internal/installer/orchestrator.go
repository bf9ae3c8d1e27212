package installer

import (
	"context"
	"fmt"
	"os"
)

// Run executes one orchestration pass: every selected tool, strictly in
// order, then a global exposure refresh and the aggregated report. One tool's
// failure never prevents attempting the remaining tools, and nothing here
// terminates the process.
func Run(ctx context.Context, env *Env, sel Selection) Report {
	var report Report

	if len(sel.Run) == 0 {
		// Valid terminal state: everything excluded, filesystem untouched.
		for _, name := range sel.Skipped {
			report.Results = append(report.Results, skippedResult(name))
		}
		return report
	}

	for _, name := range sel.Run {
		t, ok := Definition(name)
		if !ok {
			continue
		}
		res := runToolGuarded(ctx, env, t)
		for _, w := range res.Warnings {
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: %s", res.Tool, w))
		}
		report.Results = append(report.Results, res)
	}
	for _, name := range sel.Skipped {
		report.Results = append(report.Results, skippedResult(name))
	}

	// A prior run may have installed tools this invocation skipped, so the
	// profile must be rebuilt from everything present, not just this run.
	report.Warnings = append(report.Warnings, RefreshExposure(ctx, env)...)

	if !env.DryRun {
		if err := recordRun(env, report.Results); err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("record manifest: %v", err))
		}
	}
	return report
}

// runToolGuarded converts a panicking strategy into a Failed result so the
// loop over remaining tools survives.
func runToolGuarded(ctx context.Context, env *Env, t *Tool) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			env.Log.Error().Str("tool", t.Name).Any("panic", r).Msg("installer panicked")
			res = Result{
				Tool:   t.Name,
				Status: StatusFailed,
				Detail: fmt.Sprintf("internal error: %v", r),
			}
		}
	}()
	return runTool(ctx, env, t)
}

// RefreshExposure regenerates symlinks and profile snippets from the union
// of all registered tools currently present on the host. Snippets of tools
// no longer present are removed so login shells stay truthful.
func RefreshExposure(ctx context.Context, env *Env) []string {
	var warnings []string
	for _, name := range KnownTools() {
		t, _ := Definition(name)
		tgt, _ := env.resolveTarget(t)
		mgr := env.exposure(tgt.Layout)

		info, ok := probe(ctx, env, t, tgt)
		if !ok {
			if _, err := os.Lstat(mgr.SnippetPath(t.Name)); err == nil {
				if rerr := mgr.RemoveSnippet(t.Name); rerr != nil {
					warnings = append(warnings, fmt.Sprintf("%s: %v", t.Name, rerr))
				}
			}
			continue
		}

		if _, err := mgr.EnsureSymlink(t.Binaries[0], info.Path); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", t.Name, err))
		}
		for _, bin := range t.Binaries[1:] {
			path, found := siblingBinary(info.Path, bin)
			if !found {
				continue
			}
			if _, err := mgr.EnsureSymlink(bin, path); err != nil {
				warnings = append(warnings, fmt.Sprintf("%s: %v", t.Name, err))
			}
		}
		if _, err := mgr.WriteSnippet(t.Name, snippetContent(t, tgt)); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: degraded PATH: %v", t.Name, err))
		}
	}
	return warnings
}

func skippedResult(name string) Result {
	return Result{Tool: name, Status: StatusSkipped, Detail: "excluded by configuration"}
}
