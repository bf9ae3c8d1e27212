package installer

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"devhost/internal/sysexec"
)

// probeInfo is the evidence a tool is present and functional.
type probeInfo struct {
	Path    string
	Version string
}

// probe is the single check behind both detection and verification: resolve
// the tool's main binary for the target and confirm it executes and reports
// a version. Sharing one probe keeps detection from ever claiming a tool
// that verification would reject.
func probe(ctx context.Context, env *Env, t *Tool, tgt Target) (probeInfo, bool) {
	path, ok := findBinary(env, t, tgt)
	if !ok {
		return probeInfo{}, false
	}

	out, err := env.ProbeRunner.Run(ctx, sysexec.Command{Name: path, Args: t.VersionArgs})
	if err != nil {
		env.Log.Debug().Str("tool", t.Name).Str("path", path).Err(err).Msg("version probe failed")
		return probeInfo{Path: path}, false
	}
	return probeInfo{Path: path, Version: extractVersion(out)}, true
}

// findBinary resolves the main binary: target-root bin dirs first, then the
// layout's shared bin directory, then PATH.
func findBinary(env *Env, t *Tool, tgt Target) (string, bool) {
	name := t.Binaries[0]
	for _, candidate := range binaryCandidates(t, tgt) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	if path, err := env.ProbeRunner.LookPath(name); err == nil {
		return path, true
	}
	return "", false
}

// binaryCandidates lists the filesystem locations searched for the main
// binary, in preference order. Also used verbatim in failure diagnostics.
func binaryCandidates(t *Tool, tgt Target) []string {
	name := t.Binaries[0]
	candidates := make([]string, 0, len(t.RelBinDirs)+1)
	for _, rel := range t.RelBinDirs {
		candidates = append(candidates, filepath.Join(tgt.Root, filepath.FromSlash(rel), name))
	}
	candidates = append(candidates, filepath.Join(tgt.Layout.BinDir, name))
	return candidates
}

// siblingBinary locates a secondary binary next to the resolved main one.
func siblingBinary(mainPath, name string) (string, bool) {
	candidate := filepath.Join(filepath.Dir(mainPath), name)
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate, true
	}
	return "", false
}

var versionRegex = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)+`)

// extractVersion pulls a dotted version out of tool output. Tools disagree on
// framing ("uv 0.5.1", "Poetry (version 1.8.3)", "pipenv, version 2024.0.1"),
// so the first dotted number on the first line wins.
func extractVersion(output string) string {
	line := firstLine(strings.TrimSpace(output))
	if match := versionRegex.FindString(line); match != "" {
		return match
	}
	return line
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
