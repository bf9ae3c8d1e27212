// Package installer drives the multi-tool install engine: selecting tools,
// running each tool's detect/install/fallback/verify state machine,
// propagating group permissions, exposing binaries, and aggregating the
// per-tool outcomes into a single run report.
package installer

import (
	"context"

	"devhost/internal/paths"
)

// Scope states whether a tool is installed once for all users or into the
// calling user's home.
type Scope string

const (
	ScopeSystem  Scope = "system"
	ScopePerUser Scope = "per-user"
)

// Status is the terminal state of one tool in one run.
type Status string

const (
	StatusInstalled Status = "installed"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Result captures the resolved outcome for a single tool.
type Result struct {
	Tool     string   `json:"tool"`
	Status   Status   `json:"status"`
	Scope    Scope    `json:"scope,omitempty"`
	Version  string   `json:"version,omitempty"`
	Path     string   `json:"path,omitempty"`
	Detail   string   `json:"detail,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Target is the concrete location set a tool installs into after scope
// resolution.
type Target struct {
	Scope  Scope
	Layout paths.Layout
	Root   string
}

// Step performs one install strategy against a target.
type Step func(ctx context.Context, env *Env, tgt Target) error

// Tool contains the static metadata and strategies required to manage one
// tool. Instances live in the package registry and are never mutated.
type Tool struct {
	Name        string
	Scope       Scope
	Binaries    []string // exposed binary names; the first is probed for versions
	VersionArgs []string
	// RelBinDirs are root-relative directories searched for the binaries,
	// in preference order.
	RelBinDirs []string
	Primary    Step
	Fallback   Step
	// Snippet renders the profile.d body for the tool family. When nil a
	// PATH-prepend snippet for the target's bin directories is generated.
	Snippet func(tgt Target) string
}
