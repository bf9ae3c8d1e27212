package installer

import (
	"context"
	"os"
	"path/filepath"
)

// ToolState describes one registered tool's current condition on the host.
type ToolState struct {
	Tool        string `json:"tool"`
	Scope       Scope  `json:"scope"`
	Present     bool   `json:"present"`
	Version     string `json:"version,omitempty"`
	Path        string `json:"path,omitempty"`
	Exposed     bool   `json:"exposed"`
	InstalledAt string `json:"installed_at,omitempty"`
}

// Detect probes every registered tool and reports its state, merging
// provenance from the manifest when the probe confirms the tool is present.
func Detect(ctx context.Context, env *Env) []ToolState {
	manifest, err := LoadManifest(env.activeLayout().ManifestFile())
	if err != nil {
		env.Log.Warn().Err(err).Msg("manifest unreadable; reporting probes only")
		manifest = Manifest{Entries: map[string]ManifestEntry{}}
	}

	var states []ToolState
	for _, name := range KnownTools() {
		t, _ := Definition(name)
		tgt, _ := env.resolveTarget(t)

		st := ToolState{Tool: name, Scope: tgt.Scope}
		if info, ok := probe(ctx, env, t, tgt); ok {
			st.Present = true
			st.Version = info.Version
			st.Path = info.Path
			if entry, found := manifest.Entries[name]; found {
				st.InstalledAt = entry.InstalledAt
			}
		}

		link := filepath.Join(tgt.Layout.BinDir, t.Binaries[0])
		if _, lerr := os.Lstat(link); lerr == nil {
			st.Exposed = true
		}
		states = append(states, st)
	}
	return states
}
