package installer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ManifestEntry records the last successful outcome for one tool. The
// manifest is provenance for the status command, never a substitute for a
// probe: presence in the manifest is always re-verified before being trusted.
type ManifestEntry struct {
	Tool        string `json:"tool"`
	Version     string `json:"version,omitempty"`
	Scope       Scope  `json:"scope"`
	Path        string `json:"path,omitempty"`
	InstalledAt string `json:"installed_at"`
}

// Manifest wraps persisted entries for quick lookup.
type Manifest struct {
	Entries map[string]ManifestEntry `json:"entries"`
}

// LoadManifest reads the manifest at path; a missing file is an empty
// manifest, not an error.
func LoadManifest(path string) (Manifest, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Manifest{Entries: map[string]ManifestEntry{}}, nil
		}
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(contents, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if manifest.Entries == nil {
		manifest.Entries = map[string]ManifestEntry{}
	}
	return manifest, nil
}

// SaveManifest writes the manifest atomically via temp-file-and-rename.
func SaveManifest(path string, m Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare manifest directory: %w", err)
	}

	buf, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "manifest-*.json")
	if err != nil {
		return fmt.Errorf("create temp manifest: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		return fmt.Errorf("write manifest temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close manifest temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}

// recordRun folds the installed results of a run into the manifest.
func recordRun(env *Env, results []Result) error {
	path := env.activeLayout().ManifestFile()
	manifest, err := LoadManifest(path)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	changed := false
	for _, res := range results {
		if res.Status != StatusInstalled {
			continue
		}
		entry := ManifestEntry{
			Tool:        res.Tool,
			Version:     res.Version,
			Scope:       res.Scope,
			Path:        res.Path,
			InstalledAt: now,
		}
		prev, ok := manifest.Entries[res.Tool]
		if ok && prev.Version == entry.Version && prev.Path == entry.Path && prev.Scope == entry.Scope {
			continue
		}
		manifest.Entries[res.Tool] = entry
		changed = true
	}

	if !changed {
		return nil
	}
	return SaveManifest(path, manifest)
}
