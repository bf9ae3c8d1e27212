// Package expose makes installed binaries reachable for every login session:
// symlinks in a globally searched bin directory plus fully regenerated
// profile.d snippets carrying PATH prepends and tool startup hooks.
package expose

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Manager writes to the shared bin directory and snippet directory.
type Manager struct {
	BinDir     string
	ProfileDir string
	DryRun     bool
	Log        zerolog.Logger
}

// EnsureSymlink guarantees binDir/name points at target. A link that already
// points correctly is left untouched so repeated runs cause no churn; a
// stale, broken, or non-link entry is replaced. Reports whether the
// filesystem changed.
func (m *Manager) EnsureSymlink(name, target string) (bool, error) {
	link := filepath.Join(m.BinDir, name)
	if target == link {
		// The resolved binary is this link itself; nothing to do.
		return false, nil
	}

	current, err := os.Readlink(link)
	if err == nil && current == target {
		return false, nil
	}

	if m.DryRun {
		m.Log.Info().Str("link", link).Str("target", target).Msg("dry-run: would symlink")
		return false, nil
	}

	if err := os.MkdirAll(m.BinDir, 0o755); err != nil {
		return false, fmt.Errorf("prepare bin dir: %w", err)
	}
	if _, lerr := os.Lstat(link); lerr == nil {
		if err := os.Remove(link); err != nil {
			return false, fmt.Errorf("remove stale link %s: %w", link, err)
		}
	}
	if err := os.Symlink(target, link); err != nil {
		return false, fmt.Errorf("symlink %s -> %s: %w", link, target, err)
	}
	m.Log.Debug().Str("link", link).Str("target", target).Msg("symlink updated")
	return true, nil
}

// WriteSnippet regenerates the snippet file for one tool family. The file is
// rewritten wholesale, never appended to, so repeated runs are byte-for-byte
// stable; an unchanged file is not rewritten at all. Reports whether the
// filesystem changed.
func (m *Manager) WriteSnippet(family, content string) (bool, error) {
	path := m.SnippetPath(family)

	want := []byte(content)
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, want) {
		return false, nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("read snippet %s: %w", path, err)
	}

	if m.DryRun {
		m.Log.Info().Str("snippet", path).Msg("dry-run: would write profile snippet")
		return false, nil
	}

	if err := os.MkdirAll(m.ProfileDir, 0o755); err != nil {
		return false, fmt.Errorf("prepare profile dir: %w", err)
	}

	tmp, err := os.CreateTemp(m.ProfileDir, family+"-*.sh")
	if err != nil {
		return false, fmt.Errorf("create temp snippet: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(want); err != nil {
		tmp.Close()
		return false, fmt.Errorf("write snippet temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("close snippet temp: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return false, fmt.Errorf("chmod snippet: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, fmt.Errorf("replace snippet: %w", err)
	}
	m.Log.Debug().Str("snippet", path).Msg("profile snippet regenerated")
	return true, nil
}

// RemoveSnippet deletes the snippet for a family if present. Used when a
// global refresh finds the family no longer installed.
func (m *Manager) RemoveSnippet(family string) error {
	path := m.SnippetPath(family)
	if m.DryRun {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove snippet %s: %w", path, err)
	}
	return nil
}

// SnippetPath returns the snippet file location for a tool family.
func (m *Manager) SnippetPath(family string) string {
	return filepath.Join(m.ProfileDir, "devhost-"+family+".sh")
}
