package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"devhost/internal/config"
)

// Layout captures the canonical filesystem locations one provisioning run
// writes to: the shared install prefix, the globally searched bin directory,
// the login-shell snippet directory, and the state directory holding the
// manifest, locks, and logs.
type Layout struct {
	Prefix     string
	BinDir     string
	ProfileDir string
	StateDir   string
}

// System returns the shared, group-owned layout used when the caller can
// write system locations. The prefix may be overridden with DEVHOST_PREFIX,
// which relocates every directory (useful for tests and staged installs).
func System() (Layout, error) {
	if override, ok := os.LookupEnv("DEVHOST_PREFIX"); ok && override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return Layout{}, fmt.Errorf("resolve DEVHOST_PREFIX: %w", err)
		}
		return Layout{
			Prefix:     filepath.Join(abs, "tools"),
			BinDir:     filepath.Join(abs, "bin"),
			ProfileDir: filepath.Join(abs, "profile.d"),
			StateDir:   filepath.Join(abs, "state"),
		}, nil
	}

	return Layout{
		Prefix:     "/opt/devhost",
		BinDir:     "/usr/local/bin",
		ProfileDir: "/etc/profile.d",
		StateDir:   "/var/lib/devhost",
	}, nil
}

// User returns the per-user layout used when system scope is unavailable.
// Snippets land in the user's own profile.d directory; the caller's shell
// init is expected to source it (the setup command prints the line to add).
func User() (Layout, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Layout{}, fmt.Errorf("detect user home: %w", err)
	}
	return UserAt(home), nil
}

// UserAt builds the per-user layout rooted at the given home directory.
func UserAt(home string) Layout {
	share := filepath.Join(home, ".local", "share", "devhost")
	return Layout{
		Prefix:     filepath.Join(share, "tools"),
		BinDir:     filepath.Join(home, ".local", "bin"),
		ProfileDir: filepath.Join(share, "profile.d"),
		StateDir:   filepath.Join(share, "state"),
	}
}

// ApplyConfig overrides layout directories with any set in the config.
func ApplyConfig(l Layout, cfg config.Config) Layout {
	if cfg.Prefix != "" {
		l.Prefix = cfg.Prefix
	}
	if cfg.BinDir != "" {
		l.BinDir = cfg.BinDir
	}
	if cfg.ProfileDir != "" {
		l.ProfileDir = cfg.ProfileDir
	}
	if cfg.StateDir != "" {
		l.StateDir = cfg.StateDir
	}
	return l
}

// ToolRoot returns the install root for one tool under the layout's prefix.
func (l Layout) ToolRoot(tool string) string {
	return filepath.Join(l.Prefix, tool)
}

// LogsDir returns the directory run logs are written to.
func (l Layout) LogsDir() string {
	return filepath.Join(l.StateDir, "logs")
}

// ManifestFile returns the path of the persisted tool manifest.
func (l Layout) ManifestFile() string {
	return filepath.Join(l.StateDir, "manifest.json")
}

// LockFile returns the per-tool install lock path.
func (l Layout) LockFile(tool string) string {
	return filepath.Join(l.StateDir, tool+".lock")
}
