package paths

import (
	"path/filepath"
	"testing"

	"devhost/internal/config"
)

func TestSystemDefaults(t *testing.T) {
	layout, err := System()
	if err != nil {
		t.Fatal(err)
	}
	if layout.Prefix != "/opt/devhost" {
		t.Fatalf("Prefix = %q", layout.Prefix)
	}
	if layout.BinDir != "/usr/local/bin" {
		t.Fatalf("BinDir = %q", layout.BinDir)
	}
	if layout.ProfileDir != "/etc/profile.d" {
		t.Fatalf("ProfileDir = %q", layout.ProfileDir)
	}
}

func TestSystemPrefixOverride(t *testing.T) {
	root := t.TempDir()
	t.Setenv("DEVHOST_PREFIX", root)

	layout, err := System()
	if err != nil {
		t.Fatal(err)
	}
	if layout.Prefix != filepath.Join(root, "tools") {
		t.Fatalf("Prefix = %q", layout.Prefix)
	}
	if layout.StateDir != filepath.Join(root, "state") {
		t.Fatalf("StateDir = %q", layout.StateDir)
	}
}

func TestUserAt(t *testing.T) {
	layout := UserAt("/home/alex")
	if layout.Prefix != "/home/alex/.local/share/devhost/tools" {
		t.Fatalf("Prefix = %q", layout.Prefix)
	}
	if layout.BinDir != "/home/alex/.local/bin" {
		t.Fatalf("BinDir = %q", layout.BinDir)
	}
}

func TestApplyConfig(t *testing.T) {
	layout := UserAt("/home/alex")
	cfg := config.Config{Prefix: "/srv/tools", BinDir: "/srv/bin"}

	got := ApplyConfig(layout, cfg)
	if got.Prefix != "/srv/tools" || got.BinDir != "/srv/bin" {
		t.Fatalf("ApplyConfig = %+v", got)
	}
	if got.ProfileDir != layout.ProfileDir {
		t.Fatalf("ProfileDir changed unexpectedly: %q", got.ProfileDir)
	}
}

func TestDerivedPaths(t *testing.T) {
	layout := UserAt("/home/alex")
	if layout.ToolRoot("pyenv") != filepath.Join(layout.Prefix, "pyenv") {
		t.Fatalf("ToolRoot = %q", layout.ToolRoot("pyenv"))
	}
	if layout.LockFile("uv") != filepath.Join(layout.StateDir, "uv.lock") {
		t.Fatalf("LockFile = %q", layout.LockFile("uv"))
	}
	if layout.ManifestFile() != filepath.Join(layout.StateDir, "manifest.json") {
		t.Fatalf("ManifestFile = %q", layout.ManifestFile())
	}
}
