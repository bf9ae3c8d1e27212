package expose

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func testManager(t *testing.T) (*Manager, string) {
	t.Helper()
	root := t.TempDir()
	return &Manager{
		BinDir:     filepath.Join(root, "bin"),
		ProfileDir: filepath.Join(root, "profile.d"),
		Log:        zerolog.Nop(),
	}, root
}

func writeTarget(t *testing.T, root, name string) string {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEnsureSymlinkCreates(t *testing.T) {
	m, root := testManager(t)
	target := writeTarget(t, root, "uv")

	changed, err := m.EnsureSymlink("uv", target)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("expected changed = true on first link")
	}
	got, err := os.Readlink(filepath.Join(m.BinDir, "uv"))
	if err != nil {
		t.Fatal(err)
	}
	if got != target {
		t.Fatalf("link target = %q, want %q", got, target)
	}
}

func TestEnsureSymlinkNoChurnWhenCorrect(t *testing.T) {
	m, root := testManager(t)
	target := writeTarget(t, root, "uv")

	if _, err := m.EnsureSymlink("uv", target); err != nil {
		t.Fatal(err)
	}
	changed, err := m.EnsureSymlink("uv", target)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Fatal("correct link was rewritten")
	}
}

func TestEnsureSymlinkReplacesStale(t *testing.T) {
	m, root := testManager(t)
	stale := writeTarget(t, root, "old")
	fresh := writeTarget(t, root, "new")

	if _, err := m.EnsureSymlink("uv", stale); err != nil {
		t.Fatal(err)
	}
	changed, err := m.EnsureSymlink("uv", fresh)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("stale link was not replaced")
	}
	got, _ := os.Readlink(filepath.Join(m.BinDir, "uv"))
	if got != fresh {
		t.Fatalf("link target = %q, want %q", got, fresh)
	}
}

func TestEnsureSymlinkReplacesRegularFile(t *testing.T) {
	m, root := testManager(t)
	target := writeTarget(t, root, "uv")

	if err := os.MkdirAll(m.BinDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(m.BinDir, "uv"), []byte("stale copy"), 0o755); err != nil {
		t.Fatal(err)
	}

	changed, err := m.EnsureSymlink("uv", target)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("regular file was not replaced with a link")
	}
}

func TestEnsureSymlinkSelfTargetIsNoOp(t *testing.T) {
	m, _ := testManager(t)
	changed, err := m.EnsureSymlink("uv", filepath.Join(m.BinDir, "uv"))
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Fatal("self-target must be a no-op")
	}
}

func TestWriteSnippetStable(t *testing.T) {
	m, _ := testManager(t)

	changed, err := m.WriteSnippet("pyenv", "export PYENV_ROOT=/opt/devhost/pyenv\n")
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("expected changed = true on first write")
	}

	before, err := os.ReadFile(m.SnippetPath("pyenv"))
	if err != nil {
		t.Fatal(err)
	}

	changed, err = m.WriteSnippet("pyenv", "export PYENV_ROOT=/opt/devhost/pyenv\n")
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Fatal("identical snippet was rewritten")
	}

	after, err := os.ReadFile(m.SnippetPath("pyenv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Fatal("snippet content drifted across identical writes")
	}
}

func TestWriteSnippetRegeneratesWholesale(t *testing.T) {
	m, _ := testManager(t)

	if _, err := m.WriteSnippet("uv", "export PATH=/a:$PATH\n"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.WriteSnippet("uv", "export PATH=/b:$PATH\n"); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(m.SnippetPath("uv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "export PATH=/b:$PATH\n" {
		t.Fatalf("snippet = %q, want full regeneration, not append", content)
	}
}

func TestDryRunWritesNothing(t *testing.T) {
	m, root := testManager(t)
	m.DryRun = true
	target := writeTarget(t, root, "uv")

	if _, err := m.EnsureSymlink("uv", target); err != nil {
		t.Fatal(err)
	}
	if _, err := m.WriteSnippet("uv", "export PATH=/a:$PATH\n"); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(m.BinDir); !os.IsNotExist(err) {
		t.Fatal("dry run created bin dir")
	}
	if _, err := os.Stat(m.ProfileDir); !os.IsNotExist(err) {
		t.Fatal("dry run created profile dir")
	}
}

func TestRemoveSnippet(t *testing.T) {
	m, _ := testManager(t)
	if _, err := m.WriteSnippet("uv", "x\n"); err != nil {
		t.Fatal(err)
	}
	if err := m.RemoveSnippet("uv"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(m.SnippetPath("uv")); !os.IsNotExist(err) {
		t.Fatal("snippet still present")
	}
	// Removing an absent snippet is not an error.
	if err := m.RemoveSnippet("uv"); err != nil {
		t.Fatal(err)
	}
}
