package installer

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func toolTarget(t *testing.T, env *Env, name string) Target {
	t.Helper()
	def, ok := Definition(name)
	if !ok {
		t.Fatalf("unknown tool %s", name)
	}
	tgt, _ := env.resolveTarget(def)
	return tgt
}

func TestUvPrimaryCommand(t *testing.T) {
	env, runner := testEnv(t)
	tgt := toolTarget(t, env, "uv")

	if err := uvPrimary(context.Background(), env, tgt); err != nil {
		t.Fatal(err)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(runner.calls))
	}
	cmd := runner.calls[0]
	if !strings.Contains(cmd.String(), "astral.sh/uv/install.sh") {
		t.Fatalf("command = %q", cmd.String())
	}
	wantDir := "UV_INSTALL_DIR=" + filepath.Join(tgt.Root, "bin")
	if !contains(cmd.Env, wantDir) {
		t.Fatalf("env = %v, want %s", cmd.Env, wantDir)
	}
	if !contains(cmd.Env, "UV_NO_MODIFY_PATH=1") {
		t.Fatalf("env = %v, want UV_NO_MODIFY_PATH=1", cmd.Env)
	}
}

func TestUvPrimaryVersionPin(t *testing.T) {
	env, runner := testEnv(t)
	env.Versions["uv"] = "0.5.0"

	if err := uvPrimary(context.Background(), env, toolTarget(t, env, "uv")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(runner.calls[0].String(), "astral.sh/uv/0.5.0/install.sh") {
		t.Fatalf("command = %q, want pinned url", runner.calls[0].String())
	}
}

func TestPyenvPrimaryClone(t *testing.T) {
	env, runner := testEnv(t)
	tgt := toolTarget(t, env, "pyenv")

	if err := pyenvPrimary(context.Background(), env, tgt); err != nil {
		t.Fatal(err)
	}
	cmd := runner.calls[0]
	if cmd.Name != "git" {
		t.Fatalf("command = %q, want git", cmd.Name)
	}
	if !strings.Contains(cmd.String(), "pyenv/pyenv.git") || !strings.Contains(cmd.String(), tgt.Root) {
		t.Fatalf("command = %q", cmd.String())
	}
}

func TestPyenvPrimaryVersionPin(t *testing.T) {
	env, runner := testEnv(t)
	env.Versions["pyenv"] = "2.4.0"

	if err := pyenvPrimary(context.Background(), env, toolTarget(t, env, "pyenv")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(runner.calls[0].String(), "--branch v2.4.0") {
		t.Fatalf("command = %q, want branch pin", runner.calls[0].String())
	}
}

func TestPoetryPrimaryHome(t *testing.T) {
	env, runner := testEnv(t)
	tgt := toolTarget(t, env, "poetry")

	if err := poetryPrimary(context.Background(), env, tgt); err != nil {
		t.Fatal(err)
	}
	cmd := runner.calls[0]
	if !strings.Contains(cmd.String(), "install.python-poetry.org") {
		t.Fatalf("command = %q", cmd.String())
	}
	if !contains(cmd.Env, "POETRY_HOME="+tgt.Root) {
		t.Fatalf("env = %v, want POETRY_HOME", cmd.Env)
	}
}

func TestVenvFallbackCommands(t *testing.T) {
	env, runner := testEnv(t)
	env.Versions["pipenv"] = "2024.0.1"
	tgt := toolTarget(t, env, "pipenv")

	if err := venvFallback("pipenv")(context.Background(), env, tgt); err != nil {
		t.Fatal(err)
	}
	if len(runner.calls) != 2 {
		t.Fatalf("calls = %d, want venv create + pip install", len(runner.calls))
	}
	venv := filepath.Join(tgt.Root, "venv")
	if runner.calls[0].String() != "python3 -m venv "+venv {
		t.Fatalf("first command = %q", runner.calls[0].String())
	}
	if !strings.Contains(runner.calls[1].String(), "pipenv==2024.0.1") {
		t.Fatalf("second command = %q, want pinned pip install", runner.calls[1].String())
	}
}

func TestPipUserFallback(t *testing.T) {
	env, runner := testEnv(t)
	tgt := toolTarget(t, env, "pipenv")

	if err := pipUserFallback("pipenv")(context.Background(), env, tgt); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(runner.calls[0].String(), "--user") {
		t.Fatalf("command = %q, want --user install", runner.calls[0].String())
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
