package installer

import (
	"context"
	"fmt"
	"path/filepath"

	"devhost/internal/sysexec"
)

// uvPrimary runs the official standalone installer, pointed at the target's
// bin directory so nothing lands in the invoking user's home.
func uvPrimary(ctx context.Context, env *Env, tgt Target) error {
	bin := filepath.Join(tgt.Root, "bin")
	if err := env.ensureDir(bin); err != nil {
		return fmt.Errorf("prepare %s: %w", bin, err)
	}

	url := "https://astral.sh/uv/install.sh"
	if v := env.version("uv"); v != "" {
		url = fmt.Sprintf("https://astral.sh/uv/%s/install.sh", v)
	}

	_, err := env.Runner.Run(ctx, sysexec.Command{
		Name: "sh",
		Args: []string{"-c", fmt.Sprintf("curl -LsSf %s | sh", url)},
		Env: []string{
			"UV_INSTALL_DIR=" + bin,
			"UV_NO_MODIFY_PATH=1",
		},
	})
	if err != nil {
		return fmt.Errorf("uv installer: %w", err)
	}
	return nil
}

// pyenvPrimary clones the pyenv repository into the target root.
func pyenvPrimary(ctx context.Context, env *Env, tgt Target) error {
	args := []string{"clone", "--depth", "1"}
	if v := env.version("pyenv"); v != "" {
		args = append(args, "--branch", "v"+v)
	}
	args = append(args, "https://github.com/pyenv/pyenv.git", tgt.Root)

	if _, err := env.Runner.Run(ctx, sysexec.Command{Name: "git", Args: args}); err != nil {
		return fmt.Errorf("clone pyenv: %w", err)
	}
	return nil
}

// pyenvFallback unpacks a release tarball when git is unavailable or the
// clone fails.
func pyenvFallback(ctx context.Context, env *Env, tgt Target) error {
	if err := env.ensureDir(tgt.Root); err != nil {
		return fmt.Errorf("prepare %s: %w", tgt.Root, err)
	}

	url := "https://github.com/pyenv/pyenv/archive/refs/heads/master.tar.gz"
	if v := env.version("pyenv"); v != "" {
		url = fmt.Sprintf("https://github.com/pyenv/pyenv/archive/refs/tags/v%s.tar.gz", v)
	}

	script := fmt.Sprintf("curl -LsSf %s | tar -xz --strip-components=1 -C %s", url, tgt.Root)
	if _, err := env.Runner.Run(ctx, sysexec.Command{Name: "sh", Args: []string{"-c", script}}); err != nil {
		return fmt.Errorf("unpack pyenv tarball: %w", err)
	}
	return nil
}

// poetryPrimary runs the official installer with POETRY_HOME at the target
// root so the virtual environment it builds is shareable.
func poetryPrimary(ctx context.Context, env *Env, tgt Target) error {
	if err := env.ensureDir(tgt.Root); err != nil {
		return fmt.Errorf("prepare %s: %w", tgt.Root, err)
	}

	extra := []string{"POETRY_HOME=" + tgt.Root}
	if v := env.version("poetry"); v != "" {
		extra = append(extra, "POETRY_VERSION="+v)
	}

	_, err := env.Runner.Run(ctx, sysexec.Command{
		Name: "sh",
		Args: []string{"-c", "curl -sSL https://install.python-poetry.org | python3 -"},
		Env:  extra,
	})
	if err != nil {
		return fmt.Errorf("poetry installer: %w", err)
	}
	return nil
}

// venvFallback builds a dedicated virtual environment under the target root
// and pip-installs the tool into it. Self-contained: needs only python3.
func venvFallback(pkg string) Step {
	return func(ctx context.Context, env *Env, tgt Target) error {
		venv := filepath.Join(tgt.Root, "venv")
		if _, err := env.Runner.Run(ctx, sysexec.Command{Name: "python3", Args: []string{"-m", "venv", venv}}); err != nil {
			return fmt.Errorf("create venv: %w", err)
		}

		spec := pkg
		if v := env.version(pkg); v != "" {
			spec = pkg + "==" + v
		}
		pip := filepath.Join(venv, "bin", "pip")
		if _, err := env.Runner.Run(ctx, sysexec.Command{Name: pip, Args: []string{"install", "--upgrade", spec}}); err != nil {
			return fmt.Errorf("pip install %s: %w", spec, err)
		}
		return nil
	}
}

// pipUserFallback installs into the invoking user's site. Last resort: the
// result is usable but lands outside the shared prefix.
func pipUserFallback(pkg string) Step {
	return func(ctx context.Context, env *Env, tgt Target) error {
		spec := pkg
		if v := env.version(pkg); v != "" {
			spec = pkg + "==" + v
		}
		_, err := env.Runner.Run(ctx, sysexec.Command{
			Name: "python3",
			Args: []string{"-m", "pip", "install", "--user", "--upgrade", spec},
		})
		if err != nil {
			return fmt.Errorf("pip install --user %s: %w", spec, err)
		}
		return nil
	}
}
