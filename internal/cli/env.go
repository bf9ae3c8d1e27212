package cli

import (
	"io"

	"devhost/internal/config"
	"devhost/internal/installer"
	"devhost/internal/logx"
	"devhost/internal/paths"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// buildEnv loads configuration and assembles the installer environment. The
// returned closer flushes the run logfile and must be closed by the caller.
func buildEnv(dryRun bool) (*installer.Env, config.Config, io.Closer, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, config.Config{}, nil, err
	}

	system, err := paths.System()
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	system = paths.ApplyConfig(system, cfg)

	user, err := paths.User()
	if err != nil {
		return nil, config.Config{}, nil, err
	}

	env := installer.NewEnv(system, user, cfg.Group, dryRun, logx.Console())
	env.Versions = cfg.RequestedVersions()

	logsDir := user.LogsDir()
	if env.CanSystem() {
		logsDir = system.LogsDir()
	}
	if log, closer, lerr := logx.New(logsDir); lerr == nil {
		env.Log = log
		env.Propagator.Log = log
		return env, cfg, closer, nil
	}
	// State dir not writable yet; stderr-only logging is good enough.
	return env, cfg, nopCloser{}, nil
}
