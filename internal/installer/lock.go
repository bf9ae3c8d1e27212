package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// acquireLock serializes installs of one tool across overlapping invocations
// via an exclusive-create lock file in the state directory. Dry-run takes no
// lock since it mutates nothing.
func acquireLock(ctx context.Context, env *Env, tool string) (func(), error) {
	if env.DryRun {
		return func() {}, nil
	}

	layout := env.activeLayout()
	if err := os.MkdirAll(layout.StateDir, 0o755); err != nil {
		return nil, fmt.Errorf("prepare state dir: %w", err)
	}

	lockPath := layout.LockFile(tool)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire lock %s: %w", filepath.Base(lockPath), ctx.Err())
		case <-ticker.C:
		}
	}
}
