// Package perms propagates group ownership and mode bits across an install
// tree so every member of the development group can use it.
package perms

import (
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
)

// Mode bit defaults shared across install trees. Setgid is tracked as a
// separate flag on Target because fs.FileMode carries it as ModeSetgid, not
// as a permission bit.
const (
	DirMode  fs.FileMode = 0o775
	FileMode fs.FileMode = 0o664
	ExecMode fs.FileMode = 0o775
)

// Target describes one tree to propagate over.
type Target struct {
	Path     string
	Group    string
	DirMode  fs.FileMode
	FileMode fs.FileMode
	// Setgid forces the setgid bit onto every directory so files created
	// later by any group member inherit the group automatically.
	Setgid bool
}

// Propagator applies Targets. The lookup and chown functions are injectable
// so tests can run without root or a real group database.
type Propagator struct {
	DryRun bool
	Log    zerolog.Logger

	LookupGID func(group string) (int, error)
	Chown     func(path string, uid, gid int) error
}

// New returns a Propagator backed by the host group database.
func New(dryRun bool, log zerolog.Logger) *Propagator {
	return &Propagator{
		DryRun:    dryRun,
		Log:       log,
		LookupGID: lookupGID,
		Chown:     os.Chown,
	}
}

// Apply walks the target tree once, setting group ownership on every entry,
// dirMode plus setgid on directories, and fileMode on regular files. Partial
// failures are returned as warnings, never as an error: the tool stays usable
// by its installer even when group sharing is imperfect, so propagation must
// not fail an otherwise successful installation.
func (p *Propagator) Apply(t Target) []string {
	if t.DirMode == 0 {
		t.DirMode = DirMode
	}
	if t.FileMode == 0 {
		t.FileMode = FileMode
	}

	if p.DryRun {
		p.Log.Info().Str("path", t.Path).Str("group", t.Group).Msg("dry-run: would propagate group permissions")
		return nil
	}

	gid, err := p.LookupGID(t.Group)
	if err != nil {
		return []string{fmt.Sprintf("resolve group %s: %v", t.Group, err)}
	}

	var warnings []string
	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		warnings = append(warnings, msg)
		p.Log.Warn().Str("path", t.Path).Msg(msg)
	}

	err = filepath.WalkDir(t.Path, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			warn("walk %s: %v", path, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		if chownErr := p.Chown(path, -1, gid); chownErr != nil {
			warn("chgrp %s: %v", path, chownErr)
		}

		mode := t.FileMode
		if d.IsDir() {
			mode = t.DirMode
			if t.Setgid {
				mode |= fs.ModeSetgid
			}
		} else if info, infoErr := d.Info(); infoErr == nil && info.Mode()&0o100 != 0 {
			// Keep executables executable for the group.
			mode = ExecMode
		}
		if chmodErr := os.Chmod(path, mode); chmodErr != nil {
			warn("chmod %s: %v", path, chmodErr)
		}
		return nil
	})
	if err != nil {
		warn("walk %s: %v", t.Path, err)
	}
	return warnings
}

func lookupGID(group string) (int, error) {
	g, err := user.LookupGroup(group)
	if err != nil {
		return 0, err
	}
	gid, err := strconv.Atoi(g.Gid)
	if err != nil {
		return 0, fmt.Errorf("parse gid %q: %w", g.Gid, err)
	}
	return gid, nil
}
