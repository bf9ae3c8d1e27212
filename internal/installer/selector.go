package installer

import (
	"strings"

	"github.com/rs/zerolog"
)

// Selection partitions the registry into tools to run and tools intentionally
// excluded by configuration.
type Selection struct {
	Run     []string
	Skipped []string
}

// Select resolves the requested tool set. A non-empty explicit list strictly
// overrides the flag map: operator intent wins over defaults. Unknown names
// are dropped with a warning, never a fatal error. Registry tools absent from
// the run list surface as Skipped so every run report partitions the full
// registry.
func Select(explicit []string, flags map[string]bool, log zerolog.Logger) Selection {
	var run []string
	seen := map[string]bool{}

	add := func(name string) {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			return
		}
		if _, ok := Definition(name); !ok {
			log.Warn().Str("tool", name).Msg("unknown tool ignored")
			return
		}
		seen[name] = true
		run = append(run, name)
	}

	if len(explicit) > 0 {
		for _, name := range explicit {
			add(name)
		}
	} else {
		for _, name := range KnownTools() {
			if flags[name] {
				add(name)
			}
		}
	}

	sel := Selection{Run: run}
	for _, name := range KnownTools() {
		if !seen[name] {
			sel.Skipped = append(sel.Skipped, name)
		}
	}
	return sel
}
