package installer

import (
	"fmt"
	"path/filepath"
	"strings"
)

const snippetHeader = "# Managed by devhost. Regenerated on every run; do not edit.\n"

// snippetContent renders the profile.d body for a tool family. Output is
// deterministic for a given target so repeated runs are byte-for-byte stable.
func snippetContent(t *Tool, tgt Target) string {
	if t.Snippet != nil {
		return t.Snippet(tgt)
	}
	return pathSnippet(tgt.Layout.BinDir)
}

// pathSnippet prepends each directory to PATH exactly once per session.
func pathSnippet(dirs ...string) string {
	var b strings.Builder
	b.WriteString(snippetHeader)
	for _, dir := range dirs {
		fmt.Fprintf(&b, "case \":$PATH:\" in\n  *\":%s:\"*) ;;\n  *) export PATH=\"%s:$PATH\" ;;\nesac\n", dir, dir)
	}
	return b.String()
}

// pyenvSnippet wires PYENV_ROOT and the shell-function initialization pyenv
// needs in addition to a PATH entry.
func pyenvSnippet(tgt Target) string {
	var b strings.Builder
	b.WriteString(snippetHeader)
	fmt.Fprintf(&b, "export PYENV_ROOT=%q\n", tgt.Root)
	bin := filepath.Join(tgt.Root, "bin")
	fmt.Fprintf(&b, "case \":$PATH:\" in\n  *\":%s:\"*) ;;\n  *) export PATH=\"%s:$PATH\" ;;\nesac\n", bin, bin)
	b.WriteString("if command -v pyenv >/dev/null 2>&1; then\n  eval \"$(pyenv init -)\"\nfi\n")
	return b.String()
}
