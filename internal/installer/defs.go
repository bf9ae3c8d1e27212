package installer

import "sort"

var toolDefinitions = map[string]*Tool{
	"uv": {
		Name:        "uv",
		Scope:       ScopeSystem,
		Binaries:    []string{"uv", "uvx"},
		VersionArgs: []string{"--version"},
		RelBinDirs:  []string{"bin", "venv/bin"},
		Primary:     uvPrimary,
		Fallback:    venvFallback("uv"),
	},
	"pyenv": {
		Name:        "pyenv",
		Scope:       ScopeSystem,
		Binaries:    []string{"pyenv"},
		VersionArgs: []string{"--version"},
		RelBinDirs:  []string{"bin"},
		Primary:     pyenvPrimary,
		Fallback:    pyenvFallback,
		Snippet:     pyenvSnippet,
	},
	"pipenv": {
		Name:        "pipenv",
		Scope:       ScopeSystem,
		Binaries:    []string{"pipenv"},
		VersionArgs: []string{"--version"},
		RelBinDirs:  []string{"venv/bin"},
		Primary:     venvFallback("pipenv"),
		Fallback:    pipUserFallback("pipenv"),
	},
	"poetry": {
		Name:        "poetry",
		Scope:       ScopeSystem,
		Binaries:    []string{"poetry"},
		VersionArgs: []string{"--version"},
		RelBinDirs:  []string{"bin", "venv/bin"},
		Primary:     poetryPrimary,
		Fallback:    venvFallback("poetry"),
	},
}

// KnownTools returns the list of managed tool names.
func KnownTools() []string {
	names := make([]string, 0, len(toolDefinitions))
	for name := range toolDefinitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definition returns the tool definition for the provided name.
func Definition(name string) (*Tool, bool) {
	def, ok := toolDefinitions[name]
	return def, ok
}
