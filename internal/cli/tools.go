package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"devhost/internal/installer"
)

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect the managed tool registry",
	}
	cmd.AddCommand(newToolsListCmd())
	return cmd
}

func newToolsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered tools and their install scope",
		RunE:  runToolsList,
	}
}

func runToolsList(cmd *cobra.Command, _ []string) error {
	cmd.Println(headerStyle.Render(fmt.Sprintf("%-10s %-10s %s", "Tool", "Scope", "Binaries")))
	for _, name := range installer.KnownTools() {
		def, _ := installer.Definition(name)
		cmd.Printf("%-10s %-10s %s\n", def.Name, def.Scope, strings.Join(def.Binaries, ", "))
	}
	return nil
}
