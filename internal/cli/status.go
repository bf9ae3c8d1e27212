package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"devhost/internal/installer"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Probe every managed tool and report its state",
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	env, _, closer, err := buildEnv(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	states := installer.Detect(cmd.Context(), env)

	if outputJSON {
		data, err := json.MarshalIndent(states, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(headerStyle.Render(fmt.Sprintf("%-10s %-10s %-9s %-12s %-8s %s", "Tool", "Scope", "Present", "Version", "Exposed", "Path")))
	for _, st := range states {
		present, exposed := "no", "no"
		style := statusStyle(installer.StatusFailed)
		if st.Present {
			present = "yes"
			style = statusStyle(installer.StatusInstalled)
		}
		if st.Exposed {
			exposed = "yes"
		}
		path := st.Path
		if path == "" {
			path = "(missing)"
		}
		cmd.Println(style.Render(fmt.Sprintf("%-10s %-10s %-9s %-12s %-8s %s", st.Tool, st.Scope, present, st.Version, exposed, path)))
	}
	return nil
}
