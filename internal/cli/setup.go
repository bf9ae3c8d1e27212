package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"devhost/internal/installer"
)

var (
	setupTools  []string
	setupDryRun bool
)

func newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Install and expose the configured Python tooling",
		RunE:  runSetup,
	}

	cmd.Flags().StringSliceVar(&setupTools, "tools", nil, "Explicit tool list, overriding configured enable flags")
	cmd.Flags().BoolVar(&setupDryRun, "dry-run", false, "Log every action without touching the filesystem")

	return cmd
}

func runSetup(cmd *cobra.Command, _ []string) error {
	env, cfg, closer, err := buildEnv(setupDryRun)
	if err != nil {
		return err
	}
	defer closer.Close()

	explicit := setupTools
	if len(explicit) == 0 {
		explicit = cfg.Select
	}
	sel := installer.Select(explicit, cfg.EnabledFlags(), env.Log)

	report := installer.Run(cmd.Context(), env, sel)

	if outputJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
	} else {
		printReport(cmd, report)
	}

	if report.ExitCode() != 0 {
		return fmt.Errorf("setup finished with status %s", report.Overall())
	}
	return nil
}

func printReport(cmd *cobra.Command, report installer.Report) {
	cmd.Println(headerStyle.Render(fmt.Sprintf("%-10s %-10s %-10s %-12s %s", "Tool", "Status", "Scope", "Version", "Detail")))
	for _, res := range report.Results {
		line := fmt.Sprintf("%-10s %-10s %-10s %-12s %s", res.Tool, res.Status, res.Scope, res.Version, res.Detail)
		cmd.Println(statusStyle(res.Status).Render(line))
	}
	for _, warning := range report.Warnings {
		cmd.Println(warningStyle.Render("warning: " + warning))
	}
	cmd.Printf("overall: %s\n", report.Overall())
}
