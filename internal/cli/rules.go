package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aegisml/aegis/internal/manifest"
	"github.com/aegisml/aegis/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Rule catalog management",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the effective rule catalog",
	Long:  "List shows every rule after manifest overrides are applied: ID, class, severity, and whether it is enabled.",
	RunE: func(cmd *cobra.Command, args []string) error {
		man, err := manifest.Load("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			return nil
		}
		catalog, err := rules.LoadWithOverrides(man.Rules)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCLASS\tSEVERITY\tENABLED\tNAME")
		for _, r := range catalog {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", r.ID(), r.Class.ID, r.Severity, r.Enabled, r.Name)
		}
		return w.Flush()
	},
}

var rulesShowCmd = &cobra.Command{
	Use:   "show <rule-id>",
	Short: "Show one rule in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		man, err := manifest.Load("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			return nil
		}
		catalog, err := rules.LoadWithOverrides(man.Rules)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			return nil
		}

		for _, r := range catalog {
			if r.ID() != args[0] {
				continue
			}
			fmt.Fprintf(os.Stdout, "ID:          %s\n", r.ID())
			fmt.Fprintf(os.Stdout, "Name:        %s\n", r.Name)
			fmt.Fprintf(os.Stdout, "Class:       %s (%s)\n", r.Class.ID, r.Class.Name)
			fmt.Fprintf(os.Stdout, "Severity:    %s\n", r.Severity)
			fmt.Fprintf(os.Stdout, "Enabled:     %t\n", r.Enabled)
			fmt.Fprintf(os.Stdout, "Description: %s\n", r.Description)
			return nil
		}
		fmt.Fprintf(os.Stderr, "Error: unknown rule: %s\n", args[0])
		exitCode = ExitUsageError
		return nil
	},
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesShowCmd)
}
