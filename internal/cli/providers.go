package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aegisml/aegis/internal/manifest"
	"github.com/aegisml/aegis/internal/providers"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Model provider safety registry",
}

var providersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List providers grouped by safety level",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadProviders()
		if err != nil {
			return nil
		}

		printGroup("safe", cfg.SafeProviders())
		printGroup("worrying", cfg.WorryingProviders())
		printGroup("dangerous", cfg.DangerousProviders())
		return nil
	},
}

var providersModelsCmd = &cobra.Command{
	Use:   "models <provider>",
	Short: "List deprecated and legacy models for a provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadProviders()
		if err != nil {
			return nil
		}

		name := args[0]
		info, ok := cfg.Providers[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown provider: %s\n", name)
			exitCode = ExitUsageError
			return nil
		}

		fmt.Fprintf(os.Stdout, "%s (safety: %s)\n", name, info.SafetyLevel)
		printModels("live", liveAsModels(info.Models.Live))
		printModels("legacy", info.Models.Legacy)
		printModels("deprecated", info.Models.Deprecated)
		return nil
	},
}

func loadProviders() (*providers.Config, error) {
	man, err := manifest.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return nil, err
	}
	cfg, err := providers.LoadWithOverrides(man.Providers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return nil, err
	}
	return cfg, nil
}

func printGroup(level string, names []string) {
	fmt.Fprintf(os.Stdout, "%s:\n", level)
	if len(names) == 0 {
		fmt.Fprintln(os.Stdout, "  (none)")
	}
	for _, n := range names {
		fmt.Fprintf(os.Stdout, "  - %s\n", n)
	}
}

func printModels(bucket string, models []providers.DeprecatedModel) {
	if len(models) == 0 {
		return
	}
	fmt.Fprintf(os.Stdout, "  %s:\n", bucket)
	for _, m := range models {
		line := "    - " + m.ModelID
		if m.Replacement != "" {
			line += " (replacement: " + m.Replacement + ")"
		}
		fmt.Fprintln(os.Stdout, line)
	}
}

func liveAsModels(ids []string) []providers.DeprecatedModel {
	out := make([]providers.DeprecatedModel, len(ids))
	for i, id := range ids {
		out[i] = providers.DeprecatedModel{ModelID: id}
	}
	return out
}

func init() {
	providersCmd.AddCommand(providersListCmd)
	providersCmd.AddCommand(providersModelsCmd)
}
