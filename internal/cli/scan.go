package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aegisml/aegis/internal/agent"
	"github.com/aegisml/aegis/internal/agenttools"
	"github.com/aegisml/aegis/internal/cache"
	"github.com/aegisml/aegis/internal/config"
	"github.com/aegisml/aegis/internal/gitfiles"
	"github.com/aegisml/aegis/internal/manifest"
	"github.com/aegisml/aegis/internal/providers"
	"github.com/aegisml/aegis/internal/report"
	"github.com/aegisml/aegis/internal/rules"
	"github.com/aegisml/aegis/internal/scan"
)

var (
	flagProvider  string
	flagModel     string
	flagFormat    string
	flagOut       string
	flagOutputDir string
	flagFailOn    string
	flagNoCache   bool
	flagSave      bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [path ...]",
	Short: "Scan files against the AI safety rule catalog",
	Long: "Scan runs every enabled rule against the target files by delegating analysis " +
		"to an LLM agent. With no paths, git-tracked code files are scanned. Paths may be " +
		"files or directories; directories are walked for code files.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		runScan(cmd.Context(), cfg, args)
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&flagProvider, "provider", "", "Agent provider (anthropic)")
	scanCmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	scanCmd.Flags().StringVar(&flagFormat, "format", "", "Output format (json, markdown)")
	scanCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	scanCmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "Directory for saved reports")
	scanCmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Fail on severity threshold (none, info, warning, error)")
	scanCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the analysis cache")
	scanCmd.Flags().BoolVar(&flagSave, "save", false, "Save a timestamped report instead of writing to stdout")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagOutputDir != "" {
		m["outputDir"] = flagOutputDir
	}
	if flagFailOn != "" {
		m["failOn"] = flagFailOn
	}
	return m
}

func runScan(ctx context.Context, cfg config.Config, targets []string) {
	man, err := manifest.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	catalog, err := rules.LoadWithOverrides(man.Rules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}
	providerCfg, err := providers.LoadWithOverrides(man.Providers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	paths, err := gitfiles.Resolve(targets, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	logger.Info("scan targets resolved", zap.Int("files", len(paths)))

	tools := agenttools.NewRegistry(agenttools.Options{
		RedactPaths: []string{"**/.env", "**/*secrets*"},
	}, logger)
	ag, err := agent.New(cfg.Provider, cfg.Model, tools, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if agent.IsAuthError(err) {
			exitCode = ExitAuthError
		} else {
			exitCode = ExitUsageError
		}
		return
	}

	opts := []scan.Option{
		scan.WithProviderConfig(providerCfg),
		scan.WithLogger(logger),
	}
	if cfg.Cache.Enabled && !flagNoCache {
		c, err := cache.New(true, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
		if err != nil {
			logger.Warn("cache unavailable, continuing without it", zap.Error(err))
		} else {
			opts = append(opts, scan.WithCache(c))
		}
	}

	outcomes, err := scan.New(ag, opts...).Dispatch(ctx, catalog, rules.Configs(catalog), paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if agent.IsAuthError(err) {
			exitCode = ExitAuthError
		} else {
			exitCode = ExitRuntimeError
		}
		return
	}

	rpt := scan.AssembleReport(outcomes, catalog, man.Rules)

	if flagSave || cfg.OutputDir != "" {
		path, err := report.Save(rpt, cfg.Format, cfg.OutputDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", path)
	} else if err := report.WriteReport(rpt, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if cfg.FailOn != "none" && cfg.FailOn != "" {
		for _, f := range rpt.Findings {
			if scan.MeetsThreshold(f.Severity, cfg.FailOn) {
				exitCode = ExitFindings
				return
			}
		}
	}
}
