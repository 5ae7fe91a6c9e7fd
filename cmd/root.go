package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/mj1618/sysprefs-cli/internal/config"
	"github.com/mj1618/sysprefs-cli/internal/logging"
	"github.com/mj1618/sysprefs-cli/internal/output"
	"github.com/mj1618/sysprefs-cli/internal/platform"
	"github.com/mj1618/sysprefs-cli/internal/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sysprefs",
	Short: "Remote-control System Preferences",
	Long: `A CLI that drives the macOS System Preferences application through its scripting
dictionary: list and reveal panes and anchors, move windows, authorize locked panes,
and print or quit. Every command reads the target afresh; nothing is cached.`,
	SilenceUsage: true,
}

// cfg is the effective configuration: file and env, then flag overrides.
var cfg = config.Default()

var log = zerolog.Nop()

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	pf := rootCmd.PersistentFlags()
	pf.String("format", "", "Output format: yaml, json (default from config, else yaml)")
	pf.Bool("pretty", false, "Indent JSON output")
	pf.String("app", "", "Target application name or bundle id (default: System Preferences)")
	pf.String("backend", "", "Scripting backend: osascript, simulator")
	pf.String("fixture", "", "YAML state file for the simulator backend")
	pf.Duration("timeout", 0, "Per-script timeout for the osascript backend (e.g. 30s)")
	pf.String("log-level", "", "Log level: trace, debug, info, warn, error")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		if err := applyFlags(cmd); err != nil {
			return err
		}

		log = logging.ConfigureRuntime(cfg.Log.Level)

		format, err := output.ParseFormat(cfg.Output.Format)
		if err != nil {
			return err
		}
		output.OutputFormat = format
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")
		output.Writer = cmd.OutOrStdout()
		return nil
	}
}

// applyFlags overlays explicitly set root flags on cfg.
func applyFlags(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()
	if pf.Changed("format") {
		cfg.Output.Format, _ = pf.GetString("format")
	}
	if pf.Changed("app") {
		cfg.App.Name, _ = pf.GetString("app")
	}
	if pf.Changed("backend") {
		cfg.Bridge.Backend, _ = pf.GetString("backend")
	}
	if pf.Changed("fixture") {
		cfg.Bridge.Fixture, _ = pf.GetString("fixture")
		if !pf.Changed("backend") {
			cfg.Bridge.Backend = platform.BackendSimulator
		}
	}
	if pf.Changed("timeout") {
		var d time.Duration
		d, _ = pf.GetDuration("timeout")
		cfg.Bridge.Timeout = d
	}
	if pf.Changed("log-level") {
		cfg.Log.Level, _ = pf.GetString("log-level")
	}
	return cfg.Validate()
}
