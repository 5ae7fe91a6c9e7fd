package cmd

import (
	"fmt"

	"github.com/mj1618/sysprefs-cli/internal/config"
	"github.com/mj1618/sysprefs-cli/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.Encode(cfg)
		if err != nil {
			return err
		}
		_, err = output.Writer.Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		if path == "" {
			path = config.Path()
		}
		force, _ := cmd.Flags().GetBool("force")
		if err := config.Save(cfg, path, force); err != nil {
			return err
		}
		_, err := fmt.Fprintf(output.Writer, "wrote %s\n", path)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd)
	configInitCmd.Flags().String("path", "", "Destination (default: $SYSPREFS_CONFIG or ~/.config/sysprefs/config.toml)")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}
