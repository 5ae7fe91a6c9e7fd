package cmd

import (
	"strconv"

	"github.com/mj1618/sysprefs-cli/internal/model"
	"github.com/mj1618/sysprefs-cli/internal/sysprefs"
	"github.com/spf13/cobra"
)

var panesCmd = &cobra.Command{
	Use:   "panes",
	Short: "List preference panes",
	Long:  "List preference panes with their locale-independent ids and names, optionally with anchors.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		withAnchors, _ := cmd.Flags().GetBool("anchors")
		return read(func(app *sysprefs.Application) ([]model.PaneInfo, error) {
			return model.ReadPanes(app, withAnchors)
		})
	},
}

var anchorsCmd = &cobra.Command{
	Use:   "anchors PANE",
	Short: "List the anchors of a pane",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return read(func(app *sysprefs.Application) ([]string, error) {
			names, err := model.AnchorNames(app.Pane(args[0]))
			if names == nil && err == nil {
				names = []string{}
			}
			return names, err
		})
	},
}

var revealCmd = &cobra.Command{
	Use:   "reveal PANE [ANCHOR]",
	Short: "Show a pane, or an anchor within it",
	Long: `Show a pane, or an anchor within it, in the System Preferences window.

Examples:
  sysprefs reveal com.apple.preference.dock
  sysprefs reveal com.apple.preference.security Privacy_Camera`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return act("reveal", func(app *sysprefs.Application) (sysprefs.Reference, error) {
			p := app.Pane(args[0])
			if len(args) == 2 {
				return p.Anchor(args[1]).Reveal()
			}
			return p.Reveal()
		})
	},
}

var currentPaneCmd = &cobra.Command{
	Use:   "current-pane",
	Short: "Show or select the current pane",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if id, _ := cmd.Flags().GetString("set"); id != "" {
			return act("set_current_pane", func(app *sysprefs.Application) (sysprefs.Reference, error) {
				p := app.Pane(id)
				return p.Reference(), app.SetCurrentPane(p)
			})
		}
		return read(func(app *sysprefs.Application) (*model.PaneInfo, error) {
			p, err := app.CurrentPane()
			if err != nil || p == nil {
				return nil, err
			}
			info, err := model.ReadPane(p, false)
			return &info, err
		})
	},
}

var showAllCmd = &cobra.Command{
	Use:   "show-all",
	Short: "Show or set the Show All view",
	Long: `Without --set, print whether the Show All view is active. --set true switches to it.
--set false is accepted but System Preferences ignores it; select a pane instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if raw, _ := cmd.Flags().GetString("set"); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return err
			}
			return act("set_show_all", func(app *sysprefs.Application) (sysprefs.Reference, error) {
				return app.Reference(), app.SetShowAll(v)
			})
		}
		return read(func(app *sysprefs.Application) (bool, error) {
			return app.ShowAll()
		})
	},
}

var authorizeCmd = &cobra.Command{
	Use:   "authorize PANE",
	Short: "Prompt to unlock a pane that requires authorization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return act("authorize", func(app *sysprefs.Application) (sysprefs.Reference, error) {
			p, err := app.Pane(args[0]).Authorize()
			if err != nil || p == nil {
				return "", err
			}
			return p.Reference(), nil
		})
	},
}

func init() {
	rootCmd.AddCommand(panesCmd, anchorsCmd, revealCmd, currentPaneCmd, showAllCmd, authorizeCmd)
	panesCmd.Flags().Bool("anchors", false, "Include each pane's anchor names")
	currentPaneCmd.Flags().String("set", "", "Select the pane with this id")
	showAllCmd.Flags().String("set", "", "Set the Show All view: true or false")
}
