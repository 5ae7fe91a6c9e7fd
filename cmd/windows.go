package cmd

import (
	"fmt"
	"strconv"

	"github.com/mj1618/sysprefs-cli/internal/model"
	"github.com/mj1618/sysprefs-cli/internal/platform"
	"github.com/mj1618/sysprefs-cli/internal/sysprefs"
	"github.com/spf13/cobra"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List windows, front to back",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return read(model.ReadWindows)
	},
}

var windowCmd = &cobra.Command{
	Use:   "window ID",
	Short: "Show or change a window",
	Long: `Without flags, print the window's properties. With flags, change them.

Examples:
  sysprefs window 1001
  sysprefs window 1001 --bounds 0,25,668,588 --index 1
  sysprefs window 1001 --miniaturized=false`,
	Args: cobra.ExactArgs(1),
	RunE: runWindow,
}

func runWindow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid window id %q", args[0])
	}
	f := cmd.Flags()
	var bounds *platform.Bounds
	if b, _ := f.GetString("bounds"); b != "" {
		if bounds, err = platform.ParseBounds(b); err != nil {
			return err
		}
	}
	if bounds == nil && !f.Changed("index") && !f.Changed("visible") && !f.Changed("zoomed") && !f.Changed("miniaturized") {
		return read(func(app *sysprefs.Application) (model.WindowInfo, error) {
			return model.ReadWindow(app.Window(id))
		})
	}

	return act("set_window", func(app *sysprefs.Application) (sysprefs.Reference, error) {
		w := app.Window(id)
		if bounds != nil {
			if err := w.SetBounds(sysprefs.Rect{X: bounds.X, Y: bounds.Y, Width: bounds.Width, Height: bounds.Height}); err != nil {
				return "", err
			}
		}
		if f.Changed("index") {
			idx, _ := f.GetInt("index")
			if err := w.SetIndex(idx); err != nil {
				return "", err
			}
		}
		for _, b := range []struct {
			flag string
			set  func(bool) error
		}{
			{"visible", w.SetVisible},
			{"zoomed", w.SetZoomed},
			{"miniaturized", w.SetMiniaturized},
		} {
			if f.Changed(b.flag) {
				v, _ := f.GetBool(b.flag)
				if err := b.set(v); err != nil {
					return "", err
				}
			}
		}
		return w.Reference(), nil
	})
}

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List open documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return read(model.ReadDocuments)
	},
}

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Close a window or document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		saving, err := parseSaving(cmd)
		if err != nil {
			return err
		}
		savingIn, _ := cmd.Flags().GetString("saving-in")
		window, _ := cmd.Flags().GetInt("window")
		document, _ := cmd.Flags().GetString("document")
		if (window == 0) == (document == "") {
			return fmt.Errorf("specify exactly one of --window or --document")
		}
		return act("close", func(app *sysprefs.Application) (sysprefs.Reference, error) {
			if window != 0 {
				w := app.Window(window)
				return w.Reference(), w.CloseSaving(saving, sysprefs.File(savingIn))
			}
			d := app.Document(document)
			return d.Reference(), d.CloseSaving(saving, sysprefs.File(savingIn))
		})
	},
}

func init() {
	rootCmd.AddCommand(windowsCmd, windowCmd, documentsCmd, closeCmd)

	windowCmd.Flags().String("bounds", "", "New bounds as x,y,width,height")
	windowCmd.Flags().Int("index", 0, "New front-to-back position (1 = front)")
	windowCmd.Flags().Bool("visible", false, "Show or hide the window")
	windowCmd.Flags().Bool("zoomed", false, "Zoom or unzoom the window")
	windowCmd.Flags().Bool("miniaturized", false, "Minimize or restore the window")

	closeCmd.Flags().Int("window", 0, "Window id")
	closeCmd.Flags().String("document", "", "Document name")
	closeCmd.Flags().String("saving", "", "Unsaved changes: yes, no, ask (default: ask)")
	closeCmd.Flags().String("saving-in", "", "File to save into when saving")
}
