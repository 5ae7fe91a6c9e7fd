package cmd

import (
	"fmt"

	"github.com/mj1618/sysprefs-cli/internal/model"
	"github.com/mj1618/sysprefs-cli/internal/output"
	"github.com/mj1618/sysprefs-cli/internal/sysprefs"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the application state",
	Long:  "Report whether System Preferences is running, its version, the Show All state, the current pane and the main window id.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return read(model.ReadApp)
	},
}

var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Bring System Preferences to the front",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return act("activate", func(app *sysprefs.Application) (sysprefs.Reference, error) {
			return app.Reference(), app.Activate()
		})
	},
}

var quitCmd = &cobra.Command{
	Use:   "quit",
	Short: "Quit System Preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		saving, err := parseSaving(cmd)
		if err != nil {
			return err
		}
		s, err := newSession()
		if err != nil {
			return err
		}
		if err := s.app.QuitSaving(saving); err != nil {
			return err
		}
		return output.Print(model.Result{OK: true, Action: "quit", Reference: string(s.app.Reference())})
	},
}

var openCmd = &cobra.Command{
	Use:   "open PATH",
	Short: "Open a file, such as a .prefPane bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return act("open", func(app *sysprefs.Application) (sysprefs.Reference, error) {
			return app.Open(sysprefs.File(args[0]))
		})
	},
}

var existsCmd = &cobra.Command{
	Use:   "exists",
	Short: "Check whether an object exists",
	Long: `Check whether the object named by --pane (optionally with --anchor), --window or
--document currently exists. Exits successfully either way; the answer is in the output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		h, err := targetFromFlags(cmd, s.app)
		if err != nil {
			return err
		}
		ok, err := s.app.Exists(h)
		if err != nil {
			return err
		}
		return output.Print(existsResult{Reference: string(h.Reference()), Exists: ok})
	},
}

type existsResult struct {
	Reference string `yaml:"reference" json:"reference"`
	Exists    bool   `yaml:"exists"    json:"exists"`
}

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print a pane, window, document or file",
	Args:  cobra.NoArgs,
	RunE:  runPrint,
}

func runPrint(cmd *cobra.Command, args []string) error {
	settings, err := printSettingsFromFlags(cmd)
	if err != nil {
		return err
	}
	dialog, _ := cmd.Flags().GetBool("dialog")
	file, _ := cmd.Flags().GetString("file")

	return act("print", func(app *sysprefs.Application) (sysprefs.Reference, error) {
		if file != "" {
			if cmd.Flags().Changed("pane") || cmd.Flags().Changed("window") || cmd.Flags().Changed("document") {
				return "", fmt.Errorf("--file cannot be combined with --pane, --window or --document")
			}
			return "", app.Print(sysprefs.File(file), settings, dialog)
		}
		h, err := targetFromFlags(cmd, app)
		if err != nil {
			return "", err
		}
		return h.Reference(), app.Print(h, settings, dialog)
	})
}

func printSettingsFromFlags(cmd *cobra.Command) (*sysprefs.PrintSettings, error) {
	f := cmd.Flags()
	s := &sysprefs.PrintSettings{}
	s.Copies, _ = f.GetInt("copies")
	s.StartingPage, _ = f.GetInt("from")
	s.EndingPage, _ = f.GetInt("to")
	s.PagesAcross, _ = f.GetInt("pages-across")
	s.PagesDown, _ = f.GetInt("pages-down")
	s.FaxNumber, _ = f.GetString("fax")
	s.TargetPrinter, _ = f.GetString("printer")
	if f.Changed("collate") {
		v, _ := f.GetBool("collate")
		s.Collating = &v
	}
	if eh, _ := f.GetString("error-handling"); eh != "" {
		h, err := sysprefs.ParsePrintErrorHandling(eh)
		if err != nil {
			return nil, err
		}
		s.ErrorHandling = h
	}
	return s, nil
}

var getCmd = &cobra.Command{
	Use:   "get REFERENCE OP",
	Short: "Evaluate a parameterless operation on an object reference",
	Long: `Evaluate a parameterless operation on an object given by its reference, as printed
by other commands. The reference's class decides which operations are available.

Examples:
  sysprefs get 'Application("System Preferences").panes.byId("com.apple.preference.dock")' name
  sysprefs get 'Application("System Preferences")' currentPane`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return read(func(app *sysprefs.Application) (getResult, error) {
			obj, err := app.Object(sysprefs.Reference(args[0]))
			if err != nil {
				return getResult{}, err
			}
			v, err := obj.Call(sysprefs.Op(args[1]))
			if err != nil {
				return getResult{}, err
			}
			return getResult{Reference: args[0], Op: args[1], Value: v}, nil
		})
	},
}

type getResult struct {
	Reference string      `yaml:"reference" json:"reference"`
	Op        string      `yaml:"op"        json:"op"`
	Value     interface{} `yaml:"value"     json:"value"`
}

func init() {
	rootCmd.AddCommand(infoCmd, activateCmd, quitCmd, openCmd, existsCmd, printCmd, getCmd)

	quitCmd.Flags().String("saving", "", "Unsaved changes: yes, no, ask (default: ask)")

	addTargetFlags(existsCmd, true)

	addTargetFlags(printCmd, false)
	printCmd.Flags().String("file", "", "Print a file instead of an object")
	printCmd.Flags().Bool("dialog", false, "Show the print dialog")
	printCmd.Flags().Int("copies", 0, "Number of copies")
	printCmd.Flags().Bool("collate", false, "Collate copies")
	printCmd.Flags().Int("from", 0, "First page")
	printCmd.Flags().Int("to", 0, "Last page")
	printCmd.Flags().Int("pages-across", 0, "Logical pages laid across a physical page")
	printCmd.Flags().Int("pages-down", 0, "Logical pages laid down a physical page")
	printCmd.Flags().String("error-handling", "", "Error reporting: standard, detailed")
	printCmd.Flags().String("fax", "", "Fax number")
	printCmd.Flags().String("printer", "", "Target printer")
}
