package cmd

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/mj1618/sysprefs-cli/internal/model"
	"github.com/mj1618/sysprefs-cli/internal/output"
	"github.com/spf13/cobra"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture a System Preferences window",
	Long: `Capture the main System Preferences window, or the window given by --window.
Written to --output, or to stdout as base64 for easy agent consumption.`,
	Args: cobra.NoArgs,
	RunE: runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().Int("window", 0, "Window id (default: the main preferences window)")
	screenshotCmd.Flags().String("output", "", "Output file path (default: stdout as base64)")
	screenshotCmd.Flags().String("image-format", "png", "Image format: png, jpg")
	screenshotCmd.Flags().Int("quality", 80, "JPEG quality 1-100")
	screenshotCmd.Flags().Float64("scale", 0.5, "Scale factor 0.1-1.0 (for token efficiency)")
	screenshotCmd.Flags().String("label", "", "Caption drawn over the capture")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	if s.provider.Screenshotter == nil {
		return fmt.Errorf("screenshot not supported with the %s backend", cfg.Bridge.Backend)
	}

	windowID, _ := cmd.Flags().GetInt("window")
	path, _ := cmd.Flags().GetString("output")

	w := s.app.Window(windowID)
	if windowID == 0 {
		if w, err = s.app.PreferencesWindow(); err != nil {
			return err
		}
	}
	opts, err := model.CaptureOptions(w)
	if err != nil {
		return err
	}
	opts.Format, _ = cmd.Flags().GetString("image-format")
	opts.Quality, _ = cmd.Flags().GetInt("quality")
	opts.Scale, _ = cmd.Flags().GetFloat64("scale")
	opts.Label, _ = cmd.Flags().GetString("label")

	data, err := s.provider.Screenshotter.CaptureWindow(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if path != "" {
		return os.WriteFile(path, data, 0644)
	}
	encoder := base64.NewEncoder(base64.StdEncoding, output.Writer)
	if _, err := encoder.Write(data); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	_, err = fmt.Fprintln(output.Writer)
	return err
}
