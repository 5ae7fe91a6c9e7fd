package cmd

import (
	"fmt"

	"github.com/mj1618/sysprefs-cli/internal/model"
	"github.com/mj1618/sysprefs-cli/internal/output"
	"github.com/mj1618/sysprefs-cli/internal/platform"
	"github.com/mj1618/sysprefs-cli/internal/sysprefs"
	"github.com/spf13/cobra"
)

// session is the facade and the backends behind it for one command run.
type session struct {
	app      *sysprefs.Application
	provider *platform.Provider
}

// newSession builds the platform provider and facade from cfg.
func newSession() (*session, error) {
	provider, err := platform.NewProvider(platform.Options{
		Backend:   cfg.Bridge.Backend,
		Osascript: cfg.Bridge.Osascript,
		Timeout:   cfg.Bridge.Timeout,
		Fixture:   cfg.Bridge.Fixture,
	})
	if err != nil {
		return nil, err
	}
	app := sysprefs.New(provider.Runner,
		sysprefs.WithName(cfg.App.Name),
		sysprefs.WithLogger(log),
	)
	log.Debug().Str("backend", cfg.Bridge.Backend).Str("app", app.TargetName()).Msg("session ready")
	return &session{app: app, provider: provider}, nil
}

// act runs a state-changing call and prints the result with its changes.
func act(action string, fn func(app *sysprefs.Application) (sysprefs.Reference, error)) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	result, err := model.Act(s.app, action, func() (sysprefs.Reference, error) { return fn(s.app) })
	if err != nil {
		return err
	}
	return output.Print(result)
}

// read runs a query and prints what it returns.
func read[T any](fn func(app *sysprefs.Application) (T, error)) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	v, err := fn(s.app)
	if err != nil {
		return err
	}
	return output.Print(v)
}

// addTargetFlags registers the flags that name a single object.
func addTargetFlags(cmd *cobra.Command, anchor bool) {
	cmd.Flags().String("pane", "", "Pane id, e.g. com.apple.preference.security")
	if anchor {
		cmd.Flags().String("anchor", "", "Anchor name within --pane")
	}
	cmd.Flags().Int("window", 0, "Window id")
	cmd.Flags().String("document", "", "Document name")
}

// targetFromFlags resolves the handle named by the target flags. Exactly
// one of --pane, --window or --document must be set.
func targetFromFlags(cmd *cobra.Command, app *sysprefs.Application) (sysprefs.Handle, error) {
	pane, _ := cmd.Flags().GetString("pane")
	window, _ := cmd.Flags().GetInt("window")
	document, _ := cmd.Flags().GetString("document")
	var anchor string
	if cmd.Flags().Lookup("anchor") != nil {
		anchor, _ = cmd.Flags().GetString("anchor")
	}

	set := 0
	for _, ok := range []bool{pane != "", window != 0, document != ""} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("specify exactly one of --pane, --window or --document")
	}
	if anchor != "" && pane == "" {
		return nil, fmt.Errorf("--anchor requires --pane")
	}

	switch {
	case pane != "" && anchor != "":
		return app.Pane(pane).Anchor(anchor), nil
	case pane != "":
		return app.Pane(pane), nil
	case window != 0:
		return app.Window(window), nil
	default:
		return app.Document(document), nil
	}
}

func parseSaving(cmd *cobra.Command) (sysprefs.SaveOption, error) {
	s, _ := cmd.Flags().GetString("saving")
	if s == "" {
		return sysprefs.SaveAsk, nil
	}
	return sysprefs.ParseSaveOption(s)
}
