package scripting

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runSim(t *testing.T, sim *Simulator, body string) (string, error) {
	t.Helper()
	script := "(function () {\n\tvar app = Application(\"System Preferences\");\n\t" + body + "\n})()"
	out, err := sim.Run(context.Background(), script)
	return string(out), err
}

func scriptErrNumber(t *testing.T, err error) int {
	t.Helper()
	var se *ScriptError
	if !errors.As(err, &se) {
		t.Fatalf("expected *ScriptError, got %T: %v", err, err)
	}
	return se.Number
}

func TestSimulator_ReadsProperties(t *testing.T) {
	sim := NewSimulator(DefaultState())
	out, err := runSim(t, sim, `return JSON.stringify({ value: [app.name(), app.version(), app.showAll()] });`)
	if err != nil {
		t.Fatal(err)
	}
	if out != `{"value":["System Preferences","15.0",true]}` {
		t.Errorf("got %s", out)
	}
}

func TestSimulator_ListsPaneIDs(t *testing.T) {
	sim := NewSimulator(DefaultState())
	out, err := runSim(t, sim, `return JSON.stringify({ value: app.panes().map(function (o) { return o.id(); }) });`)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"com.apple.preference.security"`) {
		t.Errorf("missing security pane in %s", out)
	}
}

func TestSimulator_SetCurrentPane(t *testing.T) {
	sim := NewSimulator(DefaultState())
	_, err := runSim(t, sim, `app.currentPane = app.panes.byId("com.apple.preference.dock"); return JSON.stringify({ value: null });`)
	if err != nil {
		t.Fatal(err)
	}
	st := sim.Snapshot()
	if st.CurrentPane != "com.apple.preference.dock" {
		t.Errorf("current pane: got %q", st.CurrentPane)
	}
	if st.ShowAll {
		t.Error("selecting a pane should leave the Show All view")
	}
}

func TestSimulator_ShowAllFalseIsIgnored(t *testing.T) {
	sim := NewSimulator(DefaultState())
	if _, err := runSim(t, sim, `app.showAll = false; return "null";`); err != nil {
		t.Fatal(err)
	}
	if !sim.Snapshot().ShowAll {
		t.Error("setting showAll to false must not change it")
	}
}

func TestSimulator_MissingPane(t *testing.T) {
	sim := NewSimulator(DefaultState())
	_, err := runSim(t, sim, `return JSON.stringify({ value: app.panes.byId("com.example.gone").name() });`)
	if n := scriptErrNumber(t, err); n != ErrNumNoSuchObject {
		t.Errorf("got %d, want %d", n, ErrNumNoSuchObject)
	}
}

func TestSimulator_AnchorRevealRequiresPane(t *testing.T) {
	sim := NewSimulator(DefaultState())
	sim.Mutate(func(st *State) {
		st.Panes = st.Panes[:1]
	})
	_, err := runSim(t, sim, `app.panes.byId("com.apple.preference.security").anchors.byName("Privacy").reveal(); return "null";`)
	if n := scriptErrNumber(t, err); n != ErrNumNoSuchObject {
		t.Errorf("got %d, want %d", n, ErrNumNoSuchObject)
	}
}

func TestSimulator_AnchorReveal(t *testing.T) {
	sim := NewSimulator(DefaultState())
	out, err := runSim(t, sim, `var r = app.panes.byId("com.apple.preference.security").anchors.byName("Privacy").reveal(); return JSON.stringify({ value: Automation.getDisplayString(r) });`)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"value":"Application(\"System Preferences\").panes.byId(\"com.apple.preference.security\").anchors.byName(\"Privacy\")"}`
	if out != want {
		t.Errorf("got %s\nwant %s", out, want)
	}
	st := sim.Snapshot()
	if st.CurrentPane != "com.apple.preference.security" || st.CurrentAnchor != "Privacy" {
		t.Errorf("got pane %q anchor %q", st.CurrentPane, st.CurrentAnchor)
	}
}

func TestSimulator_UnknownApplication(t *testing.T) {
	sim := NewSimulator(DefaultState())
	_, err := sim.Run(context.Background(), `Application("Nope").name()`)
	if n := scriptErrNumber(t, err); n != ErrNumAppNotFound {
		t.Errorf("got %d, want %d", n, ErrNumAppNotFound)
	}
}

func TestSimulator_BundleIDResolves(t *testing.T) {
	sim := NewSimulator(DefaultState())
	out, err := sim.Run(context.Background(), `Application("com.apple.systempreferences").name()`)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "System Preferences" {
		t.Errorf("got %q", out)
	}
}

func TestSimulator_NotRunningWithoutAutoLaunch(t *testing.T) {
	st := DefaultState()
	st.Running = false
	st.AutoLaunch = false
	sim := NewSimulator(st)

	out, err := runSim(t, sim, `return JSON.stringify({ value: app.running() });`)
	if err != nil {
		t.Fatal(err)
	}
	if out != `{"value":false}` {
		t.Errorf("got %s", out)
	}
	_, err = runSim(t, sim, `return JSON.stringify({ value: app.version() });`)
	if n := scriptErrNumber(t, err); n != ErrNumNotRunning {
		t.Errorf("got %d, want %d", n, ErrNumNotRunning)
	}
}

func TestSimulator_AuthorizeDenied(t *testing.T) {
	st := DefaultState()
	st.DenyAuthorization = true
	sim := NewSimulator(st)
	_, err := runSim(t, sim, `app.panes.byId("com.apple.preference.security").authorize(); return "null";`)
	if n := scriptErrNumber(t, err); n != ErrNumUserCanceled {
		t.Errorf("got %d, want %d", n, ErrNumUserCanceled)
	}
}

func TestSimulator_WindowSetters(t *testing.T) {
	sim := NewSimulator(DefaultState())
	_, err := runSim(t, sim, `var w = app.windows.byId(1001);
	w.bounds = {"x":10,"y":20,"width":300,"height":400};
	w.zoomed = true;
	return "null";`)
	if err != nil {
		t.Fatal(err)
	}
	w := sim.Snapshot().Windows[0]
	if w.Bounds != [4]int{10, 20, 300, 400} {
		t.Errorf("bounds: got %v", w.Bounds)
	}
	if !w.Zoomed {
		t.Error("zoomed should be set")
	}
}

func TestSimulator_ReadOnlyProperty(t *testing.T) {
	sim := NewSimulator(DefaultState())
	_, err := runSim(t, sim, `app.windows.byId(1001).closeable = false; return "null";`)
	if n := scriptErrNumber(t, err); n != ErrNumAccessDenied {
		t.Errorf("got %d, want %d", n, ErrNumAccessDenied)
	}
}

func TestSimulator_BadSavingOption(t *testing.T) {
	sim := NewSimulator(DefaultState())
	_, err := runSim(t, sim, `app.windows.byId(1001).close({ saving: "maybe" }); return "null";`)
	if n := scriptErrNumber(t, err); n != ErrNumCoercion {
		t.Errorf("got %d, want %d", n, ErrNumCoercion)
	}
}

func TestSimulator_PaneCloseNotHandled(t *testing.T) {
	sim := NewSimulator(DefaultState())
	_, err := runSim(t, sim, `app.panes.byId("com.apple.preference.dock").close({ saving: "no" }); return "null";`)
	if n := scriptErrNumber(t, err); n != ErrNumEventNotHandled {
		t.Errorf("got %d, want %d", n, ErrNumEventNotHandled)
	}
}

func TestSimulator_Canceled(t *testing.T) {
	sim := NewSimulator(DefaultState())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sim.Run(ctx, "1"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	data := `name: System Settings
version: "16.0"
running: true
show_all: false
current_pane: com.apple.Sound-Settings.extension
panes:
  - id: com.apple.Sound-Settings.extension
    name: Sound
    anchors: [input, output]
windows:
  - id: 7
    name: Sound
    bounds: [0, 0, 700, 600]
    visible: true
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	st, err := LoadFixture(path)
	if err != nil {
		t.Fatal(err)
	}
	if st.Name != "System Settings" || len(st.Panes) != 1 || st.Windows[0].Bounds[2] != 700 {
		t.Errorf("unexpected state: %+v", st)
	}
}

func TestState_Validate(t *testing.T) {
	st := DefaultState()
	st.Panes = append(st.Panes, st.Panes[0])
	if err := st.Validate(); err == nil {
		t.Error("duplicate pane ids should be rejected")
	}

	st = DefaultState()
	st.CurrentPane = "com.example.none"
	if err := st.Validate(); err == nil {
		t.Error("unknown current pane should be rejected")
	}

	if err := DefaultState().Validate(); err != nil {
		t.Errorf("default state should be valid: %v", err)
	}
}
