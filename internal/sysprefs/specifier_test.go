package sysprefs

import "testing"

func TestSpecifier_Render(t *testing.T) {
	a := New(nil)
	tests := []struct {
		h    Handle
		want Reference
	}{
		{a.Pane("com.apple.preference.dock"), `Application("System Preferences").panes.byId("com.apple.preference.dock")`},
		{a.PaneByName("Sound"), `Application("System Preferences").panes.byName("Sound")`},
		{a.Pane("com.apple.preference.security").Anchor("Privacy"), `Application("System Preferences").panes.byId("com.apple.preference.security").anchors.byName("Privacy")`},
		{a.Window(1001), `Application("System Preferences").windows.byId(1001)`},
		{a.Document(`a "quoted" name`), `Application("System Preferences").documents.byName("a \"quoted\" name")`},
	}
	for _, tt := range tests {
		if got := tt.h.Reference(); got != tt.want {
			t.Errorf("got %s, want %s", got, tt.want)
		}
	}
	if got := a.Reference(); got != `Application("System Preferences")` {
		t.Errorf("application: got %s", got)
	}
}

func TestParseReference_RoundTrip(t *testing.T) {
	a := New(nil)
	for _, h := range []Handle{
		a.Pane("com.apple.preference.security").Anchor("Privacy_Camera"),
		a.Window(42),
		a.Document(`x\y "z"`),
		a.PaneByName("Dock & Menu Bar"),
	} {
		name, spec, err := parseReference(h.Reference())
		if err != nil {
			t.Fatalf("%s: %v", h.Reference(), err)
		}
		if name != DefaultName {
			t.Errorf("app name: got %q", name)
		}
		if got := spec.reference(name); got != h.Reference() {
			t.Errorf("round trip: got %s, want %s", got, h.Reference())
		}
		if spec.class != h.Class() {
			t.Errorf("class: got %s, want %s", spec.class, h.Class())
		}
	}
}

func TestParseReference_Errors(t *testing.T) {
	for _, ref := range []Reference{
		``,
		`Finder`,
		`Application(42)`,
		`Application("System Preferences").toolbars.byId(1)`,
		`Application("System Preferences").anchors.byName("x")`,
		`Application("System Preferences").panes.byIndex(1)`,
		`Application("System Preferences").panes.byId("x"`,
		`Application("System Preferences").panes.byId("x").windows.byId(1)`,
	} {
		if _, _, err := parseReference(ref); err == nil {
			t.Errorf("parseReference(%q): expected error", ref)
		}
	}
}
