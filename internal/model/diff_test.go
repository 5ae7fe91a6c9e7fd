package model

import "testing"

func TestDiff_NoChanges(t *testing.T) {
	s := State{
		App:     AppInfo{Name: "System Preferences", ShowAll: true},
		Windows: []WindowInfo{{ID: 1, Name: "System Preferences", Bounds: [4]int{10, 20, 100, 30}}},
	}
	if changes := Diff(s, s); len(changes) != 0 {
		t.Errorf("expected no changes, got %d", len(changes))
	}
}

func TestDiff_AppChanged(t *testing.T) {
	prev := State{App: AppInfo{ShowAll: true}}
	curr := State{App: AppInfo{CurrentPane: "com.apple.preference.dock"}}
	changes := Diff(prev, curr)
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	c := changes[0]
	if c.Type != ChangeChanged || c.Object != "application" {
		t.Errorf("got %+v", c)
	}
	if c.Changes["show_all"] != [2]string{"true", "false"} {
		t.Errorf("show_all: %v", c.Changes["show_all"])
	}
	if c.Changes["current_pane"] != [2]string{"", "com.apple.preference.dock"} {
		t.Errorf("current_pane: %v", c.Changes["current_pane"])
	}
}

func TestDiff_WindowAddedRemoved(t *testing.T) {
	prev := State{Windows: []WindowInfo{{ID: 1}, {ID: 2}}}
	curr := State{Windows: []WindowInfo{{ID: 2}, {ID: 3}}}
	changes := Diff(prev, curr)
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %+v", changes)
	}
	if changes[0].Type != ChangeAdded || changes[0].Object != "window 3" {
		t.Errorf("added: %+v", changes[0])
	}
	if changes[1].Type != ChangeRemoved || changes[1].Object != "window 1" {
		t.Errorf("removed: %+v", changes[1])
	}
}

func TestDiff_WindowChanged(t *testing.T) {
	prev := State{Windows: []WindowInfo{{ID: 7, Index: 1, Bounds: [4]int{0, 0, 10, 10}, Visible: true}}}
	curr := State{Windows: []WindowInfo{{ID: 7, Index: 2, Bounds: [4]int{5, 5, 10, 10}}}}
	changes := Diff(prev, curr)
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	got := changes[0].Changes
	if got["index"] != [2]string{"1", "2"} {
		t.Errorf("index: %v", got["index"])
	}
	if got["bounds"] != [2]string{"[0 0 10 10]", "[5 5 10 10]"} {
		t.Errorf("bounds: %v", got["bounds"])
	}
	if got["visible"] != [2]string{"true", "false"} {
		t.Errorf("visible: %v", got["visible"])
	}
}
