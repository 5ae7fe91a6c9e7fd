package sysprefs

import (
	"errors"
	"testing"
)

func TestObject_FromReveal(t *testing.T) {
	app, _ := newTestApp(t)
	ref, err := app.Pane(securityPane).Anchor("Firewall").Reveal()
	if err != nil {
		t.Fatal(err)
	}
	obj, err := app.Object(ref)
	if err != nil {
		t.Fatal(err)
	}
	if obj.Class() != ClassAnchor {
		t.Fatalf("class: %s", obj.Class())
	}
	a, err := obj.Anchor()
	if err != nil {
		t.Fatal(err)
	}
	if name, err := a.Name(); err != nil || name != "Firewall" {
		t.Errorf("Name: %q, %v", name, err)
	}
	if id, err := a.Pane().ID(); err != nil || id != securityPane {
		t.Errorf("Pane: %q, %v", id, err)
	}
	if _, err := obj.Window(); !errors.Is(err, ErrMalformedParameter) {
		t.Errorf("anchor as window: %v", err)
	}
}

func TestObject_Rejects(t *testing.T) {
	app, _ := newTestApp(t)
	if _, err := app.Object(`Application("Finder").windows.byId(1)`); !errors.Is(err, ErrMalformedParameter) {
		t.Errorf("other app: %v", err)
	}
	if _, err := app.Object(`not a reference`); !errors.Is(err, ErrMalformedParameter) {
		t.Errorf("garbage: %v", err)
	}
}

func TestObject_Call(t *testing.T) {
	app, sim := newTestApp(t)

	obj, err := app.Object(app.Pane(dockPane).Reference())
	if err != nil {
		t.Fatal(err)
	}
	v, err := obj.Call(OpName)
	if err != nil || v != "Dock & Menu Bar" {
		t.Errorf("name: %v, %v", v, err)
	}
	v, err = obj.Call(OpExists)
	if err != nil || v != true {
		t.Errorf("exists: %v, %v", v, err)
	}
	v, err = obj.Call(OpAnchors)
	refs, ok := v.([]Reference)
	if err != nil || !ok || len(refs) != 2 {
		t.Fatalf("anchors: %v, %v", v, err)
	}
	if refs[1] != app.Pane(dockPane).Anchor("Menu Bar").Reference() {
		t.Errorf("anchor ref: %s", refs[1])
	}

	root, err := app.Object(app.Reference())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := obj.Call(OpReveal); err != nil {
		t.Fatal(err)
	}
	v, err = root.Call(OpCurrentPane)
	if err != nil || v != app.Pane(dockPane).Reference() {
		t.Errorf("currentPane: %v, %v", v, err)
	}
	v, err = root.Call(OpShowAll)
	if err != nil || v != false {
		t.Errorf("showAll: %v, %v", v, err)
	}

	win, err := app.Object(app.Window(1001).Reference())
	if err != nil {
		t.Fatal(err)
	}
	v, err = win.Call(OpBounds)
	if err != nil || v != (Rect{X: 200, Y: 120, Width: 668, Height: 588}) {
		t.Errorf("bounds: %v, %v", v, err)
	}
	v, err = win.Call(OpDocument)
	if err != nil || v != nil {
		t.Errorf("document: %v, %v", v, err)
	}

	runs := sim.Runs()
	if _, err := win.Call(OpSetBounds); !errors.Is(err, ErrUnsupported) {
		t.Errorf("parameterized op: %v", err)
	}
	if sim.Runs() != runs {
		t.Error("parameterized op should not reach the target")
	}
}

func TestObject_AnchorAuthorizeUnsupported(t *testing.T) {
	app, sim := newTestApp(t)
	obj, err := app.Object(app.Pane(securityPane).Anchor("Privacy").Reference())
	if err != nil {
		t.Fatal(err)
	}
	if obj.Supports(OpAuthorize) {
		t.Error("anchors do not declare authorize")
	}
	if _, err := obj.Call(OpAuthorize); !errors.Is(err, ErrUnsupported) {
		t.Errorf("got %v", err)
	}
	if sim.Runs() != 0 {
		t.Errorf("unsupported call ran %d scripts", sim.Runs())
	}
}
