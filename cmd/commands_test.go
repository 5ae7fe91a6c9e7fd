package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mj1618/sysprefs-cli/internal/model"
	"github.com/mj1618/sysprefs-cli/internal/output"
	"gopkg.in/yaml.v3"
)

func TestInfo(t *testing.T) {
	out, err := run(t, "info")
	if err != nil {
		t.Fatal(err)
	}
	var info model.AppInfo
	if err := yaml.Unmarshal([]byte(out), &info); err != nil {
		t.Fatal(err)
	}
	if info.Name != "System Preferences" || !info.Running || !info.ShowAll {
		t.Errorf("info: %+v", info)
	}
}

func TestPanes(t *testing.T) {
	out, err := run(t, "panes", "--anchors")
	if err != nil {
		t.Fatal(err)
	}
	var panes []model.PaneInfo
	if err := yaml.Unmarshal([]byte(out), &panes); err != nil {
		t.Fatal(err)
	}
	if len(panes) != 8 {
		t.Fatalf("got %d panes", len(panes))
	}

	out, err = run(t, "anchors", "com.apple.preference.dock")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Menu Bar") {
		t.Errorf("anchors: %s", out)
	}
}

func TestReveal_JSON(t *testing.T) {
	out, err := run(t, "--format", "json", "reveal", "com.apple.preference.security", "Privacy_Camera")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { output.OutputFormat = output.FormatYAML })
	var result model.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("%v: %s", err, out)
	}
	if !result.OK || result.Action != "reveal" {
		t.Errorf("result: %+v", result)
	}
	if len(result.Changes) == 0 {
		t.Error("reveal should report the pane change")
	}
}

func TestReveal_MissingPane(t *testing.T) {
	_, err := run(t, "reveal", "com.does.not.exist")
	if err == nil || !strings.Contains(err.Error(), "no longer exists") {
		t.Errorf("got %v", err)
	}
}

func TestShowAll(t *testing.T) {
	out, err := run(t, "show-all")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "true" {
		t.Errorf("show-all: %q", out)
	}
	if _, err := run(t, "show-all", "--set", "false"); err != nil {
		t.Errorf("--set false must be accepted: %v", err)
	}
	if _, err := run(t, "show-all", "--set", "maybe"); err == nil {
		t.Error("expected parse error")
	}
}

func TestCurrentPane(t *testing.T) {
	out, err := run(t, "current-pane")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "null" {
		t.Errorf("no current pane in Show All: %q", out)
	}
	out, err = run(t, "current-pane", "--set", "com.apple.preference.dock")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "current_pane") {
		t.Errorf("changes: %s", out)
	}
}

func TestWindow(t *testing.T) {
	out, err := run(t, "window", "1001")
	if err != nil {
		t.Fatal(err)
	}
	var w model.WindowInfo
	if err := yaml.Unmarshal([]byte(out), &w); err != nil {
		t.Fatal(err)
	}
	if w.ID != 1001 || w.Bounds != [4]int{200, 120, 668, 588} {
		t.Errorf("window: %+v", w)
	}

	out, err = run(t, "window", "1001", "--bounds", "0,25,800,600", "--visible=false")
	if err != nil {
		t.Fatal(err)
	}
	var result model.Result
	if err := yaml.Unmarshal([]byte(out), &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Changes) != 1 || result.Changes[0].Changes["visible"] != [2]string{"true", "false"} {
		t.Errorf("changes: %+v", result.Changes)
	}

	if _, err := run(t, "window", "1001", "--index", "0"); err == nil {
		t.Error("index 0 should be rejected")
	}
	if _, err := run(t, "window", "abc"); err == nil {
		t.Error("non-numeric id should be rejected")
	}
}

func TestExists(t *testing.T) {
	out, err := run(t, "exists", "--pane", "com.apple.preference.security", "--anchor", "Privacy")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "exists: true") {
		t.Errorf("exists: %s", out)
	}
	out, err = run(t, "exists", "--window", "7")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "exists: false") {
		t.Errorf("missing window: %s", out)
	}
	if _, err := run(t, "exists", "--pane", "x", "--window", "1"); err == nil {
		t.Error("two targets should be rejected")
	}
	if _, err := run(t, "exists", "--anchor", "Privacy", "--window", "1"); err == nil {
		t.Error("--anchor without --pane should be rejected")
	}
}

func TestPrint(t *testing.T) {
	if _, err := run(t, "print", "--window", "1001", "--copies", "2", "--error-handling", "detailed"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "print", "--file", "/tmp/a.pdf"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "print", "--window", "1001", "--error-handling", "loud"); err == nil {
		t.Error("unknown error handling should be rejected")
	}
	if _, err := run(t, "print", "--window", "1001", "--copies", "-1"); err == nil {
		t.Error("negative copies should be rejected")
	}
}

func TestOpenAndClose(t *testing.T) {
	out, err := run(t, "open", "/Library/PreferencePanes/Extra.prefPane")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `documents.byName(\"Extra.prefPane\")`) && !strings.Contains(out, `documents.byName("Extra.prefPane")`) {
		t.Errorf("open: %s", out)
	}
	if _, err := run(t, "close", "--window", "1001", "--saving", "no"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "close"); err == nil {
		t.Error("close without a target should fail")
	}
	if _, err := run(t, "close", "--window", "1001", "--saving", "later"); err == nil {
		t.Error("bad saving option should fail")
	}
}

func TestGet(t *testing.T) {
	out, err := run(t, "get", `Application("System Preferences").panes.byId("com.apple.preference.dock")`, "name")
	if err != nil {
		t.Fatal(err)
	}
	var got getResult
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if got.Op != "name" || got.Value != "Dock & Menu Bar" {
		t.Errorf("get: %+v", got)
	}
	if _, err := run(t, "get", `Application("Finder")`, "name"); err == nil {
		t.Error("other application should be rejected")
	}
}

func TestQuit(t *testing.T) {
	out, err := run(t, "quit", "--saving", "no")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "action: quit") {
		t.Errorf("quit: %s", out)
	}
}

func TestScreenshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	if _, err := run(t, "screenshot", "--output", path, "--scale", "0.25", "--label", "main"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "\x89PNG") {
		t.Error("not a png")
	}
	if _, err := run(t, "screenshot", "--window", "7"); err == nil {
		t.Error("missing window should fail")
	}
}

func TestConfig(t *testing.T) {
	out, err := run(t, "--app", "com.apple.systempreferences", "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `name = "com.apple.systempreferences"`) || !strings.Contains(out, `backend = "simulator"`) {
		t.Errorf("config show:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "sysprefs", "config.toml")
	if _, err := run(t, "config", "init", "--path", path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "config", "init", "--path", path); err == nil {
		t.Error("init should refuse to overwrite")
	}
}

func TestInvalidFormat(t *testing.T) {
	if _, err := run(t, "--format", "xml", "info"); err == nil {
		t.Error("xml should be rejected")
	}
}

func TestRootFlags_OverrideConfig(t *testing.T) {
	out, err := run(t, "--timeout", "5s", "--log-level", "error", "--format", "json", "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`timeout = "5s"`, `level = "error"`, `format = "json"`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in:\n%s", want, out)
		}
	}
	if _, err := run(t, "--backend", "telnet", "info"); err == nil {
		t.Error("unknown backend should be rejected")
	}
}
