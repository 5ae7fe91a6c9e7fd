package scripting

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// State is the simulated object graph of a System Preferences process.
type State struct {
	Name              string          `yaml:"name"`
	BundleID          string          `yaml:"bundle_id,omitempty"`
	Version           string          `yaml:"version"`
	Running           bool            `yaml:"running"`
	AutoLaunch        bool            `yaml:"auto_launch"`
	Frontmost         bool            `yaml:"frontmost"`
	ShowAll           bool            `yaml:"show_all"`
	CurrentPane       string          `yaml:"current_pane,omitempty"`
	CurrentAnchor     string          `yaml:"current_anchor,omitempty"`
	DenyAuthorization bool            `yaml:"deny_authorization,omitempty"`
	Panes             []PaneState     `yaml:"panes"`
	Windows           []WindowState   `yaml:"windows"`
	Documents         []DocumentState `yaml:"documents,omitempty"`
	PrintJobs         []PrintJob      `yaml:"print_jobs,omitempty"`
}

// PaneState is a simulated preference pane.
type PaneState struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	LocalizedName string   `yaml:"localized_name,omitempty"`
	Anchors       []string `yaml:"anchors,omitempty"`
	Authorized    bool     `yaml:"authorized,omitempty"`
}

// WindowState is a simulated window. Windows are ordered front to back.
type WindowState struct {
	ID             int    `yaml:"id"`
	Name           string `yaml:"name"`
	Bounds         [4]int `yaml:"bounds,flow"`
	Closeable      bool   `yaml:"closeable"`
	Miniaturizable bool   `yaml:"miniaturizable"`
	Miniaturized   bool   `yaml:"miniaturized"`
	Resizable      bool   `yaml:"resizable"`
	Visible        bool   `yaml:"visible"`
	Zoomable       bool   `yaml:"zoomable"`
	Zoomed         bool   `yaml:"zoomed"`
	Document       string `yaml:"document,omitempty"`
}

// DocumentState is a simulated document.
type DocumentState struct {
	Name     string `yaml:"name"`
	Modified bool   `yaml:"modified,omitempty"`
	File     string `yaml:"file,omitempty"`
}

// PrintJob records a print command received by the simulator.
type PrintJob struct {
	Target        string `yaml:"target"`
	Copies        int    `yaml:"copies,omitempty"`
	ErrorHandling string `yaml:"error_handling,omitempty"`
	Dialog        bool   `yaml:"dialog,omitempty"`
}

// DefaultState returns a running System Preferences with a typical set of
// panes and its main window.
func DefaultState() State {
	return State{
		Name:       "System Preferences",
		BundleID:   "com.apple.systempreferences",
		Version:    "15.0",
		Running:    true,
		AutoLaunch: true,
		ShowAll:    true,
		Panes: []PaneState{
			{ID: "com.apple.preference.general", Name: "General", Anchors: []string{"Main"}},
			{ID: "com.apple.preference.dock", Name: "Dock & Menu Bar", Anchors: []string{"Dock", "Menu Bar"}},
			{ID: "com.apple.preference.displays", Name: "Displays", Anchors: []string{"displaysDisplayTab", "displaysArrangementTab", "displaysNightShiftTab"}},
			{ID: "com.apple.preference.keyboard", Name: "Keyboard", Anchors: []string{"keyboardTab", "shortcutsTab", "Dictation"}},
			{ID: "com.apple.preference.network", Name: "Network", Anchors: []string{"Proxies", "Wi-Fi"}},
			{ID: "com.apple.preference.security", Name: "Security & Privacy", Anchors: []string{
				"General", "FDE", "Firewall", "Privacy", "Privacy_Accessibility", "Privacy_Camera", "Privacy_ScreenCapture",
			}},
			{ID: "com.apple.preference.sound", Name: "Sound", Anchors: []string{"effects", "input", "output"}},
			{ID: "com.apple.preferences.Bluetooth", Name: "Bluetooth"},
		},
		Windows: []WindowState{
			{
				ID:             1001,
				Name:           "System Preferences",
				Bounds:         [4]int{200, 120, 668, 588},
				Closeable:      true,
				Miniaturizable: true,
				Visible:        true,
			},
		},
	}
}

// LoadFixture reads a simulator state from a YAML file.
func LoadFixture(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return State{}, fmt.Errorf("fixture load failed (%s): %w", path, err)
	}
	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("fixture parse failed (%s): %w", path, err)
	}
	if err := st.Validate(); err != nil {
		return State{}, fmt.Errorf("fixture invalid (%s): %w", path, err)
	}
	return st, nil
}

// Validate checks that object keys are unique and references resolve.
func (st State) Validate() error {
	if st.Name == "" {
		return fmt.Errorf("state missing name")
	}
	panes := make(map[string]bool)
	for i, p := range st.Panes {
		if p.ID == "" {
			return fmt.Errorf("pane[%d] missing id", i)
		}
		if panes[p.ID] {
			return fmt.Errorf("duplicate pane id %q", p.ID)
		}
		panes[p.ID] = true
	}
	if st.CurrentPane != "" && !panes[st.CurrentPane] {
		return fmt.Errorf("current_pane %q is not a pane", st.CurrentPane)
	}
	docs := make(map[string]bool)
	for _, d := range st.Documents {
		docs[d.Name] = true
	}
	windows := make(map[int]bool)
	for i, w := range st.Windows {
		if w.ID <= 0 {
			return fmt.Errorf("window[%d] needs a positive id", i)
		}
		if windows[w.ID] {
			return fmt.Errorf("duplicate window id %d", w.ID)
		}
		windows[w.ID] = true
		if w.Document != "" && !docs[w.Document] {
			return fmt.Errorf("window %d shows unknown document %q", w.ID, w.Document)
		}
	}
	return nil
}

func (st State) clone() State {
	out := st
	out.Panes = make([]PaneState, len(st.Panes))
	for i, p := range st.Panes {
		p.Anchors = append([]string(nil), p.Anchors...)
		out.Panes[i] = p
	}
	out.Windows = append([]WindowState(nil), st.Windows...)
	out.Documents = append([]DocumentState(nil), st.Documents...)
	out.PrintJobs = append([]PrintJob(nil), st.PrintJobs...)
	return out
}
