package model

import (
	"fmt"
	"strconv"

	"github.com/mj1618/sysprefs-cli/internal/sysprefs"
)

// ChangeType represents the kind of change detected.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeChanged ChangeType = "changed"
)

// Change represents a single difference between two state reads.
type Change struct {
	Type    ChangeType           `yaml:"type"              json:"type"`
	Object  string               `yaml:"object"            json:"object"`            // "application" or "window <id>"
	Changes map[string][2]string `yaml:"changes,omitempty" json:"changes,omitempty"` // For changed: field diffs
}

// State is the observable state compared before and after a command.
type State struct {
	App     AppInfo      `yaml:"app"     json:"app"`
	Windows []WindowInfo `yaml:"windows" json:"windows"`
}

// ReadState reads the application summary and all windows.
func ReadState(app *sysprefs.Application) (State, error) {
	info, err := ReadApp(app)
	if err != nil {
		return State{}, err
	}
	windows, err := ReadWindows(app)
	if err != nil {
		return State{}, err
	}
	return State{App: info, Windows: windows}, nil
}

// Diff compares two state reads. Windows are matched by id.
func Diff(prev, curr State) []Change {
	var changes []Change
	if d := diffApp(prev.App, curr.App); d != nil {
		changes = append(changes, Change{Type: ChangeChanged, Object: "application", Changes: d})
	}

	prevMap := make(map[int]WindowInfo, len(prev.Windows))
	for _, w := range prev.Windows {
		prevMap[w.ID] = w
	}
	currMap := make(map[int]WindowInfo, len(curr.Windows))
	for _, w := range curr.Windows {
		currMap[w.ID] = w
	}

	for _, w := range curr.Windows {
		p, existed := prevMap[w.ID]
		if !existed {
			changes = append(changes, Change{Type: ChangeAdded, Object: windowObject(w.ID)})
			continue
		}
		if d := diffWindow(p, w); d != nil {
			changes = append(changes, Change{Type: ChangeChanged, Object: windowObject(w.ID), Changes: d})
		}
	}
	for _, w := range prev.Windows {
		if _, exists := currMap[w.ID]; !exists {
			changes = append(changes, Change{Type: ChangeRemoved, Object: windowObject(w.ID)})
		}
	}
	return changes
}

func windowObject(id int) string { return "window " + strconv.Itoa(id) }

func diffApp(prev, curr AppInfo) map[string][2]string {
	diffs := make(map[string][2]string)
	diffBool(diffs, "running", prev.Running, curr.Running)
	diffBool(diffs, "frontmost", prev.Frontmost, curr.Frontmost)
	diffBool(diffs, "show_all", prev.ShowAll, curr.ShowAll)
	if prev.CurrentPane != curr.CurrentPane {
		diffs["current_pane"] = [2]string{prev.CurrentPane, curr.CurrentPane}
	}
	if len(diffs) == 0 {
		return nil
	}
	return diffs
}

func diffWindow(prev, curr WindowInfo) map[string][2]string {
	diffs := make(map[string][2]string)
	if prev.Name != curr.Name {
		diffs["name"] = [2]string{prev.Name, curr.Name}
	}
	if prev.Index != curr.Index {
		diffs["index"] = [2]string{strconv.Itoa(prev.Index), strconv.Itoa(curr.Index)}
	}
	if prev.Bounds != curr.Bounds {
		diffs["bounds"] = [2]string{fmt.Sprintf("%v", prev.Bounds), fmt.Sprintf("%v", curr.Bounds)}
	}
	diffBool(diffs, "visible", prev.Visible, curr.Visible)
	diffBool(diffs, "miniaturized", prev.Miniaturized, curr.Miniaturized)
	diffBool(diffs, "zoomed", prev.Zoomed, curr.Zoomed)
	if prev.Document != curr.Document {
		diffs["document"] = [2]string{prev.Document, curr.Document}
	}
	if len(diffs) == 0 {
		return nil
	}
	return diffs
}

func diffBool(diffs map[string][2]string, key string, prev, curr bool) {
	if prev != curr {
		diffs[key] = [2]string{strconv.FormatBool(prev), strconv.FormatBool(curr)}
	}
}
