package model

// AppInfo is the output of the `info` command.
type AppInfo struct {
	Name        string `yaml:"name"                   json:"name"`
	Version     string `yaml:"version,omitempty"      json:"version,omitempty"`
	Running     bool   `yaml:"running"                json:"running"`
	Frontmost   bool   `yaml:"frontmost"              json:"frontmost"`
	ShowAll     bool   `yaml:"show_all"               json:"show_all"`
	CurrentPane string `yaml:"current_pane,omitempty" json:"current_pane,omitempty"`
	Window      int    `yaml:"window,omitempty"       json:"window,omitempty"`
}

// PaneInfo describes a preference pane.
type PaneInfo struct {
	ID            string   `yaml:"id"                       json:"id"`
	Name          string   `yaml:"name"                     json:"name"`
	LocalizedName string   `yaml:"localized_name,omitempty" json:"localized_name,omitempty"`
	Anchors       []string `yaml:"anchors,omitempty"        json:"anchors,omitempty"`
}

// WindowInfo describes a window.
type WindowInfo struct {
	ID           int    `yaml:"id"                     json:"id"`
	Name         string `yaml:"name"                   json:"name"`
	Index        int    `yaml:"index"                  json:"index"`
	Bounds       [4]int `yaml:"bounds,flow"            json:"bounds"` // [x, y, width, height]
	Visible      bool   `yaml:"visible"                json:"visible"`
	Miniaturized bool   `yaml:"miniaturized,omitempty" json:"miniaturized,omitempty"`
	Zoomed       bool   `yaml:"zoomed,omitempty"       json:"zoomed,omitempty"`
	Document     string `yaml:"document,omitempty"     json:"document,omitempty"`
}

// DocumentInfo describes a document.
type DocumentInfo struct {
	Name     string `yaml:"name"           json:"name"`
	Modified bool   `yaml:"modified"       json:"modified"`
	File     string `yaml:"file,omitempty" json:"file,omitempty"`
}

// Result is the output of commands that act on a single object.
type Result struct {
	OK        bool     `yaml:"ok"                  json:"ok"`
	Action    string   `yaml:"action"              json:"action"`
	Reference string   `yaml:"reference,omitempty" json:"reference,omitempty"`
	Changes   []Change `yaml:"changes,omitempty"   json:"changes,omitempty"`
}
