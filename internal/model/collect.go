package model

import (
	"errors"

	"github.com/mj1618/sysprefs-cli/internal/sysprefs"
)

// ReadApp reads the application summary. CurrentPane is empty in the Show
// All view and Window is 0 when the preferences window is closed.
func ReadApp(app *sysprefs.Application) (AppInfo, error) {
	var info AppInfo
	var err error
	if info.Running, err = app.Running(); err != nil {
		return info, err
	}
	if info.Name, err = app.Name(); err != nil {
		return info, err
	}
	if info.Version, err = app.Version(); err != nil {
		return info, err
	}
	if info.Frontmost, err = app.Frontmost(); err != nil {
		return info, err
	}
	if info.ShowAll, err = app.ShowAll(); err != nil {
		return info, err
	}
	pane, err := app.CurrentPane()
	if err != nil {
		return info, err
	}
	if pane != nil {
		if info.CurrentPane, err = pane.ID(); err != nil {
			return info, err
		}
	}
	w, err := app.PreferencesWindow()
	if err == nil {
		info.Window, err = w.ID()
	}
	if err != nil && !isStale(err) {
		return info, err
	}
	return info, nil
}

// ReadPane reads a pane's properties, and its anchors when withAnchors is set.
func ReadPane(p *sysprefs.Pane, withAnchors bool) (PaneInfo, error) {
	var info PaneInfo
	var err error
	if info.ID, err = p.ID(); err != nil {
		return info, err
	}
	if info.Name, err = p.Name(); err != nil {
		return info, err
	}
	if info.LocalizedName, err = p.LocalizedName(); err != nil {
		return info, err
	}
	if info.LocalizedName == info.Name {
		info.LocalizedName = ""
	}
	if withAnchors {
		if info.Anchors, err = AnchorNames(p); err != nil {
			return info, err
		}
	}
	return info, nil
}

// AnchorNames lists a pane's anchor names.
func AnchorNames(p *sysprefs.Pane) ([]string, error) {
	var names []string
	for a, err := range p.Anchors() {
		if err != nil {
			return nil, err
		}
		name, err := a.Name()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// ReadPanes reads every pane.
func ReadPanes(app *sysprefs.Application, withAnchors bool) ([]PaneInfo, error) {
	out := []PaneInfo{}
	for p, err := range app.Panes() {
		if err != nil {
			return nil, err
		}
		info, err := ReadPane(p, withAnchors)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, nil
}

// ReadWindow reads a window's properties.
func ReadWindow(w *sysprefs.Window) (WindowInfo, error) {
	var info WindowInfo
	var err error
	if info.ID, err = w.ID(); err != nil {
		return info, err
	}
	if info.Name, err = w.Name(); err != nil {
		return info, err
	}
	if info.Index, err = w.Index(); err != nil {
		return info, err
	}
	r, err := w.Bounds()
	if err != nil {
		return info, err
	}
	info.Bounds = [4]int{r.X, r.Y, r.Width, r.Height}
	if info.Visible, err = w.Visible(); err != nil {
		return info, err
	}
	if info.Miniaturized, err = w.Miniaturized(); err != nil {
		return info, err
	}
	if info.Zoomed, err = w.Zoomed(); err != nil {
		return info, err
	}
	doc, err := w.Document()
	if err != nil {
		return info, err
	}
	if doc != nil {
		if info.Document, err = doc.Name(); err != nil {
			return info, err
		}
	}
	return info, nil
}

// ReadWindows reads every window, front to back.
func ReadWindows(app *sysprefs.Application) ([]WindowInfo, error) {
	out := []WindowInfo{}
	for w, err := range app.Windows() {
		if err != nil {
			return nil, err
		}
		info, err := ReadWindow(w)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, nil
}

// ReadDocuments reads every document.
func ReadDocuments(app *sysprefs.Application) ([]DocumentInfo, error) {
	out := []DocumentInfo{}
	for d, err := range app.Documents() {
		if err != nil {
			return nil, err
		}
		var info DocumentInfo
		if info.Name, err = d.Name(); err != nil {
			return nil, err
		}
		if info.Modified, err = d.Modified(); err != nil {
			return nil, err
		}
		f, err := d.File()
		if err != nil {
			return nil, err
		}
		info.File = string(f)
		out = append(out, info)
	}
	return out, nil
}

func isStale(err error) bool {
	return errors.Is(err, sysprefs.ErrStaleReference)
}
