package sysprefs

// Window is a handle to a window, keyed by its unique id.
type Window struct {
	element
}

func (w *Window) Name() (string, error) { return w.getString(OpName) }

// ID returns the window's unique identifier, which is also its window
// server number.
func (w *Window) ID() (int, error) { return w.getInt(OpID) }

// Index returns the window's position, ordered front to back from 1.
func (w *Window) Index() (int, error) { return w.getInt(OpIndex) }

func (w *Window) Bounds() (Rect, error) {
	data, err := w.get(OpBounds)
	if err != nil {
		return Rect{}, err
	}
	r, err := decodeRect(data)
	if err != nil {
		return Rect{}, badReply(OpBounds, err)
	}
	return r, nil
}

func (w *Window) Closeable() (bool, error)      { return w.getBool(OpCloseable) }
func (w *Window) Miniaturizable() (bool, error) { return w.getBool(OpMiniaturizable) }
func (w *Window) Miniaturized() (bool, error)   { return w.getBool(OpMiniaturized) }
func (w *Window) Resizable() (bool, error)      { return w.getBool(OpResizable) }
func (w *Window) Visible() (bool, error)        { return w.getBool(OpVisible) }
func (w *Window) Zoomable() (bool, error)       { return w.getBool(OpZoomable) }
func (w *Window) Zoomed() (bool, error)         { return w.getBool(OpZoomed) }

// Document returns the document shown in the window, or nil if none.
func (w *Window) Document() (*Document, error) {
	data, err := w.app.eval(OpDocument, ClassWindow, maybeKey(w.ref.expr()+".document()", "name"))
	if err != nil {
		return nil, err
	}
	name, ok, err := decodeOptionalString(data)
	if err != nil {
		return nil, badReply(OpDocument, err)
	}
	if !ok {
		return nil, nil
	}
	return w.app.Document(name), nil
}

func (w *Window) SetIndex(index int) error {
	if index < 1 {
		return malformed(OpSetIndex, "window index starts at 1, got %d", index)
	}
	return w.set(OpSetIndex, "index", index)
}

func (w *Window) SetBounds(r Rect) error {
	if r.Width < 0 || r.Height < 0 {
		return malformed(OpSetBounds, "bounds size must not be negative, got %dx%d", r.Width, r.Height)
	}
	return w.set(OpSetBounds, "bounds", r)
}

func (w *Window) SetMiniaturized(v bool) error { return w.set(OpSetMiniaturized, "miniaturized", v) }
func (w *Window) SetVisible(v bool) error      { return w.set(OpSetVisible, "visible", v) }
func (w *Window) SetZoomed(v bool) error       { return w.set(OpSetZoomed, "zoomed", v) }
