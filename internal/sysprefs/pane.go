package sysprefs

import "iter"

// Pane is a handle to a preference pane, keyed by id (or by name when
// obtained from PaneByName).
type Pane struct {
	element
}

// ID returns the locale-independent pane id, e.g. "com.apple.preference.dock".
func (p *Pane) ID() (string, error) { return p.getString(OpID) }

// Name returns the name shown in the title bar.
func (p *Pane) Name() (string, error) { return p.getString(OpName) }

func (p *Pane) LocalizedName() (string, error) { return p.getString(OpLocalizedName) }

// Anchor returns a handle to a named anchor within the pane.
func (p *Pane) Anchor(name string) *Anchor {
	return &Anchor{
		element: element{app: p.app, ref: p.ref.child(ClassAnchor, formName, name)},
		pane:    p,
	}
}

// Anchors enumerates the pane's anchors each time it is ranged over.
func (p *Pane) Anchors() iter.Seq2[*Anchor, error] {
	return func(yield func(*Anchor, error) bool) {
		names, err := p.stringKeys(OpAnchors, "anchors", "name")
		if err != nil {
			yield(nil, err)
			return
		}
		for _, name := range names {
			if !yield(p.Anchor(name), nil) {
				return
			}
		}
	}
}

// Reveal selects the pane in the application window.
func (p *Pane) Reveal() (Reference, error) { return reveal(p.element) }

// Authorize prompts the user to unlock the pane. It returns the pane, or
// nil if the target returned nothing.
func (p *Pane) Authorize() (*Pane, error) {
	data, err := p.app.eval(OpAuthorize, ClassPane, maybeKey(p.ref.expr()+".authorize()", "id"))
	if err != nil {
		return nil, err
	}
	id, ok, err := decodeOptionalString(data)
	if err != nil {
		return nil, badReply(OpAuthorize, err)
	}
	if !ok {
		return nil, nil
	}
	return p.app.Pane(id), nil
}

// Anchor is a handle to a named sub-section of a pane.
type Anchor struct {
	element
	pane *Pane
}

func (a *Anchor) Name() (string, error) { return a.getString(OpName) }

// Pane returns the handle of the pane containing the anchor.
func (a *Anchor) Pane() *Pane { return a.pane }

// Reveal shows the anchor's section, selecting its pane first.
func (a *Anchor) Reveal() (Reference, error) { return reveal(a.element) }

func reveal(e element) (Reference, error) {
	data, err := e.app.eval(OpReveal, e.ref.class, maybeReference(e.ref.expr()+".reveal()"))
	if err != nil {
		return "", err
	}
	ref, _, err := decodeOptionalString(data)
	if err != nil {
		return "", badReply(OpReveal, err)
	}
	return Reference(ref), nil
}
