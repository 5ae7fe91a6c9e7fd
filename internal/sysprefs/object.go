package sysprefs

import "fmt"

// Object adapts an opaque reference, such as the result of Reveal or Open,
// to this facade. It exposes only operations the dictionary declares for
// the referenced class.
type Object struct {
	element
}

// Object parses ref into a generic handle. The reference must address this
// application.
func (a *Application) Object(ref Reference) (*Object, error) {
	name, spec, err := parseReference(ref)
	if err != nil {
		return nil, malformed(OpGet, "%v", err)
	}
	if name != a.name {
		return nil, malformed(OpGet, "reference addresses %q, not %q", name, a.name)
	}
	return &Object{element{app: a, ref: spec}}, nil
}

func (o *Object) as(class Class) error {
	if o.ref.class != class {
		return malformed(OpGet, "%s is a %s, not a %s", o.Reference(), o.ref.class, class)
	}
	return nil
}

// Pane adapts the object to a pane handle.
func (o *Object) Pane() (*Pane, error) {
	if err := o.as(ClassPane); err != nil {
		return nil, err
	}
	return &Pane{o.element}, nil
}

// Anchor adapts the object to an anchor handle.
func (o *Object) Anchor() (*Anchor, error) {
	if err := o.as(ClassAnchor); err != nil {
		return nil, err
	}
	return &Anchor{element: o.element, pane: &Pane{element{app: o.app, ref: o.ref.parent}}}, nil
}

// Window adapts the object to a window handle.
func (o *Object) Window() (*Window, error) {
	if err := o.as(ClassWindow); err != nil {
		return nil, err
	}
	return &Window{o.element}, nil
}

// Document adapts the object to a document handle.
func (o *Object) Document() (*Document, error) {
	if err := o.as(ClassDocument); err != nil {
		return nil, err
	}
	return &Document{o.element}, nil
}

// propertyOps are the declared properties readable through Call.
var propertyOps = map[Op]bool{
	OpName: true, OpVersion: true, OpFrontmost: true, OpRunning: true, OpShowAll: true,
	OpID: true, OpIndex: true, OpCloseable: true, OpMiniaturizable: true,
	OpMiniaturized: true, OpResizable: true, OpVisible: true, OpZoomable: true, OpZoomed: true,
	OpModified: true, OpLocalizedName: true,
}

// referenceOps are object-valued properties; Call returns their reference.
var referenceOps = map[Op]bool{OpCurrentPane: true, OpPreferencesWindow: true, OpDocument: true}

var elementOps = map[Op]bool{OpPanes: true, OpAnchors: true, OpWindows: true, OpDocuments: true}

// Call invokes a parameterless operation by name and returns the decoded
// reply: a string, bool, float64, Rect, File, a Reference for object-valued
// results, []Reference for element lists, or nil. Operations the class does not declare
// fail with ErrUnsupported without contacting the target.
func (o *Object) Call(op Op) (any, error) {
	if !o.Supports(op) {
		return nil, unsupported(op, o.ref.class)
	}
	switch {
	case op == OpGet:
		return o.Get()
	case op == OpExists:
		return o.app.Exists(o)
	case op == OpReveal:
		return reveal(o.element)
	case op == OpAuthorize:
		data, err := o.app.eval(op, o.ref.class, maybeReference(o.ref.expr()+".authorize()"))
		if err != nil {
			return nil, err
		}
		ref, _, err := decodeOptionalString(data)
		if err != nil {
			return nil, badReply(op, err)
		}
		return Reference(ref), nil
	case op == OpBounds:
		w := Window{o.element}
		return w.Bounds()
	case op == OpFile:
		d := Document{o.element}
		return d.File()
	case referenceOps[op]:
		data, err := o.app.eval(op, o.ref.class, maybeReference(o.ref.expr()+"."+string(op)+"()"))
		if err != nil {
			return nil, err
		}
		ref, ok, err := decodeOptionalString(data)
		if err != nil {
			return nil, badReply(op, err)
		}
		if !ok {
			return nil, nil
		}
		return Reference(ref), nil
	case elementOps[op]:
		data, err := o.app.eval(op, o.ref.class, returnValue(o.ref.expr()+"."+string(op)+
			"().map(function (o) { return Automation.getDisplayString(o); })"))
		if err != nil {
			return nil, err
		}
		refs, err := decodeStrings(data)
		if err != nil {
			return nil, badReply(op, err)
		}
		out := make([]Reference, len(refs))
		for i, r := range refs {
			out[i] = Reference(r)
		}
		return out, nil
	case propertyOps[op]:
		data, err := o.get(op)
		if err != nil {
			return nil, err
		}
		v, err := decodeAny(data)
		if err != nil {
			return nil, badReply(op, err)
		}
		return v, nil
	}
	return nil, &Error{Op: op, Kind: KindUnsupported, Message: fmt.Sprintf("%s takes parameters; use the typed %s handle", op, o.ref.class)}
}
