package sysprefs

import "sort"

// Class names a kind of scriptable object.
type Class string

const (
	ClassApplication Class = "application"
	ClassWindow      Class = "window"
	ClassDocument    Class = "document"
	ClassPane        Class = "pane"
	ClassAnchor      Class = "anchor"
)

// Op names an operation by its term in the target's scripting dictionary.
type Op string

const (
	// standard suite
	OpGet       Op = "get"
	OpExists    Op = "exists"
	OpActivate  Op = "activate"
	OpRunning   Op = "running"
	OpOpen      Op = "open"
	OpPrint     Op = "print"
	OpQuit      Op = "quit"
	OpClose     Op = "close"
	OpDocuments Op = "documents"
	OpWindows   Op = "windows"

	// properties
	OpName           Op = "name"
	OpVersion        Op = "version"
	OpFrontmost      Op = "frontmost"
	OpID             Op = "id"
	OpIndex          Op = "index"
	OpBounds         Op = "bounds"
	OpCloseable      Op = "closeable"
	OpMiniaturizable Op = "miniaturizable"
	OpMiniaturized   Op = "miniaturized"
	OpResizable      Op = "resizable"
	OpVisible        Op = "visible"
	OpZoomable       Op = "zoomable"
	OpZoomed         Op = "zoomed"
	OpDocument       Op = "document"
	OpModified       Op = "modified"
	OpFile           Op = "file"

	// property setters
	OpSetIndex        Op = "setIndex"
	OpSetBounds       Op = "setBounds"
	OpSetMiniaturized Op = "setMiniaturized"
	OpSetVisible      Op = "setVisible"
	OpSetZoomed       Op = "setZoomed"

	// System Preferences suite
	OpPanes             Op = "panes"
	OpAnchors           Op = "anchors"
	OpCurrentPane       Op = "currentPane"
	OpPreferencesWindow Op = "preferencesWindow"
	OpShowAll           Op = "showAll"
	OpSetCurrentPane    Op = "setCurrentPane"
	OpSetShowAll        Op = "setShowAll"
	OpLocalizedName     Op = "localizedName"
	OpReveal            Op = "reveal"
	OpAuthorize         Op = "authorize"
)

// Dictionary records which operations a target declares for each class.
type Dictionary map[Class]map[Op]bool

// NewDictionary builds a dictionary from per-class operation lists.
func NewDictionary(decl map[Class][]Op) Dictionary {
	d := make(Dictionary, len(decl))
	for c, ops := range decl {
		set := make(map[Op]bool, len(ops))
		for _, op := range ops {
			set[op] = true
		}
		d[c] = set
	}
	return d
}

// Supports reports whether class declares op.
func (d Dictionary) Supports(c Class, op Op) bool {
	return d[c][op]
}

// Ops returns the operations declared for class, sorted.
func (d Dictionary) Ops(c Class) []Op {
	ops := make([]Op, 0, len(d[c]))
	for op := range d[c] {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

// Without returns a copy of d with ops removed from class.
func (d Dictionary) Without(c Class, ops ...Op) Dictionary {
	out := make(Dictionary, len(d))
	for cls, set := range d {
		cp := make(map[Op]bool, len(set))
		for op := range set {
			cp[op] = true
		}
		out[cls] = cp
	}
	for _, op := range ops {
		delete(out[c], op)
	}
	return out
}

// Operations shared by every element through the generic document methods.
var genericOps = []Op{OpGet, OpExists, OpClose, OpPrint}

// StandardDictionary is the System Preferences scripting dictionary.
var StandardDictionary = NewDictionary(map[Class][]Op{
	ClassApplication: {
		OpGet, OpActivate, OpRunning, OpDocuments, OpWindows, OpName, OpFrontmost, OpVersion,
		OpOpen, OpPrint, OpQuit, OpExists, OpPanes, OpCurrentPane, OpPreferencesWindow,
		OpShowAll, OpSetCurrentPane, OpSetShowAll,
	},
	ClassDocument: append([]Op{OpName, OpModified, OpFile}, genericOps...),
	ClassWindow: append([]Op{
		OpName, OpID, OpIndex, OpBounds, OpCloseable, OpMiniaturizable, OpMiniaturized,
		OpResizable, OpVisible, OpZoomable, OpZoomed, OpDocument, OpSetIndex, OpSetBounds,
		OpSetMiniaturized, OpSetVisible, OpSetZoomed,
	}, genericOps...),
	ClassPane: append([]Op{OpAnchors, OpID, OpLocalizedName, OpName, OpReveal, OpAuthorize}, genericOps...),
	ClassAnchor: append([]Op{OpName, OpReveal}, genericOps...),
})
