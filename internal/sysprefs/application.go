// Package sysprefs is a typed facade over the System Preferences scripting
// dictionary. Handles are lookup keys into the live application: every
// accessor and command is one synchronous round trip through a
// scripting.Runner, and nothing is cached between calls.
package sysprefs

import (
	"context"
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/mj1618/sysprefs-cli/internal/scripting"
	"github.com/rs/zerolog"
)

// DefaultName is the application the facade targets unless WithName is given.
const DefaultName = "System Preferences"

// Application is a handle to the target application. It does not own the
// target process.
type Application struct {
	runner scripting.Runner
	name   string
	dict   Dictionary
	log    zerolog.Logger
}

// Option configures an Application.
type Option func(*Application)

// WithName addresses the target by application name or bundle identifier.
func WithName(name string) Option {
	return func(a *Application) { a.name = name }
}

// WithDictionary replaces StandardDictionary, for targets that publish a
// reduced dictionary.
func WithDictionary(d Dictionary) Option {
	return func(a *Application) { a.dict = d }
}

// WithLogger logs every round trip at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Application) { a.log = l }
}

// New returns an Application that sends scripts through runner.
func New(runner scripting.Runner, opts ...Option) *Application {
	a := &Application{
		runner: runner,
		name:   DefaultName,
		dict:   StandardDictionary,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// TargetName returns the name the application is addressed by.
func (a *Application) TargetName() string { return a.name }

func (a *Application) Class() Class { return ClassApplication }

func (a *Application) Reference() Reference { return rootSpecifier.reference(a.name) }

func (a *Application) Supports(op Op) bool { return a.dict.Supports(ClassApplication, op) }

func (a *Application) Capabilities() []Op { return a.dict.Ops(ClassApplication) }

func (a *Application) root() element { return element{app: a, ref: rootSpecifier} }

// eval checks op against the dictionary, runs one script and classifies
// any failure.
func (a *Application) eval(op Op, class Class, body string) ([]byte, error) {
	if !a.dict.Supports(class, op) {
		return nil, unsupported(op, class)
	}
	script := wrapScript(a.name, body)
	reqID := uuid.NewString()
	a.log.Trace().Str("request_id", reqID).Str("script", script).Msg("script")

	start := time.Now()
	out, err := a.runner.Run(context.Background(), script)
	ev := a.log.Debug().
		Str("request_id", reqID).
		Str("op", string(op)).
		Str("class", string(class)).
		Dur("elapsed", time.Since(start))
	if err != nil {
		e := classify(op, err)
		ev.Err(e).Msg("remote call failed")
		return nil, e
	}
	ev.Msg("remote call")
	return out, nil
}

// Running reports whether the target process is running, without launching it.
func (a *Application) Running() (bool, error) {
	return a.root().getBool(OpRunning)
}

// Activate brings the target to the front, launching it if needed.
func (a *Application) Activate() error {
	_, err := a.eval(OpActivate, ClassApplication, returnNull("app.activate()"))
	return err
}

// Name returns the application's name.
func (a *Application) Name() (string, error) { return a.root().getString(OpName) }

// Version returns the application's version number.
func (a *Application) Version() (string, error) { return a.root().getString(OpVersion) }

// Frontmost reports whether the application is active.
func (a *Application) Frontmost() (bool, error) { return a.root().getBool(OpFrontmost) }

// ShowAll reports whether System Preferences is in the Show All view.
func (a *Application) ShowAll() (bool, error) { return a.root().getBool(OpShowAll) }

// SetShowAll requests the Show All view. The target ignores false; leave
// the view by selecting a pane instead.
func (a *Application) SetShowAll(v bool) error {
	return a.root().set(OpSetShowAll, "showAll", v)
}

// CurrentPane returns the selected pane, or nil when no pane is selected.
func (a *Application) CurrentPane() (*Pane, error) {
	data, err := a.eval(OpCurrentPane, ClassApplication, maybeKey("app.currentPane()", "id"))
	if err != nil {
		return nil, err
	}
	id, ok, err := decodeOptionalString(data)
	if err != nil {
		return nil, badReply(OpCurrentPane, err)
	}
	if !ok {
		return nil, nil
	}
	return a.Pane(id), nil
}

// SetCurrentPane selects p.
func (a *Application) SetCurrentPane(p *Pane) error {
	if p == nil {
		return malformed(OpSetCurrentPane, "pane is nil")
	}
	_, err := a.eval(OpSetCurrentPane, ClassApplication, returnNull("app.currentPane = "+p.ref.expr()))
	return err
}

// PreferencesWindow returns the main preferences window.
func (a *Application) PreferencesWindow() (*Window, error) {
	data, err := a.eval(OpPreferencesWindow, ClassApplication, returnValue("app.preferencesWindow().id()"))
	if err != nil {
		return nil, err
	}
	id, err := decodeInt(data)
	if err != nil {
		return nil, badReply(OpPreferencesWindow, err)
	}
	return a.Window(id), nil
}

// Pane returns a handle to the pane with the given locale-independent id.
// No round trip is made; the pane may not exist.
func (a *Application) Pane(id string) *Pane {
	return &Pane{element{app: a, ref: rootSpecifier.child(ClassPane, formID, id)}}
}

// PaneByName returns a handle to the pane whose title-bar name is name.
func (a *Application) PaneByName(name string) *Pane {
	return &Pane{element{app: a, ref: rootSpecifier.child(ClassPane, formName, name)}}
}

// Window returns a handle to the window with the given id.
func (a *Application) Window(id int) *Window {
	return &Window{element{app: a, ref: rootSpecifier.child(ClassWindow, formID, id)}}
}

// Document returns a handle to the document with the given name.
func (a *Application) Document(name string) *Document {
	return &Document{element{app: a, ref: rootSpecifier.child(ClassDocument, formName, name)}}
}

// Panes enumerates the preference panes each time it is ranged over.
func (a *Application) Panes() iter.Seq2[*Pane, error] {
	return func(yield func(*Pane, error) bool) {
		ids, err := a.root().stringKeys(OpPanes, "panes", "id")
		if err != nil {
			yield(nil, err)
			return
		}
		for _, id := range ids {
			if !yield(a.Pane(id), nil) {
				return
			}
		}
	}
}

// Windows enumerates the application's windows, front to back.
func (a *Application) Windows() iter.Seq2[*Window, error] {
	return func(yield func(*Window, error) bool) {
		data, err := a.eval(OpWindows, ClassApplication, elementKeys(rootSpecifier, "windows", "id"))
		if err != nil {
			yield(nil, err)
			return
		}
		ids, err := decodeInts(data)
		if err != nil {
			yield(nil, badReply(OpWindows, err))
			return
		}
		for _, id := range ids {
			if !yield(a.Window(id), nil) {
				return
			}
		}
	}
}

// Documents enumerates the application's documents.
func (a *Application) Documents() iter.Seq2[*Document, error] {
	return func(yield func(*Document, error) bool) {
		names, err := a.root().stringKeys(OpDocuments, "documents", "name")
		if err != nil {
			yield(nil, err)
			return
		}
		for _, name := range names {
			if !yield(a.Document(name), nil) {
				return
			}
		}
	}
}

// Exists reports whether the object h refers to currently exists.
func (a *Application) Exists(h Handle) (bool, error) {
	data, err := a.eval(OpExists, ClassApplication, returnValue(h.locate().expr()+".exists()"))
	if err != nil {
		return false, err
	}
	ok, err := decodeBool(data)
	if err != nil {
		return false, badReply(OpExists, err)
	}
	return ok, nil
}

// Open opens a file and returns a reference to the resulting object, which
// is empty when the target returns nothing.
func (a *Application) Open(f File) (Reference, error) {
	if f == "" {
		return "", malformed(OpOpen, "file path is empty")
	}
	data, err := a.eval(OpOpen, ClassApplication, maybeReference("app.open("+f.targetExpr()+")"))
	if err != nil {
		return "", err
	}
	ref, _, err := decodeOptionalString(data)
	if err != nil {
		return "", badReply(OpOpen, err)
	}
	return Reference(ref), nil
}

// Print prints a file or object.
func (a *Application) Print(t Target, settings *PrintSettings, dialog bool) error {
	if t == nil {
		return malformed(OpPrint, "print target is nil")
	}
	params, err := printParams(OpPrint, settings, dialog)
	if err != nil {
		return err
	}
	_, err = a.eval(OpPrint, ClassApplication, returnNull("app.print("+t.targetExpr()+", "+params+")"))
	return err
}

// QuitSaving quits the application.
func (a *Application) QuitSaving(saving SaveOption) error {
	kw, ok := saving.Keyword()
	if !ok {
		return malformed(OpQuit, "unknown save option %s", saving)
	}
	_, err := a.eval(OpQuit, ClassApplication, returnNull("app.quit("+jsRecord([]string{"saving"}, map[string]any{"saving": kw})+")"))
	return err
}

// Collect drains a collection into a slice, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
