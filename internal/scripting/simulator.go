package scripting

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/dop251/goja"
)

// Simulator is a Runner that executes JXA scripts in the goja engine against
// an in-memory System Preferences. It mirrors the JXA object model closely
// enough for every script the sysprefs facade emits: element collections are
// callable and expose byId/byName, properties are callable and assignable,
// and object specifiers are resolved lazily on each use.
type Simulator struct {
	mu    sync.Mutex
	state State
	runs  int
}

// NewSimulator returns a simulator seeded with a copy of st.
func NewSimulator(st State) *Simulator {
	return &Simulator{state: st.clone()}
}

// Snapshot returns a copy of the current simulated state.
func (s *Simulator) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Mutate changes the simulated state between scripts, the way a user or
// another process would change the real application.
func (s *Simulator) Mutate(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// Runs reports how many scripts have been executed.
func (s *Simulator) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

// Run executes one script. Scripts are serialized; each gets a fresh VM.
func (s *Simulator) Run(ctx context.Context, script string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.runs++

	vm := goja.New()
	env := &simEnv{st: &s.state, vm: vm, panes: make(map[*goja.Object]func() *PaneState)}
	env.install()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	val, err := vm.RunString(script)
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return nil, &ScriptError{Number: ErrNumTimeout, Message: "script interrupted"}
		}
		return nil, ParseError(err.Error())
	}
	if val == nil || goja.IsUndefined(val) {
		return []byte("null"), nil
	}
	return []byte(val.String()), nil
}

type simEnv struct {
	st    *State
	vm    *goja.Runtime
	panes map[*goja.Object]func() *PaneState
}

func (e *simEnv) throw(num int, msg string) {
	panic(e.vm.NewGoError(&ScriptError{Number: num, Message: msg}))
}

func (e *simEnv) missing() {
	e.throw(ErrNumNoSuchObject, "Can't get object.")
}

func (e *simEnv) badParam() {
	e.throw(ErrNumCoercion, "Can't convert types.")
}

func (e *simEnv) launch() {
	if e.st.Running {
		return
	}
	if !e.st.AutoLaunch {
		e.throw(ErrNumNotRunning, "Application isn't running.")
	}
	e.st.Running = true
}

func (e *simEnv) install() {
	_ = e.vm.Set("Application", func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		if name != e.st.Name && (e.st.BundleID == "" || name != e.st.BundleID) {
			e.throw(ErrNumAppNotFound, "Application can't be found.")
		}
		return e.application()
	})
	_ = e.vm.Set("Path", func(call goja.FunctionCall) goja.Value {
		return e.vm.ToValue(call.Argument(0).String())
	})
	automation := e.vm.NewObject()
	_ = automation.Set("getDisplayString", func(call goja.FunctionCall) goja.Value {
		v := call.Argument(0)
		if obj, ok := v.(*goja.Object); ok {
			if d := obj.Get("__display"); d != nil {
				return d
			}
		}
		return e.vm.ToValue(v.String())
	})
	_ = e.vm.Set("Automation", automation)
}

func (e *simEnv) appDisplay() string {
	return "Application(" + Literal(e.st.Name) + ")"
}

// newObject creates a specifier object with a display string and class tag.
func (e *simEnv) newObject(class, display string) *goja.Object {
	obj := e.vm.NewObject()
	_ = obj.Set("__class", class)
	_ = obj.Set("__display", display)
	return obj
}

func (e *simEnv) method(obj *goja.Object, name string, fn func(call goja.FunctionCall) goja.Value) {
	_ = obj.Set(name, fn)
}

// property defines a JXA-style property: reading it yields a function that
// fetches the value, assigning to it sets the value. A nil set makes the
// property read-only.
func (e *simEnv) property(obj *goja.Object, name string, get func() any, set func(goja.Value)) {
	getter := e.vm.ToValue(func(goja.FunctionCall) goja.Value {
		return e.vm.ToValue(func(goja.FunctionCall) goja.Value {
			return e.vm.ToValue(get())
		})
	})
	setter := e.vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if set == nil {
			e.throw(ErrNumAccessDenied, fmt.Sprintf("Can't set %s.", name))
		}
		set(call.Argument(0))
		return goja.Undefined()
	})
	_ = obj.DefineAccessorProperty(name, getter, setter, goja.FLAG_TRUE, goja.FLAG_TRUE)
}

// collection builds a callable element array with byId/byName specifiers.
func (e *simEnv) collection(list func() []any, byID func(goja.Value) goja.Value, byName func(string) goja.Value) *goja.Object {
	fn := e.vm.ToValue(func(goja.FunctionCall) goja.Value {
		return e.vm.NewArray(list()...)
	}).ToObject(e.vm)
	if byID != nil {
		_ = fn.Set("byId", func(call goja.FunctionCall) goja.Value {
			return byID(call.Argument(0))
		})
	}
	if byName != nil {
		_ = fn.Set("byName", func(call goja.FunctionCall) goja.Value {
			return byName(call.Argument(0).String())
		})
	}
	return fn
}

func (e *simEnv) boolArg(v goja.Value) bool {
	b, ok := v.Export().(bool)
	if !ok {
		e.badParam()
	}
	return b
}

func (e *simEnv) intArg(v goja.Value) int {
	switch n := v.Export().(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	e.badParam()
	return 0
}

func (e *simEnv) field(obj *goja.Object, name string) goja.Value {
	v := obj.Get(name)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	return v
}

func (e *simEnv) options(v goja.Value) *goja.Object {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		e.badParam()
	}
	return obj
}

// closeOptions validates a close/quit parameter record and returns the
// saving keyword and optional destination.
func (e *simEnv) closeOptions(v goja.Value) (saving, savingIn string) {
	saving = "ask"
	opts := e.options(v)
	if opts == nil {
		return saving, ""
	}
	if s := e.field(opts, "saving"); s != nil {
		switch s.String() {
		case "yes", "no", "ask":
			saving = s.String()
		default:
			e.badParam()
		}
	}
	if p := e.field(opts, "savingIn"); p != nil {
		if _, ok := p.Export().(string); !ok {
			e.badParam()
		}
		savingIn = p.String()
	}
	return saving, savingIn
}

func (e *simEnv) printJob(target string, v goja.Value) {
	job := PrintJob{Target: target}
	if opts := e.options(v); opts != nil {
		if d := e.field(opts, "printDialog"); d != nil {
			job.Dialog = e.boolArg(d)
		}
		if wp := e.field(opts, "withProperties"); wp != nil {
			props := e.options(wp)
			if c := e.field(props, "copies"); c != nil {
				job.Copies = e.intArg(c)
				if job.Copies < 1 {
					e.badParam()
				}
			}
			if eh := e.field(props, "errorHandling"); eh != nil {
				switch eh.String() {
				case "standard", "detailed":
					job.ErrorHandling = eh.String()
				default:
					e.badParam()
				}
			}
		}
	}
	e.st.PrintJobs = append(e.st.PrintJobs, job)
}

func (e *simEnv) notHandled(goja.FunctionCall) goja.Value {
	e.throw(ErrNumEventNotHandled, "Message not understood.")
	return goja.Undefined()
}

func (e *simEnv) application() *goja.Object {
	app := e.newObject("application", e.appDisplay())

	e.method(app, "running", func(goja.FunctionCall) goja.Value {
		return e.vm.ToValue(e.st.Running)
	})
	e.method(app, "activate", func(goja.FunctionCall) goja.Value {
		e.st.Running = true
		e.st.Frontmost = true
		return goja.Undefined()
	})
	e.method(app, "quit", func(call goja.FunctionCall) goja.Value {
		e.launch()
		e.closeOptions(call.Argument(0))
		e.st.Running = false
		e.st.Frontmost = false
		return goja.Undefined()
	})
	e.method(app, "open", func(call goja.FunctionCall) goja.Value {
		e.launch()
		path, ok := call.Argument(0).Export().(string)
		if !ok || path == "" {
			e.badParam()
		}
		name := filepath.Base(path)
		if e.findDocument(name)() == nil {
			e.st.Documents = append(e.st.Documents, DocumentState{Name: name, File: path})
		}
		return e.documentObject(name)
	})
	e.method(app, "print", func(call goja.FunctionCall) goja.Value {
		e.launch()
		target := call.Argument(0)
		var desc string
		if obj, ok := target.(*goja.Object); ok && obj.Get("__display") != nil {
			if exists, ok := goja.AssertFunction(obj.Get("exists")); ok {
				v, err := exists(obj)
				if err != nil || !v.ToBoolean() {
					e.missing()
				}
			}
			desc = obj.Get("__display").String()
		} else if s, ok := target.Export().(string); ok && s != "" {
			desc = s
		} else {
			e.badParam()
		}
		e.printJob(desc, call.Argument(1))
		return goja.Undefined()
	})

	e.property(app, "name", func() any { e.launch(); return e.st.Name }, nil)
	e.property(app, "version", func() any { e.launch(); return e.st.Version }, nil)
	e.property(app, "frontmost", func() any { e.launch(); return e.st.Frontmost }, nil)
	e.property(app, "showAll", func() any {
		e.launch()
		return e.st.ShowAll
	}, func(v goja.Value) {
		e.launch()
		// Leaving the Show All view is done by selecting a pane; false is ignored.
		if e.boolArg(v) {
			e.st.ShowAll = true
			e.st.CurrentPane = ""
			e.st.CurrentAnchor = ""
		}
	})
	e.property(app, "currentPane", func() any {
		e.launch()
		if e.st.CurrentPane == "" {
			return nil
		}
		return e.paneByID(e.st.CurrentPane)
	}, func(v goja.Value) {
		e.launch()
		obj, ok := v.(*goja.Object)
		if !ok {
			e.badParam()
		}
		find, ok := e.panes[obj]
		if !ok {
			e.badParam()
		}
		p := find()
		if p == nil {
			e.missing()
		}
		e.st.CurrentPane = p.ID
		e.st.CurrentAnchor = ""
		e.st.ShowAll = false
	})
	e.property(app, "preferencesWindow", func() any {
		e.launch()
		if len(e.st.Windows) == 0 {
			e.missing()
		}
		return e.windowObject(e.st.Windows[0].ID)
	}, nil)

	_ = app.Set("panes", e.collection(func() []any {
		e.launch()
		out := make([]any, 0, len(e.st.Panes))
		for _, p := range e.st.Panes {
			out = append(out, e.paneByID(p.ID))
		}
		return out
	}, func(v goja.Value) goja.Value {
		return e.paneByID(v.String())
	}, func(name string) goja.Value {
		return e.paneObject(e.appDisplay()+".panes.byName("+Literal(name)+")", e.findPaneByName(name))
	}))
	_ = app.Set("windows", e.collection(func() []any {
		e.launch()
		out := make([]any, 0, len(e.st.Windows))
		for _, w := range e.st.Windows {
			out = append(out, e.windowObject(w.ID))
		}
		return out
	}, func(v goja.Value) goja.Value {
		return e.windowObject(int(v.ToInteger()))
	}, nil))
	_ = app.Set("documents", e.collection(func() []any {
		e.launch()
		out := make([]any, 0, len(e.st.Documents))
		for _, d := range e.st.Documents {
			out = append(out, e.documentObject(d.Name))
		}
		return out
	}, nil, func(name string) goja.Value {
		return e.documentObject(name)
	}))
	return app
}

func (e *simEnv) findPaneByID(id string) func() *PaneState {
	return func() *PaneState {
		for i := range e.st.Panes {
			if e.st.Panes[i].ID == id {
				return &e.st.Panes[i]
			}
		}
		return nil
	}
}

func (e *simEnv) findPaneByName(name string) func() *PaneState {
	return func() *PaneState {
		for i := range e.st.Panes {
			if e.st.Panes[i].Name == name {
				return &e.st.Panes[i]
			}
		}
		return nil
	}
}

func (e *simEnv) paneByID(id string) *goja.Object {
	return e.paneObject(e.appDisplay()+".panes.byId("+Literal(id)+")", e.findPaneByID(id))
}

func (e *simEnv) paneObject(display string, find func() *PaneState) *goja.Object {
	obj := e.newObject("pane", display)
	e.panes[obj] = find
	must := func() *PaneState {
		e.launch()
		p := find()
		if p == nil {
			e.missing()
		}
		return p
	}

	e.property(obj, "id", func() any { return must().ID }, nil)
	e.property(obj, "name", func() any { return must().Name }, nil)
	e.property(obj, "localizedName", func() any {
		p := must()
		if p.LocalizedName != "" {
			return p.LocalizedName
		}
		return p.Name
	}, nil)
	e.method(obj, "exists", func(goja.FunctionCall) goja.Value {
		e.launch()
		return e.vm.ToValue(find() != nil)
	})
	e.method(obj, "reveal", func(goja.FunctionCall) goja.Value {
		p := must()
		e.st.CurrentPane = p.ID
		e.st.CurrentAnchor = ""
		e.st.ShowAll = false
		return obj
	})
	e.method(obj, "authorize", func(goja.FunctionCall) goja.Value {
		p := must()
		if e.st.DenyAuthorization {
			e.throw(ErrNumUserCanceled, "User canceled.")
		}
		p.Authorized = true
		return obj
	})
	e.method(obj, "close", e.notHandled)
	e.method(obj, "print", e.notHandled)
	_ = obj.Set("anchors", e.collection(func() []any {
		p := must()
		out := make([]any, 0, len(p.Anchors))
		for _, a := range p.Anchors {
			out = append(out, e.anchorObject(display, find, a))
		}
		return out
	}, nil, func(name string) goja.Value {
		return e.anchorObject(display, find, name)
	}))
	return obj
}

func (e *simEnv) anchorObject(paneDisplay string, findPane func() *PaneState, name string) *goja.Object {
	obj := e.newObject("anchor", paneDisplay+".anchors.byName("+Literal(name)+")")
	find := func() *PaneState {
		p := findPane()
		if p == nil {
			return nil
		}
		for _, a := range p.Anchors {
			if a == name {
				return p
			}
		}
		return nil
	}
	must := func() *PaneState {
		e.launch()
		p := find()
		if p == nil {
			e.missing()
		}
		return p
	}

	e.property(obj, "name", func() any { must(); return name }, nil)
	e.method(obj, "exists", func(goja.FunctionCall) goja.Value {
		e.launch()
		return e.vm.ToValue(find() != nil)
	})
	e.method(obj, "reveal", func(goja.FunctionCall) goja.Value {
		p := must()
		e.st.CurrentPane = p.ID
		e.st.CurrentAnchor = name
		e.st.ShowAll = false
		return obj
	})
	e.method(obj, "close", e.notHandled)
	e.method(obj, "print", e.notHandled)
	return obj
}

func (e *simEnv) findWindow(id int) func() (*WindowState, int) {
	return func() (*WindowState, int) {
		for i := range e.st.Windows {
			if e.st.Windows[i].ID == id {
				return &e.st.Windows[i], i
			}
		}
		return nil, -1
	}
}

func (e *simEnv) windowObject(id int) *goja.Object {
	display := e.appDisplay() + ".windows.byId(" + Literal(id) + ")"
	obj := e.newObject("window", display)
	find := e.findWindow(id)
	must := func() (*WindowState, int) {
		e.launch()
		w, i := find()
		if w == nil {
			e.missing()
		}
		return w, i
	}
	flag := func(name string, get func(*WindowState) *bool, settable bool) {
		var set func(goja.Value)
		if settable {
			set = func(v goja.Value) {
				w, _ := must()
				*get(w) = e.boolArg(v)
			}
		}
		e.property(obj, name, func() any { w, _ := must(); return *get(w) }, set)
	}

	e.property(obj, "id", func() any { w, _ := must(); return w.ID }, nil)
	e.property(obj, "name", func() any { w, _ := must(); return w.Name }, nil)
	e.property(obj, "index", func() any {
		_, i := must()
		return i + 1
	}, func(v goja.Value) {
		w, i := must()
		to := e.intArg(v)
		if to < 1 || to > len(e.st.Windows) {
			e.throw(ErrNumIllegalIndex, "Invalid index.")
		}
		moved := *w
		rest := append(append([]WindowState(nil), e.st.Windows[:i]...), e.st.Windows[i+1:]...)
		out := append([]WindowState(nil), rest[:to-1]...)
		out = append(out, moved)
		e.st.Windows = append(out, rest[to-1:]...)
	})
	e.property(obj, "bounds", func() any {
		w, _ := must()
		b := e.vm.NewObject()
		_ = b.Set("x", w.Bounds[0])
		_ = b.Set("y", w.Bounds[1])
		_ = b.Set("width", w.Bounds[2])
		_ = b.Set("height", w.Bounds[3])
		return b
	}, func(v goja.Value) {
		w, _ := must()
		rect := e.options(v)
		if rect == nil {
			e.badParam()
		}
		var out [4]int
		for i, k := range []string{"x", "y", "width", "height"} {
			f := e.field(rect, k)
			if f == nil {
				e.badParam()
			}
			out[i] = e.intArg(f)
		}
		if out[2] < 0 || out[3] < 0 {
			e.badParam()
		}
		w.Bounds = out
	})
	flag("closeable", func(w *WindowState) *bool { return &w.Closeable }, false)
	flag("miniaturizable", func(w *WindowState) *bool { return &w.Miniaturizable }, false)
	flag("resizable", func(w *WindowState) *bool { return &w.Resizable }, false)
	flag("zoomable", func(w *WindowState) *bool { return &w.Zoomable }, false)
	flag("miniaturized", func(w *WindowState) *bool { return &w.Miniaturized }, true)
	flag("visible", func(w *WindowState) *bool { return &w.Visible }, true)
	flag("zoomed", func(w *WindowState) *bool { return &w.Zoomed }, true)
	e.property(obj, "document", func() any {
		w, _ := must()
		if w.Document == "" {
			return nil
		}
		return e.documentObject(w.Document)
	}, nil)
	e.method(obj, "exists", func(goja.FunctionCall) goja.Value {
		e.launch()
		w, _ := find()
		return e.vm.ToValue(w != nil)
	})
	e.method(obj, "close", func(call goja.FunctionCall) goja.Value {
		_, i := must()
		e.closeOptions(call.Argument(0))
		e.st.Windows = append(e.st.Windows[:i], e.st.Windows[i+1:]...)
		return goja.Undefined()
	})
	e.method(obj, "print", func(call goja.FunctionCall) goja.Value {
		must()
		e.printJob(display, call.Argument(0))
		return goja.Undefined()
	})
	return obj
}

func (e *simEnv) findDocument(name string) func() *DocumentState {
	return func() *DocumentState {
		for i := range e.st.Documents {
			if e.st.Documents[i].Name == name {
				return &e.st.Documents[i]
			}
		}
		return nil
	}
}

func (e *simEnv) documentObject(name string) *goja.Object {
	display := e.appDisplay() + ".documents.byName(" + Literal(name) + ")"
	obj := e.newObject("document", display)
	find := e.findDocument(name)
	must := func() *DocumentState {
		e.launch()
		d := find()
		if d == nil {
			e.missing()
		}
		return d
	}

	e.property(obj, "name", func() any { return must().Name }, nil)
	e.property(obj, "modified", func() any { return must().Modified }, nil)
	e.property(obj, "file", func() any {
		d := must()
		if d.File == "" {
			return nil
		}
		return d.File
	}, nil)
	e.method(obj, "exists", func(goja.FunctionCall) goja.Value {
		e.launch()
		return e.vm.ToValue(find() != nil)
	})
	e.method(obj, "close", func(call goja.FunctionCall) goja.Value {
		must()
		e.closeOptions(call.Argument(0))
		for i := range e.st.Documents {
			if e.st.Documents[i].Name == name {
				e.st.Documents = append(e.st.Documents[:i], e.st.Documents[i+1:]...)
				break
			}
		}
		for i := range e.st.Windows {
			if e.st.Windows[i].Document == name {
				e.st.Windows[i].Document = ""
			}
		}
		return goja.Undefined()
	})
	e.method(obj, "print", func(call goja.FunctionCall) goja.Value {
		must()
		e.printJob(display, call.Argument(0))
		return goja.Undefined()
	})
	return obj
}
