package sysprefs

// element is the state every handle carries: the facade it belongs to and
// the specifier that locates its object.
type element struct {
	app *Application
	ref *specifier
}

func (e element) Class() Class { return e.ref.class }

// Reference returns the handle's reference in display form. It is derived
// from the lookup key, so no round trip is made.
func (e element) Reference() Reference { return e.ref.reference(e.app.name) }

// Supports reports whether the target declares op for this handle's class.
func (e element) Supports(op Op) bool { return e.app.dict.Supports(e.ref.class, op) }

// Capabilities lists the operations declared for this handle's class.
func (e element) Capabilities() []Op { return e.app.dict.Ops(e.ref.class) }

func (e element) locate() *specifier { return e.ref }

func (e element) targetExpr() string { return e.ref.expr() }

// Get resolves the handle against the target and returns the reference of
// the object found. It fails with ErrStaleReference if the object is gone.
func (e element) Get() (Reference, error) {
	body := "var r = " + e.ref.expr() + ";\n" +
		"if (!r.exists()) { throw new Error(\"Can't get object. (-1728)\"); }\n" +
		returnValue("Automation.getDisplayString(r)")
	data, err := e.app.eval(OpGet, e.ref.class, body)
	if err != nil {
		return "", err
	}
	s, err := decodeString(data)
	if err != nil {
		return "", badReply(OpGet, err)
	}
	return Reference(s), nil
}

// CloseSaving closes the object. savingIn may be empty.
func (e element) CloseSaving(saving SaveOption, savingIn File) error {
	params, err := closeParams(OpClose, saving, savingIn)
	if err != nil {
		return err
	}
	_, err = e.app.eval(OpClose, e.ref.class, returnNull(e.ref.expr()+".close("+params+")"))
	return err
}

// PrintWithProperties prints the object. settings may be nil.
func (e element) PrintWithProperties(settings *PrintSettings, dialog bool) error {
	params, err := printParams(OpPrint, settings, dialog)
	if err != nil {
		return err
	}
	_, err = e.app.eval(OpPrint, e.ref.class, returnNull(e.ref.expr()+".print("+params+")"))
	return err
}

func (e element) get(op Op) ([]byte, error) {
	return e.app.eval(op, e.ref.class, getProperty(e.ref, string(op)))
}

func (e element) getString(op Op) (string, error) {
	data, err := e.get(op)
	if err != nil {
		return "", err
	}
	s, err := decodeString(data)
	if err != nil {
		return "", badReply(op, err)
	}
	return s, nil
}

func (e element) getBool(op Op) (bool, error) {
	data, err := e.get(op)
	if err != nil {
		return false, err
	}
	v, err := decodeBool(data)
	if err != nil {
		return false, badReply(op, err)
	}
	return v, nil
}

func (e element) getInt(op Op) (int, error) {
	data, err := e.get(op)
	if err != nil {
		return 0, err
	}
	v, err := decodeInt(data)
	if err != nil {
		return 0, badReply(op, err)
	}
	return v, nil
}

func (e element) set(op Op, prop string, v any) error {
	_, err := e.app.eval(op, e.ref.class, setProperty(e.ref, prop, v))
	return err
}

func (e element) stringKeys(op Op, elems, key string) ([]string, error) {
	data, err := e.app.eval(op, e.ref.class, elementKeys(e.ref, elems, key))
	if err != nil {
		return nil, err
	}
	keys, err := decodeStrings(data)
	if err != nil {
		return nil, badReply(op, err)
	}
	return keys, nil
}
