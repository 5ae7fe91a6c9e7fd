package sysprefs

// Document is a handle to a document, keyed by name.
type Document struct {
	element
}

func (d *Document) Name() (string, error) { return d.getString(OpName) }

// Modified reports whether the document has unsaved changes.
func (d *Document) Modified() (bool, error) { return d.getBool(OpModified) }

// File returns the document's location on disk, or "" if it has none.
func (d *Document) File() (File, error) {
	expr := "(function (f) { return (f === null || f === undefined) ? null : f.toString(); })(" +
		d.ref.expr() + ".file())"
	data, err := d.app.eval(OpFile, ClassDocument, returnValue(expr))
	if err != nil {
		return "", err
	}
	path, _, err := decodeOptionalString(data)
	if err != nil {
		return "", badReply(OpFile, err)
	}
	return File(path), nil
}
