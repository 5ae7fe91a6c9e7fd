package sysprefs

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/sysprefs-cli/internal/scripting"
)

// Reference is an opaque object reference in display form, e.g.
//
//	Application("System Preferences").panes.byId("com.apple.preference.dock")
type Reference string

type keyForm int

const (
	formRoot keyForm = iota
	formID
	formName
)

// specifier locates an object by key within its container. It is the only
// thing a handle holds: nothing about the remote object is cached.
type specifier struct {
	parent *specifier
	class  Class
	form   keyForm
	key    any // string or int
}

var elementsOf = map[Class]string{
	ClassWindow:   "windows",
	ClassDocument: "documents",
	ClassPane:     "panes",
	ClassAnchor:   "anchors",
}

var classOf = map[string]Class{
	"windows":   ClassWindow,
	"documents": ClassDocument,
	"panes":     ClassPane,
	"anchors":   ClassAnchor,
}

// containers lists the class each element class lives in.
var containers = map[Class]Class{
	ClassWindow:   ClassApplication,
	ClassDocument: ClassApplication,
	ClassPane:     ClassApplication,
	ClassAnchor:   ClassPane,
}

var rootSpecifier = &specifier{class: ClassApplication, form: formRoot}

func (s *specifier) child(class Class, form keyForm, key any) *specifier {
	return &specifier{parent: s, class: class, form: form, key: key}
}

func (s *specifier) render(root string) string {
	if s.form == formRoot {
		return root
	}
	method := "byId"
	if s.form == formName {
		method = "byName"
	}
	return s.parent.render(root) + "." + elementsOf[s.class] + "." + method + "(" + scripting.Literal(s.key) + ")"
}

// expr renders the specifier relative to the script's app variable.
func (s *specifier) expr() string {
	return s.render("app")
}

func (s *specifier) reference(appName string) Reference {
	return Reference(s.render("Application(" + scripting.Literal(appName) + ")"))
}

// parseReference splits a display-form reference into its application name
// and specifier.
func parseReference(ref Reference) (string, *specifier, error) {
	p := &refParser{s: string(ref)}
	if !p.consume("Application(") {
		return "", nil, fmt.Errorf("reference %q does not start with Application(", ref)
	}
	appLit, err := p.literal()
	if err != nil {
		return "", nil, err
	}
	appName, ok := appLit.(string)
	if !ok || !p.consume(")") {
		return "", nil, fmt.Errorf("reference %q has a malformed application name", ref)
	}

	spec := rootSpecifier
	for !p.done() {
		if !p.consume(".") {
			return "", nil, fmt.Errorf("reference %q: expected '.' at offset %d", ref, p.pos)
		}
		elems := p.ident()
		class, ok := classOf[elems]
		if !ok {
			return "", nil, fmt.Errorf("reference %q: unknown elements %q", ref, elems)
		}
		if containers[class] != spec.class {
			return "", nil, fmt.Errorf("reference %q: %s cannot contain %s", ref, spec.class, class)
		}
		if !p.consume(".") {
			return "", nil, fmt.Errorf("reference %q: expected key form after %s", ref, elems)
		}
		form := formID
		switch p.ident() {
		case "byId":
		case "byName":
			form = formName
		default:
			return "", nil, fmt.Errorf("reference %q: unsupported key form", ref)
		}
		if !p.consume("(") {
			return "", nil, fmt.Errorf("reference %q: expected '('", ref)
		}
		key, err := p.literal()
		if err != nil {
			return "", nil, err
		}
		if !p.consume(")") {
			return "", nil, fmt.Errorf("reference %q: expected ')'", ref)
		}
		spec = spec.child(class, form, key)
	}
	return appName, spec, nil
}

type refParser struct {
	s   string
	pos int
}

func (p *refParser) done() bool { return p.pos >= len(p.s) }

func (p *refParser) consume(tok string) bool {
	if strings.HasPrefix(p.s[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *refParser) ident() string {
	start := p.pos
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			break
		}
		p.pos++
	}
	return p.s[start:p.pos]
}

// literal reads a JSON string or integer literal.
func (p *refParser) literal() (any, error) {
	if p.done() {
		return nil, fmt.Errorf("reference truncated at offset %d", p.pos)
	}
	start := p.pos
	if p.s[p.pos] == '"' {
		p.pos++
		for p.pos < len(p.s) {
			switch p.s[p.pos] {
			case '\\':
				p.pos += 2
				continue
			case '"':
				p.pos++
				var out string
				if err := json.Unmarshal([]byte(p.s[start:p.pos]), &out); err != nil {
					return nil, fmt.Errorf("reference string literal: %w", err)
				}
				return out, nil
			}
			p.pos++
		}
		return nil, fmt.Errorf("unterminated string literal at offset %d", start)
	}
	if p.s[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.Atoi(p.s[start:p.pos])
	if err != nil {
		return nil, fmt.Errorf("reference key at offset %d: %w", start, err)
	}
	return n, nil
}
