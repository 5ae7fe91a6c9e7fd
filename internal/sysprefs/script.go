package sysprefs

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/mj1618/sysprefs-cli/internal/scripting"
)

// Every script is an immediately invoked function that returns
// JSON.stringify({ value: ... }); the reply is decoded from that envelope.

func wrapScript(appName, body string) string {
	var b strings.Builder
	b.WriteString("(function () {\n")
	b.WriteString("\tvar app = Application(" + scripting.Literal(appName) + ");\n")
	for _, line := range strings.Split(body, "\n") {
		b.WriteString("\t" + line + "\n")
	}
	b.WriteString("})()")
	return b.String()
}

func returnValue(expr string) string {
	return "return JSON.stringify({ value: " + expr + " });"
}

func returnNull(stmt string) string {
	return stmt + ";\n" + returnValue("null")
}

func getProperty(s *specifier, prop string) string {
	return returnValue(s.expr() + "." + prop + "()")
}

func setProperty(s *specifier, prop string, v any) string {
	return returnNull(s.expr() + "." + prop + " = " + scripting.Literal(v))
}

// elementKeys lists the key property of every element of a collection.
func elementKeys(s *specifier, elems, key string) string {
	return returnValue(s.expr() + "." + elems + "().map(function (o) { return o." + key + "(); })")
}

// maybeKey evaluates an object-valued expression and returns one of its
// properties, or null when the expression yields missing value.
func maybeKey(expr, key string) string {
	return "var r = " + expr + ";\n" +
		returnValue("(r === null || r === undefined) ? null : r."+key+"()")
}

// maybeReference evaluates an expression and returns its display string.
func maybeReference(expr string) string {
	return "var r = " + expr + ";\n" +
		returnValue("(r === null || r === undefined) ? null : Automation.getDisplayString(r)")
}

// jsRecord renders a parameter record with keys in the given order; nil
// values are omitted.
func jsRecord(keys []string, values map[string]any) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, ok := values[k]
		if !ok || v == nil {
			continue
		}
		var lit string
		if raw, ok := v.(rawJS); ok {
			lit = string(raw)
		} else {
			lit = scripting.Literal(v)
		}
		parts = append(parts, k+": "+lit)
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// rawJS is a script fragment embedded without quoting.
type rawJS string

func pathExpr(path string) rawJS {
	return rawJS("Path(" + scripting.Literal(path) + ")")
}

// reply decoding

var errNullValue = errors.New("missing value")

func replyValue(data []byte) ([]byte, jsonparser.ValueType, error) {
	v, typ, _, err := jsonparser.Get(data, "value")
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return nil, jsonparser.Null, nil
	}
	if err != nil {
		return nil, jsonparser.NotExist, err
	}
	return v, typ, nil
}

func decodeString(data []byte) (string, error) {
	v, typ, err := replyValue(data)
	if err != nil {
		return "", err
	}
	switch typ {
	case jsonparser.String:
		return jsonparser.ParseString(v)
	case jsonparser.Null:
		return "", errNullValue
	}
	return "", fmt.Errorf("expected string, got %s", typ)
}

// decodeOptionalString returns ok=false for missing value.
func decodeOptionalString(data []byte) (string, bool, error) {
	s, err := decodeString(data)
	if errors.Is(err, errNullValue) {
		return "", false, nil
	}
	return s, err == nil, err
}

func decodeBool(data []byte) (bool, error) {
	v, typ, err := replyValue(data)
	if err != nil {
		return false, err
	}
	if typ != jsonparser.Boolean {
		return false, fmt.Errorf("expected boolean, got %s", typ)
	}
	return jsonparser.ParseBoolean(v)
}

func decodeInt(data []byte) (int, error) {
	v, typ, err := replyValue(data)
	if err != nil {
		return 0, err
	}
	if typ != jsonparser.Number {
		if typ == jsonparser.Null {
			return 0, errNullValue
		}
		return 0, fmt.Errorf("expected number, got %s", typ)
	}
	f, err := jsonparser.ParseFloat(v)
	if err != nil {
		return 0, err
	}
	return int(math.Round(f)), nil
}

func decodeStrings(data []byte) ([]string, error) {
	var out []string
	var inner error
	_, err := jsonparser.ArrayEach(data, func(v []byte, typ jsonparser.ValueType, _ int, _ error) {
		if inner != nil {
			return
		}
		if typ != jsonparser.String {
			inner = fmt.Errorf("expected string element, got %s", typ)
			return
		}
		s, err := jsonparser.ParseString(v)
		if err != nil {
			inner = err
			return
		}
		out = append(out, s)
	}, "value")
	if err != nil {
		return nil, err
	}
	return out, inner
}

func decodeInts(data []byte) ([]int, error) {
	var out []int
	var inner error
	_, err := jsonparser.ArrayEach(data, func(v []byte, typ jsonparser.ValueType, _ int, _ error) {
		if inner != nil {
			return
		}
		if typ != jsonparser.Number {
			inner = fmt.Errorf("expected number element, got %s", typ)
			return
		}
		f, err := jsonparser.ParseFloat(v)
		if err != nil {
			inner = err
			return
		}
		out = append(out, int(math.Round(f)))
	}, "value")
	if err != nil {
		return nil, err
	}
	return out, inner
}

func decodeRect(data []byte) (Rect, error) {
	var vals [4]int
	for i, k := range []string{"x", "y", "width", "height"} {
		f, err := jsonparser.GetFloat(data, "value", k)
		if err != nil {
			return Rect{}, fmt.Errorf("bounds.%s: %w", k, err)
		}
		vals[i] = int(math.Round(f))
	}
	return Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// decodeAny returns the reply value as a Go value: string, bool, float64,
// []any, map[string]any or nil.
func decodeAny(data []byte) (any, error) {
	v, typ, err := replyValue(data)
	if err != nil {
		return nil, err
	}
	return convertValue(v, typ)
}

func convertValue(v []byte, typ jsonparser.ValueType) (any, error) {
	switch typ {
	case jsonparser.Null:
		return nil, nil
	case jsonparser.String:
		return jsonparser.ParseString(v)
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(v)
	case jsonparser.Number:
		return jsonparser.ParseFloat(v)
	case jsonparser.Array:
		out := []any{}
		var inner error
		_, err := jsonparser.ArrayEach(v, func(ev []byte, et jsonparser.ValueType, _ int, _ error) {
			if inner != nil {
				return
			}
			x, err := convertValue(ev, et)
			if err != nil {
				inner = err
				return
			}
			out = append(out, x)
		})
		if err != nil {
			return nil, err
		}
		return out, inner
	case jsonparser.Object:
		out := map[string]any{}
		err := jsonparser.ObjectEach(v, func(key, ev []byte, et jsonparser.ValueType, _ int) error {
			x, err := convertValue(ev, et)
			if err != nil {
				return err
			}
			out[string(key)] = x
			return nil
		})
		return out, err
	}
	return nil, fmt.Errorf("unexpected value type %s", typ)
}
