// Package scripting runs JavaScript for Automation (JXA) scripts against a
// scriptable application and reports failures as Apple event error numbers.
//
// Two runners are provided: Osascript sends scripts to the real target via
// /usr/bin/osascript, and Simulator executes the same scripts in-process
// against a model of the System Preferences object graph.
package scripting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Runner executes a JXA script and returns its result text, which for every
// script the sysprefs facade produces is a JSON document.
type Runner interface {
	Run(ctx context.Context, script string) ([]byte, error)
}

// Apple event and OSA error numbers raised by the scripting runtime.
const (
	ErrNumUserCanceled      = -128
	ErrNumParam             = -50
	ErrNumNotRunning        = -600
	ErrNumConnectionInvalid = -609
	ErrNumCoercion          = -1700
	ErrNumParamMissing      = -1701
	ErrNumWrongDataType     = -1703
	ErrNumEventNotHandled   = -1708
	ErrNumTimeout           = -1712
	ErrNumIllegalIndex      = -1719
	ErrNumNoSuchObject      = -1728
	ErrNumNotAuthorized     = -1743
	ErrNumAppNotFound       = -2700
	ErrNumAccessDenied      = -10006
	ErrNumLaunchFailed      = -10810
)

// ScriptError is a failure reported by the scripting runtime.
// Number is zero when the runtime gave no error number (e.g. a JavaScript
// TypeError raised before any Apple event was sent).
type ScriptError struct {
	Number  int
	Message string
}

func (e *ScriptError) Error() string {
	if e.Number == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Number)
}

var errNumberRe = regexp.MustCompile(`\((-\d+)\)`)

var errPrefixes = []string{"execution error: ", "Error: ", "GoError: "}

// ParseError extracts the message and error number from runtime error text
// such as "execution error: Error: Error: Can't get object. (-1728)".
func ParseError(text string) *ScriptError {
	msg := strings.TrimSpace(text)
	if i := strings.Index(msg, " at <eval>"); i >= 0 {
		msg = msg[:i]
	}
	num := 0
	if m := errNumberRe.FindStringSubmatchIndex(msg); m != nil {
		num, _ = strconv.Atoi(msg[m[2]:m[3]])
		msg = strings.TrimSpace(msg[:m[0]])
	}
	for stripped := true; stripped; {
		stripped = false
		for _, p := range errPrefixes {
			if strings.HasPrefix(msg, p) {
				msg = strings.TrimPrefix(msg, p)
				stripped = true
			}
		}
	}
	return &ScriptError{Number: num, Message: msg}
}

// Literal renders v as a JavaScript literal. JSON is a subset of JavaScript
// expression syntax, so strings, numbers, booleans and plain records can be
// embedded directly in a script.
func Literal(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "null"
	}
	return strings.TrimRight(buf.String(), "\n")
}
