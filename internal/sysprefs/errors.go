package sysprefs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mj1618/sysprefs-cli/internal/scripting"
)

// Kind classifies a failed remote operation.
type Kind int

const (
	KindRemote             Kind = iota // any other failure reported by the target
	KindUnavailable                    // target not found, not running, or bridge unreachable
	KindStaleReference                 // the referenced object no longer exists
	KindUnsupported                    // the operation is not implemented for the object
	KindMalformedParameter             // a parameter had the wrong type or value
	KindNotAuthorized                  // the user has not allowed automation of the target
	KindCanceled                       // the user dismissed a prompt
	KindTimeout                        // the bridge gave up waiting for a reply
)

var (
	ErrRemote             = errors.New("remote operation failed")
	ErrUnavailable        = errors.New("target application unavailable")
	ErrStaleReference     = errors.New("object no longer exists")
	ErrUnsupported        = errors.New("operation not supported")
	ErrMalformedParameter = errors.New("malformed parameter")
	ErrNotAuthorized      = errors.New("not authorized to send Apple events")
	ErrCanceled           = errors.New("canceled by user")
	ErrTimeout            = errors.New("remote operation timed out")
)

var kindSentinels = map[Kind]error{
	KindRemote:             ErrRemote,
	KindUnavailable:        ErrUnavailable,
	KindStaleReference:     ErrStaleReference,
	KindUnsupported:        ErrUnsupported,
	KindMalformedParameter: ErrMalformedParameter,
	KindNotAuthorized:      ErrNotAuthorized,
	KindCanceled:           ErrCanceled,
	KindTimeout:            ErrTimeout,
}

func (k Kind) String() string {
	return kindSentinels[k].Error()
}

// Error reports a failed operation. Use errors.Is with the Err* sentinels
// to test the kind.
type Error struct {
	Op      Op
	Kind    Kind
	Number  int // Apple event error number, 0 if none
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Op, e.Kind)
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Number != 0 {
		fmt.Fprintf(&b, " (%d)", e.Number)
	}
	return b.String()
}

func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

func (e *Error) Unwrap() error { return e.Err }

const notAuthorizedHelp = "automation permission required\n\n" +
	"Grant permission at: System Settings > Privacy & Security > Automation\n" +
	"Allow your terminal app (e.g. Terminal.app, iTerm2, or the IDE running this command) to control System Preferences.\n" +
	"Then try again."

func kindForNumber(n int) Kind {
	switch n {
	case scripting.ErrNumNotRunning, scripting.ErrNumConnectionInvalid,
		scripting.ErrNumAppNotFound, scripting.ErrNumLaunchFailed:
		return KindUnavailable
	case scripting.ErrNumNoSuchObject, scripting.ErrNumIllegalIndex:
		return KindStaleReference
	case scripting.ErrNumEventNotHandled:
		return KindUnsupported
	case scripting.ErrNumCoercion, scripting.ErrNumParamMissing,
		scripting.ErrNumWrongDataType, scripting.ErrNumParam, scripting.ErrNumAccessDenied:
		return KindMalformedParameter
	case scripting.ErrNumNotAuthorized:
		return KindNotAuthorized
	case scripting.ErrNumUserCanceled:
		return KindCanceled
	case scripting.ErrNumTimeout:
		return KindTimeout
	}
	return KindRemote
}

// classify converts a runner error into an *Error.
func classify(op Op, err error) *Error {
	var se *scripting.ScriptError
	if errors.As(err, &se) {
		kind := kindForNumber(se.Number)
		if kind == KindRemote && (strings.Contains(se.Message, "is not a function") ||
			strings.Contains(se.Message, "has no member")) {
			kind = KindUnsupported
		}
		msg := se.Message
		if kind == KindNotAuthorized {
			msg = notAuthorizedHelp
		}
		return &Error{Op: op, Kind: kind, Number: se.Number, Message: msg, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Op: op, Kind: KindTimeout, Message: err.Error(), Err: err}
	}
	return &Error{Op: op, Kind: KindUnavailable, Message: err.Error(), Err: err}
}

func unsupported(op Op, class Class) *Error {
	return &Error{Op: op, Kind: KindUnsupported, Message: fmt.Sprintf("%s does not declare %s", class, op)}
}

func malformed(op Op, format string, args ...any) *Error {
	return &Error{Op: op, Kind: KindMalformedParameter, Message: fmt.Sprintf(format, args...)}
}

func badReply(op Op, err error) *Error {
	return &Error{Op: op, Kind: KindRemote, Message: fmt.Sprintf("unexpected reply: %v", err), Err: err}
}
