package logo

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// LogoError is a Logo-level error the evaluator produces and the driver
// surfaces (spec §7). It implements `error` and travels through the
// error result of Thunks and primitives, like the control signals below;
// it is never wrapped. Wrapping with github.com/pkg/errors is reserved
// for failures at the Go/host boundary: malformed embedding calls and
// stream I/O, per SPEC_FULL.md §2.
type LogoError struct {
	Kind    ErrorKind
	Message string
	Proc    string // top of the procedure stack when raised, for {_PROC_}
}

// ErrorKind classifies a LogoError per the taxonomy in spec §7.
type ErrorKind int

const (
	ErrParse ErrorKind = iota
	ErrName
	ErrType
	ErrDomain
	ErrRedefinition
	ErrUnexpectedValue
)

func (e *LogoError) Error() string {
	return e.Message
}

// Localizer translates error-message templates before parameter
// interpolation (spec §6 "Localize hook"). The identity localizer is
// used when none is configured.
type Localizer func(template string) string

func identityLocalizer(s string) string { return s }

func newLogoError(kind ErrorKind, localize Localizer, proc string, format string, args ...any) *LogoError {
	if localize == nil {
		localize = identityLocalizer
	}
	template := localize(format)
	msg := fmt.Sprintf(template, args...)
	msg = substituteProc(msg, proc)
	return &LogoError{Kind: kind, Message: msg, Proc: proc}
}

func substituteProc(msg, proc string) string {
	if proc == "" {
		proc = "toplevel"
	}
	return strings.ReplaceAll(msg, "{_PROC_}", proc)
}

// NewParseError builds a parse-time LogoError (spec §4.2 failure modes).
// It has no procedure context, since parse errors happen before any
// procedure is on the call stack.
func NewParseError(format string, args ...any) *LogoError {
	return newLogoError(ErrParse, nil, "", format, args...)
}

// Control signals. These are not errors: they're non-local exits that
// unwind to a user-procedure boundary (Output, Stop) or the top-level
// driver (Bye), per spec §7. They implement `error` so they can travel
// through the same Thunk return channel as LogoError without a third
// return value — the same trick langsam's IsRuntimeException uses to
// distinguish real errors from ordinary values flowing through Eval.

// OutputSignal carries a procedure's OUTPUT value up to its call site.
type OutputSignal struct {
	Value Value
}

func (s *OutputSignal) Error() string { return "OUTPUT outside a procedure" }

// StopSignal terminates a user procedure with no value.
type StopSignal struct{}

func (StopSignal) Error() string { return "STOP outside a procedure" }

// ByeSignal unwinds all the way to the top-level driver.
type ByeSignal struct{}

func (ByeSignal) Error() string { return "BYE" }

// IsSignal reports whether err is one of the three non-local-exit
// signals rather than a genuine LogoError.
func IsSignal(err error) bool {
	switch err.(type) {
	case *OutputSignal, StopSignal, ByeSignal:
		return true
	}
	return false
}

// wrapHostError adds Go-level stack context to a failure at the
// Go/host boundary (stream I/O, embedding misuse), per SPEC_FULL.md §2.
func wrapHostError(err error, context string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, context)
}
