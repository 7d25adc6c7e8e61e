// Package invariant provides contract assertions for the semantic-action core.
//
// A failed assertion is a programming error in the caller (usually the grammar
// driver handing the core a tree shape it can never produce), never a problem with
// the script being parsed. Script problems are diagnostics; see package diag.
//
// All functions panic with a *Violation. Drivers that must abort a parse cleanly
// recover it with AsViolation.
package invariant

import (
	"fmt"
	"reflect"
	"runtime"
)

// Violation is the panic value raised by every failed assertion.
type Violation struct {
	Kind    string // PRECONDITION, INVARIANT, UNREACHABLE
	Message string
	File    string
	Line    int
}

func (v *Violation) Error() string {
	msg := fmt.Sprintf("%s VIOLATION: %s", v.Kind, v.Message)
	if v.File != "" {
		msg += fmt.Sprintf("\n  at %s:%d", v.File, v.Line)
	}
	return msg
}

// Precondition checks an input contract at function entry.
//
// Example:
//
//	func (s *Stack) Pop() {
//	    invariant.Precondition(s.top != nil, "pop on empty scope stack")
//	    s.top = s.top.prev
//	}
func Precondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Invariant checks internal consistency during an operation.
func Invariant(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// Unreachable marks a switch arm that a well-formed tree can never reach, such as
// the default arm of a switch over a closed kind enum.
func Unreachable(format string, args ...interface{}) {
	fail("UNREACHABLE", format, args...)
}

// NotNil panics if value is nil, including typed nil pointers.
func NotNil(value interface{}, name string) {
	if isNilValue(value) {
		fail("PRECONDITION", "%s must not be nil", name)
	}
}

func isNilValue(value interface{}) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

// AsViolation reports whether a recovered panic value is a contract violation.
//
//	defer func() {
//	    if v, ok := invariant.AsViolation(recover()); ok {
//	        err = v
//	    }
//	}()
func AsViolation(r interface{}) (*Violation, bool) {
	v, ok := r.(*Violation)
	return v, ok
}

// fail panics with the violation and the location of the failing assertion.
func fail(kind, format string, args ...interface{}) {
	v := &Violation{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}

	// Skip fail() and the exported wrapper.
	pc := make([]uintptr, 1)
	if runtime.Callers(3, pc) > 0 {
		frame, _ := runtime.CallersFrames(pc).Next()
		v.File = frame.File
		v.Line = frame.Line
	}

	panic(v)
}
