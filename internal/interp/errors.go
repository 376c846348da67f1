// Package interp is the tree-walking interpreter over internal/jsast
// (spec §4.D). Control flow (return/break/continue) and thrown exceptions
// are modeled as distinct Go error types rather than panic/recover, so
// try/catch/finally can use errors.As the same way the rest of the ambient
// stack uses typed errors instead of bare fmt.Errorf.
package interp

import (
	"fmt"

	"github.com/LOBYXLYX/javascript-interpreter/internal/jsenv"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// returnSignal unwinds a function call up to its Call frame.
type returnSignal struct{ Value jsvalue.Value }

func (r *returnSignal) Error() string { return "return (uncaught outside a function)" }

// breakSignal unwinds to the nearest enclosing loop or switch (or, if
// Label is non-empty, to the statement carrying that label).
type breakSignal struct{ Label string }

func (b *breakSignal) Error() string { return "break (uncaught outside a loop)" }

// continueSignal unwinds to the nearest enclosing loop's update/test step.
type continueSignal struct{ Label string }

func (c *continueSignal) Error() string { return "continue (uncaught outside a loop)" }

// ThrowError wraps any thrown value — a script can `throw` a string, a
// number, or a constructed Error-shaped record; this interpreter does not
// require the thrown value to be an Error instance.
type ThrowError struct {
	Value jsvalue.Value
}

func (t *ThrowError) Error() string {
	return fmt.Sprintf("Uncaught %s", describeThrown(t.Value))
}

func describeThrown(v jsvalue.Value) string {
	if v.Kind() == jsvalue.KindRecord {
		r := v.Record()
		name, _ := r.Get("name")
		msg, _ := r.Get("message")
		if !name.IsUndefined() {
			return jsvalue.ToString(name) + ": " + jsvalue.ToString(msg)
		}
	}
	return jsvalue.ToString(v)
}

// Throw builds a ThrowError from a Go error produced elsewhere in the
// interpreter or in jsproto/jsenv (ReferenceError, TypeError, RangeError,
// URIError), converting it into a thrown Error-shaped record the way a
// real engine raises its built-in exception types. A *ThrowError passed
// in is returned unchanged (already a script-level throw).
func (in *Interpreter) Throw(err error) error {
	if err == nil {
		return nil
	}
	if te, ok := err.(*ThrowError); ok {
		return te
	}
	name, msg := classify(err)
	return &ThrowError{Value: jsvalue.FromRecord(in.newErrorRecord(name, msg))}
}

func classify(err error) (name, msg string) {
	switch err.(type) {
	case *jsenv.ReferenceError:
		return "ReferenceError", err.Error()
	case *jsproto.TypeError:
		return "TypeError", err.Error()
	case *jsproto.RangeError:
		return "RangeError", err.Error()
	case *jsproto.URIError:
		return "URIError", err.Error()
	}
	return "Error", err.Error()
}
