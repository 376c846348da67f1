package interp

import (
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsast"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsenv"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// Interpreter owns the global environment and the shared Error.prototype
// family records. One Interpreter runs one realm; there is no
// multi-realm support.
type Interpreter struct {
	Global *jsenv.Environment

	errorProtos map[string]*jsvalue.Record
}

// New creates an Interpreter with a fresh global environment. Callers that
// want the browser façade wired in should follow with browser.Install
// (internal/browser), which populates Global with window/document/... —
// kept as a separate step so interp has no import-time dependency on
// browser (browser depends on interp instead).
func New() *Interpreter {
	in := &Interpreter{
		Global:      jsenv.New(nil),
		errorProtos: make(map[string]*jsvalue.Record),
	}
	for _, name := range []string{"Error", "TypeError", "ReferenceError", "RangeError", "URIError", "SyntaxError"} {
		in.errorProtos[name] = jsproto.NewObjectRecord()
		in.errorProtos[name].Class = "Error"
	}
	jsproto.CallHook = in.CallValue
	return in
}

func (in *Interpreter) newErrorRecord(name, message string) *jsvalue.Record {
	proto := in.errorProtos[name]
	if proto == nil {
		proto = in.errorProtos["Error"]
	}
	r := jsvalue.NewRecord(proto)
	r.Class = "Error"
	r.Set("name", jsvalue.Str(name))
	r.Set("message", jsvalue.Str(message))
	r.Set("stack", jsvalue.Str(name+": "+message))
	return r
}

// NewError constructs a thrown Error-shaped record value directly; used by
// internal/browser's Error-family constructors (Error, TypeError, ...) so
// script-built errors get the same shape and prototype as the ones the
// interpreter throws.
func (in *Interpreter) NewError(name, message string) jsvalue.Value {
	return jsvalue.FromRecord(in.newErrorRecord(name, message))
}

// Run executes a parsed program in the global environment and returns the
// completion value of its last expression statement (undefined if the
// program is empty or runs no expression statement; a trailing statement
// that yields no value, such as a var declaration, leaves the earlier
// value in place).
func (in *Interpreter) Run(prog *jsast.Program) (jsvalue.Value, error) {
	ctx := jsenv.NewContext(in.Global, jsvalue.Undefined)
	hoist(ctx, in, prog.Body)
	v, err := in.execStmts(ctx, prog.Body)
	if err != nil {
		switch sig := err.(type) {
		case *returnSignal:
			return sig.Value, nil
		case *breakSignal, *continueSignal:
			return jsvalue.Undefined, nil
		}
		return jsvalue.Undefined, err
	}
	return v, nil
}

// CallValue invokes any callable value with the given `this` and
// arguments. It is installed as jsproto.CallHook so Array.prototype's
// higher-order methods (map/filter/forEach/sort/...) can invoke JS
// callbacks without jsproto depending on interp.
func (in *Interpreter) CallValue(fn jsvalue.Value, this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
	if fn.Kind() != jsvalue.KindCallable {
		return jsvalue.Undefined, in.Throw(jsproto.NewTypeError("%s is not a function", jsvalue.ToString(fn)))
	}
	v, err := in.callCallable(fn.Callable(), this, args, false)
	if err != nil {
		return jsvalue.Undefined, err
	}
	return v, nil
}
