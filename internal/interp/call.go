package interp

import (
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsast"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsenv"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// makeFunction builds a user-defined Callable closing over ctx.Env, used
// for both function declarations (hoist.go) and function expressions
// (eval.go).
func (in *Interpreter) makeFunction(ctx *jsenv.ExecutionContext, name string, params []string, body []jsast.Stmt) *jsvalue.Callable {
	c := &jsvalue.Callable{
		Name:     name,
		Params:   params,
		BodyRef:  body,
		Env:      ctx.Env,
		SelfName: name,
		Own:      jsvalue.NewRecord(nil),
	}
	proto := jsproto.NewObjectRecord()
	proto.Set("constructor", jsvalue.FromCallable(c))
	c.Prototype = proto
	return c
}

// callCallable invokes c with the given `this` and positional arguments.
// Parameter binding is direct positional assignment: the i-th parameter
// name binds to the i-th argument, with missing trailing arguments
// binding to undefined.
func (in *Interpreter) callCallable(c *jsvalue.Callable, this jsvalue.Value, args []jsvalue.Value, isNew bool) (jsvalue.Value, error) {
	if c.Bound {
		allArgs := append(append([]jsvalue.Value{}, c.BoundArgs...), args...)
		return in.callCallable(c.BoundOf, c.BoundThis, allArgs, isNew)
	}
	if c.IsNative {
		v, err := c.Native(this, args)
		if err != nil {
			return jsvalue.Undefined, in.Throw(err)
		}
		return v, nil
	}

	closureEnv, _ := c.Env.(*jsenv.Environment)
	fnEnv := jsenv.New(closureEnv)
	fnCtx := jsenv.NewContext(fnEnv, this)
	fnCtx.FunctionName = c.Name

	if c.SelfName != "" {
		fnEnv.Define(c.SelfName, jsvalue.FromCallable(c))
	}
	for i, p := range c.Params {
		var v jsvalue.Value
		if i < len(args) {
			v = args[i]
		} else {
			v = jsvalue.Undefined
		}
		fnEnv.Define(p, v)
	}
	fnEnv.Define("arguments", jsvalue.FromList(jsvalue.NewList(append([]jsvalue.Value{}, args...))))

	body, _ := c.BodyRef.([]jsast.Stmt)
	hoist(fnCtx, in, body)
	_, err := in.execStmts(fnCtx, body)
	if err != nil {
		if sig, ok := err.(*returnSignal); ok {
			return sig.Value, nil
		}
		return jsvalue.Undefined, err
	}
	return jsvalue.Undefined, nil
}

// prescanThisAssignments walks the statements of a constructor body,
// including those nested in blocks, if/else, loops, labels, switch cases
// and try/catch/finally, looking for "this.prop = ..." / "this['prop'] = ..." assignments and
// pre-defines each such prop to undefined on obj before the body actually
// runs. This matches scripts that probe own-property presence (e.g.
// Object.keys(this), hasOwnProperty) from a helper called earlier in the
// constructor than the real assignment statement — spec's "light pre-scan"
// contract for `new`. It does not descend into nested function bodies,
// since those introduce their own `this`.
func prescanThisAssignments(obj *jsvalue.Record, bodyRef any) {
	body, _ := bodyRef.([]jsast.Stmt)
	for _, stmt := range body {
		prescanStmt(obj, stmt)
	}
}

func prescanStmt(obj *jsvalue.Record, stmt jsast.Stmt) {
	switch n := stmt.Data.(type) {
	case *jsast.SExpr:
		prescanExpr(obj, n.Value)
	case *jsast.SBlock:
		for _, s := range n.Body {
			prescanStmt(obj, s)
		}
	case *jsast.SIf:
		prescanStmt(obj, n.Then)
		if n.Else != nil {
			prescanStmt(obj, *n.Else)
		}
	case *jsast.SWhile:
		prescanStmt(obj, n.Body)
	case *jsast.SDoWhile:
		prescanStmt(obj, n.Body)
	case *jsast.SFor:
		prescanStmt(obj, n.Body)
	case *jsast.SForIn:
		prescanStmt(obj, n.Body)
	case *jsast.SLabeled:
		prescanStmt(obj, n.Body)
	case *jsast.SSwitch:
		for _, c := range n.Cases {
			for _, s := range c.Body {
				prescanStmt(obj, s)
			}
		}
	case *jsast.STry:
		for _, s := range n.Block {
			prescanStmt(obj, s)
		}
		for _, s := range n.CatchBody {
			prescanStmt(obj, s)
		}
		for _, s := range n.Finally {
			prescanStmt(obj, s)
		}
	}
}

func prescanExpr(obj *jsvalue.Record, expr jsast.Expr) {
	assign, ok := expr.Data.(*jsast.EAssign)
	if !ok {
		return
	}
	member, ok := assign.Target.Data.(*jsast.EMember)
	if !ok {
		return
	}
	if _, ok := member.Object.Data.(*jsast.EThis); !ok {
		return
	}
	name := member.Name
	if member.Computed {
		lit, ok := (*member.Property).Data.(*jsast.EString)
		if !ok {
			return
		}
		name = lit.Value
	}
	if name == "" {
		return
	}
	if _, exists := obj.Get(name); !exists {
		obj.Set(name, jsvalue.Undefined)
	}
}

// constructNew implements the `new` operator: a fresh
// record is allocated with its Proto set to the callable's .prototype, the
// callable runs with `this` bound to that record, and the constructor's
// own return value is used instead if it returned a record (standard JS
// "constructors may override their instance" behavior).
func (in *Interpreter) constructNew(c *jsvalue.Callable, args []jsvalue.Value) (jsvalue.Value, error) {
	if c.IsNative {
		v, err := c.Native(jsvalue.Undefined, args)
		if err != nil {
			return jsvalue.Undefined, in.Throw(err)
		}
		return v, nil
	}
	proto := c.Prototype
	if proto == nil {
		proto = jsproto.ObjectPrototype
	}
	obj := jsvalue.NewRecord(proto)
	prescanThisAssignments(obj, c.BodyRef)
	objVal := jsvalue.FromRecord(obj)
	result, err := in.callCallable(c, objVal, args, true)
	if err != nil {
		return jsvalue.Undefined, err
	}
	if result.Kind() == jsvalue.KindRecord {
		return result, nil
	}
	return objVal, nil
}
