package interp

import (
	"math"

	"github.com/LOBYXLYX/javascript-interpreter/internal/jsast"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsenv"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

func (in *Interpreter) eval(ctx *jsenv.ExecutionContext, e jsast.Expr) (jsvalue.Value, error) {
	switch d := e.Data.(type) {
	case *jsast.ENumber:
		return jsvalue.Num(d.Value), nil
	case *jsast.EString:
		return jsvalue.Str(d.Value), nil
	case *jsast.EBoolean:
		return jsvalue.Bool(d.Value), nil
	case *jsast.ENull:
		return jsvalue.Null, nil
	case *jsast.EUndefined:
		return jsvalue.Undefined, nil
	case *jsast.EThis:
		return ctx.This, nil
	case *jsast.ERegExp:
		v, err := jsproto.NewRegexValue(d.Pattern, d.Flags)
		if err != nil {
			return jsvalue.Undefined, in.Throw(err)
		}
		return v, nil

	case *jsast.EIdentifier:
		v, err := ctx.Env.Resolve(d.Name)
		if err != nil {
			return jsvalue.Undefined, in.Throw(err)
		}
		return v, nil

	case *jsast.EArray:
		items := make([]jsvalue.Value, len(d.Items))
		for i, it := range d.Items {
			if it == nil {
				items[i] = jsvalue.Undefined
				continue
			}
			v, err := in.eval(ctx, *it)
			if err != nil {
				return jsvalue.Undefined, err
			}
			items[i] = v
		}
		return jsvalue.FromList(jsvalue.NewList(items)), nil

	case *jsast.EObject:
		rec := jsproto.NewObjectRecord()
		for _, p := range d.Props {
			key := p.Key
			if p.Computed {
				kv, err := in.eval(ctx, *p.KeyExpr)
				if err != nil {
					return jsvalue.Undefined, err
				}
				key = jsvalue.ToString(kv)
			}
			v, err := in.eval(ctx, p.Value)
			if err != nil {
				return jsvalue.Undefined, err
			}
			rec.Set(key, v)
		}
		return jsvalue.FromRecord(rec), nil

	case *jsast.EFunction:
		return jsvalue.FromCallable(in.makeFunction(ctx, d.Name, d.Params, d.Body)), nil

	case *jsast.EUnary:
		return in.evalUnary(ctx, d)

	case *jsast.EUpdate:
		return in.evalUpdate(ctx, d)

	case *jsast.EBinary:
		return in.evalBinary(ctx, d)

	case *jsast.ELogical:
		return in.evalLogical(ctx, d)

	case *jsast.EAssign:
		return in.evalAssign(ctx, d)

	case *jsast.EConditional:
		test, err := in.eval(ctx, d.Test)
		if err != nil {
			return jsvalue.Undefined, err
		}
		if jsvalue.ToBoolean(test) {
			return in.eval(ctx, d.Cons)
		}
		return in.eval(ctx, d.Alt)

	case *jsast.ECall:
		return in.evalCall(ctx, d)

	case *jsast.ENew:
		return in.evalNew(ctx, d)

	case *jsast.EMember:
		obj, err := in.eval(ctx, d.Object)
		if err != nil {
			return jsvalue.Undefined, err
		}
		key, err := in.memberKey(ctx, d)
		if err != nil {
			return jsvalue.Undefined, err
		}
		v, err := jsproto.Get(obj, key)
		if err != nil {
			return jsvalue.Undefined, in.Throw(err)
		}
		return v, nil

	case *jsast.ESequence:
		var v jsvalue.Value
		for _, sub := range d.Exprs {
			var err error
			v, err = in.eval(ctx, sub)
			if err != nil {
				return jsvalue.Undefined, err
			}
		}
		return v, nil
	}
	return jsvalue.Undefined, nil
}

func (in *Interpreter) memberKey(ctx *jsenv.ExecutionContext, d *jsast.EMember) (string, error) {
	if !d.Computed {
		return d.Name, nil
	}
	v, err := in.eval(ctx, *d.Property)
	if err != nil {
		return "", err
	}
	return jsvalue.ToString(v), nil
}

func (in *Interpreter) evalUnary(ctx *jsenv.ExecutionContext, d *jsast.EUnary) (jsvalue.Value, error) {
	if d.Op == "typeof" {
		// typeof on an unresolved identifier must not throw (spec edge
		// case), and always yields a lowercase string (spec §9 bug-fix
		// (a): the original returned a host type object, not a string).
		if ident, ok := d.Arg.Data.(*jsast.EIdentifier); ok {
			v, ok := ctx.Env.Lookup(ident.Name)
			if !ok {
				return jsvalue.Str("undefined"), nil
			}
			return jsvalue.Str(v.Kind().String()), nil
		}
		v, err := in.eval(ctx, d.Arg)
		if err != nil {
			return jsvalue.Undefined, err
		}
		return jsvalue.Str(v.Kind().String()), nil
	}

	if d.Op == "delete" {
		if m, ok := d.Arg.Data.(*jsast.EMember); ok {
			obj, err := in.eval(ctx, m.Object)
			if err != nil {
				return jsvalue.Undefined, err
			}
			key, err := in.memberKey(ctx, m)
			if err != nil {
				return jsvalue.Undefined, err
			}
			ok, err := jsproto.Delete(obj, key)
			if err != nil {
				return jsvalue.Undefined, in.Throw(err)
			}
			return jsvalue.Bool(ok), nil
		}
		return jsvalue.Bool(true), nil
	}

	if d.Op == "void" {
		if _, err := in.eval(ctx, d.Arg); err != nil {
			return jsvalue.Undefined, err
		}
		return jsvalue.Undefined, nil
	}

	v, err := in.eval(ctx, d.Arg)
	if err != nil {
		return jsvalue.Undefined, err
	}
	switch d.Op {
	case "!":
		return jsvalue.Bool(!jsvalue.ToBoolean(v)), nil
	case "-":
		return jsvalue.Num(-jsvalue.ToNumber(v)), nil
	case "+":
		return jsvalue.Num(jsvalue.ToNumber(v)), nil
	case "~":
		return jsvalue.Num(float64(^jsvalue.ToInt32(v))), nil
	}
	return jsvalue.Undefined, nil
}

// evalUpdate implements ++/-- (prefix and postfix) against an identifier
// or member target.
func (in *Interpreter) evalUpdate(ctx *jsenv.ExecutionContext, d *jsast.EUpdate) (jsvalue.Value, error) {
	get, set, err := in.resolveTarget(ctx, d.Arg)
	if err != nil {
		return jsvalue.Undefined, err
	}
	old, err := get()
	if err != nil {
		return jsvalue.Undefined, err
	}
	oldNum := jsvalue.ToNumber(old)
	var newNum float64
	if d.Op == "++" {
		newNum = oldNum + 1
	} else {
		newNum = oldNum - 1
	}
	if err := set(jsvalue.Num(newNum)); err != nil {
		return jsvalue.Undefined, err
	}
	if d.Prefix {
		return jsvalue.Num(newNum), nil
	}
	return jsvalue.Num(oldNum), nil
}

// target is a get/set pair over an assignable expression (identifier or
// member). Resolving it once avoids re-evaluating (and double-executing
// side effects in) the member's object expression for compound assignment
// and ++/-- (spec §9 bug-fix (d) depends on this: the correct target —
// member vs. identifier — must be mutated, not a fresh/unrelated binding).
func (in *Interpreter) resolveTarget(ctx *jsenv.ExecutionContext, e jsast.Expr) (get func() (jsvalue.Value, error), set func(jsvalue.Value) error, err error) {
	switch d := e.Data.(type) {
	case *jsast.EIdentifier:
		name := d.Name
		get = func() (jsvalue.Value, error) {
			v, err := ctx.Env.Resolve(name)
			if err != nil {
				return jsvalue.Undefined, in.Throw(err)
			}
			return v, nil
		}
		set = func(v jsvalue.Value) error {
			if err := ctx.Env.Assign(name, v); err != nil {
				return in.Throw(err)
			}
			return nil
		}
		return get, set, nil

	case *jsast.EMember:
		obj, evalErr := in.eval(ctx, d.Object)
		if evalErr != nil {
			return nil, nil, evalErr
		}
		key, keyErr := in.memberKey(ctx, d)
		if keyErr != nil {
			return nil, nil, keyErr
		}
		get = func() (jsvalue.Value, error) {
			v, err := jsproto.Get(obj, key)
			if err != nil {
				return jsvalue.Undefined, in.Throw(err)
			}
			return v, nil
		}
		set = func(v jsvalue.Value) error {
			if err := jsproto.Set(obj, key, v); err != nil {
				return in.Throw(err)
			}
			return nil
		}
		return get, set, nil
	}
	return nil, nil, in.Throw(jsproto.NewTypeError("Invalid assignment target"))
}

func (in *Interpreter) evalLogical(ctx *jsenv.ExecutionContext, d *jsast.ELogical) (jsvalue.Value, error) {
	left, err := in.eval(ctx, d.Left)
	if err != nil {
		return jsvalue.Undefined, err
	}
	switch d.Op {
	case "&&":
		if !jsvalue.ToBoolean(left) {
			return left, nil
		}
		return in.eval(ctx, d.Right)
	case "||":
		if jsvalue.ToBoolean(left) {
			return left, nil
		}
		return in.eval(ctx, d.Right)
	case "??":
		if !left.IsNullish() {
			return left, nil
		}
		return in.eval(ctx, d.Right)
	}
	return jsvalue.Undefined, nil
}

// evalAssign handles "=" and every compound assignment operator. Compound
// bitwise assigns (spec §9 bug-fix (d)) resolve the real target once via
// resolveTarget and apply the correct 32-bit signed/unsigned semantics
// instead of assigning into an unrelated identifier.
func (in *Interpreter) evalAssign(ctx *jsenv.ExecutionContext, d *jsast.EAssign) (jsvalue.Value, error) {
	if d.Op == "=" {
		v, err := in.eval(ctx, d.Value)
		if err != nil {
			return jsvalue.Undefined, err
		}
		_, set, err := in.resolveTarget(ctx, d.Target)
		if err != nil {
			return jsvalue.Undefined, err
		}
		if err := set(v); err != nil {
			return jsvalue.Undefined, err
		}
		return v, nil
	}

	get, set, err := in.resolveTarget(ctx, d.Target)
	if err != nil {
		return jsvalue.Undefined, err
	}
	cur, err := get()
	if err != nil {
		return jsvalue.Undefined, err
	}
	rhs, err := in.eval(ctx, d.Value)
	if err != nil {
		return jsvalue.Undefined, err
	}
	result, err := applyCompound(d.Op, cur, rhs)
	if err != nil {
		return jsvalue.Undefined, err
	}
	if err := set(result); err != nil {
		return jsvalue.Undefined, err
	}
	return result, nil
}

func applyCompound(op string, cur, rhs jsvalue.Value) (jsvalue.Value, error) {
	base := op[:len(op)-1] // strip trailing "="
	return binaryOp(base, cur, rhs)
}

func (in *Interpreter) evalBinary(ctx *jsenv.ExecutionContext, d *jsast.EBinary) (jsvalue.Value, error) {
	left, err := in.eval(ctx, d.Left)
	if err != nil {
		return jsvalue.Undefined, err
	}
	right, err := in.eval(ctx, d.Right)
	if err != nil {
		return jsvalue.Undefined, err
	}
	v, err := binaryOp(d.Op, left, right)
	if err != nil {
		return jsvalue.Undefined, in.Throw(err)
	}
	return v, nil
}

// binaryOp implements spec §4.D's operator table. "==" and "===" behave
// identically in this subset, as do "!=" and "!==" (no abstract-equality
// coercion ladder is implemented). Bitwise ops use 32-bit signed/unsigned
// semantics per spec §4.D.
func binaryOp(op string, left, right jsvalue.Value) (jsvalue.Value, error) {
	switch op {
	case "+":
		if left.Kind() == jsvalue.KindString || right.Kind() == jsvalue.KindString {
			return jsvalue.Str(jsvalue.ToString(left) + jsvalue.ToString(right)), nil
		}
		return jsvalue.Num(jsvalue.ToNumber(left) + jsvalue.ToNumber(right)), nil
	case "-":
		return jsvalue.Num(jsvalue.ToNumber(left) - jsvalue.ToNumber(right)), nil
	case "*":
		return jsvalue.Num(jsvalue.ToNumber(left) * jsvalue.ToNumber(right)), nil
	case "/":
		return jsvalue.Num(jsvalue.ToNumber(left) / jsvalue.ToNumber(right)), nil
	case "%":
		return jsvalue.Num(math.Mod(jsvalue.ToNumber(left), jsvalue.ToNumber(right))), nil
	case "**":
		return jsvalue.Num(math.Pow(jsvalue.ToNumber(left), jsvalue.ToNumber(right))), nil
	case "==", "===":
		return jsvalue.Bool(jsvalue.StrictEquals(left, right)), nil
	case "!=", "!==":
		return jsvalue.Bool(!jsvalue.StrictEquals(left, right)), nil
	case "<":
		return compareOp(left, right, func(a, b float64) bool { return a < b }, func(a, b string) bool { return a < b }), nil
	case "<=":
		return compareOp(left, right, func(a, b float64) bool { return a <= b }, func(a, b string) bool { return a <= b }), nil
	case ">":
		return compareOp(left, right, func(a, b float64) bool { return a > b }, func(a, b string) bool { return a > b }), nil
	case ">=":
		return compareOp(left, right, func(a, b float64) bool { return a >= b }, func(a, b string) bool { return a >= b }), nil
	case "&":
		return jsvalue.Num(float64(jsvalue.ToInt32(left) & jsvalue.ToInt32(right))), nil
	case "|":
		return jsvalue.Num(float64(jsvalue.ToInt32(left) | jsvalue.ToInt32(right))), nil
	case "^":
		return jsvalue.Num(float64(jsvalue.ToInt32(left) ^ jsvalue.ToInt32(right))), nil
	case "<<":
		shift := uint32(jsvalue.ToUint32(right)) & 31
		return jsvalue.Num(float64(jsvalue.ToInt32(left) << shift)), nil
	case ">>":
		shift := uint32(jsvalue.ToUint32(right)) & 31
		return jsvalue.Num(float64(jsvalue.ToInt32(left) >> shift)), nil
	case ">>>":
		shift := uint32(jsvalue.ToUint32(right)) & 31
		return jsvalue.Num(float64(jsvalue.ToUint32(left) >> shift)), nil
	case "instanceof":
		return instanceOf(left, right)
	case "in":
		return jsvalue.Bool(jsproto.Has(right, jsvalue.ToString(left))), nil
	}
	return jsvalue.Undefined, nil
}

func compareOp(left, right jsvalue.Value, numCmp func(a, b float64) bool, strCmp func(a, b string) bool) jsvalue.Value {
	if left.Kind() == jsvalue.KindString && right.Kind() == jsvalue.KindString {
		return jsvalue.Bool(strCmp(left.Str(), right.Str()))
	}
	a, b := jsvalue.ToNumber(left), jsvalue.ToNumber(right)
	if math.IsNaN(a) || math.IsNaN(b) {
		return jsvalue.Bool(false)
	}
	return jsvalue.Bool(numCmp(a, b))
}

func instanceOf(left, right jsvalue.Value) (jsvalue.Value, error) {
	if right.Kind() != jsvalue.KindCallable {
		return jsvalue.Undefined, jsproto.NewTypeError("Right-hand side of 'instanceof' is not callable")
	}
	proto := right.Callable().Prototype
	if left.Kind() != jsvalue.KindRecord || proto == nil {
		return jsvalue.Bool(false), nil
	}
	for r := left.Record().Proto; r != nil; r = r.Proto {
		if r == proto {
			return jsvalue.Bool(true), nil
		}
	}
	return jsvalue.Bool(false), nil
}

func (in *Interpreter) evalCall(ctx *jsenv.ExecutionContext, d *jsast.ECall) (jsvalue.Value, error) {
	var this jsvalue.Value
	var calleeVal jsvalue.Value
	if m, ok := d.Callee.Data.(*jsast.EMember); ok {
		obj, err := in.eval(ctx, m.Object)
		if err != nil {
			return jsvalue.Undefined, err
		}
		key, err := in.memberKey(ctx, m)
		if err != nil {
			return jsvalue.Undefined, err
		}
		v, err := jsproto.Get(obj, key)
		if err != nil {
			return jsvalue.Undefined, in.Throw(err)
		}
		this = obj
		calleeVal = v
	} else {
		v, err := in.eval(ctx, d.Callee)
		if err != nil {
			return jsvalue.Undefined, err
		}
		this = jsvalue.Undefined
		calleeVal = v
	}

	if calleeVal.Kind() != jsvalue.KindCallable {
		return jsvalue.Undefined, in.Throw(jsproto.NewTypeError("%s is not a function", describeCallee(d.Callee)))
	}

	args := make([]jsvalue.Value, len(d.Args))
	for i, a := range d.Args {
		v, err := in.eval(ctx, a)
		if err != nil {
			return jsvalue.Undefined, err
		}
		args[i] = v
	}

	v, err := in.callCallable(calleeVal.Callable(), this, args, false)
	if err != nil {
		return jsvalue.Undefined, err
	}
	return v, nil
}

func describeCallee(e jsast.Expr) string {
	switch d := e.Data.(type) {
	case *jsast.EIdentifier:
		return d.Name
	case *jsast.EMember:
		return d.Name
	}
	return "expression"
}

func (in *Interpreter) evalNew(ctx *jsenv.ExecutionContext, d *jsast.ENew) (jsvalue.Value, error) {
	calleeVal, err := in.eval(ctx, d.Callee)
	if err != nil {
		return jsvalue.Undefined, err
	}
	if calleeVal.Kind() != jsvalue.KindCallable {
		return jsvalue.Undefined, in.Throw(jsproto.NewTypeError("%s is not a constructor", describeCallee(d.Callee)))
	}
	args := make([]jsvalue.Value, len(d.Args))
	for i, a := range d.Args {
		v, err := in.eval(ctx, a)
		if err != nil {
			return jsvalue.Undefined, err
		}
		args[i] = v
	}
	return in.constructNew(calleeVal.Callable(), args)
}
