package interp

import (
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsast"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsenv"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// execStmts runs a statement list in ctx, returning the last expression
// statement's value as a completion value. Used by Run and by
// blocks/function bodies alike; this subset has no block-scoping, so
// nested blocks execute directly in the caller's environment.
func (in *Interpreter) execStmts(ctx *jsenv.ExecutionContext, stmts []jsast.Stmt) (jsvalue.Value, error) {
	last := jsvalue.Undefined
	for _, s := range stmts {
		v, err := in.execStmt(ctx, s)
		if err != nil {
			return jsvalue.Undefined, err
		}
		if !v.IsUndefined() || isExprStmt(s) {
			last = v
		}
	}
	return last, nil
}

func isExprStmt(s jsast.Stmt) bool {
	_, ok := s.Data.(*jsast.SExpr)
	return ok
}

func (in *Interpreter) execStmt(ctx *jsenv.ExecutionContext, s jsast.Stmt) (jsvalue.Value, error) {
	switch d := s.Data.(type) {
	case *jsast.SEmpty:
		return jsvalue.Undefined, nil

	case *jsast.SBlock:
		return in.execStmts(ctx, d.Body)

	case *jsast.SExpr:
		return in.eval(ctx, d.Value)

	case *jsast.SVar:
		for _, decl := range d.Decls {
			var v jsvalue.Value
			if decl.Init != nil {
				var err error
				v, err = in.eval(ctx, *decl.Init)
				if err != nil {
					return jsvalue.Undefined, err
				}
			} else if ctx.Env.HasOwn(decl.Name) {
				continue
			}
			ctx.Env.Define(decl.Name, v)
		}
		return jsvalue.Undefined, nil

	case *jsast.SFunction:
		// Already bound during hoisting; nothing to do at statement time.
		return jsvalue.Undefined, nil

	case *jsast.SReturn:
		v := jsvalue.Undefined
		if d.Value != nil {
			var err error
			v, err = in.eval(ctx, *d.Value)
			if err != nil {
				return jsvalue.Undefined, err
			}
		}
		return jsvalue.Undefined, &returnSignal{Value: v}

	case *jsast.SIf:
		test, err := in.eval(ctx, d.Test)
		if err != nil {
			return jsvalue.Undefined, err
		}
		if jsvalue.ToBoolean(test) {
			return in.execStmt(ctx, d.Then)
		}
		if d.Else != nil {
			return in.execStmt(ctx, *d.Else)
		}
		return jsvalue.Undefined, nil

	case *jsast.SSwitch:
		return in.execSwitch(ctx, d, "")

	case *jsast.SWhile:
		for {
			test, err := in.eval(ctx, d.Test)
			if err != nil {
				return jsvalue.Undefined, err
			}
			if !jsvalue.ToBoolean(test) {
				break
			}
			if stop, err := in.runLoopBody(ctx, d.Body, ""); stop {
				return jsvalue.Undefined, err
			}
		}
		return jsvalue.Undefined, nil

	case *jsast.SDoWhile:
		for {
			if stop, err := in.runLoopBody(ctx, d.Body, ""); stop {
				return jsvalue.Undefined, err
			}
			test, err := in.eval(ctx, d.Test)
			if err != nil {
				return jsvalue.Undefined, err
			}
			if !jsvalue.ToBoolean(test) {
				break
			}
		}
		return jsvalue.Undefined, nil

	case *jsast.SFor:
		return in.execFor(ctx, d, "")

	case *jsast.SForIn:
		return in.execForIn(ctx, d, "")

	case *jsast.SBreak:
		return jsvalue.Undefined, &breakSignal{Label: d.Label}

	case *jsast.SContinue:
		return jsvalue.Undefined, &continueSignal{Label: d.Label}

	case *jsast.SThrow:
		v, err := in.eval(ctx, d.Value)
		if err != nil {
			return jsvalue.Undefined, err
		}
		return jsvalue.Undefined, &ThrowError{Value: v}

	case *jsast.STry:
		return in.execTry(ctx, d)

	case *jsast.SLabeled:
		return in.execLabeled(ctx, d)
	}
	return jsvalue.Undefined, nil
}

// runLoopBody executes one loop iteration body, translating an unlabeled
// break into "stop the loop, no error" and an unlabeled continue into
// "keep going". A label on break/continue that doesn't match ownLabel is
// re-thrown so an enclosing labeled statement can catch it.
func (in *Interpreter) runLoopBody(ctx *jsenv.ExecutionContext, body jsast.Stmt, ownLabel string) (stop bool, err error) {
	_, err = in.execStmt(ctx, body)
	if err == nil {
		return false, nil
	}
	switch sig := err.(type) {
	case *breakSignal:
		if sig.Label == "" || sig.Label == ownLabel {
			return true, nil
		}
		return true, err
	case *continueSignal:
		if sig.Label == "" || sig.Label == ownLabel {
			return false, nil
		}
		return true, err
	}
	return true, err
}

func (in *Interpreter) execFor(ctx *jsenv.ExecutionContext, d *jsast.SFor, label string) (jsvalue.Value, error) {
	if d.Init != nil {
		if _, err := in.execStmt(ctx, jsast.St(jsast.Loc{}, d.Init)); err != nil {
			return jsvalue.Undefined, err
		}
	}
	for {
		if d.Test != nil {
			test, err := in.eval(ctx, *d.Test)
			if err != nil {
				return jsvalue.Undefined, err
			}
			if !jsvalue.ToBoolean(test) {
				break
			}
		}
		if stop, err := in.runLoopBody(ctx, d.Body, label); stop {
			return jsvalue.Undefined, err
		}
		if d.Update != nil {
			if _, err := in.eval(ctx, *d.Update); err != nil {
				return jsvalue.Undefined, err
			}
		}
	}
	return jsvalue.Undefined, nil
}

func (in *Interpreter) execForIn(ctx *jsenv.ExecutionContext, d *jsast.SForIn, label string) (jsvalue.Value, error) {
	rightVal, err := in.eval(ctx, d.Right)
	if err != nil {
		return jsvalue.Undefined, err
	}
	keys := jsproto.OwnKeys(rightVal)
	for _, k := range keys {
		if d.Kind != "" {
			ctx.Env.Define(d.Name, jsvalue.Str(k))
		} else if err := ctx.Env.Assign(d.Name, jsvalue.Str(k)); err != nil {
			return jsvalue.Undefined, in.Throw(err)
		}
		if stop, err := in.runLoopBody(ctx, d.Body, label); stop {
			return jsvalue.Undefined, err
		}
	}
	return jsvalue.Undefined, nil
}

// execSwitch compares each case's test expression against the
// discriminant value, using strict equality for each case test.
func (in *Interpreter) execSwitch(ctx *jsenv.ExecutionContext, d *jsast.SSwitch, label string) (jsvalue.Value, error) {
	disc, err := in.eval(ctx, d.Disc)
	if err != nil {
		return jsvalue.Undefined, err
	}
	matched := -1
	defaultIdx := -1
	for i, c := range d.Cases {
		if c.Test == nil {
			defaultIdx = i
			continue
		}
		tv, err := in.eval(ctx, *c.Test)
		if err != nil {
			return jsvalue.Undefined, err
		}
		if jsvalue.StrictEquals(disc, tv) {
			matched = i
			break
		}
	}
	if matched < 0 {
		matched = defaultIdx
	}
	if matched < 0 {
		return jsvalue.Undefined, nil
	}
	for i := matched; i < len(d.Cases); i++ {
		for _, s := range d.Cases[i].Body {
			if _, err := in.execStmt(ctx, s); err != nil {
				if sig, ok := err.(*breakSignal); ok && (sig.Label == "" || sig.Label == label) {
					return jsvalue.Undefined, nil
				}
				return jsvalue.Undefined, err
			}
		}
	}
	return jsvalue.Undefined, nil
}

func (in *Interpreter) execTry(ctx *jsenv.ExecutionContext, d *jsast.STry) (jsvalue.Value, error) {
	_, blockErr := in.execStmts(ctx, d.Block)

	resultErr := blockErr
	if blockErr != nil && d.HasCatch {
		if thrown, ok := blockErr.(*ThrowError); ok {
			catchCtx := ctx.Child()
			if d.CatchParam != "" {
				catchCtx.Env.Define(d.CatchParam, thrown.Value)
			}
			hoist(catchCtx, in, d.CatchBody)
			_, resultErr = in.execStmts(catchCtx, d.CatchBody)
		}
	}

	if d.HasFinally {
		hoist(ctx, in, d.Finally)
		_, finallyErr := in.execStmts(ctx, d.Finally)
		if finallyErr != nil {
			return jsvalue.Undefined, finallyErr
		}
	}
	return jsvalue.Undefined, resultErr
}

func (in *Interpreter) execLabeled(ctx *jsenv.ExecutionContext, d *jsast.SLabeled) (jsvalue.Value, error) {
	switch body := d.Body.Data.(type) {
	case *jsast.SFor:
		return in.execFor(ctx, body, d.Label)
	case *jsast.SForIn:
		return in.execForIn(ctx, body, d.Label)
	case *jsast.SWhile:
		for {
			test, err := in.eval(ctx, body.Test)
			if err != nil {
				return jsvalue.Undefined, err
			}
			if !jsvalue.ToBoolean(test) {
				break
			}
			if stop, err := in.runLoopBody(ctx, body.Body, d.Label); stop {
				return jsvalue.Undefined, err
			}
		}
		return jsvalue.Undefined, nil
	case *jsast.SDoWhile:
		for {
			if stop, err := in.runLoopBody(ctx, body.Body, d.Label); stop {
				return jsvalue.Undefined, err
			}
			test, err := in.eval(ctx, body.Test)
			if err != nil {
				return jsvalue.Undefined, err
			}
			if !jsvalue.ToBoolean(test) {
				break
			}
		}
		return jsvalue.Undefined, nil
	case *jsast.SSwitch:
		return in.execSwitch(ctx, body, d.Label)
	default:
		_, err := in.execStmt(ctx, d.Body)
		if sig, ok := err.(*breakSignal); ok && sig.Label == d.Label {
			return jsvalue.Undefined, nil
		}
		return jsvalue.Undefined, err
	}
}
