package interp

import (
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsast"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsenv"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// hoist predefines every var declarator (to undefined) and function
// declaration (to its callable) reachable from stmts before any statement
// in the block/program/function body actually runs.
// It descends into nested blocks/if/loop/try/labeled/switch bodies (var is
// not block-scoped in this subset) but never into a nested function's own
// body, which hoists independently the moment that function is called.
func hoist(ctx *jsenv.ExecutionContext, in *Interpreter, stmts []jsast.Stmt) {
	for _, s := range stmts {
		hoistStmt(ctx, in, s)
	}
}

func hoistStmt(ctx *jsenv.ExecutionContext, in *Interpreter, s jsast.Stmt) {
	switch d := s.Data.(type) {
	case *jsast.SVar:
		if d.Kind == "var" {
			for _, decl := range d.Decls {
				if !ctx.Env.HasOwn(decl.Name) {
					ctx.Env.Define(decl.Name, jsvalue.Undefined)
				}
			}
		}
	case *jsast.SFunction:
		fn := in.makeFunction(ctx, d.Name, d.Params, d.Body)
		ctx.Env.Define(d.Name, jsvalue.FromCallable(fn))
	case *jsast.SBlock:
		hoist(ctx, in, d.Body)
	case *jsast.SIf:
		hoistStmt(ctx, in, d.Then)
		if d.Else != nil {
			hoistStmt(ctx, in, *d.Else)
		}
	case *jsast.SWhile:
		hoistStmt(ctx, in, d.Body)
	case *jsast.SDoWhile:
		hoistStmt(ctx, in, d.Body)
	case *jsast.SFor:
		if init, ok := d.Init.(*jsast.SVar); ok {
			hoistStmt(ctx, in, jsast.St(s.Loc, init))
		}
		hoistStmt(ctx, in, d.Body)
	case *jsast.SForIn:
		if d.Kind == "var" {
			if !ctx.Env.HasOwn(d.Name) {
				ctx.Env.Define(d.Name, jsvalue.Undefined)
			}
		}
		hoistStmt(ctx, in, d.Body)
	case *jsast.STry:
		hoist(ctx, in, d.Block)
		if d.HasCatch {
			hoist(ctx, in, d.CatchBody)
		}
		if d.HasFinally {
			hoist(ctx, in, d.Finally)
		}
	case *jsast.SLabeled:
		hoistStmt(ctx, in, d.Body)
	case *jsast.SSwitch:
		for _, c := range d.Cases {
			hoist(ctx, in, c.Body)
		}
	}
}
