// Package jsfrontend translates a syntax tree built by
// github.com/robertkrimen/otto's ast/parser/token/file packages into this
// module's own internal/jsast shape. It exists purely so examples and
// tests can feed the interpreter real JS source text; the interpreter
// itself never imports this package and stays parser-agnostic, per the
// host contract (spec §6 "the parser is an external collaborator").
//
// otto's own Interpreter/VM is never used here — only its front-end
// packages — the same way other_examples' modeledjs.go builds an
// independent VM's input tree on top of otto/ast+otto/parser+otto/token
// without touching otto's evaluator.
package jsfrontend

import (
	"fmt"

	"github.com/robertkrimen/otto/ast"
	"github.com/robertkrimen/otto/parser"
	"github.com/robertkrimen/otto/token"

	"github.com/LOBYXLYX/javascript-interpreter/internal/jsast"
)

// Parse parses src as a full program and translates it into a jsast.Program.
func Parse(src string) (*jsast.Program, error) {
	prog, err := parser.ParseFile(nil, "", src, 0)
	if err != nil {
		return nil, fmt.Errorf("jsfrontend: parse: %w", err)
	}
	body, err := translateStatements(prog.Body)
	if err != nil {
		return nil, err
	}
	return &jsast.Program{Body: body}, nil
}

func loc() jsast.Loc { return jsast.Loc{} }

func translateStatements(list []ast.Statement) ([]jsast.Stmt, error) {
	out := make([]jsast.Stmt, 0, len(list))
	for _, s := range list {
		st, err := translateStmt(s)
		if err != nil {
			return nil, err
		}
		if st != nil {
			out = append(out, *st)
		}
	}
	return out, nil
}

func translateStmt(s ast.Statement) (*jsast.Stmt, error) {
	switch n := s.(type) {
	case nil:
		return nil, nil
	case *ast.EmptyStatement:
		st := jsast.St(loc(), &jsast.SEmpty{})
		return &st, nil
	case *ast.BlockStatement:
		body, err := translateStatements(n.List)
		if err != nil {
			return nil, err
		}
		st := jsast.St(loc(), &jsast.SBlock{Body: body})
		return &st, nil
	case *ast.ExpressionStatement:
		e, err := translateExpr(n.Expression)
		if err != nil {
			return nil, err
		}
		st := jsast.St(loc(), &jsast.SExpr{Value: e})
		return &st, nil
	case *ast.VariableStatement:
		decls := make([]jsast.Declarator, 0, len(n.List))
		for _, ve := range n.List {
			v, ok := ve.(*ast.VariableExpression)
			if !ok {
				continue
			}
			d := jsast.Declarator{Name: v.Name}
			if v.Initializer != nil {
				ie, err := translateExpr(v.Initializer)
				if err != nil {
					return nil, err
				}
				d.Init = &ie
			}
			decls = append(decls, d)
		}
		st := jsast.St(loc(), &jsast.SVar{Kind: "var", Decls: decls})
		return &st, nil
	case *ast.FunctionStatement:
		name, params, body, err := translateFunctionParts(n.Function)
		if err != nil {
			return nil, err
		}
		st := jsast.St(loc(), &jsast.SFunction{Name: name, Params: params, Body: body})
		return &st, nil
	case *ast.ReturnStatement:
		var ep *jsast.Expr
		if n.Argument != nil {
			e, err := translateExpr(n.Argument)
			if err != nil {
				return nil, err
			}
			ep = &e
		}
		st := jsast.St(loc(), &jsast.SReturn{Value: ep})
		return &st, nil
	case *ast.IfStatement:
		test, err := translateExpr(n.Test)
		if err != nil {
			return nil, err
		}
		then, err := translateStmt(n.Consequent)
		if err != nil {
			return nil, err
		}
		var elseStmt *jsast.Stmt
		if n.Alternate != nil {
			e, err := translateStmt(n.Alternate)
			if err != nil {
				return nil, err
			}
			elseStmt = e
		}
		st := jsast.St(loc(), &jsast.SIf{Test: test, Then: *then, Else: elseStmt})
		return &st, nil
	case *ast.SwitchStatement:
		disc, err := translateExpr(n.Discriminant)
		if err != nil {
			return nil, err
		}
		cases := make([]jsast.SwitchCase, 0, len(n.Body))
		for _, c := range n.Body {
			body, err := translateStatements(c.Consequent)
			if err != nil {
				return nil, err
			}
			sc := jsast.SwitchCase{Body: body}
			if c.Test != nil {
				te, err := translateExpr(c.Test)
				if err != nil {
					return nil, err
				}
				sc.Test = &te
			}
			cases = append(cases, sc)
		}
		st := jsast.St(loc(), &jsast.SSwitch{Disc: disc, Cases: cases})
		return &st, nil
	case *ast.WhileStatement:
		test, err := translateExpr(n.Test)
		if err != nil {
			return nil, err
		}
		body, err := translateStmt(n.Body)
		if err != nil {
			return nil, err
		}
		st := jsast.St(loc(), &jsast.SWhile{Test: test, Body: *body})
		return &st, nil
	case *ast.DoWhileStatement:
		test, err := translateExpr(n.Test)
		if err != nil {
			return nil, err
		}
		body, err := translateStmt(n.Body)
		if err != nil {
			return nil, err
		}
		st := jsast.St(loc(), &jsast.SDoWhile{Test: test, Body: *body})
		return &st, nil
	case *ast.ForStatement:
		var initS jsast.S
		if n.Initializer != nil {
			switch init := n.Initializer.(type) {
			case *ast.VariableStatement:
				s, err := translateStmt(init)
				if err != nil {
					return nil, err
				}
				initS = s.Data
			case ast.Expression:
				e, err := translateExpr(init)
				if err != nil {
					return nil, err
				}
				initS = &jsast.SExpr{Value: e}
			}
		}
		var testP, updateP *jsast.Expr
		if n.Test != nil {
			e, err := translateExpr(n.Test)
			if err != nil {
				return nil, err
			}
			testP = &e
		}
		if n.Update != nil {
			e, err := translateExpr(n.Update)
			if err != nil {
				return nil, err
			}
			updateP = &e
		}
		body, err := translateStmt(n.Body)
		if err != nil {
			return nil, err
		}
		st := jsast.St(loc(), &jsast.SFor{Init: initS, Test: testP, Update: updateP, Body: *body})
		return &st, nil
	case *ast.ForInStatement:
		right, err := translateExpr(n.Source)
		if err != nil {
			return nil, err
		}
		body, err := translateStmt(n.Body)
		if err != nil {
			return nil, err
		}
		name, kind := forIntoNameAndKind(n.Into)
		st := jsast.St(loc(), &jsast.SForIn{Kind: kind, Name: name, Right: right, Body: *body})
		return &st, nil
	case *ast.BranchStatement:
		label := ""
		if n.Label != nil {
			label = n.Label.Name
		}
		if n.Token == token.BREAK {
			st := jsast.St(loc(), &jsast.SBreak{Label: label})
			return &st, nil
		}
		st := jsast.St(loc(), &jsast.SContinue{Label: label})
		return &st, nil
	case *ast.ThrowStatement:
		e, err := translateExpr(n.Argument)
		if err != nil {
			return nil, err
		}
		st := jsast.St(loc(), &jsast.SThrow{Value: e})
		return &st, nil
	case *ast.TryStatement:
		block, err := translateStatements(blockList(n.Body))
		if err != nil {
			return nil, err
		}
		tr := &jsast.STry{Block: block}
		if n.Catch != nil {
			if n.Catch.Parameter != nil {
				tr.CatchParam = n.Catch.Parameter.Name
			}
			cb, err := translateStatements(blockList(n.Catch.Body))
			if err != nil {
				return nil, err
			}
			tr.CatchBody = cb
			tr.HasCatch = true
		}
		if n.Finally != nil {
			fb, err := translateStatements(blockList(n.Finally))
			if err != nil {
				return nil, err
			}
			tr.Finally = fb
			tr.HasFinally = true
		}
		st := jsast.St(loc(), tr)
		return &st, nil
	case *ast.LabelledStatement:
		body, err := translateStmt(n.Statement)
		if err != nil {
			return nil, err
		}
		st := jsast.St(loc(), &jsast.SLabeled{Label: n.Label.Name, Body: *body})
		return &st, nil
	case *ast.DebuggerStatement:
		st := jsast.St(loc(), &jsast.SEmpty{})
		return &st, nil
	}
	return nil, fmt.Errorf("jsfrontend: unsupported statement %T", s)
}

func blockList(s ast.Statement) []ast.Statement {
	if b, ok := s.(*ast.BlockStatement); ok {
		return b.List
	}
	if s == nil {
		return nil
	}
	return []ast.Statement{s}
}

func forIntoNameAndKind(into ast.Expression) (name, kind string) {
	switch v := into.(type) {
	case *ast.Identifier:
		return v.Name, ""
	case *ast.VariableExpression:
		return v.Name, "var"
	}
	return "", ""
}

func translateFunctionParts(fn *ast.FunctionLiteral) (name string, params []string, body []jsast.Stmt, err error) {
	if fn.Name != nil {
		name = fn.Name.Name
	}
	if fn.ParameterList != nil {
		for _, p := range fn.ParameterList.List {
			params = append(params, p.Name)
		}
	}
	body, err = translateStatements(blockList(fn.Body))
	return name, params, body, err
}

func translateExpr(e ast.Expression) (jsast.Expr, error) {
	switch n := e.(type) {
	case nil:
		return jsast.Ex(loc(), &jsast.EUndefined{}), nil
	case *ast.Identifier:
		return jsast.Ex(loc(), &jsast.EIdentifier{Name: n.Name}), nil
	case *ast.NumberLiteral:
		if f, ok := n.Value.(float64); ok {
			return jsast.Ex(loc(), &jsast.ENumber{Value: f}), nil
		}
		return jsast.Ex(loc(), &jsast.ENumber{Value: 0}), nil
	case *ast.StringLiteral:
		return jsast.Ex(loc(), &jsast.EString{Value: n.Value}), nil
	case *ast.BooleanLiteral:
		return jsast.Ex(loc(), &jsast.EBoolean{Value: n.Value}), nil
	case *ast.NullLiteral:
		return jsast.Ex(loc(), &jsast.ENull{}), nil
	case *ast.RegExpLiteral:
		return jsast.Ex(loc(), &jsast.ERegExp{Pattern: n.Pattern, Flags: n.Flags}), nil
	case *ast.ThisExpression:
		return jsast.Ex(loc(), &jsast.EThis{}), nil
	case *ast.ArrayLiteral:
		items := make([]*jsast.Expr, len(n.Value))
		for i, v := range n.Value {
			if v == nil {
				continue
			}
			ve, err := translateExpr(v)
			if err != nil {
				return jsast.Expr{}, err
			}
			items[i] = &ve
		}
		return jsast.Ex(loc(), &jsast.EArray{Items: items}), nil
	case *ast.ObjectLiteral:
		props := make([]jsast.ObjectProp, 0, len(n.Value))
		for _, p := range n.Value {
			ve, err := translateExpr(p.Value)
			if err != nil {
				return jsast.Expr{}, err
			}
			props = append(props, jsast.ObjectProp{Key: p.Key, Value: ve})
		}
		return jsast.Ex(loc(), &jsast.EObject{Props: props}), nil
	case *ast.FunctionLiteral:
		name, params, body, err := translateFunctionParts(n)
		if err != nil {
			return jsast.Expr{}, err
		}
		return jsast.Ex(loc(), &jsast.EFunction{Name: name, Params: params, Body: body}), nil
	case *ast.UnaryExpression:
		operand, err := translateExpr(n.Operand)
		if err != nil {
			return jsast.Expr{}, err
		}
		op := n.Operator.String()
		if n.Operator == token.INCREMENT || n.Operator == token.DECREMENT {
			return jsast.Ex(loc(), &jsast.EUpdate{Op: op, Arg: operand, Prefix: !n.Postfix}), nil
		}
		return jsast.Ex(loc(), &jsast.EUnary{Op: op, Arg: operand}), nil
	case *ast.BinaryExpression:
		left, err := translateExpr(n.Left)
		if err != nil {
			return jsast.Expr{}, err
		}
		right, err := translateExpr(n.Right)
		if err != nil {
			return jsast.Expr{}, err
		}
		op := n.Operator.String()
		if n.Operator == token.LOGICAL_AND || n.Operator == token.LOGICAL_OR {
			return jsast.Ex(loc(), &jsast.ELogical{Op: op, Left: left, Right: right}), nil
		}
		return jsast.Ex(loc(), &jsast.EBinary{Op: op, Left: left, Right: right}), nil
	case *ast.AssignExpression:
		target, err := translateExpr(n.Left)
		if err != nil {
			return jsast.Expr{}, err
		}
		val, err := translateExpr(n.Right)
		if err != nil {
			return jsast.Expr{}, err
		}
		return jsast.Ex(loc(), &jsast.EAssign{Op: n.Operator.String(), Target: target, Value: val}), nil
	case *ast.ConditionalExpression:
		test, err := translateExpr(n.Test)
		if err != nil {
			return jsast.Expr{}, err
		}
		cons, err := translateExpr(n.Consequent)
		if err != nil {
			return jsast.Expr{}, err
		}
		alt, err := translateExpr(n.Alternate)
		if err != nil {
			return jsast.Expr{}, err
		}
		return jsast.Ex(loc(), &jsast.EConditional{Test: test, Cons: cons, Alt: alt}), nil
	case *ast.CallExpression:
		callee, err := translateExpr(n.Callee)
		if err != nil {
			return jsast.Expr{}, err
		}
		args, err := translateExprList(n.ArgumentList)
		if err != nil {
			return jsast.Expr{}, err
		}
		return jsast.Ex(loc(), &jsast.ECall{Callee: callee, Args: args}), nil
	case *ast.NewExpression:
		callee, err := translateExpr(n.Callee)
		if err != nil {
			return jsast.Expr{}, err
		}
		args, err := translateExprList(n.ArgumentList)
		if err != nil {
			return jsast.Expr{}, err
		}
		return jsast.Ex(loc(), &jsast.ENew{Callee: callee, Args: args}), nil
	case *ast.DotExpression:
		obj, err := translateExpr(n.Left)
		if err != nil {
			return jsast.Expr{}, err
		}
		return jsast.Ex(loc(), &jsast.EMember{Object: obj, Name: n.Identifier.Name}), nil
	case *ast.BracketExpression:
		obj, err := translateExpr(n.Left)
		if err != nil {
			return jsast.Expr{}, err
		}
		prop, err := translateExpr(n.Member)
		if err != nil {
			return jsast.Expr{}, err
		}
		return jsast.Ex(loc(), &jsast.EMember{Object: obj, Property: &prop, Computed: true}), nil
	case *ast.SequenceExpression:
		exprs, err := translateExprList(n.Sequence)
		if err != nil {
			return jsast.Expr{}, err
		}
		return jsast.Ex(loc(), &jsast.ESequence{Exprs: exprs}), nil
	}
	return jsast.Expr{}, fmt.Errorf("jsfrontend: unsupported expression %T", e)
}

func translateExprList(list []ast.Expression) ([]jsast.Expr, error) {
	out := make([]jsast.Expr, len(list))
	for i, e := range list {
		v, err := translateExpr(e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
