// Package jsenv implements the lexical environment / execution context
// model: a chain of record-plus-parent-pointer scopes, and the
// thin ExecutionContext wrapper that pairs a scope with a `this` binding.
// define/resolve/lookup/assign are the four core operations, typed and
// returning Go errors instead of raising.
package jsenv

import (
	"fmt"

	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// Environment is one lexical scope. Parent is nil only for the global
// environment.
type Environment struct {
	vars   map[string]jsvalue.Value
	Parent *Environment
}

func New(parent *Environment) *Environment {
	return &Environment{vars: make(map[string]jsvalue.Value), Parent: parent}
}

// Define creates (or overwrites) a binding in this environment specifically
// — it never walks the parent chain. Used for var/let/const declarators and
// function parameters.
func (e *Environment) Define(name string, v jsvalue.Value) {
	e.vars[name] = v
}

// HasOwn reports whether name is bound directly in this environment
// (not an ancestor).
func (e *Environment) HasOwn(name string) bool {
	_, ok := e.vars[name]
	return ok
}

// Lookup walks the scope chain and reports whether name is bound anywhere,
// without raising. Used by `typeof x` on a possibly-undeclared x, which
// must NOT throw.
func (e *Environment) Lookup(name string) (jsvalue.Value, bool) {
	for env := e; env != nil; env = env.Parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return jsvalue.Undefined, false
}

// Resolve walks the scope chain and returns the bound value, or a
// ReferenceError if name is unbound anywhere in the chain, matching
// real JS semantics for an unresolved identifier.
func (e *Environment) Resolve(name string) (jsvalue.Value, error) {
	if v, ok := e.Lookup(name); ok {
		return v, nil
	}
	return jsvalue.Undefined, &ReferenceError{Name: name}
}

// Assign walks the scope chain looking for an existing binding of name and
// overwrites it in whichever environment owns it. It fails with a
// ReferenceError if no environment in the chain already binds name, the
// same contract Resolve uses for reads.
func (e *Environment) Assign(name string, v jsvalue.Value) error {
	for env := e; env != nil; env = env.Parent {
		if _, ok := env.vars[name]; ok {
			env.vars[name] = v
			return nil
		}
	}
	return &ReferenceError{Name: name}
}

// ReferenceError is returned by Resolve and Assign when an identifier is
// unbound anywhere in the scope chain.
type ReferenceError struct{ Name string }

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s is not defined", e.Name)
}

// ExecutionContext pairs a scope with the `this` binding active while
// executing inside it. FunctionName holds the name of the function whose
// body is running (empty at the top level).
type ExecutionContext struct {
	Env        *Environment
	This       jsvalue.Value
	FunctionName string
}

func NewContext(env *Environment, this jsvalue.Value) *ExecutionContext {
	return &ExecutionContext{Env: env, This: this}
}

// Child returns a new execution context sharing `this` but scoped to a
// fresh child environment. The interpreter uses it for a catch clause's
// binding; block statements run in the enclosing environment.
func (c *ExecutionContext) Child() *ExecutionContext {
	return &ExecutionContext{Env: New(c.Env), This: c.This, FunctionName: c.FunctionName}
}
