package jsenv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LOBYXLYX/javascript-interpreter/internal/jsenv"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

func TestDefineIsOwnOnly(t *testing.T) {
	parent := jsenv.New(nil)
	child := jsenv.New(parent)
	child.Define("x", jsvalue.Num(1))
	assert.True(t, child.HasOwn("x"))
	assert.False(t, parent.HasOwn("x"))
}

func TestLookupWalksParentChain(t *testing.T) {
	parent := jsenv.New(nil)
	parent.Define("x", jsvalue.Num(42))
	child := jsenv.New(parent)
	v, ok := child.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, float64(42), v.Num())
}

func TestLookupMissingReturnsFalseWithoutError(t *testing.T) {
	env := jsenv.New(nil)
	_, ok := env.Lookup("missing")
	assert.False(t, ok)
}

func TestResolveMissingReturnsReferenceError(t *testing.T) {
	env := jsenv.New(nil)
	_, err := env.Resolve("missing")
	require.Error(t, err)
	var refErr *jsenv.ReferenceError
	assert.ErrorAs(t, err, &refErr)
}

func TestAssignOverwritesDefiningEnvironment(t *testing.T) {
	global := jsenv.New(nil)
	global.Define("x", jsvalue.Num(1))
	inner := jsenv.New(global)
	inner.Define("x", jsvalue.Num(2))

	require.NoError(t, inner.Assign("x", jsvalue.Num(99)))
	v, _ := inner.Lookup("x")
	assert.Equal(t, float64(99), v.Num())

	outerV, _ := global.Lookup("x")
	assert.Equal(t, float64(1), outerV.Num(), "assign should update the innermost shadowing binding, not the global one")
}

func TestAssignToUndeclaredNameFailsWithReferenceError(t *testing.T) {
	global := jsenv.New(nil)
	inner := jsenv.New(jsenv.New(global))

	err := inner.Assign("y", jsvalue.Num(7))
	require.Error(t, err)
	var refErr *jsenv.ReferenceError
	assert.ErrorAs(t, err, &refErr)
	assert.False(t, inner.HasOwn("y"))
	_, ok := global.Lookup("y")
	assert.False(t, ok)
}

func TestChildSharesThisWithFreshEnvironment(t *testing.T) {
	this := jsvalue.Str("receiver")
	ctx := jsenv.NewContext(jsenv.New(nil), this)
	ctx.Env.Define("x", jsvalue.Num(1))

	child := ctx.Child()
	assert.True(t, jsvalue.StrictEquals(child.This, this))
	_, ok := child.Env.Lookup("x")
	assert.True(t, ok)
	assert.False(t, child.Env.HasOwn("x"))
}
