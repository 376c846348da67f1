package jsproto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

func callStringMethod(t *testing.T, in *interp.Interpreter, s string, name string, args ...jsvalue.Value) jsvalue.Value {
	t.Helper()
	str := jsvalue.Str(s)
	fn, err := jsproto.Get(str, name)
	require.NoError(t, err)
	require.Equal(t, jsvalue.KindCallable, fn.Kind(), "missing string method %s", name)
	v, err := in.CallValue(fn, str, args)
	require.NoError(t, err)
	return v
}

func TestStringCaseAndTrim(t *testing.T) {
	in := interp.New()
	assert.Equal(t, "HELLO", callStringMethod(t, in, "hello", "toUpperCase").Str())
	assert.Equal(t, "hello", callStringMethod(t, in, "HELLO", "toLowerCase").Str())
	assert.Equal(t, "hi", callStringMethod(t, in, "  hi  ", "trim").Str())
}

func TestStringSliceAndSubstring(t *testing.T) {
	in := interp.New()
	assert.Equal(t, "ell", callStringMethod(t, in, "hello", "slice", jsvalue.Num(1), jsvalue.Num(4)).Str())
	assert.Equal(t, "ell", callStringMethod(t, in, "hello", "substring", jsvalue.Num(1), jsvalue.Num(4)).Str())
}

func TestStringIndexOfAndIncludes(t *testing.T) {
	in := interp.New()
	assert.Equal(t, float64(2), callStringMethod(t, in, "hello", "indexOf", jsvalue.Str("ll")).Num())
	assert.True(t, callStringMethod(t, in, "hello", "includes", jsvalue.Str("ell")).Bool())
	assert.True(t, callStringMethod(t, in, "hello", "startsWith", jsvalue.Str("he")).Bool())
	assert.True(t, callStringMethod(t, in, "hello", "endsWith", jsvalue.Str("lo")).Bool())
}

func TestStringIncludesHonorsStartArgument(t *testing.T) {
	in := interp.New()
	assert.True(t, callStringMethod(t, in, "abcabc", "includes", jsvalue.Str("a"), jsvalue.Num(2)).Bool())
	assert.False(t, callStringMethod(t, in, "abcabc", "includes", jsvalue.Str("a"), jsvalue.Num(4)).Bool())
}

func TestStringSearchReturnsFirstIndexOrNegativeOne(t *testing.T) {
	in := interp.New()
	re, err := jsproto.NewRegexValue("l+", "")
	require.NoError(t, err)
	assert.Equal(t, float64(2), callStringMethod(t, in, "hello", "search", re).Num())
	assert.Equal(t, float64(-1), callStringMethod(t, in, "hello", "search", jsvalue.Str("z")).Num())
}

func TestStringMatchAllReturnsEveryMatchObject(t *testing.T) {
	in := interp.New()
	re, err := jsproto.NewRegexValue("a.", "g")
	require.NoError(t, err)
	all := callStringMethod(t, in, "a1 a2 a3", "matchAll", re)
	require.Equal(t, 3, all.List().Len())
	assert.Equal(t, "a1", all.List().Get(0).List().Get(0).Str())
	assert.Equal(t, "a2", all.List().Get(1).List().Get(0).Str())
	assert.Equal(t, "a3", all.List().Get(2).List().Get(0).Str())
}

func TestStringSplitOnSeparator(t *testing.T) {
	in := interp.New()
	parts := callStringMethod(t, in, "a,b,c", "split", jsvalue.Str(","))
	require.Equal(t, 3, parts.List().Len())
	assert.Equal(t, "b", parts.List().Get(1).Str())
}

func TestStringSplitEmptySeparatorYieldsCodePoints(t *testing.T) {
	in := interp.New()
	parts := callStringMethod(t, in, "abc", "split", jsvalue.Str(""))
	require.Equal(t, 3, parts.List().Len())
	assert.Equal(t, "b", parts.List().Get(1).Str())
}

func TestStringPadStartAndEnd(t *testing.T) {
	in := interp.New()
	assert.Equal(t, "003", callStringMethod(t, in, "3", "padStart", jsvalue.Num(3), jsvalue.Str("0")).Str())
	assert.Equal(t, "3xx", callStringMethod(t, in, "3", "padEnd", jsvalue.Num(3), jsvalue.Str("x")).Str())
}

func TestStringRepeat(t *testing.T) {
	in := interp.New()
	assert.Equal(t, "abcabcabc", callStringMethod(t, in, "abc", "repeat", jsvalue.Num(3)).Str())
}

func TestStringAtNegativeIndex(t *testing.T) {
	in := interp.New()
	assert.Equal(t, "o", callStringMethod(t, in, "hello", "at", jsvalue.Num(-1)).Str())
}
