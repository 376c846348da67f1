package jsproto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

func TestRegexTestMatchesAndFlags(t *testing.T) {
	in := interp.New()
	re, err := jsproto.NewRegexValue(`\d+`, "i")
	require.NoError(t, err)

	fn, err := jsproto.Get(re, "test")
	require.NoError(t, err)
	v, err := in.CallValue(fn, re, []jsvalue.Value{jsvalue.Str("abc123")})
	require.NoError(t, err)
	assert.True(t, v.Bool())

	ignoreCase, err := jsproto.Get(re, "ignoreCase")
	require.NoError(t, err)
	assert.True(t, ignoreCase.Bool())

	global, err := jsproto.Get(re, "global")
	require.NoError(t, err)
	assert.False(t, global.Bool())
}

func TestRegexExecReturnsMatchAndIndex(t *testing.T) {
	in := interp.New()
	re, err := jsproto.NewRegexValue(`b(c)`, "")
	require.NoError(t, err)

	fn, err := jsproto.Get(re, "exec")
	require.NoError(t, err)
	v, err := in.CallValue(fn, re, []jsvalue.Value{jsvalue.Str("abcd")})
	require.NoError(t, err)
	require.Equal(t, jsvalue.KindList, v.Kind())
	assert.Equal(t, "bc", v.List().Get(0).Str())
	assert.Equal(t, "c", v.List().Get(1).Str())

	idx, _, ok := jsproto.MatchInfo(v.List())
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestRegexInvalidSourceErrors(t *testing.T) {
	_, err := jsproto.NewRegexValue(`(unterminated`, "")
	assert.Error(t, err)
}
