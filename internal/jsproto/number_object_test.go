package jsproto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

func TestNumberToStringWithRadix(t *testing.T) {
	in := interp.New()
	n := jsvalue.Num(255)
	fn, err := jsproto.Get(n, "toString")
	require.NoError(t, err)
	v, err := in.CallValue(fn, n, []jsvalue.Value{jsvalue.Num(16)})
	require.NoError(t, err)
	assert.Equal(t, "ff", v.Str())
}

func TestNumberToFixed(t *testing.T) {
	in := interp.New()
	n := jsvalue.Num(3.14159)
	fn, err := jsproto.Get(n, "toFixed")
	require.NoError(t, err)
	v, err := in.CallValue(fn, n, []jsvalue.Value{jsvalue.Num(2)})
	require.NoError(t, err)
	assert.Equal(t, "3.14", v.Str())
}

func TestObjectHasOwnPropertyOnRecord(t *testing.T) {
	in := interp.New()
	rec := jsproto.NewObjectRecord()
	rec.Set("a", jsvalue.Num(1))
	recVal := jsvalue.FromRecord(rec)
	fn, err := jsproto.Get(recVal, "hasOwnProperty")
	require.NoError(t, err)
	v, err := in.CallValue(fn, recVal, []jsvalue.Value{jsvalue.Str("a")})
	require.NoError(t, err)
	assert.True(t, v.Bool())

	v, err = in.CallValue(fn, recVal, []jsvalue.Value{jsvalue.Str("missing")})
	require.NoError(t, err)
	assert.False(t, v.Bool())
}

func TestObjectToStringReflectsClass(t *testing.T) {
	in := interp.New()
	rec := jsproto.NewObjectRecord()
	rec.Class = "Array"
	recVal := jsvalue.FromRecord(rec)
	fn, err := jsproto.Get(recVal, "toString")
	require.NoError(t, err)
	v, err := in.CallValue(fn, recVal, nil)
	require.NoError(t, err)
	assert.Equal(t, "[object Array]", v.Str())
}

func TestObjectIsPrototypeOfWalksChain(t *testing.T) {
	in := interp.New()
	proto := jsproto.NewObjectRecord()
	child := jsvalue.NewRecord(proto)
	protoVal := jsvalue.FromRecord(proto)
	childVal := jsvalue.FromRecord(child)

	fn, err := jsproto.Get(protoVal, "isPrototypeOf")
	require.NoError(t, err)
	v, err := in.CallValue(fn, protoVal, []jsvalue.Value{childVal})
	require.NoError(t, err)
	assert.True(t, v.Bool())
}
