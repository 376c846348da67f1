package jsproto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

func TestCallableCallBindsThisAndArgs(t *testing.T) {
	in := interp.New()
	greet := jsvalue.FromCallable(jsvalue.NewNative("greet", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		name, _ := this.Record().Get("name")
		return jsvalue.Str(jsvalue.ToString(name) + " says " + jsvalue.ToString(args[0])), nil
	}))
	receiver := jsproto.NewObjectRecord()
	receiver.Set("name", jsvalue.Str("alice"))

	fn, err := jsproto.Get(greet, "call")
	require.NoError(t, err)
	v, err := in.CallValue(fn, greet, []jsvalue.Value{jsvalue.FromRecord(receiver), jsvalue.Str("hi")})
	require.NoError(t, err)
	assert.Equal(t, "alice says hi", v.Str())
}

func TestCallableApplySpreadsArgsList(t *testing.T) {
	in := interp.New()
	sum := jsvalue.FromCallable(jsvalue.NewNative("sum", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		total := 0.0
		for _, a := range args {
			total += jsvalue.ToNumber(a)
		}
		return jsvalue.Num(total), nil
	}))
	fn, err := jsproto.Get(sum, "apply")
	require.NoError(t, err)
	argList := jsvalue.FromList(jsvalue.NewList([]jsvalue.Value{jsvalue.Num(1), jsvalue.Num(2), jsvalue.Num(3)}))
	v, err := in.CallValue(fn, sum, []jsvalue.Value{jsvalue.Undefined, argList})
	require.NoError(t, err)
	assert.Equal(t, float64(6), v.Num())
}

func TestCallableBindPresetsThisAndLeadingArgs(t *testing.T) {
	in := interp.New()
	add := jsvalue.FromCallable(jsvalue.NewNative("add", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Num(jsvalue.ToNumber(args[0]) + jsvalue.ToNumber(args[1])), nil
	}))
	bindFn, err := jsproto.Get(add, "bind")
	require.NoError(t, err)
	bound, err := in.CallValue(bindFn, add, []jsvalue.Value{jsvalue.Undefined, jsvalue.Num(10)})
	require.NoError(t, err)
	require.Equal(t, jsvalue.KindCallable, bound.Kind())

	v, err := in.CallValue(bound, jsvalue.Undefined, []jsvalue.Value{jsvalue.Num(5)})
	require.NoError(t, err)
	assert.Equal(t, float64(15), v.Num())
}
