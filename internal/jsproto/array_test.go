package jsproto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

func listOf(nums ...float64) jsvalue.Value {
	items := make([]jsvalue.Value, len(nums))
	for i, n := range nums {
		items[i] = jsvalue.Num(n)
	}
	return jsvalue.FromList(jsvalue.NewList(items))
}

func callArrayMethod(t *testing.T, in *interp.Interpreter, arr jsvalue.Value, name string, args ...jsvalue.Value) jsvalue.Value {
	t.Helper()
	fn, err := jsproto.Get(arr, name)
	require.NoError(t, err)
	require.Equal(t, jsvalue.KindCallable, fn.Kind(), "missing array method %s", name)
	v, err := in.CallValue(fn, arr, args)
	require.NoError(t, err)
	return v
}

func TestArrayPushPopMutateLength(t *testing.T) {
	in := interp.New()
	arr := listOf(1, 2, 3)
	callArrayMethod(t, in, arr, "push", jsvalue.Num(4))
	assert.Equal(t, 4, arr.List().Len())

	popped := callArrayMethod(t, in, arr, "pop")
	assert.Equal(t, float64(4), popped.Num())
	assert.Equal(t, 3, arr.List().Len())
}

func TestArrayJoin(t *testing.T) {
	in := interp.New()
	arr := listOf(1, 2, 3)
	joined := callArrayMethod(t, in, arr, "join", jsvalue.Str("-"))
	assert.Equal(t, "1-2-3", joined.Str())
}

func TestArrayIndexOfAndIncludes(t *testing.T) {
	in := interp.New()
	arr := listOf(10, 20, 30)
	assert.Equal(t, float64(1), callArrayMethod(t, in, arr, "indexOf", jsvalue.Num(20)).Num())
	assert.Equal(t, float64(-1), callArrayMethod(t, in, arr, "indexOf", jsvalue.Num(99)).Num())
	assert.True(t, callArrayMethod(t, in, arr, "includes", jsvalue.Num(30)).Bool())
}

func TestArrayMapFilterReduce(t *testing.T) {
	in := interp.New()
	arr := listOf(1, 2, 3, 4)

	double := jsvalue.NewNative("double", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Num(args[0].Num() * 2), nil
	})
	mapped := callArrayMethod(t, in, arr, "map", jsvalue.FromCallable(double))
	require.Equal(t, 4, mapped.List().Len())
	assert.Equal(t, float64(2), mapped.List().Get(0).Num())
	assert.Equal(t, float64(8), mapped.List().Get(3).Num())

	isEven := jsvalue.NewNative("isEven", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Bool(int(args[0].Num())%2 == 0), nil
	})
	filtered := callArrayMethod(t, in, arr, "filter", jsvalue.FromCallable(isEven))
	assert.Equal(t, 2, filtered.List().Len())

	sum := jsvalue.NewNative("sum", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Num(args[0].Num() + args[1].Num()), nil
	})
	reduced := callArrayMethod(t, in, arr, "reduce", jsvalue.FromCallable(sum), jsvalue.Num(0))
	assert.Equal(t, float64(10), reduced.Num())
}

func TestArrayFlatDefaultDepth(t *testing.T) {
	in := interp.New()
	nested := jsvalue.FromList(jsvalue.NewList([]jsvalue.Value{
		listOf(1, 2),
		listOf(3),
		jsvalue.Num(4),
	}))
	flat := callArrayMethod(t, in, nested, "flat")
	require.Equal(t, 4, flat.List().Len())
	assert.Equal(t, float64(1), flat.List().Get(0).Num())
	assert.Equal(t, float64(4), flat.List().Get(3).Num())
}

func TestArrayFillOverwritesRangeInPlace(t *testing.T) {
	in := interp.New()
	arr := listOf(1, 2, 3, 4, 5)
	result := callArrayMethod(t, in, arr, "fill", jsvalue.Num(0), jsvalue.Num(1), jsvalue.Num(3))
	assert.Same(t, arr.List(), result.List())
	assert.Equal(t, []float64{1, 0, 0, 4, 5}, toFloats(arr.List()))
}

func TestArrayToStringIsCommaJoined(t *testing.T) {
	in := interp.New()
	arr := listOf(1, 2, 3)
	assert.Equal(t, "1,2,3", callArrayMethod(t, in, arr, "toString").Str())
}

func toFloats(l *jsvalue.List) []float64 {
	out := make([]float64, l.Len())
	for i := 0; i < l.Len(); i++ {
		out[i] = l.Get(i).Num()
	}
	return out
}

func TestArraySliceDoesNotMutateOriginal(t *testing.T) {
	in := interp.New()
	arr := listOf(1, 2, 3, 4, 5)
	sliced := callArrayMethod(t, in, arr, "slice", jsvalue.Num(1), jsvalue.Num(3))
	assert.Equal(t, 2, sliced.List().Len())
	assert.Equal(t, 5, arr.List().Len())
}
