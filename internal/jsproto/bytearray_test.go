package jsproto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

func TestByteArrayIndexedGetSet(t *testing.T) {
	arr := jsvalue.NewByteArray(jsvalue.ElemU8, 4)
	val := jsvalue.FromByteArray(arr)
	require.NoError(t, jsproto.Set(val, "0", jsvalue.Num(300)))
	v, err := jsproto.Get(val, "0")
	require.NoError(t, err)
	assert.Equal(t, float64(300-256), v.Num())
}

func TestByteArrayLengthAndByteLength(t *testing.T) {
	arr := jsvalue.NewByteArray(jsvalue.ElemI32, 4)
	val := jsvalue.FromByteArray(arr)
	length, err := jsproto.Get(val, "length")
	require.NoError(t, err)
	assert.Equal(t, float64(4), length.Num())

	byteLength, err := jsproto.Get(val, "byteLength")
	require.NoError(t, err)
	assert.Equal(t, float64(16), byteLength.Num())
}

func TestByteArrayFill(t *testing.T) {
	in := interp.New()
	arr := jsvalue.NewByteArray(jsvalue.ElemU8, 3)
	val := jsvalue.FromByteArray(arr)
	fn, err := jsproto.Get(val, "fill")
	require.NoError(t, err)
	_, err = in.CallValue(fn, val, []jsvalue.Value{jsvalue.Num(7)})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.Equal(t, float64(7), arr.Elems[i])
	}
}

func TestByteArraySlice(t *testing.T) {
	in := interp.New()
	arr := jsvalue.NewByteArray(jsvalue.ElemU8, 4)
	for i := range arr.Elems {
		arr.Elems[i] = float64(i)
	}
	val := jsvalue.FromByteArray(arr)
	fn, err := jsproto.Get(val, "slice")
	require.NoError(t, err)
	v, err := in.CallValue(fn, val, []jsvalue.Value{jsvalue.Num(1), jsvalue.Num(3)})
	require.NoError(t, err)
	sliced := v.ByteArray()
	require.Equal(t, 2, sliced.Len())
	assert.Equal(t, float64(1), sliced.Elems[0])
	assert.Equal(t, float64(2), sliced.Elems[1])
}
