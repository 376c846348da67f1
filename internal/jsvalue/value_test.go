package jsvalue_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

func TestToNumberCoercions(t *testing.T) {
	assert.True(t, math.IsNaN(jsvalue.ToNumber(jsvalue.Undefined)))
	assert.Equal(t, float64(0), jsvalue.ToNumber(jsvalue.Null))
	assert.Equal(t, float64(1), jsvalue.ToNumber(jsvalue.Bool(true)))
	assert.Equal(t, float64(42), jsvalue.ToNumber(jsvalue.Str("42")))
}

func TestToBooleanFalsy(t *testing.T) {
	falsy := []jsvalue.Value{
		jsvalue.Undefined,
		jsvalue.Null,
		jsvalue.Bool(false),
		jsvalue.Num(0),
		jsvalue.Str(""),
	}
	for _, v := range falsy {
		assert.False(t, jsvalue.ToBoolean(v), "%v should be falsy", v)
	}
	truthy := []jsvalue.Value{
		jsvalue.Bool(true),
		jsvalue.Num(1),
		jsvalue.Num(-1),
		jsvalue.Str("0"),
		jsvalue.Str("false"),
	}
	for _, v := range truthy {
		assert.True(t, jsvalue.ToBoolean(v), "%v should be truthy", v)
	}
}

func TestToInt32Wraps(t *testing.T) {
	assert.Equal(t, int32(-2147483648), jsvalue.ToInt32(jsvalue.Num(2147483648)))
	assert.Equal(t, int32(0), jsvalue.ToInt32(jsvalue.Num(4294967296)))
	assert.Equal(t, int32(-1), jsvalue.ToInt32(jsvalue.Num(4294967295)))
}

func TestToUint32Wraps(t *testing.T) {
	assert.Equal(t, uint32(4294967295), jsvalue.ToUint32(jsvalue.Num(-1)))
}

func TestNumberToStringSpecialCases(t *testing.T) {
	assert.Equal(t, "NaN", jsvalue.NumberToString(math.NaN()))
	assert.Equal(t, "Infinity", jsvalue.NumberToString(math.Inf(1)))
	assert.Equal(t, "-Infinity", jsvalue.NumberToString(math.Inf(-1)))
	assert.Equal(t, "0", jsvalue.NumberToString(0))
	assert.Equal(t, "-0", jsvalue.NumberToString(math.Copysign(0, -1)))
}

func TestSameValueZeroTreatsNaNAsEqualToItself(t *testing.T) {
	nan := jsvalue.Num(math.NaN())
	assert.True(t, jsvalue.SameValueZero(nan, nan))
	assert.False(t, jsvalue.StrictEquals(nan, nan))
}

func TestStrictEqualsAcrossKinds(t *testing.T) {
	assert.False(t, jsvalue.StrictEquals(jsvalue.Num(1), jsvalue.Str("1")))
	assert.True(t, jsvalue.StrictEquals(jsvalue.Str("a"), jsvalue.Str("a")))
	assert.True(t, jsvalue.StrictEquals(jsvalue.Undefined, jsvalue.Undefined))
	assert.False(t, jsvalue.StrictEquals(jsvalue.Undefined, jsvalue.Null))
}

func TestRecordPreservesInsertionOrder(t *testing.T) {
	r := jsvalue.NewRecord(nil)
	r.Set("z", jsvalue.Num(1))
	r.Set("a", jsvalue.Num(2))
	r.Set("m", jsvalue.Num(3))
	assert.Equal(t, []string{"z", "a", "m"}, r.Keys())
}

func TestRecordDeleteRemovesKey(t *testing.T) {
	r := jsvalue.NewRecord(nil)
	r.Set("a", jsvalue.Num(1))
	assert.True(t, r.Delete("a"))
	_, ok := r.Get("a")
	assert.False(t, ok)
}

func TestListGrowsWithUndefinedHoles(t *testing.T) {
	l := jsvalue.NewList(nil)
	l.Set(2, jsvalue.Str("x"))
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, jsvalue.KindUndefined, l.Get(0).Kind())
	assert.Equal(t, jsvalue.KindUndefined, l.Get(1).Kind())
	assert.Equal(t, "x", l.Get(2).Str())
}
