package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

func callGlobal(t *testing.T, in *interp.Interpreter, window *jsvalue.Record, name string, args ...jsvalue.Value) jsvalue.Value {
	t.Helper()
	fn, ok := window.Get(name)
	require.True(t, ok, "missing global %s", name)
	v, err := in.CallValue(fn, jsvalue.Undefined, args)
	require.NoError(t, err)
	return v
}

func TestParseIntRadixAndPrefix(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installGlobals(in, window)
	assert.Equal(t, float64(255), callGlobal(t, in, window, "parseInt", jsvalue.Str("0xff")).Num())
	assert.Equal(t, float64(10), callGlobal(t, in, window, "parseInt", jsvalue.Str("1010"), jsvalue.Num(2)).Num())
}

func TestParseFloatStopsAtNonNumeric(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installGlobals(in, window)
	assert.Equal(t, 3.14, callGlobal(t, in, window, "parseFloat", jsvalue.Str("3.14abc")).Num())
}

func TestIsNaNAndIsFinite(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installGlobals(in, window)
	assert.True(t, callGlobal(t, in, window, "isNaN", jsvalue.Str("x")).Bool())
	assert.True(t, callGlobal(t, in, window, "isFinite", jsvalue.Num(1)).Bool())
	assert.False(t, callGlobal(t, in, window, "isFinite", jsvalue.Str("x")).Bool())
}

func TestURIComponentEncodeDecodeRoundTrip(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installURIFuncs(in, window)
	encoded := callGlobal(t, in, window, "encodeURIComponent", jsvalue.Str("a b/c?d"))
	decoded := callGlobal(t, in, window, "decodeURIComponent", encoded)
	assert.Equal(t, "a b/c?d", decoded.Str())
}

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installURIFuncs(in, window)
	escaped := callGlobal(t, in, window, "escape", jsvalue.Str("hello world"))
	unescaped := callGlobal(t, in, window, "unescape", escaped)
	assert.Equal(t, "hello world", unescaped.Str())
}

func TestMathConstantsAndFunctions(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installMath(in, window)
	mathVal, ok := window.Get("Math")
	require.True(t, ok)
	absFn, ok := mathVal.Record().Get("abs")
	require.True(t, ok)
	v, err := in.CallValue(absFn, mathVal, []jsvalue.Value{jsvalue.Num(-5)})
	require.NoError(t, err)
	assert.Equal(t, float64(5), v.Num())
}
