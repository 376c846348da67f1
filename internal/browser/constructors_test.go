package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

func TestObjectKeysValues(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installConstructors(in, window)

	objectCtor, ok := window.Get("Object")
	require.True(t, ok)
	rec, err := in.CallValue(objectCtor, jsvalue.Undefined, nil)
	require.NoError(t, err)
	rec.Record().Set("a", jsvalue.Num(1))
	rec.Record().Set("b", jsvalue.Num(2))

	keysFn, ok := objectCtor.Callable().Own.Get("keys")
	require.True(t, ok)
	keys, err := in.CallValue(keysFn, jsvalue.Undefined, []jsvalue.Value{rec})
	require.NoError(t, err)
	require.Equal(t, 2, keys.List().Len())
	assert.Equal(t, "a", keys.List().Get(0).Str())
}

func TestRegExpConstructorFromSourceAndFlags(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installConstructors(in, window)

	ctor, ok := window.Get("RegExp")
	require.True(t, ok)
	v, err := in.CallValue(ctor, jsvalue.Undefined, []jsvalue.Value{jsvalue.Str("a+"), jsvalue.Str("i")})
	require.NoError(t, err)
	require.Equal(t, jsvalue.KindRegex, v.Kind())
	assert.Equal(t, "a+", v.Regex().Source)
	assert.Equal(t, "i", v.Regex().Flags)
}

func TestDateGetTimeAndToISOString(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installConstructors(in, window)

	ctor, ok := window.Get("Date")
	require.True(t, ok)
	v, err := in.CallValue(ctor, jsvalue.Undefined, []jsvalue.Value{jsvalue.Num(0)})
	require.NoError(t, err)

	getTimeFn, _ := v.Record().Get("getTime")
	ms, err := in.CallValue(getTimeFn, v, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(0), ms.Num())

	isoFn, _ := v.Record().Get("toISOString")
	iso, err := in.CallValue(isoFn, v, nil)
	require.NoError(t, err)
	assert.Equal(t, "1970-01-01T00:00:00.000Z", iso.Str())
}

func TestErrorConstructorBuildsThrowableWithMessage(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installConstructors(in, window)

	ctor, ok := window.Get("TypeError")
	require.True(t, ok)
	v, err := in.CallValue(ctor, jsvalue.Undefined, []jsvalue.Value{jsvalue.Str("bad thing")})
	require.NoError(t, err)
	msg, _ := v.Record().Get("message")
	assert.Equal(t, "bad thing", jsvalue.ToString(msg))
}
