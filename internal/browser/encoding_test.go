package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

func installedFn(t *testing.T, window *jsvalue.Record, name string) (jsvalue.Value, bool) {
	t.Helper()
	return window.Get(name)
}

func TestAtobBtoaRoundTrip(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installEncoding(in, window)

	btoa, ok := installedFn(t, window, "btoa")
	require.True(t, ok)
	encoded, err := in.CallValue(btoa, jsvalue.Undefined, []jsvalue.Value{jsvalue.Str("hello world")})
	require.NoError(t, err)

	atob, ok := installedFn(t, window, "atob")
	require.True(t, ok)
	decoded, err := in.CallValue(atob, jsvalue.Undefined, []jsvalue.Value{encoded})
	require.NoError(t, err)
	assert.Equal(t, "hello world", decoded.Str())
}

func TestBlobTextReturnsConcatenatedParts(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installEncoding(in, window)

	blobCtor, ok := installedFn(t, window, "Blob")
	require.True(t, ok)
	parts := jsvalue.FromList(jsvalue.NewList([]jsvalue.Value{jsvalue.Str("foo"), jsvalue.Str("bar")}))
	blob, err := in.CallValue(blobCtor, jsvalue.Undefined, []jsvalue.Value{parts})
	require.NoError(t, err)

	textFn, ok := blob.Record().Get("text")
	require.True(t, ok)
	v, err := in.CallValue(textFn, blob, nil)
	require.NoError(t, err)
	assert.Equal(t, "foobar", v.Str())
}

func TestTextEncoderDecoderRoundTrip(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installEncoding(in, window)

	encCtor, _ := installedFn(t, window, "TextEncoder")
	encoder, err := in.CallValue(encCtor, jsvalue.Undefined, nil)
	require.NoError(t, err)
	encodeFn, _ := encoder.Record().Get("encode")
	encoded, err := in.CallValue(encodeFn, encoder, []jsvalue.Value{jsvalue.Str("héllo")})
	require.NoError(t, err)
	require.Equal(t, jsvalue.KindByteArray, encoded.Kind())

	decCtor, _ := installedFn(t, window, "TextDecoder")
	decoder, err := in.CallValue(decCtor, jsvalue.Undefined, nil)
	require.NoError(t, err)
	decodeFn, _ := decoder.Record().Get("decode")
	decoded, err := in.CallValue(decodeFn, decoder, []jsvalue.Value{encoded})
	require.NoError(t, err)
	assert.Equal(t, "héllo", decoded.Str())
}
