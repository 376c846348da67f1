package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

func TestNavigatorReportsConfiguredFields(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installNavigator(in, window, Config{UserAgent: "test-agent", Language: "en-US", Platform: "TestOS"})

	nav, ok := window.Get("navigator")
	require.True(t, ok)
	ua, _ := nav.Record().Get("userAgent")
	assert.Equal(t, "test-agent", jsvalue.ToString(ua))
	webdriver, _ := nav.Record().Get("webdriver")
	assert.False(t, webdriver.Bool())
	platform, _ := nav.Record().Get("platform")
	assert.Equal(t, "TestOS", jsvalue.ToString(platform))
}

func TestScreenHasFixedResolution(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installScreen(in, window)
	screen, ok := window.Get("screen")
	require.True(t, ok)
	width, _ := screen.Record().Get("width")
	assert.Equal(t, float64(1920), width.Num())
}

func TestPerformanceNowIsMonotonicNonNegative(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installPerformance(in, window)
	perf, ok := window.Get("performance")
	require.True(t, ok)
	nowFn, ok := perf.Record().Get("now")
	require.True(t, ok)

	v1, err := in.CallValue(nowFn, perf, nil)
	require.NoError(t, err)
	v2, err := in.CallValue(nowFn, perf, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v2.Num(), v1.Num())
	assert.GreaterOrEqual(t, v1.Num(), float64(0))
}

func TestCryptoRandomUUIDShapeAndGetRandomValuesFills(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installCrypto(in, window)
	cr, ok := window.Get("crypto")
	require.True(t, ok)

	uuidFn, _ := cr.Record().Get("randomUUID")
	v, err := in.CallValue(uuidFn, cr, nil)
	require.NoError(t, err)
	assert.Len(t, v.Str(), 36)

	arr := jsvalue.NewByteArray(jsvalue.ElemU8, 8)
	grvFn, _ := cr.Record().Get("getRandomValues")
	_, err = in.CallValue(grvFn, cr, []jsvalue.Value{jsvalue.FromByteArray(arr)})
	require.NoError(t, err)

	var anyNonZero bool
	for _, e := range arr.Elems {
		if e != 0 {
			anyNonZero = true
		}
	}
	assert.True(t, anyNonZero)
}

func TestCryptoSubtleDigestSHA256(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installCrypto(in, window)
	cr, _ := window.Get("crypto")
	subtle, ok := cr.Record().Get("subtle")
	require.True(t, ok)
	digestFn, ok := subtle.Record().Get("digest")
	require.True(t, ok)

	v, err := in.CallValue(digestFn, subtle, []jsvalue.Value{jsvalue.Str("SHA-256"), jsvalue.Str("hello")})
	require.NoError(t, err)
	require.Equal(t, jsvalue.KindByteArray, v.Kind())
	assert.Equal(t, 32, v.ByteArray().Len())
}
