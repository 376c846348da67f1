package sandbox_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
	"github.com/LOBYXLYX/javascript-interpreter/sandbox"
)

func runOK(t *testing.T, h *sandbox.Host, src string) jsvalue.Value {
	t.Helper()
	v, err := h.Run(src)
	require.NoError(t, err)
	return v
}

func TestHoistingAndClosureScenario(t *testing.T) {
	h := sandbox.New(sandbox.Config{Domain: "example.com"})
	v := runOK(t, h, `var r; function f(){ return function(){ return x; }; } var x = 7; r = f()(); r`)
	assert.Equal(t, float64(7), v.Num())
}

func TestConstructorAndPrototypeChainScenario(t *testing.T) {
	h := sandbox.New(sandbox.Config{Domain: "example.com"})
	v := runOK(t, h, `function P(a){ this.a = a; } P.prototype.m = function(){ return this.a + 1; }; var p = new P(41); [p.a, p.m(), p instanceof P]`)
	list := v.List()
	require.Equal(t, 3, list.Len())
	assert.Equal(t, float64(41), list.Get(0).Num())
	assert.Equal(t, float64(42), list.Get(1).Num())
	assert.True(t, list.Get(2).Bool())
}

func TestTryCatchFinallyScenario(t *testing.T) {
	h := sandbox.New(sandbox.Config{Domain: "example.com"})
	v := runOK(t, h, `var log = []; try { log.push('a'); throw 'boom'; } catch(e){ log.push(e); } finally { log.push('f'); } log.join(',')`)
	assert.Equal(t, "a,boom,f", v.Str())
}

func TestArrayMethodsScenario(t *testing.T) {
	h := sandbox.New(sandbox.Config{Domain: "example.com"})
	v := runOK(t, h, `[1,2,3,4].filter(function(x){return x%2;}).map(function(x){return x*10;}).reduce(function(a,b){return a+b;},0)`)
	assert.Equal(t, float64(40), v.Num())
}

func TestBitwise32BitSemanticsScenario(t *testing.T) {
	h := sandbox.New(sandbox.Config{Domain: "example.com"})
	v := runOK(t, h, `[1 << 31, (1 << 31) >> 0, (1 << 31) >>> 0, 0xffffffff ^ 0]`)
	list := v.List()
	require.Equal(t, 4, list.Len())
	assert.Equal(t, float64(-2147483648), list.Get(0).Num())
	assert.Equal(t, float64(-2147483648), list.Get(1).Num())
	assert.Equal(t, float64(2147483648), list.Get(2).Num())
	assert.Equal(t, float64(-1), list.Get(3).Num())
}

func TestFacadeProbesScenario(t *testing.T) {
	h := sandbox.New(sandbox.Config{Domain: "https://example.com/foo"})
	v := runOK(t, h, `[typeof window, window === globalThis, typeof navigator.userAgent, navigator.webdriver, location.protocol]`)
	list := v.List()
	require.Equal(t, 5, list.Len())
	assert.Equal(t, "object", list.Get(0).Str())
	assert.True(t, list.Get(1).Bool())
	assert.Equal(t, "string", list.Get(2).Str())
	assert.False(t, list.Get(3).Bool())
	assert.Equal(t, "https:", list.Get(4).Str())
}

func TestJSONRoundTrip(t *testing.T) {
	h := sandbox.New(sandbox.Config{Domain: "example.com"})
	v := runOK(t, h, `var x = {a: 1, b: [true, null, "s"], c: {d: 2.5}}; JSON.stringify(JSON.parse(JSON.stringify(x))) === JSON.stringify(x)`)
	assert.True(t, v.Bool())
}

func TestBase64RoundTrip(t *testing.T) {
	h := sandbox.New(sandbox.Config{Domain: "example.com"})
	v := runOK(t, h, `var s = "hello world"; atob(btoa(s)) === s`)
	assert.True(t, v.Bool())
}

func TestURIComponentRoundTrip(t *testing.T) {
	h := sandbox.New(sandbox.Config{Domain: "example.com"})
	v := runOK(t, h, `var s = "a b/c?d=e&f#g"; decodeURIComponent(encodeURIComponent(s)) === s`)
	assert.True(t, v.Bool())
}

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	h := sandbox.New(sandbox.Config{Domain: "example.com"})
	v := runOK(t, h, `var s = "café"; unescape(escape(s)) === s`)
	assert.True(t, v.Bool())
}

func TestTypedArrayUnsignedWraparound(t *testing.T) {
	h := sandbox.New(sandbox.Config{Domain: "example.com"})
	v := runOK(t, h, `var a = new Uint8Array(1); a[0] = 257; a[0]`)
	assert.Equal(t, float64(1), v.Num())
}

func TestSetTimeoutDrivenByPumpBlocking(t *testing.T) {
	h := sandbox.New(sandbox.Config{Domain: "example.com"})
	defer h.Stop()
	_, err := h.Run(`var fired = 0; setTimeout(function(){ fired = 1; }, 0);`)
	require.NoError(t, err)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		h.PumpBlocking(100 * time.Millisecond)
		v, err := h.Run(`fired`)
		require.NoError(t, err)
		if v.Num() == 1 {
			return
		}
	}
	t.Fatal("setTimeout callback never fired")
}

func TestDOMProbeAgainstSeededHTML(t *testing.T) {
	h := sandbox.New(sandbox.Config{
		Domain: "example.com",
		HTML:   `<body><div id="app"></div></body>`,
	})
	v := runOK(t, h, `document.getElementById("app").tagName`)
	assert.Equal(t, "DIV", v.Str())
}

func TestWindowAccessorsExposeInstalledFacade(t *testing.T) {
	h := sandbox.New(sandbox.Config{Domain: "example.com"})
	window := h.Window()
	_, ok := window.Get("navigator")
	assert.True(t, ok)
	assert.NotNil(t, h.Interpreter())
}
