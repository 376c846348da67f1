package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

func TestInstallChromeShape(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installChrome(in, window)

	chromeVal, ok := window.Get("chrome")
	require.True(t, ok)
	chrome := chromeVal.Record()

	_, ok = chrome.Get("app")
	assert.True(t, ok)
	_, ok = chrome.Get("runtime")
	assert.True(t, ok)

	csi, ok := chrome.Get("csi")
	require.True(t, ok)
	v, err := in.CallValue(csi, chromeVal, nil)
	require.NoError(t, err)
	assert.Equal(t, jsvalue.KindRecord, v.Kind())

	loadTimes, ok := chrome.Get("loadTimes")
	require.True(t, ok)
	v, err = in.CallValue(loadTimes, chromeVal, nil)
	require.NoError(t, err)
	navType, _ := v.Record().Get("navigationType")
	assert.Equal(t, "Other", jsvalue.ToString(navType))
}

func TestEventHandlerSlotsPresentAndNull(t *testing.T) {
	window := newTestWindow()
	installEventHandlerSlots(window)
	for _, name := range []string{"onload", "onclick", "onmessage", "onvisibilitychange"} {
		v, ok := window.Get(name)
		require.True(t, ok, "missing %s", name)
		assert.Equal(t, jsvalue.KindNull, v.Kind())
	}
}
