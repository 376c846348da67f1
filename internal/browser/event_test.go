package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

func TestNewEventValueDefaults(t *testing.T) {
	ev := newEventValue("click", true, true)
	typ, _ := ev.Record().Get("type")
	assert.Equal(t, "click", jsvalue.ToString(typ))
	prevented, _ := ev.Record().Get("defaultPrevented")
	assert.False(t, prevented.Bool())
}

func TestPreventDefaultOnlyFlipsWhenCancelable(t *testing.T) {
	in := interp.New()
	ev := newEventValue("submit", true, false)
	preventFn, _ := ev.Record().Get("preventDefault")
	_, err := in.CallValue(preventFn, ev, nil)
	require.NoError(t, err)
	prevented, _ := ev.Record().Get("defaultPrevented")
	assert.False(t, prevented.Bool())

	ev2 := newEventValue("submit", true, true)
	preventFn2, _ := ev2.Record().Get("preventDefault")
	_, err = in.CallValue(preventFn2, ev2, nil)
	require.NoError(t, err)
	prevented2, _ := ev2.Record().Get("defaultPrevented")
	assert.True(t, prevented2.Bool())
}

func TestCustomEventCarriesDetail(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installEventConstructors(in, window)

	ctor, ok := window.Get("CustomEvent")
	require.True(t, ok)
	init := jsproto.NewObjectRecord()
	init.Set("detail", jsvalue.Str("payload"))
	v, err := in.CallValue(ctor, jsvalue.Undefined, []jsvalue.Value{jsvalue.Str("custom"), jsvalue.FromRecord(init)})
	require.NoError(t, err)
	detail, _ := v.Record().Get("detail")
	assert.Equal(t, "payload", jsvalue.ToString(detail))
}

func TestMouseEventAppliesCoordInit(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	installEventConstructors(in, window)

	ctor, ok := window.Get("MouseEvent")
	require.True(t, ok)
	init := jsproto.NewObjectRecord()
	init.Set("clientX", jsvalue.Num(42))
	v, err := in.CallValue(ctor, jsvalue.Undefined, []jsvalue.Value{jsvalue.Str("click"), jsvalue.FromRecord(init)})
	require.NoError(t, err)
	clientX, _ := v.Record().Get("clientX")
	assert.Equal(t, float64(42), clientX.Num())
}
