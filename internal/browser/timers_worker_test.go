package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
	"github.com/LOBYXLYX/javascript-interpreter/internal/timers"
)

func TestSetTimeoutFiresOnPump(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	sched := timers.NewScheduler()
	installTimersAndWorker(in, window, sched)
	defer sched.Stop()

	fired := false
	cb := jsvalue.NewNative("cb", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		fired = true
		return jsvalue.Undefined, nil
	})
	setTimeoutFn, ok := window.Get("setTimeout")
	require.True(t, ok)
	_, err := in.CallValue(setTimeoutFn, jsvalue.Undefined, []jsvalue.Value{jsvalue.FromCallable(cb), jsvalue.Num(0)})
	require.NoError(t, err)

	sched.PumpBlocking(500 * time.Millisecond)
	assert.True(t, fired)
}

func TestClearTimeoutPreventsFiring(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	sched := timers.NewScheduler()
	installTimersAndWorker(in, window, sched)
	defer sched.Stop()

	fired := false
	cb := jsvalue.NewNative("cb", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		fired = true
		return jsvalue.Undefined, nil
	})
	setTimeoutFn, _ := window.Get("setTimeout")
	clearTimeoutFn, _ := window.Get("clearTimeout")
	id, err := in.CallValue(setTimeoutFn, jsvalue.Undefined, []jsvalue.Value{jsvalue.FromCallable(cb), jsvalue.Num(20)})
	require.NoError(t, err)
	_, err = in.CallValue(clearTimeoutFn, jsvalue.Undefined, []jsvalue.Value{id})
	require.NoError(t, err)

	sched.PumpBlocking(100 * time.Millisecond)
	assert.False(t, fired)
}

func TestWorkerRoundTripsMessages(t *testing.T) {
	in := interp.New()
	window := newTestWindow()
	sched := timers.NewScheduler()
	installTimersAndWorker(in, window, sched)
	defer sched.Stop()

	workerCtor, ok := window.Get("Worker")
	require.True(t, ok)
	src := `onmessage = function (e) { postMessage(e.data * 2); };`
	workerVal, err := in.CallValue(workerCtor, jsvalue.Undefined, []jsvalue.Value{jsvalue.Str(src)})
	require.NoError(t, err)

	var received float64
	onmessage := jsvalue.NewNative("onmessage", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		data, _ := args[0].Record().Get("data")
		received = jsvalue.ToNumber(data)
		return jsvalue.Undefined, nil
	})
	workerVal.Record().Set("onmessage", jsvalue.FromCallable(onmessage))

	postMessage, _ := workerVal.Record().Get("postMessage")
	_, err = in.CallValue(postMessage, workerVal, []jsvalue.Value{jsvalue.Num(21)})
	require.NoError(t, err)

	deadline := time.Now().Add(2 * time.Second)
	for received == 0 && time.Now().Before(deadline) {
		sched.PumpBlocking(100 * time.Millisecond)
	}
	assert.Equal(t, float64(42), received)
}
