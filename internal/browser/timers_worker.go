package browser

import (
	"time"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsfrontend"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
	"github.com/LOBYXLYX/javascript-interpreter/internal/timers"
)

// installTimersAndWorker wires setTimeout/setInterval/clearTimeout/
// clearInterval/requestIdleCallback/cancelIdleCallback onto sched (spec
// §4.E) and the Worker constructor (spec §4.E "A Worker is constructed
// from a Blob ... or a file path"). There is no real filesystem access
// here (spec §1 "file loading" is an external collaborator) — a string
// argument is taken as the worker's source text directly rather than a
// path read from disk, which is the one deliberate deviation from a
// literal reading of "or a file path".
func installTimersAndWorker(in *interp.Interpreter, window *jsvalue.Record, sched *timers.Scheduler) {
	defineBoth(in, window, "setTimeout", native("setTimeout", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		fn := arg0(args)
		delay := time.Duration(jsvalue.ToNumber(arg1(args))) * time.Millisecond
		extra := extraArgs(args)
		id := sched.SetTimeout(delay, func() { in.CallValue(fn, jsvalue.Undefined, extra) })
		return jsvalue.Num(float64(id)), nil
	}))
	defineBoth(in, window, "setInterval", native("setInterval", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		fn := arg0(args)
		delay := time.Duration(jsvalue.ToNumber(arg1(args))) * time.Millisecond
		extra := extraArgs(args)
		id := sched.SetInterval(delay, func() { in.CallValue(fn, jsvalue.Undefined, extra) })
		return jsvalue.Num(float64(id)), nil
	}))
	defineBoth(in, window, "clearTimeout", native("clearTimeout", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		sched.Clear(int64(jsvalue.ToNumber(arg0(args))))
		return jsvalue.Undefined, nil
	}))
	defineBoth(in, window, "clearInterval", native("clearInterval", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		sched.Clear(int64(jsvalue.ToNumber(arg0(args))))
		return jsvalue.Undefined, nil
	}))
	defineBoth(in, window, "requestIdleCallback", native("requestIdleCallback", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		fn := arg0(args)
		start := time.Now()
		id := sched.RequestIdleCallback(func() {
			deadline := idleDeadline(start)
			in.CallValue(fn, jsvalue.Undefined, []jsvalue.Value{deadline})
		})
		return jsvalue.Num(float64(id)), nil
	}))
	defineBoth(in, window, "cancelIdleCallback", native("cancelIdleCallback", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		sched.Clear(int64(jsvalue.ToNumber(arg0(args))))
		return jsvalue.Undefined, nil
	}))

	installWorker(in, window, sched)
}

func extraArgs(args []jsvalue.Value) []jsvalue.Value {
	if len(args) <= 2 {
		return nil
	}
	return append([]jsvalue.Value{}, args[2:]...)
}

// idleDeadline builds the {didTimeout, timeRemaining()} shape spec §4.E
// requires, with a 50ms budget decaying from when the callback fired.
func idleDeadline(fired time.Time) jsvalue.Value {
	rec := jsproto.NewObjectRecord()
	rec.Class = "IdleDeadline"
	rec.Set("didTimeout", jsvalue.Bool(false))
	rec.Set("timeRemaining", native("timeRemaining", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		elapsed := float64(time.Since(fired)) / float64(time.Millisecond)
		remaining := 50 - elapsed
		if remaining < 0 {
			remaining = 0
		}
		return jsvalue.Num(remaining), nil
	}))
	return jsvalue.FromRecord(rec)
}

// installWorker wires the Worker constructor. Each worker gets its own
// interpreter realm (internal/timers.Worker) on its own goroutine; its
// outbound messages are pumped back through sched.SetTimeout(0, ...) so
// the host-side onmessage/onerror handlers only ever run serialized with
// the rest of this realm's script execution, never directly on the
// worker's goroutine (spec §5 "timer callbacks re-enter the interpreter,
// which must serialize re-entry").
func installWorker(in *interp.Interpreter, window *jsvalue.Record, sched *timers.Scheduler) {
	defineBoth(in, window, "Worker", jsvalue.FromCallable(jsvalue.NewNative("Worker", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		src, ok := blobText(arg0(args))
		if !ok {
			src = jsvalue.ToString(arg0(args))
		}
		w, err := timers.NewWorker(src, jsfrontend.Parse)
		if err != nil {
			return jsvalue.Undefined, jsproto.NewTypeError("Worker construction failed: %s", err.Error())
		}

		rec := jsproto.NewObjectRecord()
		rec.Class = "Worker"
		rec.Set("onmessage", jsvalue.Null)
		rec.Set("onerror", jsvalue.Null)
		rec.Set("postMessage", native("postMessage", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return jsvalue.Undefined, w.DeliverMessage(arg0(args))
		}))
		rec.Set("terminate", native("terminate", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			w.Terminate()
			return jsvalue.Undefined, nil
		}))
		rec.Set("addEventListener", native("addEventListener", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			if len(args) < 2 || args[1].Kind() != jsvalue.KindCallable {
				return jsvalue.Undefined, nil
			}
			switch jsvalue.ToString(args[0]) {
			case "message":
				rec.Set("onmessage", args[1])
			case "error":
				rec.Set("onerror", args[1])
			}
			return jsvalue.Undefined, nil
		}))

		go pumpWorkerMessages(in, sched, w, rec)

		return jsvalue.FromRecord(rec), nil
	})))
}

func pumpWorkerMessages(in *interp.Interpreter, sched *timers.Scheduler, w *timers.Worker, rec *jsvalue.Record) {
	for {
		data, ok := w.Next()
		if !ok {
			if err := w.Err(); err != nil {
				sched.SetTimeout(0, func() {
					cb, has := rec.Get("onerror")
					if !has || cb.Kind() != jsvalue.KindCallable {
						return
					}
					errRec := jsproto.NewObjectRecord()
					errRec.Class = "ErrorEvent"
					errRec.Set("message", jsvalue.Str(err.Error()))
					in.CallValue(cb, jsvalue.FromRecord(rec), []jsvalue.Value{jsvalue.FromRecord(errRec)})
				})
			}
			return
		}
		msg := data
		sched.SetTimeout(0, func() {
			cb, has := rec.Get("onmessage")
			if !has || cb.Kind() != jsvalue.KindCallable {
				return
			}
			event := jsproto.NewObjectRecord()
			event.Class = "MessageEvent"
			event.Set("type", jsvalue.Str("message"))
			event.Set("data", msg)
			event.Set("origin", jsvalue.Str(""))
			event.Set("lastEventId", jsvalue.Str(""))
			event.Set("ports", jsvalue.FromList(jsvalue.NewList(nil)))
			event.Set("source", jsvalue.Null)
			in.CallValue(cb, jsvalue.FromRecord(rec), []jsvalue.Value{jsvalue.FromRecord(event)})
		})
	}
}
