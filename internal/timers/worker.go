package timers

import (
	"sync"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsast"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// ParseFunc turns JS source text into a syntax tree. Workers receive their
// script as source (from a Blob URL or inline string), but this package
// never parses text itself: the parser is an external collaborator, so
// the embedder injects one (internal/jsfrontend provides an otto-backed
// implementation).
type ParseFunc func(source string) (*jsast.Program, error)

// Worker runs an isolated script context on its own goroutine, with
// inbound/outbound message queues standing in for postMessage. Message
// ordering is preserved (a worker's outbound messages are delivered to
// its owner in send order) and Terminate is race-free and idempotent.
type Worker struct {
	in      *interp.Interpreter
	inbox   chan jsvalue.Value
	outbox  chan jsvalue.Value
	errs    chan error
	done    chan struct{}
	once    sync.Once
	onmsg   *jsvalue.Callable
	onmsgMu sync.Mutex
}

// NewWorker compiles src with parse and starts the worker goroutine. The
// returned Worker is running already; call DeliverMessage to send it data
// and Next to read what it posts back.
func NewWorker(src string, parse ParseFunc) (*Worker, error) {
	prog, err := parse(src)
	if err != nil {
		return nil, err
	}

	w := &Worker{
		in:     interp.New(),
		inbox:  make(chan jsvalue.Value, 64),
		outbox: make(chan jsvalue.Value, 64),
		errs:   make(chan error, 1),
		done:   make(chan struct{}),
	}

	w.installSelf()

	go func() {
		defer close(w.outbox)
		if _, err := w.in.Run(prog); err != nil {
			select {
			case w.errs <- err:
			default:
			}
		}
		if v, ok := w.in.Global.Lookup("onmessage"); ok && v.Kind() == jsvalue.KindCallable {
			w.SetOnMessage(v.Callable())
		}
		<-w.done
	}()

	return w, nil
}

func (w *Worker) installSelf() {
	// Pre-declared to undefined, the same way the browser façade
	// pre-declares its on* event-handler slots: Environment.Assign now
	// fails with a ReferenceError against a truly undeclared identifier,
	// so a worker script's bare `onmessage = function(e){...}` (no `var`)
	// needs this binding to already exist for the assignment to succeed.
	w.in.Global.Define("onmessage", jsvalue.Undefined)
	w.in.Global.Define("postMessage", jsvalue.FromCallable(jsvalue.NewNative("postMessage", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		var v jsvalue.Value
		if len(args) > 0 {
			v = args[0]
		}
		select {
		case w.outbox <- v:
		case <-w.done:
		}
		return jsvalue.Undefined, nil
	})))
	w.in.Global.Define("close", jsvalue.FromCallable(jsvalue.NewNative("close", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		w.Terminate()
		return jsvalue.Undefined, nil
	})))
	w.in.Global.Define("addEventListener", jsvalue.FromCallable(jsvalue.NewNative("addEventListener", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		if len(args) < 2 || jsvalue.ToString(args[0]) != "message" || args[1].Kind() != jsvalue.KindCallable {
			return jsvalue.Undefined, nil
		}
		w.SetOnMessage(args[1].Callable())
		return jsvalue.Undefined, nil
	})))
}

// SetOnMessage installs the callback the worker's script assigned to
// `onmessage`/addEventListener("message", ...). addEventListener calls it
// directly; a global `onmessage` is picked up once, by NewWorker's
// goroutine after the script's top level has run, so assigning onmessage
// later (e.g. from inside a handler) does not change the callback.
func (w *Worker) SetOnMessage(cb *jsvalue.Callable) {
	w.onmsgMu.Lock()
	w.onmsg = cb
	w.onmsgMu.Unlock()
}

// DeliverMessage sends data into the worker and, if the worker's script
// registered an onmessage handler, invokes it on the worker's own
// goroutine-owning interpreter. Callers must invoke this from the
// single goroutine that owns w.in (scripts register their handlers while
// the worker's top level runs, so in practice the owner's event loop
// calls DeliverMessage after that, between pumps, keeping re-entry
// serialized the same way Scheduler.Pump does for timers).
func (w *Worker) DeliverMessage(data jsvalue.Value) error {
	w.onmsgMu.Lock()
	cb := w.onmsg
	w.onmsgMu.Unlock()
	if cb == nil {
		select {
		case w.inbox <- data:
		default:
		}
		return nil
	}
	event := jsvalue.NewRecord(nil)
	event.Set("data", data)
	_, err := w.in.CallValue(jsvalue.FromCallable(cb), jsvalue.Undefined, []jsvalue.Value{jsvalue.FromRecord(event)})
	return err
}

// Next returns the next message the worker posted, blocking until one
// arrives or the worker terminates (ok=false).
func (w *Worker) Next() (jsvalue.Value, bool) {
	v, ok := <-w.outbox
	return v, ok
}

// Err returns the worker's uncaught top-level error, if any, after it has
// finished running.
func (w *Worker) Err() error {
	select {
	case err := <-w.errs:
		return err
	default:
		return nil
	}
}

// Terminate stops the worker. Idempotent and race-free via sync.Once.
func (w *Worker) Terminate() {
	w.once.Do(func() { close(w.done) })
}
