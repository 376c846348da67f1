// Package sandbox is the embedder-facing entry point for running untrusted
// JavaScript against a faked browser host.
// It wires internal/interp, internal/browser, and internal/jsfrontend
// together the way esbuild's pkg/api wires its own parser/bundler/printer
// behind a small stable surface, without exposing any of those packages'
// internals to a caller.
//
// Example usage:
//
//	package main
//
//	import (
//	    "fmt"
//
//	    "github.com/LOBYXLYX/javascript-interpreter/sandbox"
//	)
//
//	func main() {
//	    host := sandbox.New(sandbox.Config{
//	        Domain: "https://example.com/",
//	        HTML:   "<body><div id=\"app\"></div></body>",
//	    })
//
//	    result, err := host.Run(`document.getElementById("app").tagName`)
//	    if err != nil {
//	        panic(err)
//	    }
//	    fmt.Println(sandbox.ToString(result))
//	}
package sandbox

import (
	"time"

	"github.com/LOBYXLYX/javascript-interpreter/internal/browser"
	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsast"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsfrontend"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// Config is the embedder-facing knob set (spec §6): the seed URL scripts
// see as their own origin, the faked navigator.userAgent, the document's
// initial markup, and the locale/platform strings navigator reports.
type Config struct {
	Domain    string
	UserAgent string
	HTML      string
	Language  string
	Platform  string
}

func (c Config) toBrowser() browser.Config {
	return browser.Config{
		Domain:    c.Domain,
		UserAgent: c.UserAgent,
		HTML:      c.HTML,
		Language:  c.Language,
		Platform:  c.Platform,
	}
}

// Host is one sandboxed realm: an interpreter, its installed façade, and
// the timer/worker scheduler backing setTimeout/setInterval/Worker.
type Host struct {
	in   *interp.Interpreter
	face *browser.Host
}

// New builds a fresh realm with the façade installed and ready to run
// scripts against.
func New(cfg Config) *Host {
	in := interp.New()
	face := browser.Install(in, cfg.toBrowser())
	return &Host{in: in, face: face}
}

// Run parses src with the bundled otto-ast-based frontend (spec §6 notes
// the interpreter itself is parser-agnostic; this is the convenience path
// for callers who don't want to wire their own parser) and evaluates it
// in this realm.
func (h *Host) Run(src string) (jsvalue.Value, error) {
	prog, err := jsfrontend.Parse(src)
	if err != nil {
		return jsvalue.Undefined, err
	}
	return h.RunProgram(prog)
}

// RunProgram evaluates an already-parsed syntax tree, for embedders that
// bring their own parser instead of jsfrontend's.
func (h *Host) RunProgram(prog *jsast.Program) (jsvalue.Value, error) {
	return h.in.Run(prog)
}

// Pump drains any timers/idle callbacks/worker messages that are ready
// right now, running their callbacks on the calling goroutine, then
// returns without blocking.
func (h *Host) Pump() {
	h.face.Timers.Pump()
}

// PumpBlocking drains ready callbacks the same way Pump does, but first
// waits up to timeout for at least one to become ready (a timeout of 0
// does not wait). Callers that need to let setTimeout/setInterval/worker
// replies actually fire should loop on this rather than busy-polling Pump.
func (h *Host) PumpBlocking(timeout time.Duration) {
	h.face.Timers.PumpBlocking(timeout)
}

// Pending reports how many timers (including repeating intervals) are
// still armed, so an embedder's driving loop knows when it can stop
// pumping and tear the realm down.
func (h *Host) Pending() int {
	return h.face.Timers.Pending()
}

// Stop tears down the background timer/worker-pump goroutine. Any Worker
// instances constructed during the realm's lifetime keep running on their
// own goroutines until their owning script calls terminate(); Stop only
// retires this realm's own scheduler loop.
func (h *Host) Stop() {
	h.face.Timers.Stop()
}

// Window exposes the underlying window record for embedders that need to
// poke at façade state directly (e.g. assert on navigator fields in
// tests) rather than only through script evaluation.
func (h *Host) Window() *jsvalue.Record {
	return h.face.Window
}

// Interpreter exposes the underlying interpreter for embedders that need
// to call back into the realm directly, e.g. invoking a callable a script
// registered via postMessage or an event listener.
func (h *Host) Interpreter() *interp.Interpreter {
	return h.in
}

// ToString renders a result value the way the interpreter itself coerces
// values to strings (spec §4.A ToString), so callers don't need to import
// internal/jsvalue just to print a Run result.
func ToString(v jsvalue.Value) string {
	return jsvalue.ToString(v)
}
