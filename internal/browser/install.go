// Package browser populates an interpreter's global environment with the
// faked browser host surface (spec §4.B): window/document/navigator/
// location/screen/crypto/performance, console, timers, Worker/Blob,
// TextEncoder/TextDecoder, and the handful of global constructors
// (Object/Array/String/Number/Boolean/RegExp/Date/Error family/typed
// arrays) a script expects to find unqualified. Nothing here is a real
// layout/render/network engine (spec Non-goals) — every surface is a
// record with the documented shape and, where spec.md requires behavior
// (JSON, crypto digests, encodeURIComponent, ...), a real implementation
// behind it.
package browser

import (
	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
	"github.com/LOBYXLYX/javascript-interpreter/internal/timers"
)

// Config is the embedder-facing knob set (spec §6 "External interfaces").
type Config struct {
	Domain    string
	UserAgent string
	HTML      string
	Language  string
	Platform  string
}

func (c Config) withDefaults() Config {
	if c.UserAgent == "" {
		c.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	}
	if c.Language == "" {
		c.Language = "en-US"
	}
	if c.Platform == "" {
		c.Platform = "Win32"
	}
	if c.Domain == "" {
		c.Domain = "localhost"
	}
	return c
}

// Host bundles an interpreter with its installed façade and timer/worker
// scheduler, matching the shape sandbox.Host delegates to.
type Host struct {
	Interp *interp.Interpreter
	Timers *timers.Scheduler
	Window *jsvalue.Record
	Config Config
}

// Install builds the full façade on top of a fresh interpreter and
// returns the Host embedders drive (spec §6: Run(tree), timer pumping,
// teardown).
func Install(in *interp.Interpreter, cfg Config) *Host {
	cfg = cfg.withDefaults()
	sched := timers.NewScheduler()

	window := jsproto.NewObjectRecord()
	window.Class = "Window"

	h := &Host{Interp: in, Timers: sched, Window: window, Config: cfg}

	installGlobals(in, window)
	installConsole(in, window)
	installNavigator(in, window, cfg)
	installLocation(in, window, cfg)
	installScreen(in, window)
	installPerformance(in, window)
	installCrypto(in, window)
	installDocument(in, window, cfg)
	installEncoding(in, window)
	installTimersAndWorker(in, window, sched)
	installChrome(in, window)
	installEventConstructors(in, window)

	// window/globalThis/self/parent/top all alias the same record (spec
	// §4.B "a single reflective window record").
	windowVal := jsvalue.FromRecord(window)
	for _, alias := range []string{"window", "globalThis", "self", "parent", "top"} {
		window.Set(alias, windowVal)
		in.Global.Define(alias, windowVal)
	}
	window.Set("name", jsvalue.Str(""))
	window.Set("closed", jsvalue.Bool(false))
	window.Set("isSecureContext", jsvalue.Bool(true))
	window.Set("offscreenBuffering", jsvalue.Bool(true))
	window.Set("length", jsvalue.Num(0))
	window.Set("devicePixelRatio", jsvalue.Num(1))

	barProp := jsproto.NewObjectRecord()
	barProp.Set("visible", jsvalue.Bool(true))
	barPropVal := jsvalue.FromRecord(barProp)
	window.Set("locationbar", barPropVal)
	window.Set("statusbar", barPropVal)
	window.Set("scrollbars", barPropVal)

	idb := jsproto.NewObjectRecord()
	idb.Class = "IDBFactory"
	window.Set("indexedDB", jsvalue.FromRecord(idb))

	// Every window-level binding is also reachable as a bare global
	// identifier, the way a real <script> sees `window.foo` as just `foo`.
	for _, key := range window.Keys() {
		if v, ok := window.Get(key); ok {
			in.Global.Define(key, v)
		}
	}

	return h
}

// defineBoth binds name in both the global environment and as a window
// property, since every façade surface is reachable both ways.
func defineBoth(in *interp.Interpreter, window *jsvalue.Record, name string, v jsvalue.Value) {
	in.Global.Define(name, v)
	window.Set(name, v)
}

func native(name string, fn jsvalue.NativeFunc) jsvalue.Value {
	return jsvalue.FromCallable(jsvalue.NewNative(name, fn))
}
