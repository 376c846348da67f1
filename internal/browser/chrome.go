package browser

import (
	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// installChrome wires the non-standard `chrome` global scripts commonly
// probe to fingerprint a real Chrome window (spec §4.B "Chrome-specific").
// app/runtime are the fixed stub shapes such probes check for presence of,
// not functioning extension/app APIs.
func installChrome(in *interp.Interpreter, window *jsvalue.Record) {
	chrome := jsproto.NewObjectRecord()
	chrome.Class = "Chrome"

	app := jsproto.NewObjectRecord()
	app.Set("isInstalled", jsvalue.Bool(false))
	chrome.Set("app", jsvalue.FromRecord(app))

	runtime := jsproto.NewObjectRecord()
	runtime.Set("id", jsvalue.Undefined)
	chrome.Set("runtime", jsvalue.FromRecord(runtime))

	chrome.Set("csi", native("csi", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		rec := jsproto.NewObjectRecord()
		rec.Set("onloadT", jsvalue.Num(0))
		rec.Set("pageT", jsvalue.Num(0))
		rec.Set("startE", jsvalue.Num(0))
		rec.Set("tran", jsvalue.Num(15))
		return jsvalue.FromRecord(rec), nil
	}))

	chrome.Set("loadTimes", native("loadTimes", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		rec := jsproto.NewObjectRecord()
		rec.Set("requestTime", jsvalue.Num(0))
		rec.Set("startLoadTime", jsvalue.Num(0))
		rec.Set("commitLoadTime", jsvalue.Num(0))
		rec.Set("finishDocumentLoadTime", jsvalue.Num(0))
		rec.Set("finishLoadTime", jsvalue.Num(0))
		rec.Set("firstPaintTime", jsvalue.Num(0))
		rec.Set("navigationType", jsvalue.Str("Other"))
		rec.Set("wasFetchedViaSpdy", jsvalue.Bool(false))
		rec.Set("wasNpnNegotiated", jsvalue.Bool(false))
		rec.Set("npnNegotiatedProtocol", jsvalue.Str(""))
		rec.Set("wasAlternateProtocolAvailable", jsvalue.Bool(false))
		rec.Set("connectionInfo", jsvalue.Str("h2"))
		return jsvalue.FromRecord(rec), nil
	}))

	defineBoth(in, window, "chrome", jsvalue.FromRecord(chrome))

	installEventHandlerSlots(window)
}

// windowEventHandlerNames is the fixed set of on* slots spec §4.B requires
// present and writable, whether or not this façade ever fires them itself.
var windowEventHandlerNames = []string{
	"onload", "onunload", "onbeforeunload", "onerror", "onresize", "onscroll",
	"onclick", "ondblclick", "onmousedown", "onmouseup", "onmousemove",
	"onmouseover", "onmouseout", "onmouseenter", "onmouseleave",
	"onkeydown", "onkeyup", "onkeypress",
	"onfocus", "onblur", "onfocusin", "onfocusout",
	"onsubmit", "onchange", "oninput", "onreset",
	"ondragstart", "ondrag", "ondragend", "ondragenter", "ondragleave", "ondragover", "ondrop",
	"onwheel", "oncontextmenu",
	"onhashchange", "onpopstate", "onpageshow", "onpagehide",
	"ononline", "onoffline",
	"onanimationstart", "onanimationend", "onanimationiteration",
	"ontransitionend",
	"onvisibilitychange",
	"onmessage", "onmessageerror",
}

func installEventHandlerSlots(window *jsvalue.Record) {
	for _, name := range windowEventHandlerNames {
		window.Set(name, jsvalue.Null)
	}
}
