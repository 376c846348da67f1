package browser

import (
	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// installNavigator builds the navigator surface, including the many
// stub sub-objects a modern page's feature-detection code probes for
// even when it never calls into them (bluetooth, clipboard, usb, xr,
// ...). None of these talk to real hardware (spec Non-goals); each is a
// record with the properties/methods scripts typically check for.
func installNavigator(in *interp.Interpreter, window *jsvalue.Record, cfg Config) {
	nav := jsproto.NewObjectRecord()
	nav.Class = "Navigator"

	nav.Set("userAgent", jsvalue.Str(cfg.UserAgent))
	nav.Set("language", jsvalue.Str(cfg.Language))
	nav.Set("languages", jsvalue.FromList(jsvalue.NewList([]jsvalue.Value{jsvalue.Str(cfg.Language)})))
	nav.Set("platform", jsvalue.Str(cfg.Platform))
	nav.Set("vendor", jsvalue.Str("Google Inc."))
	nav.Set("product", jsvalue.Str("Gecko"))
	nav.Set("productSub", jsvalue.Str("20030107"))
	nav.Set("appName", jsvalue.Str("Netscape"))
	nav.Set("appCodeName", jsvalue.Str("Mozilla"))
	nav.Set("appVersion", jsvalue.Str("5.0"))
	nav.Set("onLine", jsvalue.Bool(true))
	nav.Set("cookieEnabled", jsvalue.Bool(true))
	nav.Set("webdriver", jsvalue.Bool(false))
	nav.Set("hardwareConcurrency", jsvalue.Num(8))
	nav.Set("deviceMemory", jsvalue.Num(8))
	nav.Set("maxTouchPoints", jsvalue.Num(0))
	nav.Set("pdfViewerEnabled", jsvalue.Bool(true))

	nav.Set("userActivation", stub("UserActivation", map[string]jsvalue.Value{
		"hasBeenActive": jsvalue.Bool(true),
		"isActive":      jsvalue.Bool(false),
	}))
	nav.Set("virtualKeyboard", stub("VirtualKeyboard", map[string]jsvalue.Value{
		"overlaysContent": jsvalue.Bool(false),
	}))
	nav.Set("windowControlsOverlay", stub("WindowControlsOverlay", map[string]jsvalue.Value{
		"visible": jsvalue.Bool(false),
	}))
	nav.Set("clipboard", stub("Clipboard", nil))
	nav.Set("credentials", stub("CredentialsContainer", nil))
	nav.Set("geolocation", stub("Geolocation", nil))
	nav.Set("bluetooth", stub("Bluetooth", map[string]jsvalue.Value{
		"referringDevice": jsvalue.Undefined,
	}))
	nav.Set("hid", stub("HID", nil))
	nav.Set("usb", stub("USB", nil))
	nav.Set("serial", stub("Serial", nil))
	nav.Set("locks", stub("LockManager", nil))
	nav.Set("presentation", stub("Presentation", map[string]jsvalue.Value{
		"defaultRequest": jsvalue.Undefined,
	}))
	nav.Set("serviceWorker", stub("ServiceWorkerContainer", map[string]jsvalue.Value{
		"controller": jsvalue.Undefined,
	}))
	nav.Set("storage", stub("StorageManager", nil))
	nav.Set("mediaSession", stub("MediaSession", map[string]jsvalue.Value{
		"playbackState": jsvalue.Str("none"),
		"metadata":      jsvalue.Null,
	}))
	nav.Set("mediaDevices", stub("MediaDevices", nil))
	nav.Set("mediaCapabilities", stub("MediaCapabilities", nil))
	nav.Set("xr", stub("XRSystem", nil))

	gpu := jsproto.NewObjectRecord()
	gpu.Class = "GPU"
	gpu.Set("wgslLanguageFeatures", jsvalue.FromRecord(jsproto.NewObjectRecord()))
	nav.Set("gpu", jsvalue.FromRecord(gpu))

	defineBoth(in, window, "navigator", jsvalue.FromRecord(nav))
}

// stub builds a named object with the given own properties (nil means
// empty), used for the many feature-detection sub-objects navigator
// exposes that this sandbox has no real backing implementation for.
func stub(class string, props map[string]jsvalue.Value) jsvalue.Value {
	r := jsproto.NewObjectRecord()
	r.Class = class
	for k, v := range props {
		r.Set(k, v)
	}
	return jsvalue.FromRecord(r)
}
