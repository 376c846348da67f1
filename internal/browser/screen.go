package browser

import (
	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// installScreen builds window.screen with a plausible fixed resolution.
// isExtended is always false: there is no real multi-monitor concept to
// back it with.
func installScreen(in *interp.Interpreter, window *jsvalue.Record) {
	s := jsproto.NewObjectRecord()
	s.Class = "Screen"
	s.Set("width", jsvalue.Num(1920))
	s.Set("height", jsvalue.Num(1080))
	s.Set("availWidth", jsvalue.Num(1920))
	s.Set("availHeight", jsvalue.Num(1040))
	s.Set("colorDepth", jsvalue.Num(24))
	s.Set("pixelDepth", jsvalue.Num(24))
	s.Set("isExtended", jsvalue.Bool(false))

	orientation := jsproto.NewObjectRecord()
	orientation.Class = "ScreenOrientation"
	orientation.Set("type", jsvalue.Str("landscape-primary"))
	orientation.Set("angle", jsvalue.Num(0))
	s.Set("orientation", jsvalue.FromRecord(orientation))

	defineBoth(in, window, "screen", jsvalue.FromRecord(s))
}
