package browser

import (
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

func newTestWindow() *jsvalue.Record {
	w := jsproto.NewObjectRecord()
	w.Class = "Window"
	return w
}
