package browser

import (
	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// newEventValue builds a bare Event-shaped record (spec §4.B "Event
// object"): type/bubbles/cancelable/defaultPrevented/target/currentTarget
// plus the three propagation-control methods. preventDefault sets
// defaultPrevented (only when cancelable); stopPropagation/
// stopImmediatePropagation flip hidden "__..__" flags the same way constructors.go's Date stashes
// its epoch millis in "__ms__" — not meant to be enumerated by scripts,
// just read back by dispatchOn.
func newEventValue(typ string, bubbles, cancelable bool) jsvalue.Value {
	rec := jsproto.NewObjectRecord()
	rec.Class = "Event"
	rec.Set("type", jsvalue.Str(typ))
	rec.Set("bubbles", jsvalue.Bool(bubbles))
	rec.Set("cancelable", jsvalue.Bool(cancelable))
	rec.Set("defaultPrevented", jsvalue.Bool(false))
	rec.Set("target", jsvalue.Null)
	rec.Set("currentTarget", jsvalue.Null)
	rec.Set("__stopPropagation__", jsvalue.Bool(false))
	rec.Set("__stopImmediate__", jsvalue.Bool(false))
	installEventMethods(rec)
	return jsvalue.FromRecord(rec)
}

func installEventMethods(rec *jsvalue.Record) {
	rec.Set("preventDefault", native("preventDefault", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		if jsvalue.ToBoolean(mustGet(rec, "cancelable")) {
			rec.Set("defaultPrevented", jsvalue.Bool(true))
		}
		return jsvalue.Undefined, nil
	}))
	rec.Set("stopPropagation", native("stopPropagation", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		rec.Set("__stopPropagation__", jsvalue.Bool(true))
		return jsvalue.Undefined, nil
	}))
	rec.Set("stopImmediatePropagation", native("stopImmediatePropagation", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		rec.Set("__stopPropagation__", jsvalue.Bool(true))
		rec.Set("__stopImmediate__", jsvalue.Bool(true))
		return jsvalue.Undefined, nil
	}))
}

// eventFromInit reads {bubbles, cancelable, ...} the way `new Event(type,
// init)`/`new MouseEvent(type, init)` accept it.
func eventFromInit(typ string, init jsvalue.Value) jsvalue.Value {
	bubbles, cancelable := false, false
	if init.Kind() == jsvalue.KindRecord {
		if v, ok := init.Record().Get("bubbles"); ok {
			bubbles = jsvalue.ToBoolean(v)
		}
		if v, ok := init.Record().Get("cancelable"); ok {
			cancelable = jsvalue.ToBoolean(v)
		}
	}
	return newEventValue(typ, bubbles, cancelable)
}

// installEventConstructors wires the global Event/MouseEvent/CustomEvent
// constructors spec §4.B's Event/MouseEvent fields imply scripts can
// construct directly (`new MouseEvent('click', {...})`), in addition to
// dispatchEvent accepting one built by the host.
func installEventConstructors(in *interp.Interpreter, window *jsvalue.Record) {
	defineBoth(in, window, "Event", jsvalue.FromCallable(jsvalue.NewNative("Event", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		typ := jsvalue.ToString(arg0(args))
		return eventFromInit(typ, arg1(args)), nil
	})))
	defineBoth(in, window, "CustomEvent", jsvalue.FromCallable(jsvalue.NewNative("CustomEvent", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		typ := jsvalue.ToString(arg0(args))
		ev := eventFromInit(typ, arg1(args))
		detail := jsvalue.Undefined
		if arg1(args).Kind() == jsvalue.KindRecord {
			if v, ok := arg1(args).Record().Get("detail"); ok {
				detail = v
			}
		}
		ev.Record().Set("detail", detail)
		return ev, nil
	})))
	defineBoth(in, window, "MouseEvent", jsvalue.FromCallable(jsvalue.NewNative("MouseEvent", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		typ := jsvalue.ToString(arg0(args))
		ev := eventFromInit(typ, arg1(args))
		r := ev.Record()
		coords := []string{"clientX", "clientY", "pageX", "pageY", "screenX", "screenY", "offsetX", "offsetY", "movementX", "movementY", "button", "buttons"}
		for _, c := range coords {
			r.Set(c, jsvalue.Num(0))
		}
		r.Set("ctrlKey", jsvalue.Bool(false))
		r.Set("shiftKey", jsvalue.Bool(false))
		r.Set("altKey", jsvalue.Bool(false))
		r.Set("metaKey", jsvalue.Bool(false))
		r.Set("relatedTarget", jsvalue.Null)
		if init := arg1(args); init.Kind() == jsvalue.KindRecord {
			for _, c := range coords {
				if v, ok := init.Record().Get(c); ok {
					r.Set(c, v)
				}
			}
		}
		return ev, nil
	})))
}
