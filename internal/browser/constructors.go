package browser

import (
	"math"
	"time"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// installConstructors wires the handful of global wrapper/collection
// constructors a script expects to find unqualified: Object, Array,
// String, Number, Boolean, Date (a minimal wall-clock wrapper; there is no
// real calendar/timezone engine, spec Non-goals), RegExp, and the Error
// family. Each is a native Callable whose Native function is also what
// `new` invokes directly (interp.constructNew calls native constructors
// without allocating a record first), so every one of these builds and
// returns its own result.
func installConstructors(in *interp.Interpreter, window *jsvalue.Record) {
	defineBoth(in, window, "Object", objectConstructor())
	defineBoth(in, window, "Array", arrayConstructor())
	defineBoth(in, window, "String", wrapperConstructor("String", func(v jsvalue.Value) jsvalue.Value {
		return jsvalue.Str(jsvalue.ToString(v))
	}))
	defineBoth(in, window, "Number", wrapperConstructor("Number", func(v jsvalue.Value) jsvalue.Value {
		if v.IsUndefined() {
			return jsvalue.Num(0)
		}
		return jsvalue.Num(jsvalue.ToNumber(v))
	}))
	defineBoth(in, window, "Boolean", wrapperConstructor("Boolean", func(v jsvalue.Value) jsvalue.Value {
		return jsvalue.Bool(jsvalue.ToBoolean(v))
	}))
	defineBoth(in, window, "RegExp", regexConstructor())
	defineBoth(in, window, "Date", dateConstructor())

	for _, name := range []string{"Error", "TypeError", "RangeError", "ReferenceError", "SyntaxError", "URIError", "EvalError"} {
		defineBoth(in, window, name, errorConstructor(in, name))
	}
}

func objectConstructor() jsvalue.Value {
	ctor := jsvalue.NewNative("Object", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		if len(args) > 0 && args[0].Kind() == jsvalue.KindRecord {
			return args[0], nil
		}
		return jsvalue.FromRecord(jsproto.NewObjectRecord()), nil
	})
	ctor.Own.Set("keys", native("keys", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		keys := jsproto.OwnKeys(arg0(args))
		items := make([]jsvalue.Value, len(keys))
		for i, k := range keys {
			items[i] = jsvalue.Str(k)
		}
		return jsvalue.FromList(jsvalue.NewList(items)), nil
	}))
	ctor.Own.Set("values", native("values", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		keys := jsproto.OwnKeys(arg0(args))
		items := make([]jsvalue.Value, len(keys))
		for i, k := range keys {
			v, _ := jsproto.Get(arg0(args), k)
			items[i] = v
		}
		return jsvalue.FromList(jsvalue.NewList(items)), nil
	}))
	ctor.Own.Set("entries", native("entries", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		keys := jsproto.OwnKeys(arg0(args))
		items := make([]jsvalue.Value, len(keys))
		for i, k := range keys {
			v, _ := jsproto.Get(arg0(args), k)
			items[i] = jsvalue.FromList(jsvalue.NewList([]jsvalue.Value{jsvalue.Str(k), v}))
		}
		return jsvalue.FromList(jsvalue.NewList(items)), nil
	}))
	ctor.Own.Set("assign", native("assign", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		if len(args) == 0 {
			return jsvalue.FromRecord(jsproto.NewObjectRecord()), nil
		}
		target := arg0(args)
		for _, src := range args[1:] {
			for _, k := range jsproto.OwnKeys(src) {
				v, _ := jsproto.Get(src, k)
				if err := jsproto.Set(target, k, v); err != nil {
					return jsvalue.Undefined, err
				}
			}
		}
		return target, nil
	}))
	ctor.Own.Set("freeze", native("freeze", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return arg0(args), nil
	}))
	ctor.Own.Set("create", native("create", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		var proto *jsvalue.Record
		if len(args) > 0 && args[0].Kind() == jsvalue.KindRecord {
			proto = args[0].Record()
		}
		return jsvalue.FromRecord(jsvalue.NewRecord(proto)), nil
	}))
	return jsvalue.FromCallable(ctor)
}

func arrayConstructor() jsvalue.Value {
	ctor := jsvalue.NewNative("Array", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		if len(args) == 1 && args[0].Kind() == jsvalue.KindNumber {
			n := int(args[0].Num())
			items := make([]jsvalue.Value, n)
			for i := range items {
				items[i] = jsvalue.Undefined
			}
			return jsvalue.FromList(jsvalue.NewList(items)), nil
		}
		return jsvalue.FromList(jsvalue.NewList(append([]jsvalue.Value{}, args...))), nil
	})
	ctor.Own.Set("isArray", native("isArray", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Bool(arg0(args).Kind() == jsvalue.KindList), nil
	}))
	ctor.Own.Set("from", native("from", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		src := arg0(args)
		var items []jsvalue.Value
		switch src.Kind() {
		case jsvalue.KindList:
			items = append(items, src.List().Items...)
		case jsvalue.KindString:
			for _, r := range src.Str() {
				items = append(items, jsvalue.Str(string(r)))
			}
		case jsvalue.KindRecord:
			if lv, ok := src.Record().Get("length"); ok {
				n := int(jsvalue.ToNumber(lv))
				for i := 0; i < n; i++ {
					v, _ := jsproto.Get(src, itoaPublic(i))
					items = append(items, v)
				}
			}
		}
		if len(args) > 1 && args[1].Kind() == jsvalue.KindCallable {
			mapped := make([]jsvalue.Value, len(items))
			for i, it := range items {
				v, err := jsproto.CallHook(args[1], jsvalue.Undefined, []jsvalue.Value{it, jsvalue.Num(float64(i))})
				if err != nil {
					return jsvalue.Undefined, err
				}
				mapped[i] = v
			}
			items = mapped
		}
		return jsvalue.FromList(jsvalue.NewList(items)), nil
	}))
	ctor.Own.Set("of", native("of", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.FromList(jsvalue.NewList(append([]jsvalue.Value{}, args...))), nil
	}))
	return jsvalue.FromCallable(ctor)
}

func itoaPublic(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func wrapperConstructor(name string, coerce func(jsvalue.Value) jsvalue.Value) jsvalue.Value {
	return jsvalue.FromCallable(jsvalue.NewNative(name, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		if len(args) == 0 {
			if name == "String" {
				return jsvalue.Str(""), nil
			}
			return coerce(jsvalue.Undefined), nil
		}
		return coerce(args[0]), nil
	}))
}

func regexConstructor() jsvalue.Value {
	return jsvalue.FromCallable(jsvalue.NewNative("RegExp", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		source := ""
		flags := ""
		if len(args) > 0 {
			if args[0].Kind() == jsvalue.KindRegex {
				source = args[0].Regex().Source
				flags = args[0].Regex().Flags
			} else {
				source = jsvalue.ToString(args[0])
			}
		}
		if len(args) > 1 && !args[1].IsUndefined() {
			flags = jsvalue.ToString(args[1])
		}
		return jsproto.NewRegexValue(source, flags)
	}))
}

// dateConstructor is a minimal wall-clock wrapper (spec Non-goals exclude
// a real calendar/timezone engine): it stores milliseconds since the Unix
// epoch and exposes getTime/toISOString/valueOf, enough for scripts that
// only want a monotonic-ish timestamp.
func dateConstructor() jsvalue.Value {
	ctor := jsvalue.NewNative("Date", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		var ms float64
		if len(args) == 1 {
			ms = jsvalue.ToNumber(args[0])
		} else if len(args) > 1 {
			y := int(jsvalue.ToNumber(args[0]))
			mo := int(jsvalue.ToNumber(args[1]))
			day := 1
			if len(args) > 2 {
				day = int(jsvalue.ToNumber(args[2]))
			}
			ms = float64(time.Date(y, time.Month(mo+1), day, 0, 0, 0, 0, time.UTC).UnixMilli())
		}
		rec := jsproto.NewObjectRecord()
		rec.Class = "Date"
		rec.Set("__ms__", jsvalue.Num(ms))
		rec.Set("getTime", native("getTime", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			v, _ := this.Record().Get("__ms__")
			return v, nil
		}))
		rec.Set("valueOf", native("valueOf", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			v, _ := this.Record().Get("__ms__")
			return v, nil
		}))
		rec.Set("toISOString", native("toISOString", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			v, _ := this.Record().Get("__ms__")
			return jsvalue.Str(formatISO(v.Num())), nil
		}))
		return jsvalue.FromRecord(rec), nil
	})
	ctor.Own.Set("now", native("now", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Num(float64(time.Now().UnixMilli())), nil
	}))
	return jsvalue.FromCallable(ctor)
}

func formatISO(ms float64) string {
	if math.IsNaN(ms) {
		return "Invalid Date"
	}
	return time.UnixMilli(int64(ms)).UTC().Format("2006-01-02T15:04:05.000Z")
}

func errorConstructor(in *interp.Interpreter, name string) jsvalue.Value {
	return jsvalue.FromCallable(jsvalue.NewNative(name, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		msg := ""
		if len(args) > 0 {
			msg = jsvalue.ToString(args[0])
		}
		return in.NewError(name, msg), nil
	}))
}
