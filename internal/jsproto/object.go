package jsproto

import "github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"

// objectProtoMethod answers the handful of Object.prototype members every
// record falls back to when its own Proto chain doesn't shadow them (spec
// §4.A "Object" row).
func objectProtoMethod(key string) (jsvalue.Value, bool) {
	switch key {
	case "toString":
		return method("toString", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			class := "Object"
			if r := this.Record(); r != nil && r.Class != "" {
				class = r.Class
			}
			return jsvalue.Str("[object " + class + "]"), nil
		}), true
	case "valueOf":
		return method("valueOf", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return this, nil
		}), true
	case "hasOwnProperty":
		return method("hasOwnProperty", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			key := jsvalue.ToString(arg(args, 0))
			switch this.Kind() {
			case jsvalue.KindRecord:
				return jsvalue.Bool(this.Record().Has(key)), nil
			case jsvalue.KindList:
				if n, ok := parseIndex(key); ok {
					return jsvalue.Bool(n >= 0 && n < this.List().Len()), nil
				}
				return jsvalue.Bool(key == "length"), nil
			}
			return jsvalue.Bool(false), nil
		}), true
	case "isPrototypeOf":
		return method("isPrototypeOf", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			other := arg(args, 0)
			proto := this.Record()
			if proto == nil || other.Kind() != jsvalue.KindRecord {
				return jsvalue.Bool(false), nil
			}
			for r := other.Record().Proto; r != nil; r = r.Proto {
				if r == proto {
					return jsvalue.Bool(true), nil
				}
			}
			return jsvalue.Bool(false), nil
		}), true
	case "propertyIsEnumerable":
		return method("propertyIsEnumerable", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			key := jsvalue.ToString(arg(args, 0))
			if r := this.Record(); r != nil {
				return jsvalue.Bool(r.Has(key)), nil
			}
			return jsvalue.Bool(false), nil
		}), true
	}
	return jsvalue.Undefined, false
}

func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// NewObjectRecord creates a plain object-literal record whose Proto is
// ObjectPrototype.
func NewObjectRecord() *jsvalue.Record {
	return jsvalue.NewRecord(ObjectPrototype)
}

// ObjectPrototype is the shared root Record every plain object ultimately
// chains to. It is intentionally empty: its members are served virtually
// by objectProtoMethod so that every kind (not just records whose Proto
// happens to be this one) sees the same Object.prototype surface.
var ObjectPrototype = jsvalue.NewRecord(nil)
