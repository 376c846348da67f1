// Package jsproto implements the uniform property-access contract (spec
// §4.A "every value kind answers get/set/delete the same way") by
// dispatching on jsvalue.Kind: records consult their own slots then walk
// their Proto chain; every other kind consults a per-kind method table
// here, exactly the way a prototype chain would, without needing to box
// primitives into records first. This mirrors modeledjs.go's
// GetProperty/SetProperty walkers (other_examples), generalized to Go's
// Kind-switch idiom instead of modeledjs's JSVCategory switch.
package jsproto

import (
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// Get implements property read access for any value kind.
func Get(this jsvalue.Value, key string) (jsvalue.Value, error) {
	switch this.Kind() {
	case jsvalue.KindUndefined, jsvalue.KindNull:
		return jsvalue.Undefined, NewTypeError("Cannot read properties of %s (reading '%s')", jsvalue.ToString(this), key)
	case jsvalue.KindString:
		return stringGet(this, key)
	case jsvalue.KindNumber:
		return numberGet(this, key)
	case jsvalue.KindBoolean:
		return booleanGet(this, key)
	case jsvalue.KindList:
		return listGet(this, key)
	case jsvalue.KindRecord:
		return recordGet(this, key)
	case jsvalue.KindCallable:
		return callableGet(this, key)
	case jsvalue.KindRegex:
		return regexGet(this, key)
	case jsvalue.KindByteArray:
		return byteArrayGet(this, key)
	}
	return jsvalue.Undefined, nil
}

// Set implements property write access. Primitive kinds (string, number,
// boolean) silently ignore writes, matching non-strict-mode JS.
func Set(this jsvalue.Value, key string, val jsvalue.Value) error {
	switch this.Kind() {
	case jsvalue.KindUndefined, jsvalue.KindNull:
		return NewTypeError("Cannot set properties of %s (setting '%s')", jsvalue.ToString(this), key)
	case jsvalue.KindString, jsvalue.KindNumber, jsvalue.KindBoolean:
		return nil
	case jsvalue.KindList:
		return listSet(this, key, val)
	case jsvalue.KindRecord:
		this.Record().Set(key, val)
		return nil
	case jsvalue.KindCallable:
		return callableSet(this, key, val)
	case jsvalue.KindRegex:
		return nil
	case jsvalue.KindByteArray:
		return byteArraySet(this, key, val)
	}
	return nil
}

// Delete implements the `delete` operator.
func Delete(this jsvalue.Value, key string) (bool, error) {
	switch this.Kind() {
	case jsvalue.KindRecord:
		return this.Record().Delete(key), nil
	case jsvalue.KindList:
		return listDelete(this, key), nil
	case jsvalue.KindCallable:
		return this.Callable().Own.Delete(key), nil
	default:
		return true, nil
	}
}

// Has reports own-or-inherited presence of key, used by the `in` operator
// and for-in enumeration groundwork.
func Has(this jsvalue.Value, key string) bool {
	v, err := Get(this, key)
	if err != nil {
		return false
	}
	if !v.IsUndefined() {
		return true
	}
	if this.Kind() == jsvalue.KindRecord {
		for r := this.Record(); r != nil; r = r.Proto {
			if r.Has(key) {
				return true
			}
		}
	}
	return false
}

// OwnKeys returns the enumerable own keys used by for-in, in the order
// for-in should visit them: numeric indices first (Lists), then insertion
// order (Records).
func OwnKeys(this jsvalue.Value) []string {
	switch this.Kind() {
	case jsvalue.KindRecord:
		return this.Record().Keys()
	case jsvalue.KindList:
		l := this.List()
		keys := make([]string, l.Len())
		for i := range keys {
			keys[i] = itoa(i)
		}
		return keys
	}
	return nil
}

func recordGet(this jsvalue.Value, key string) (jsvalue.Value, error) {
	for r := this.Record(); r != nil; r = r.Proto {
		if v, ok := r.Get(key); ok {
			return v, nil
		}
	}
	if v, ok := objectProtoMethod(key); ok {
		return v, nil
	}
	return jsvalue.Undefined, nil
}

func booleanGet(this jsvalue.Value, key string) (jsvalue.Value, error) {
	switch key {
	case "toString":
		return method("toString", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return jsvalue.Str(jsvalue.ToString(this)), nil
		}), nil
	case "valueOf":
		return method("valueOf", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return this, nil
		}), nil
	}
	return jsvalue.Undefined, nil
}

func method(name string, fn jsvalue.NativeFunc) jsvalue.Value {
	return jsvalue.FromCallable(jsvalue.NewNative(name, fn))
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	p := len(buf)
	for i > 0 {
		p--
		buf[p] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		p--
		buf[p] = '-'
	}
	return string(buf[p:])
}

func arg(args []jsvalue.Value, i int) jsvalue.Value {
	if i < 0 || i >= len(args) {
		return jsvalue.Undefined
	}
	return args[i]
}
