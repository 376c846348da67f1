package jsproto

import (
	"math"
	"strconv"

	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// numberGet answers Number.prototype (spec §4.A "Number" row).
func numberGet(this jsvalue.Value, key string) (jsvalue.Value, error) {
	switch key {
	case "toString":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			n := this.Num()
			radix := 10
			if len(args) > 0 && !args[0].IsUndefined() {
				radix = int(jsvalue.ToNumber(args[0]))
			}
			if radix == 10 {
				return jsvalue.Str(jsvalue.NumberToString(n)), nil
			}
			if n != math.Trunc(n) || math.IsNaN(n) || math.IsInf(n, 0) {
				return jsvalue.Str(jsvalue.NumberToString(n)), nil
			}
			neg := n < 0
			u := uint64(math.Abs(n))
			s := strconv.FormatUint(u, radix)
			if neg {
				s = "-" + s
			}
			return jsvalue.Str(s), nil
		}), nil
	case "valueOf":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return this, nil
		}), nil
	case "toFixed":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			digits := 0
			if len(args) > 0 {
				digits = int(jsvalue.ToNumber(args[0]))
			}
			return jsvalue.Str(strconv.FormatFloat(this.Num(), 'f', digits, 64)), nil
		}), nil
	case "toPrecision":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			if len(args) == 0 || args[0].IsUndefined() {
				return jsvalue.Str(jsvalue.NumberToString(this.Num())), nil
			}
			prec := int(jsvalue.ToNumber(args[0]))
			return jsvalue.Str(strconv.FormatFloat(this.Num(), 'g', prec, 64)), nil
		}), nil
	}
	return jsvalue.Undefined, nil
}
