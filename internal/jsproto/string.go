package jsproto

import (
	"strings"
	"unicode/utf16"

	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// stringGet answers String.prototype plus indexed/length access. Lengths
// and character access use UTF-16 code units, not Go bytes or runes,
// since JS strings are UTF-16 sequences: the same reason esbuild's
// js_lexer package reaches for unicode/utf16.
func stringGet(this jsvalue.Value, key string) (jsvalue.Value, error) {
	s := this.Str()
	units := utf16.Encode([]rune(s))

	if key == "length" {
		return jsvalue.Num(float64(len(units))), nil
	}
	if idx, ok := parseIndex(key); ok {
		if idx < 0 || idx >= len(units) {
			return jsvalue.Undefined, nil
		}
		return jsvalue.Str(string(utf16.Decode(units[idx : idx+1]))), nil
	}

	switch key {
	case "toString", "valueOf":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return jsvalue.Str(this.Str()), nil
		}), nil
	case "charAt":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			u := utf16.Encode([]rune(this.Str()))
			i := int(jsvalue.ToNumber(arg(args, 0)))
			if i < 0 || i >= len(u) {
				return jsvalue.Str(""), nil
			}
			return jsvalue.Str(string(utf16.Decode(u[i : i+1]))), nil
		}), nil
	case "charCodeAt":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			u := utf16.Encode([]rune(this.Str()))
			i := int(jsvalue.ToNumber(arg(args, 0)))
			if i < 0 || i >= len(u) {
				return jsvalue.Num(nan()), nil
			}
			return jsvalue.Num(float64(u[i])), nil
		}), nil
	case "codePointAt":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			r := []rune(this.Str())
			u := utf16.Encode(r)
			i := int(jsvalue.ToNumber(arg(args, 0)))
			if i < 0 || i >= len(u) {
				return jsvalue.Undefined, nil
			}
			decoded := utf16.Decode(u[i:])
			if len(decoded) == 0 {
				return jsvalue.Undefined, nil
			}
			return jsvalue.Num(float64(decoded[0])), nil
		}), nil
	case "indexOf":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			sub := jsvalue.ToString(arg(args, 0))
			from := 0
			if len(args) > 1 {
				from = int(jsvalue.ToNumber(args[1]))
			}
			s := this.Str()
			if from < 0 {
				from = 0
			}
			if from > len(s) {
				if sub == "" {
					return jsvalue.Num(float64(len(s))), nil
				}
				return jsvalue.Num(-1), nil
			}
			idx := strings.Index(s[from:], sub)
			if idx < 0 {
				return jsvalue.Num(-1), nil
			}
			return jsvalue.Num(float64(idx + from)), nil
		}), nil
	case "lastIndexOf":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			sub := jsvalue.ToString(arg(args, 0))
			return jsvalue.Num(float64(strings.LastIndex(this.Str(), sub))), nil
		}), nil
	case "includes":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			s := this.Str()
			start := 0
			if len(args) > 1 {
				start = int(jsvalue.ToNumber(args[1]))
			}
			if start < 0 {
				start = 0
			}
			if start > len(s) {
				start = len(s)
			}
			return jsvalue.Bool(strings.Contains(s[start:], jsvalue.ToString(arg(args, 0)))), nil
		}), nil
	case "startsWith":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return jsvalue.Bool(strings.HasPrefix(this.Str(), jsvalue.ToString(arg(args, 0)))), nil
		}), nil
	case "endsWith":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return jsvalue.Bool(strings.HasSuffix(this.Str(), jsvalue.ToString(arg(args, 0)))), nil
		}), nil
	case "slice":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			u := utf16.Encode([]rune(this.Str()))
			start, end := sliceRange(len(u), args)
			if start >= end {
				return jsvalue.Str(""), nil
			}
			return jsvalue.Str(string(utf16.Decode(u[start:end]))), nil
		}), nil
	case "substring":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			u := utf16.Encode([]rune(this.Str()))
			a := clampIndex(int(jsvalue.ToNumber(arg(args, 0))), len(u))
			b := len(u)
			if len(args) > 1 && !args[1].IsUndefined() {
				b = clampIndex(int(jsvalue.ToNumber(args[1])), len(u))
			}
			if a > b {
				a, b = b, a
			}
			return jsvalue.Str(string(utf16.Decode(u[a:b]))), nil
		}), nil
	case "toUpperCase", "toLocaleUpperCase":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return jsvalue.Str(strings.ToUpper(this.Str())), nil
		}), nil
	case "toLowerCase", "toLocaleLowerCase":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return jsvalue.Str(strings.ToLower(this.Str())), nil
		}), nil
	case "trim":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return jsvalue.Str(strings.TrimSpace(this.Str())), nil
		}), nil
	case "trimStart":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return jsvalue.Str(strings.TrimLeft(this.Str(), " \t\n\r\v\f")), nil
		}), nil
	case "trimEnd":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return jsvalue.Str(strings.TrimRight(this.Str(), " \t\n\r\v\f")), nil
		}), nil
	case "split":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			s := this.Str()
			sepArg := arg(args, 0)
			if sepArg.IsUndefined() {
				return jsvalue.FromList(jsvalue.NewList([]jsvalue.Value{jsvalue.Str(s)})), nil
			}
			if sepArg.Kind() == jsvalue.KindRegex {
				parts, err := regexSplit(sepArg, s)
				if err != nil {
					return jsvalue.Undefined, err
				}
				return jsvalue.FromList(jsvalue.NewList(parts)), nil
			}
			sep := jsvalue.ToString(sepArg)
			var parts []string
			if sep == "" {
				for _, r := range s {
					parts = append(parts, string(r))
				}
			} else {
				parts = strings.Split(s, sep)
			}
			items := make([]jsvalue.Value, len(parts))
			for i, p := range parts {
				items[i] = jsvalue.Str(p)
			}
			return jsvalue.FromList(jsvalue.NewList(items)), nil
		}), nil
	case "concat":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			var b strings.Builder
			b.WriteString(this.Str())
			for _, a := range args {
				b.WriteString(jsvalue.ToString(a))
			}
			return jsvalue.Str(b.String()), nil
		}), nil
	case "repeat":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			n := int(jsvalue.ToNumber(arg(args, 0)))
			if n < 0 {
				return jsvalue.Undefined, NewRangeError("Invalid count value")
			}
			return jsvalue.Str(strings.Repeat(this.Str(), n)), nil
		}), nil
	case "padStart":
		return method(key, padFn(true)), nil
	case "padEnd":
		return method(key, padFn(false)), nil
	case "replace":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return stringReplace(this.Str(), arg(args, 0), arg(args, 1), false)
		}), nil
	case "replaceAll":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return stringReplace(this.Str(), arg(args, 0), arg(args, 1), true)
		}), nil
	case "match":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return regexMatch(arg(args, 0), this.Str())
		}), nil
	case "matchAll":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return regexMatchAll(arg(args, 0), this.Str())
		}), nil
	case "search":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return regexSearch(arg(args, 0), this.Str())
		}), nil
	case "normalize":
		// No Unicode normalization table is bundled; pass-through.
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return jsvalue.Str(this.Str()), nil
		}), nil
	case "at":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			u := utf16.Encode([]rune(this.Str()))
			i := int(jsvalue.ToNumber(arg(args, 0)))
			if i < 0 {
				i += len(u)
			}
			if i < 0 || i >= len(u) {
				return jsvalue.Undefined, nil
			}
			return jsvalue.Str(string(utf16.Decode(u[i : i+1]))), nil
		}), nil
	}
	return jsvalue.Undefined, nil
}

func padFn(start bool) jsvalue.NativeFunc {
	return func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		s := this.Str()
		target := int(jsvalue.ToNumber(arg(args, 0)))
		pad := " "
		if len(args) > 1 && !args[1].IsUndefined() {
			pad = jsvalue.ToString(args[1])
		}
		u := utf16.Encode([]rune(s))
		if target <= len(u) || pad == "" {
			return jsvalue.Str(s), nil
		}
		need := target - len(u)
		padUnits := utf16.Encode([]rune(pad))
		var fill []uint16
		for len(fill) < need {
			fill = append(fill, padUnits...)
		}
		fill = fill[:need]
		var out []uint16
		if start {
			out = append(append([]uint16{}, fill...), u...)
		} else {
			out = append(append([]uint16{}, u...), fill...)
		}
		return jsvalue.Str(string(utf16.Decode(out))), nil
	}
}

func sliceRange(n int, args []jsvalue.Value) (int, int) {
	start := 0
	if len(args) > 0 {
		start = clampIndex(int(jsvalue.ToNumber(args[0])), n)
	}
	end := n
	if len(args) > 1 && !args[1].IsUndefined() {
		end = clampIndex(int(jsvalue.ToNumber(args[1])), n)
	}
	if end < start {
		end = start
	}
	return start, end
}

func clampIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func nan() float64 {
	var z float64
	return z / z
}
