package browser

import (
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

func pseudoRandom() float64 { return rand.Float64() }

// installGlobals wires the free-standing globals every script expects
// outside of window/navigator/document: Math, JSON, the primitive
// wrapper/array/object constructors, parseInt/parseFloat/isNaN/isFinite,
// the URI encode/decode family, and the typed-array constructors (spec
// §4.A/§4.B).
func installGlobals(in *interp.Interpreter, window *jsvalue.Record) {
	installMath(in, window)
	installJSON(in, window)
	installURIFuncs(in, window)
	installConstructors(in, window)
	installTypedArrayConstructors(in, window)

	defineBoth(in, window, "parseInt", native("parseInt", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		s := strings.TrimSpace(jsvalue.ToString(arg0(args)))
		radix := 10
		if len(args) > 1 && !args[1].IsUndefined() {
			radix = int(jsvalue.ToNumber(args[1]))
			if radix == 0 {
				radix = 10
			}
		}
		neg := false
		if strings.HasPrefix(s, "-") {
			neg = true
			s = s[1:]
		} else if strings.HasPrefix(s, "+") {
			s = s[1:]
		}
		if (radix == 16 || radix == 10) && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
			s = s[2:]
			radix = 16
		}
		end := 0
		for end < len(s) && isDigitInRadix(s[end], radix) {
			end++
		}
		if end == 0 {
			return jsvalue.Num(math.NaN()), nil
		}
		n, err := strconv.ParseInt(s[:end], radix, 64)
		if err != nil {
			return jsvalue.Num(math.NaN()), nil
		}
		if neg {
			n = -n
		}
		return jsvalue.Num(float64(n)), nil
	}))

	defineBoth(in, window, "parseFloat", native("parseFloat", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		s := strings.TrimSpace(jsvalue.ToString(arg0(args)))
		end := 0
		seenDot, seenExp := false, false
		for end < len(s) {
			c := s[end]
			if c >= '0' && c <= '9' {
				end++
				continue
			}
			if c == '.' && !seenDot && !seenExp {
				seenDot = true
				end++
				continue
			}
			if (c == 'e' || c == 'E') && !seenExp && end > 0 {
				seenExp = true
				end++
				if end < len(s) && (s[end] == '+' || s[end] == '-') {
					end++
				}
				continue
			}
			if (c == '+' || c == '-') && end == 0 {
				end++
				continue
			}
			break
		}
		if end == 0 {
			return jsvalue.Num(math.NaN()), nil
		}
		f, err := strconv.ParseFloat(s[:end], 64)
		if err != nil {
			return jsvalue.Num(math.NaN()), nil
		}
		return jsvalue.Num(f), nil
	}))

	defineBoth(in, window, "isNaN", native("isNaN", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Bool(math.IsNaN(jsvalue.ToNumber(arg0(args)))), nil
	}))
	defineBoth(in, window, "isFinite", native("isFinite", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		n := jsvalue.ToNumber(arg0(args))
		return jsvalue.Bool(!math.IsNaN(n) && !math.IsInf(n, 0)), nil
	}))
}

func isDigitInRadix(c byte, radix int) bool {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'z':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		v = int(c-'A') + 10
	default:
		return false
	}
	return v < radix
}

func arg0(args []jsvalue.Value) jsvalue.Value {
	if len(args) == 0 {
		return jsvalue.Undefined
	}
	return args[0]
}

func installMath(in *interp.Interpreter, window *jsvalue.Record) {
	m := jsproto.NewObjectRecord()
	m.Set("PI", jsvalue.Num(math.Pi))
	m.Set("E", jsvalue.Num(math.E))
	m.Set("LN2", jsvalue.Num(math.Ln2))
	m.Set("LN10", jsvalue.Num(math.Log(10)))
	m.Set("SQRT2", jsvalue.Num(math.Sqrt2))

	unary := func(name string, fn func(float64) float64) {
		m.Set(name, native(name, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return jsvalue.Num(fn(jsvalue.ToNumber(arg0(args)))), nil
		}))
	}
	unary("abs", math.Abs)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("trunc", math.Trunc)
	unary("sqrt", math.Sqrt)
	unary("cbrt", math.Cbrt)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("atan", math.Atan)
	unary("asin", math.Asin)
	unary("acos", math.Acos)
	unary("log", math.Log)
	unary("log2", math.Log2)
	unary("log10", math.Log10)
	unary("exp", math.Exp)
	unary("sign", func(f float64) float64 {
		switch {
		case f > 0:
			return 1
		case f < 0:
			return -1
		default:
			return f
		}
	})
	unary("round", func(f float64) float64 { return math.Floor(f + 0.5) })

	m.Set("pow", native("pow", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Num(math.Pow(jsvalue.ToNumber(arg0(args)), jsvalue.ToNumber(arg1(args)))), nil
	}))
	m.Set("atan2", native("atan2", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Num(math.Atan2(jsvalue.ToNumber(arg0(args)), jsvalue.ToNumber(arg1(args)))), nil
	}))
	m.Set("hypot", native("hypot", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		sum := 0.0
		for _, a := range args {
			n := jsvalue.ToNumber(a)
			sum += n * n
		}
		return jsvalue.Num(math.Sqrt(sum)), nil
	}))
	m.Set("max", native("max", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		if len(args) == 0 {
			return jsvalue.Num(math.Inf(-1)), nil
		}
		best := math.Inf(-1)
		for _, a := range args {
			n := jsvalue.ToNumber(a)
			if math.IsNaN(n) {
				return jsvalue.Num(math.NaN()), nil
			}
			if n > best {
				best = n
			}
		}
		return jsvalue.Num(best), nil
	}))
	m.Set("min", native("min", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		if len(args) == 0 {
			return jsvalue.Num(math.Inf(1)), nil
		}
		best := math.Inf(1)
		for _, a := range args {
			n := jsvalue.ToNumber(a)
			if math.IsNaN(n) {
				return jsvalue.Num(math.NaN()), nil
			}
			if n < best {
				best = n
			}
		}
		return jsvalue.Num(best), nil
	}))
	m.Set("random", native("random", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Num(pseudoRandom()), nil
	}))
	window.Set("Math", jsvalue.FromRecord(m))
}

func arg1(args []jsvalue.Value) jsvalue.Value {
	if len(args) < 2 {
		return jsvalue.Undefined
	}
	return args[1]
}

func installURIFuncs(in *interp.Interpreter, window *jsvalue.Record) {
	defineBoth(in, window, "encodeURIComponent", native("encodeURIComponent", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Str(encodeURI(jsvalue.ToString(arg0(args)), uriComponentUnreserved)), nil
	}))
	defineBoth(in, window, "encodeURI", native("encodeURI", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Str(encodeURI(jsvalue.ToString(arg0(args)), uriUnreserved)), nil
	}))
	defineBoth(in, window, "decodeURIComponent", native("decodeURIComponent", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		s, err := decodeURI(jsvalue.ToString(arg0(args)))
		if err != nil {
			return jsvalue.Undefined, err
		}
		return jsvalue.Str(s), nil
	}))
	defineBoth(in, window, "decodeURI", native("decodeURI", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		s, err := decodeURI(jsvalue.ToString(arg0(args)))
		if err != nil {
			return jsvalue.Undefined, err
		}
		return jsvalue.Str(s), nil
	}))
	defineBoth(in, window, "escape", native("escape", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Str(encodeURI(jsvalue.ToString(arg0(args)), uriEscapeUnreserved)), nil
	}))
	defineBoth(in, window, "unescape", native("unescape", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		s, err := decodeURI(strings.ReplaceAll(jsvalue.ToString(arg0(args)), "%u", "%"))
		if err != nil {
			return jsvalue.Undefined, err
		}
		return jsvalue.Str(s), nil
	}))
}

const (
	uriUnreserved          = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_.!~*'();/?:@&=+$,#"
	uriComponentUnreserved = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_.!~*'()"
	uriEscapeUnreserved    = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789@*_+-./"
)

func encodeURI(s, safe string) string {
	var b strings.Builder
	for _, c := range []byte(s) {
		if strings.IndexByte(safe, c) >= 0 {
			b.WriteByte(c)
		} else {
			b.WriteString("%")
			b.WriteString(strings.ToUpper(strconv.FormatInt(int64(c), 16)))
		}
	}
	return b.String()
}

func decodeURI(s string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' {
			if i+2 >= len(s) {
				return "", jsproto.NewURIError("URI malformed")
			}
			n, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return "", jsproto.NewURIError("URI malformed")
			}
			b.WriteByte(byte(n))
			i += 2
		} else {
			b.WriteByte(s[i])
		}
	}
	return b.String(), nil
}
