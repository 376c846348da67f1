package jsproto

import "github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"

func byteArrayGet(this jsvalue.Value, key string) (jsvalue.Value, error) {
	a := this.ByteArray()
	if key == "length" || key == "byteLength" {
		n := float64(a.Len())
		if key == "byteLength" {
			n *= float64(a.Kind.ByteWidth())
		}
		return jsvalue.Num(n), nil
	}
	if idx, ok := parseIndex(key); ok {
		if idx < 0 || idx >= a.Len() {
			return jsvalue.Undefined, nil
		}
		return jsvalue.Num(a.Elems[idx]), nil
	}
	switch key {
	case "fill":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			a := this.ByteArray()
			v := reduceElem(a.Kind, jsvalue.ToNumber(arg(args, 0)))
			start, end := sliceRange(a.Len(), args[min(1, len(args)):])
			for i := start; i < end; i++ {
				a.Elems[i] = v
			}
			return this, nil
		}), nil
	case "set":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			a := this.ByteArray()
			src := arg(args, 0)
			offset := 0
			if len(args) > 1 {
				offset = int(jsvalue.ToNumber(args[1]))
			}
			if src.Kind() == jsvalue.KindByteArray {
				for i, v := range src.ByteArray().Elems {
					if offset+i < a.Len() {
						a.Elems[offset+i] = reduceElem(a.Kind, v)
					}
				}
			} else if src.Kind() == jsvalue.KindList {
				for i, v := range src.List().Items {
					if offset+i < a.Len() {
						a.Elems[offset+i] = reduceElem(a.Kind, jsvalue.ToNumber(v))
					}
				}
			}
			return jsvalue.Undefined, nil
		}), nil
	case "slice":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			a := this.ByteArray()
			start, end := sliceRange(a.Len(), args)
			out := jsvalue.NewByteArray(a.Kind, end-start)
			copy(out.Elems, a.Elems[start:end])
			return jsvalue.FromByteArray(out), nil
		}), nil
	case "join":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			sep := ","
			if len(args) > 0 && !args[0].IsUndefined() {
				sep = jsvalue.ToString(args[0])
			}
			var b []byte
			for i, v := range this.ByteArray().Elems {
				if i > 0 {
					b = append(b, sep...)
				}
				b = append(b, jsvalue.NumberToString(v)...)
			}
			return jsvalue.Str(string(b)), nil
		}), nil
	case "forEach", "map":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			a := this.ByteArray()
			cb := arg(args, 0)
			out := make([]float64, a.Len())
			for i, v := range a.Elems {
				r, err := callCallback(cb, jsvalue.Undefined, []jsvalue.Value{jsvalue.Num(v), jsvalue.Num(float64(i)), this})
				if err != nil {
					return jsvalue.Undefined, err
				}
				if key == "map" {
					out[i] = reduceElem(a.Kind, jsvalue.ToNumber(r))
				}
			}
			if key == "map" {
				return jsvalue.FromByteArray(&jsvalue.ByteArray{Kind: a.Kind, Elems: out}), nil
			}
			return jsvalue.Undefined, nil
		}), nil
	}
	if v, ok := objectProtoMethod(key); ok {
		return v, nil
	}
	return jsvalue.Undefined, nil
}

func byteArraySet(this jsvalue.Value, key string, val jsvalue.Value) error {
	a := this.ByteArray()
	if idx, ok := parseIndex(key); ok {
		if idx >= 0 && idx < a.Len() {
			a.Elems[idx] = reduceElem(a.Kind, jsvalue.ToNumber(val))
		}
		return nil
	}
	return nil
}

// reduceElem applies the element kind's modulo-2^width wraparound on
// write, per spec §3's byte-array invariant.
func reduceElem(kind jsvalue.ElemKind, n float64) float64 {
	switch kind {
	case jsvalue.ElemU8:
		return float64(uint8(int64(n)))
	case jsvalue.ElemI8:
		return float64(int8(int64(n)))
	case jsvalue.ElemU16:
		return float64(uint16(int64(n)))
	case jsvalue.ElemI16:
		return float64(int16(int64(n)))
	case jsvalue.ElemU32:
		return float64(uint32(int64(n)))
	case jsvalue.ElemI32:
		return float64(int32(int64(n)))
	default:
		return n
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
