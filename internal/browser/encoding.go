package browser

import (
	"encoding/base64"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// installEncoding wires atob/btoa (base64 over Latin-1, spec §4.B), Blob,
// and TextEncoder/TextDecoder (UTF-8 byte <-> string, using stdlib
// encoding/base64/unicode/utf8/unicode/utf16 the same way esbuild's own
// js_lexer leans on unicode/utf16 for UTF-16 code-unit semantics —
// there is no ecosystem replacement worth pulling in for either).
func installEncoding(in *interp.Interpreter, window *jsvalue.Record) {
	defineBoth(in, window, "btoa", native("btoa", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		s := jsvalue.ToString(arg0(args))
		buf := make([]byte, 0, len(s))
		for _, r := range s {
			if r > 0xFF {
				return jsvalue.Undefined, jsproto.NewTypeError("btoa: string contains characters outside of the Latin1 range")
			}
			buf = append(buf, byte(r))
		}
		return jsvalue.Str(base64.StdEncoding.EncodeToString(buf)), nil
	}))
	defineBoth(in, window, "atob", native("atob", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		s := jsvalue.ToString(arg0(args))
		buf, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			if buf2, err2 := base64.RawStdEncoding.DecodeString(s); err2 == nil {
				buf, err = buf2, nil
			}
		}
		if err != nil {
			return jsvalue.Undefined, jsproto.NewTypeError("Failed to decode base64 string")
		}
		out := make([]rune, len(buf))
		for i, b := range buf {
			out[i] = rune(b)
		}
		return jsvalue.Str(string(out)), nil
	}))

	installBlob(in, window)
	installTextCodecs(in, window)
}

func installBlob(in *interp.Interpreter, window *jsvalue.Record) {
	ctor := jsvalue.NewNative("Blob", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		var text string
		if len(args) > 0 && args[0].Kind() == jsvalue.KindList {
			for _, part := range args[0].List().Items {
				text += partToString(part)
			}
		}
		typ := ""
		if len(args) > 1 && args[1].Kind() == jsvalue.KindRecord {
			if v, ok := args[1].Record().Get("type"); ok {
				typ = jsvalue.ToString(v)
			}
		}
		rec := jsproto.NewObjectRecord()
		rec.Class = "Blob"
		rec.Set("size", jsvalue.Num(float64(len(text))))
		rec.Set("type", jsvalue.Str(typ))
		rec.Set("text", native("text", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return jsvalue.Str(text), nil
		}))
		rec.Set("__text__", jsvalue.Str(text))
		return jsvalue.FromRecord(rec), nil
	})
	defineBoth(in, window, "Blob", jsvalue.FromCallable(ctor))
	defineBoth(in, window, "URL", urlStaticHelpers())
}

func partToString(v jsvalue.Value) string {
	if v.Kind() == jsvalue.KindByteArray {
		a := v.ByteArray()
		b := make([]byte, len(a.Elems))
		for i, e := range a.Elems {
			b[i] = byte(uint8(e))
		}
		return string(b)
	}
	return jsvalue.ToString(v)
}

// blobText recovers the text a Blob() call stashed in "__text__", used by
// installTimersAndWorker's Worker(blob) constructor.
func blobText(v jsvalue.Value) (string, bool) {
	if v.Kind() != jsvalue.KindRecord {
		return "", false
	}
	r, ok := v.Record().Get("__text__")
	if !ok {
		return "", false
	}
	return jsvalue.ToString(r), true
}

func urlStaticHelpers() jsvalue.Value {
	ctor := jsvalue.NewNative("URL", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		rec := jsproto.NewObjectRecord()
		rec.Class = "URL"
		rec.Set("href", jsvalue.Str(jsvalue.ToString(arg0(args))))
		return jsvalue.FromRecord(rec), nil
	})
	ctor.Own.Set("createObjectURL", native("createObjectURL", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Str("blob:sandbox/0"), nil
	}))
	ctor.Own.Set("revokeObjectURL", native("revokeObjectURL", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Undefined, nil
	}))
	return jsvalue.FromCallable(ctor)
}

func installTextCodecs(in *interp.Interpreter, window *jsvalue.Record) {
	defineBoth(in, window, "TextEncoder", jsvalue.FromCallable(jsvalue.NewNative("TextEncoder", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		rec := jsproto.NewObjectRecord()
		rec.Class = "TextEncoder"
		rec.Set("encoding", jsvalue.Str("utf-8"))
		rec.Set("encode", native("encode", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			s := jsvalue.ToString(arg0(args))
			buf := []byte(s)
			arr := jsvalue.NewByteArray(jsvalue.ElemU8, len(buf))
			for i, b := range buf {
				arr.Elems[i] = float64(b)
			}
			return jsvalue.FromByteArray(arr), nil
		}))
		return jsvalue.FromRecord(rec), nil
	})))

	defineBoth(in, window, "TextDecoder", jsvalue.FromCallable(jsvalue.NewNative("TextDecoder", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		rec := jsproto.NewObjectRecord()
		rec.Class = "TextDecoder"
		encoding := "utf-8"
		if len(args) > 0 {
			encoding = jsvalue.ToString(args[0])
		}
		rec.Set("encoding", jsvalue.Str(encoding))
		rec.Set("decode", native("decode", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			if len(args) == 0 || args[0].Kind() != jsvalue.KindByteArray {
				return jsvalue.Str(""), nil
			}
			arr := args[0].ByteArray()
			buf := make([]byte, len(arr.Elems))
			for i, e := range arr.Elems {
				buf[i] = byte(uint8(e))
			}
			if !utf8.Valid(buf) {
				return jsvalue.Str(string(utf16.Decode(bytesToUTF16(buf)))), nil
			}
			return jsvalue.Str(string(buf)), nil
		}))
		return jsvalue.FromRecord(rec), nil
	})))
}

func bytesToUTF16(b []byte) []uint16 {
	out := make([]uint16, len(b)/2)
	for i := range out {
		out[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	return out
}
