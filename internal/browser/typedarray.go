package browser

import (
	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// installTypedArrayConstructors wires Int8Array..Float64Array (spec §4.A
// "ByteArray"/ElemKind). Each constructor accepts a length (a fresh
// zero-filled buffer), a List of initial values, or another typed array to
// copy; any other argument (including an array-like record) yields an
// empty array.
func installTypedArrayConstructors(in *interp.Interpreter, window *jsvalue.Record) {
	kinds := []jsvalue.ElemKind{
		jsvalue.ElemI8, jsvalue.ElemU8, jsvalue.ElemI16, jsvalue.ElemU16,
		jsvalue.ElemI32, jsvalue.ElemU32, jsvalue.ElemF16, jsvalue.ElemF32, jsvalue.ElemF64,
	}
	for _, k := range kinds {
		defineBoth(in, window, k.Name(), typedArrayConstructor(k))
	}
}

func typedArrayConstructor(kind jsvalue.ElemKind) jsvalue.Value {
	name := kind.Name()
	return jsvalue.FromCallable(jsvalue.NewNative(name, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		if len(args) == 0 {
			return jsvalue.FromByteArray(jsvalue.NewByteArray(kind, 0)), nil
		}
		if args[0].Kind() == jsvalue.KindNumber {
			return jsvalue.FromByteArray(jsvalue.NewByteArray(kind, int(args[0].Num()))), nil
		}
		if args[0].Kind() == jsvalue.KindList {
			items := args[0].List().Items
			arr := jsvalue.NewByteArray(kind, len(items))
			for i, v := range items {
				arr.Elems[i] = jsvalue.ToNumber(v)
			}
			return jsvalue.FromByteArray(arr), nil
		}
		if args[0].Kind() == jsvalue.KindByteArray {
			src := args[0].ByteArray()
			arr := jsvalue.NewByteArray(kind, len(src.Elems))
			copy(arr.Elems, src.Elems)
			return jsvalue.FromByteArray(arr), nil
		}
		return jsvalue.FromByteArray(jsvalue.NewByteArray(kind, 0)), nil
	}))
}
