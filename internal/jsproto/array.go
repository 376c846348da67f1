package jsproto

import "github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"

func listGet(this jsvalue.Value, key string) (jsvalue.Value, error) {
	l := this.List()
	if key == "length" {
		return jsvalue.Num(float64(l.Len())), nil
	}
	if idx, ok := parseIndex(key); ok {
		return l.Get(idx), nil
	}
	if key == "index" || key == "input" {
		if idx, input, ok := MatchInfo(l); ok {
			if key == "index" {
				return jsvalue.Num(float64(idx)), nil
			}
			return jsvalue.Str(input), nil
		}
	}
	if fn, ok := arrayMethod(key); ok {
		return method(key, fn), nil
	}
	if v, ok := objectProtoMethod(key); ok {
		return v, nil
	}
	return jsvalue.Undefined, nil
}

func listSet(this jsvalue.Value, key string, val jsvalue.Value) error {
	l := this.List()
	if key == "length" {
		n := int(jsvalue.ToNumber(val))
		if n < 0 {
			return NewRangeError("Invalid array length")
		}
		l.SetLen(n)
		return nil
	}
	if idx, ok := parseIndex(key); ok {
		l.Set(idx, val)
		return nil
	}
	return nil
}

func listDelete(this jsvalue.Value, key string) bool {
	l := this.List()
	if idx, ok := parseIndex(key); ok && idx >= 0 && idx < l.Len() {
		l.Items[idx] = jsvalue.Undefined
		return true
	}
	return true
}

// arrayMethod returns the Array.prototype implementation for name, if any.
// Higher-order methods (map/filter/forEach/...) accept a callback Value
// and must invoke it through the supplied call hook, since jsproto cannot
// import internal/interp (which depends on jsproto) without a cycle. The
// call hook is installed by interp.New, which assigns CallHook.
func arrayMethod(name string) (jsvalue.NativeFunc, bool) {
	switch name {
	case "push":
		return func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			l := this.List()
			l.Items = append(l.Items, args...)
			return jsvalue.Num(float64(l.Len())), nil
		}, true
	case "pop":
		return func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			l := this.List()
			if l.Len() == 0 {
				return jsvalue.Undefined, nil
			}
			last := l.Items[l.Len()-1]
			l.Items = l.Items[:l.Len()-1]
			return last, nil
		}, true
	case "shift":
		return func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			l := this.List()
			if l.Len() == 0 {
				return jsvalue.Undefined, nil
			}
			first := l.Items[0]
			l.Items = l.Items[1:]
			return first, nil
		}, true
	case "unshift":
		return func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			l := this.List()
			l.Items = append(append([]jsvalue.Value{}, args...), l.Items...)
			return jsvalue.Num(float64(l.Len())), nil
		}, true
	case "slice":
		return func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			l := this.List()
			start, end := sliceRange(l.Len(), args)
			out := append([]jsvalue.Value{}, l.Items[start:end]...)
			return jsvalue.FromList(jsvalue.NewList(out)), nil
		}, true
	case "splice":
		return func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			l := this.List()
			start := clampIndex(int(jsvalue.ToNumber(arg(args, 0))), l.Len())
			delCount := l.Len() - start
			if len(args) > 1 {
				delCount = int(jsvalue.ToNumber(args[1]))
				if delCount < 0 {
					delCount = 0
				}
				if start+delCount > l.Len() {
					delCount = l.Len() - start
				}
			}
			removed := append([]jsvalue.Value{}, l.Items[start:start+delCount]...)
			var inserted []jsvalue.Value
			if len(args) > 2 {
				inserted = args[2:]
			}
			tail := append([]jsvalue.Value{}, l.Items[start+delCount:]...)
			l.Items = append(append(append([]jsvalue.Value{}, l.Items[:start]...), inserted...), tail...)
			return jsvalue.FromList(jsvalue.NewList(removed)), nil
		}, true
	case "concat":
		return func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			out := append([]jsvalue.Value{}, this.List().Items...)
			for _, a := range args {
				if a.Kind() == jsvalue.KindList {
					out = append(out, a.List().Items...)
				} else {
					out = append(out, a)
				}
			}
			return jsvalue.FromList(jsvalue.NewList(out)), nil
		}, true
	case "join":
		return func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			sep := ","
			if len(args) > 0 && !args[0].IsUndefined() {
				sep = jsvalue.ToString(args[0])
			}
			return joinList(this.List().Items, sep), nil
		}, true
	case "reverse":
		return func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			l := this.List()
			for i, j := 0, l.Len()-1; i < j; i, j = i+1, j-1 {
				l.Items[i], l.Items[j] = l.Items[j], l.Items[i]
			}
			return this, nil
		}, true
	case "indexOf":
		return func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			target := arg(args, 0)
			for i, v := range this.List().Items {
				if jsvalue.StrictEquals(v, target) {
					return jsvalue.Num(float64(i)), nil
				}
			}
			return jsvalue.Num(-1), nil
		}, true
	case "lastIndexOf":
		return func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			target := arg(args, 0)
			items := this.List().Items
			for i := len(items) - 1; i >= 0; i-- {
				if jsvalue.StrictEquals(items[i], target) {
					return jsvalue.Num(float64(i)), nil
				}
			}
			return jsvalue.Num(-1), nil
		}, true
	case "includes":
		return func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			target := arg(args, 0)
			for _, v := range this.List().Items {
				if jsvalue.SameValueZero(v, target) {
					return jsvalue.Bool(true), nil
				}
			}
			return jsvalue.Bool(false), nil
		}, true
	case "flat":
		return func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			depth := 1
			if len(args) > 0 && !args[0].IsUndefined() {
				depth = int(jsvalue.ToNumber(args[0]))
			}
			return jsvalue.FromList(jsvalue.NewList(flatten(this.List().Items, depth))), nil
		}, true
	case "fill":
		return func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			l := this.List()
			v := arg(args, 0)
			start, end := sliceRange(l.Len(), args[min(1, len(args)):])
			for i := start; i < end; i++ {
				l.Items[i] = v
			}
			return this, nil
		}, true
	case "toString":
		return func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return joinList(this.List().Items, ","), nil
		}, true
	case "map", "filter", "forEach", "reduce", "reduceRight", "some", "every", "find", "findIndex", "sort", "flatMap":
		return higherOrder(name), true
	}
	return nil, false
}

// joinList implements the shared comma-joining semantics behind both
// Array.prototype.join and Array.prototype.toString (which is exactly
// join(",") in ECMAScript).
func joinList(items []jsvalue.Value, sep string) jsvalue.Value {
	var b []byte
	for i, v := range items {
		if i > 0 {
			b = append(b, sep...)
		}
		if v.IsNullish() {
			continue
		}
		b = append(b, jsvalue.ToString(v)...)
	}
	return jsvalue.Str(string(b))
}

func flatten(items []jsvalue.Value, depth int) []jsvalue.Value {
	out := make([]jsvalue.Value, 0, len(items))
	for _, v := range items {
		if depth > 0 && v.Kind() == jsvalue.KindList {
			out = append(out, flatten(v.List().Items, depth-1)...)
		} else {
			out = append(out, v)
		}
	}
	return out
}

// CallHook is installed by internal/interp at startup so jsproto's
// higher-order Array methods (map/filter/forEach/reduce/sort/flatMap/...)
// can invoke user callbacks without jsproto importing interp (which would
// cycle back through jsproto itself).
var CallHook func(fn jsvalue.Value, this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error)

func callCallback(fn jsvalue.Value, this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
	if CallHook == nil {
		return jsvalue.Undefined, NewTypeError("no callback execution hook installed")
	}
	return CallHook(fn, this, args)
}

func higherOrder(name string) jsvalue.NativeFunc {
	return func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		l := this.List()
		cb := arg(args, 0)
		thisArg := arg(args, 1)
		switch name {
		case "forEach":
			for i, v := range l.Items {
				if _, err := callCallback(cb, thisArg, []jsvalue.Value{v, jsvalue.Num(float64(i)), this}); err != nil {
					return jsvalue.Undefined, err
				}
			}
			return jsvalue.Undefined, nil
		case "map":
			out := make([]jsvalue.Value, l.Len())
			for i, v := range l.Items {
				r, err := callCallback(cb, thisArg, []jsvalue.Value{v, jsvalue.Num(float64(i)), this})
				if err != nil {
					return jsvalue.Undefined, err
				}
				out[i] = r
			}
			return jsvalue.FromList(jsvalue.NewList(out)), nil
		case "flatMap":
			out := make([]jsvalue.Value, 0, l.Len())
			for i, v := range l.Items {
				r, err := callCallback(cb, thisArg, []jsvalue.Value{v, jsvalue.Num(float64(i)), this})
				if err != nil {
					return jsvalue.Undefined, err
				}
				if r.Kind() == jsvalue.KindList {
					out = append(out, r.List().Items...)
				} else {
					out = append(out, r)
				}
			}
			return jsvalue.FromList(jsvalue.NewList(out)), nil
		case "filter":
			var out []jsvalue.Value
			for i, v := range l.Items {
				r, err := callCallback(cb, thisArg, []jsvalue.Value{v, jsvalue.Num(float64(i)), this})
				if err != nil {
					return jsvalue.Undefined, err
				}
				if jsvalue.ToBoolean(r) {
					out = append(out, v)
				}
			}
			return jsvalue.FromList(jsvalue.NewList(out)), nil
		case "some":
			for i, v := range l.Items {
				r, err := callCallback(cb, thisArg, []jsvalue.Value{v, jsvalue.Num(float64(i)), this})
				if err != nil {
					return jsvalue.Undefined, err
				}
				if jsvalue.ToBoolean(r) {
					return jsvalue.Bool(true), nil
				}
			}
			return jsvalue.Bool(false), nil
		case "every":
			for i, v := range l.Items {
				r, err := callCallback(cb, thisArg, []jsvalue.Value{v, jsvalue.Num(float64(i)), this})
				if err != nil {
					return jsvalue.Undefined, err
				}
				if !jsvalue.ToBoolean(r) {
					return jsvalue.Bool(false), nil
				}
			}
			return jsvalue.Bool(true), nil
		case "find":
			for i, v := range l.Items {
				r, err := callCallback(cb, thisArg, []jsvalue.Value{v, jsvalue.Num(float64(i)), this})
				if err != nil {
					return jsvalue.Undefined, err
				}
				if jsvalue.ToBoolean(r) {
					return v, nil
				}
			}
			return jsvalue.Undefined, nil
		case "findIndex":
			for i, v := range l.Items {
				r, err := callCallback(cb, thisArg, []jsvalue.Value{v, jsvalue.Num(float64(i)), this})
				if err != nil {
					return jsvalue.Undefined, err
				}
				if jsvalue.ToBoolean(r) {
					return jsvalue.Num(float64(i)), nil
				}
			}
			return jsvalue.Num(-1), nil
		case "reduce", "reduceRight":
			items := l.Items
			start := 0
			var acc jsvalue.Value
			haveAcc := false
			if len(args) > 1 {
				acc = args[1]
				haveAcc = true
			}
			indices := make([]int, len(items))
			for i := range items {
				if name == "reduceRight" {
					indices[i] = len(items) - 1 - i
				} else {
					indices[i] = i
				}
			}
			for _, i := range indices[start:] {
				if !haveAcc {
					acc = items[i]
					haveAcc = true
					continue
				}
				r, err := callCallback(cb, jsvalue.Undefined, []jsvalue.Value{acc, items[i], jsvalue.Num(float64(i)), this})
				if err != nil {
					return jsvalue.Undefined, err
				}
				acc = r
			}
			if !haveAcc {
				return jsvalue.Undefined, NewTypeError("Reduce of empty array with no initial value")
			}
			return acc, nil
		case "sort":
			items := append([]jsvalue.Value{}, l.Items...)
			var sortErr error
			insertionSort(items, func(a, b jsvalue.Value) bool {
				if sortErr != nil {
					return false
				}
				if cb.IsUndefined() {
					return jsvalue.ToString(a) < jsvalue.ToString(b)
				}
				r, err := callCallback(cb, jsvalue.Undefined, []jsvalue.Value{a, b})
				if err != nil {
					sortErr = err
					return false
				}
				return jsvalue.ToNumber(r) < 0
			})
			if sortErr != nil {
				return jsvalue.Undefined, sortErr
			}
			copy(l.Items, items)
			return this, nil
		}
		return jsvalue.Undefined, nil
	}
}

// insertionSort is a stable O(n^2) sort, which is fine for fingerprinting
// scripts' typically small arrays and keeps the comparator's ability to
// return an error straightforward to thread through (sort.Slice's
// comparator signature has no error return).
func insertionSort(items []jsvalue.Value, less func(a, b jsvalue.Value) bool) {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && less(items[j], items[j-1]); j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}
