package jsproto

import "github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"

func callableGet(this jsvalue.Value, key string) (jsvalue.Value, error) {
	c := this.Callable()
	switch key {
	case "name":
		return jsvalue.Str(c.Name), nil
	case "length":
		return jsvalue.Num(float64(len(c.Params))), nil
	case "prototype":
		if c.Prototype == nil {
			return jsvalue.Undefined, nil
		}
		return jsvalue.FromRecord(c.Prototype), nil
	case "call":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			fn := this
			boundThis := arg(args, 0)
			rest := args
			if len(rest) > 0 {
				rest = rest[1:]
			}
			return callCallback(fn, boundThis, rest)
		}), nil
	case "apply":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			fn := this
			boundThis := arg(args, 0)
			var rest []jsvalue.Value
			if len(args) > 1 && args[1].Kind() == jsvalue.KindList {
				rest = args[1].List().Items
			}
			return callCallback(fn, boundThis, rest)
		}), nil
	case "bind":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			target := this.Callable()
			boundThis := arg(args, 0)
			var boundArgs []jsvalue.Value
			if len(args) > 1 {
				boundArgs = append([]jsvalue.Value{}, args[1:]...)
			}
			bound := &jsvalue.Callable{
				Name:      "bound " + target.Name,
				Bound:     true,
				BoundThis: boundThis,
				BoundArgs: boundArgs,
				BoundOf:   target,
				Own:       jsvalue.NewRecord(nil),
			}
			return jsvalue.FromCallable(bound), nil
		}), nil
	case "toString":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return jsvalue.Str(jsvalue.ToString(this)), nil
		}), nil
	}
	if v, ok := c.Own.Get(key); ok {
		return v, nil
	}
	if v, ok := objectProtoMethod(key); ok {
		return v, nil
	}
	return jsvalue.Undefined, nil
}

func callableSet(this jsvalue.Value, key string, val jsvalue.Value) error {
	c := this.Callable()
	if key == "prototype" {
		if val.Kind() == jsvalue.KindRecord {
			c.Prototype = val.Record()
		}
		return nil
	}
	c.Own.Set(key, val)
	return nil
}
