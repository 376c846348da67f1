package browser

import (
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// installConsole wires console.log/info/debug (plain stdout) and
// console.warn/error (colorized stderr), using the same fatih/color +
// go-colorable pairing esbuild's CLI uses for Windows-safe ANSI output.
func installConsole(in *interp.Interpreter, window *jsvalue.Record) {
	stdout := colorable.NewColorableStdout()
	stderr := colorable.NewColorableStderr()

	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	plain := func(name string) jsvalue.Value {
		return native(name, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			stdout.Write([]byte(formatArgs(args) + "\n"))
			return jsvalue.Undefined, nil
		})
	}
	colored := func(name string, c *color.Color) jsvalue.Value {
		return native(name, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			stderr.Write([]byte(c.Sprint(formatArgs(args)) + "\n"))
			return jsvalue.Undefined, nil
		})
	}

	rec := jsproto.NewObjectRecord()
	rec.Class = "console"
	rec.Set("log", plain("log"))
	rec.Set("info", plain("info"))
	rec.Set("debug", plain("debug"))
	rec.Set("trace", plain("trace"))
	rec.Set("warn", colored("warn", yellow))
	rec.Set("error", colored("error", red))
	rec.Set("group", plain("group"))
	rec.Set("groupEnd", native("groupEnd", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Undefined, nil
	}))
	rec.Set("assert", native("assert", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		if len(args) > 0 && jsvalue.ToBoolean(args[0]) {
			return jsvalue.Undefined, nil
		}
		stderr.Write([]byte(red.Sprint("Assertion failed: "+formatArgs(args[min(1, len(args)):])) + "\n"))
		return jsvalue.Undefined, nil
	}))

	defineBoth(in, window, "console", jsvalue.FromRecord(rec))
}

func formatArgs(args []jsvalue.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = consoleFormat(a)
	}
	return strings.Join(parts, " ")
}

func consoleFormat(v jsvalue.Value) string {
	switch v.Kind() {
	case jsvalue.KindString:
		return v.Str()
	default:
		return jsvalue.ToString(v)
	}
}
