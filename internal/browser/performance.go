package browser

import (
	"time"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// installPerformance builds window.performance. now() is monotonic from
// installation time, matching the real API's "time since navigation
// start" contract without a real navigation/timing pipeline behind it
// (spec Non-goals: no real network stack).
func installPerformance(in *interp.Interpreter, window *jsvalue.Record) {
	start := time.Now()

	p := jsproto.NewObjectRecord()
	p.Class = "Performance"
	p.Set("now", native("now", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Num(float64(time.Since(start)) / float64(time.Millisecond)), nil
	}))
	p.Set("timeOrigin", jsvalue.Num(float64(start.UnixMilli())))

	eventCounts := jsproto.NewObjectRecord()
	eventCounts.Set("size", jsvalue.Num(0))
	p.Set("eventCounts", jsvalue.FromRecord(eventCounts))

	navigation := jsproto.NewObjectRecord()
	navigation.Set("redirectCount", jsvalue.Num(0))
	navigation.Set("type", jsvalue.Num(1))
	p.Set("navigation", jsvalue.FromRecord(navigation))

	p.Set("timing", jsvalue.FromRecord(jsproto.NewObjectRecord()))

	memory := jsproto.NewObjectRecord()
	memory.Set("jsHeapSizeLimit", jsvalue.Num(4294705152))
	memory.Set("totalJSHeapSize", jsvalue.Num(10000000))
	memory.Set("usedJSHeapSize", jsvalue.Num(5000000))
	p.Set("memory", jsvalue.FromRecord(memory))

	p.Set("mark", native("mark", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Undefined, nil
	}))
	p.Set("measure", native("measure", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Undefined, nil
	}))
	p.Set("getEntries", native("getEntries", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.FromList(jsvalue.NewList(nil)), nil
	}))
	p.Set("getEntriesByType", native("getEntriesByType", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.FromList(jsvalue.NewList(nil)), nil
	}))

	defineBoth(in, window, "performance", jsvalue.FromRecord(p))
}
