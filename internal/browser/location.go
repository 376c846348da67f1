package browser

import (
	"net/url"
	"strings"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// installLocation builds window.location by parsing cfg.Domain as the
// realm's seed URL (spec §6 "domain" is described as an absolute URL, not
// a bare hostname). A bare hostname is still accepted and defaulted to
// https://. There is no real network stack (spec Non-goals), so
// assign/replace/reload are no-ops that a script can call without
// erroring.
func installLocation(in *interp.Interpreter, window *jsvalue.Record, cfg Config) {
	loc := jsproto.NewObjectRecord()
	loc.Class = "Location"

	seed := cfg.Domain
	if !strings.Contains(seed, "://") {
		seed = "https://" + seed
	}
	u, err := url.Parse(seed)
	if err != nil || u.Host == "" {
		u = &url.URL{Scheme: "https", Host: cfg.Domain, Path: "/"}
	}
	pathname := u.Path
	if pathname == "" {
		pathname = "/"
	}
	search := ""
	if u.RawQuery != "" {
		search = "?" + u.RawQuery
	}
	hash := ""
	if u.Fragment != "" {
		hash = "#" + u.Fragment
	}

	loc.Set("href", jsvalue.Str(u.String()))
	loc.Set("protocol", jsvalue.Str(u.Scheme+":"))
	loc.Set("host", jsvalue.Str(u.Host))
	loc.Set("hostname", jsvalue.Str(u.Hostname()))
	loc.Set("port", jsvalue.Str(u.Port()))
	loc.Set("pathname", jsvalue.Str(pathname))
	loc.Set("search", jsvalue.Str(search))
	loc.Set("hash", jsvalue.Str(hash))
	loc.Set("origin", jsvalue.Str(u.Scheme+"://"+u.Host))

	loc.Set("toString", native("toString", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		v, _ := loc.Get("href")
		return v, nil
	}))
	loc.Set("assign", native("assign", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		if len(args) > 0 {
			loc.Set("href", jsvalue.Str(jsvalue.ToString(args[0])))
		}
		return jsvalue.Undefined, nil
	}))
	loc.Set("replace", native("replace", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		if len(args) > 0 {
			loc.Set("href", jsvalue.Str(jsvalue.ToString(args[0])))
		}
		return jsvalue.Undefined, nil
	}))
	loc.Set("reload", native("reload", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Undefined, nil
	}))

	defineBoth(in, window, "location", jsvalue.FromRecord(loc))
}
