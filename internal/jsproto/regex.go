// Regex support is grounded on github.com/dlclark/regexp2 (see go.mod):
// Go's stdlib regexp is RE2 and cannot express backreferences or
// lookaround, both of which fingerprinting scripts rely on routinely.
package jsproto

import (
	"github.com/dlclark/regexp2"

	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// CompileRegex compiles source/flags into a regexp2.Regexp and stores it
// on the Regex value's Compiled field; later calls return the cached
// result. NewRegexValue and toRegex compile each regex as they create it.
func CompileRegex(r *jsvalue.Regex) (*regexp2.Regexp, error) {
	if re, ok := r.Compiled.(*regexp2.Regexp); ok && re != nil {
		return re, nil
	}
	opts := regexp2.RE2
	for _, f := range r.Flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 's':
			opts |= regexp2.Singleline
		case 'm':
			opts |= regexp2.Multiline
		}
	}
	re, err := regexp2.Compile(r.Source, opts)
	if err != nil {
		return nil, NewTypeError("Invalid regular expression: /%s/: %s", r.Source, err.Error())
	}
	r.Compiled = re
	return re, nil
}

func NewRegexValue(source, flags string) (jsvalue.Value, error) {
	r := &jsvalue.Regex{Source: source, Flags: flags}
	if _, err := CompileRegex(r); err != nil {
		return jsvalue.Undefined, err
	}
	return jsvalue.FromRegex(r), nil
}

func regexGet(this jsvalue.Value, key string) (jsvalue.Value, error) {
	r := this.Regex()
	switch key {
	case "source":
		return jsvalue.Str(r.Source), nil
	case "flags":
		return jsvalue.Str(r.Flags), nil
	case "global":
		return jsvalue.Bool(containsRune(r.Flags, 'g')), nil
	case "ignoreCase":
		return jsvalue.Bool(containsRune(r.Flags, 'i')), nil
	case "multiline":
		return jsvalue.Bool(containsRune(r.Flags, 'm')), nil
	case "lastIndex":
		if v, ok := lastIndexes[r]; ok {
			return jsvalue.Num(float64(v)), nil
		}
		return jsvalue.Num(0), nil
	case "toString":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return jsvalue.Str(jsvalue.ToString(this)), nil
		}), nil
	case "test":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			re, err := CompileRegex(this.Regex())
			if err != nil {
				return jsvalue.Undefined, err
			}
			m, err := re.MatchString(jsvalue.ToString(arg(args, 0)))
			if err != nil {
				return jsvalue.Bool(false), nil
			}
			return jsvalue.Bool(m), nil
		}), nil
	case "exec":
		return method(key, func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
			return regexExec(this.Regex(), jsvalue.ToString(arg(args, 0)))
		}), nil
	}
	return jsvalue.Undefined, nil
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}

// lastIndexes tracks each global regex's lastIndex for exec()'s stateful
// stepping; keyed by the Regex struct pointer, since jsvalue.Regex has no
// room for interpreter-owned state without coupling jsvalue to jsproto.
var lastIndexes = map[*jsvalue.Regex]int{}

func regexExec(r *jsvalue.Regex, s string) (jsvalue.Value, error) {
	re, err := CompileRegex(r)
	if err != nil {
		return jsvalue.Undefined, err
	}
	start := 0
	global := containsRune(r.Flags, 'g')
	if global {
		start = lastIndexes[r]
	}
	if start > len(s) {
		if global {
			lastIndexes[r] = 0
		}
		return jsvalue.Null, nil
	}
	m, err := re.FindStringMatchStartingAt(s, start)
	if err != nil || m == nil {
		if global {
			lastIndexes[r] = 0
		}
		return jsvalue.Null, nil
	}
	if global {
		next := m.Index + m.Length
		if m.Length == 0 {
			next++
		}
		lastIndexes[r] = next
	}
	return matchToArray(m, s), nil
}

func matchToArray(m *regexp2.Match, s string) jsvalue.Value {
	groups := m.Groups()
	items := make([]jsvalue.Value, len(groups))
	for i, g := range groups {
		if len(g.Captures) == 0 {
			items[i] = jsvalue.Undefined
		} else {
			items[i] = jsvalue.Str(g.String())
		}
	}
	list := jsvalue.NewList(items)
	// `.index`/`.input` on a match result are looked up by MatchInfo since
	// Lists only carry numeric/length slots, not arbitrary string keys.
	lastMatchInfo[list] = matchInfo{Index: m.Index, Input: s}
	return jsvalue.FromList(list)
}

type matchInfo struct {
	Index int
	Input string
}

var lastMatchInfo = map[*jsvalue.List]matchInfo{}

// MatchInfo returns the index/input recorded for a regex exec() result
// list, used by listGet (array.go) to answer `.index`/`.input` on it.
func MatchInfo(l *jsvalue.List) (int, string, bool) {
	v, ok := lastMatchInfo[l]
	return v.Index, v.Input, ok
}

// toRegex coerces a match()/matchAll()/search() pattern argument (which may
// be a plain string, matching JS's implicit `new RegExp(pattern)`) into a
// compiled jsvalue.Regex.
func toRegex(pattern jsvalue.Value) (*jsvalue.Regex, error) {
	if pattern.Kind() == jsvalue.KindRegex {
		return pattern.Regex(), nil
	}
	r := &jsvalue.Regex{Source: jsvalue.ToString(pattern)}
	if _, err := CompileRegex(r); err != nil {
		return nil, err
	}
	return r, nil
}

func regexMatch(pattern jsvalue.Value, s string) (jsvalue.Value, error) {
	r, err := toRegex(pattern)
	if err != nil {
		return jsvalue.Undefined, err
	}
	if !containsRune(r.Flags, 'g') {
		return regexExec(r, s)
	}
	re, err := CompileRegex(r)
	if err != nil {
		return jsvalue.Undefined, err
	}
	var out []jsvalue.Value
	m, _ := re.FindStringMatch(s)
	for m != nil {
		out = append(out, jsvalue.Str(m.String()))
		m, _ = re.FindNextMatch(m)
	}
	if out == nil {
		return jsvalue.Null, nil
	}
	return jsvalue.FromList(jsvalue.NewList(out)), nil
}

// regexMatchAll implements String.prototype.matchAll: every match against
// s, each rendered as a full exec()-style match object (so callers can read
// `.index`/captures off each entry), regardless of the `g` flag.
func regexMatchAll(pattern jsvalue.Value, s string) (jsvalue.Value, error) {
	r, err := toRegex(pattern)
	if err != nil {
		return jsvalue.Undefined, err
	}
	re, err := CompileRegex(r)
	if err != nil {
		return jsvalue.Undefined, err
	}
	var out []jsvalue.Value
	m, _ := re.FindStringMatch(s)
	for m != nil {
		out = append(out, matchToArray(m, s))
		m, _ = re.FindNextMatch(m)
	}
	return jsvalue.FromList(jsvalue.NewList(out)), nil
}

// regexSearch implements String.prototype.search: the index of the first
// match, or -1, ignoring any `g` flag/lastIndex state.
func regexSearch(pattern jsvalue.Value, s string) (jsvalue.Value, error) {
	r, err := toRegex(pattern)
	if err != nil {
		return jsvalue.Undefined, err
	}
	re, err := CompileRegex(r)
	if err != nil {
		return jsvalue.Undefined, err
	}
	m, err := re.FindStringMatch(s)
	if err != nil || m == nil {
		return jsvalue.Num(-1), nil
	}
	return jsvalue.Num(float64(m.Index)), nil
}

func regexSplit(pattern jsvalue.Value, s string) ([]jsvalue.Value, error) {
	r := pattern.Regex()
	re, err := CompileRegex(r)
	if err != nil {
		return nil, err
	}
	var out []jsvalue.Value
	last := 0
	m, _ := re.FindStringMatch(s)
	for m != nil {
		out = append(out, jsvalue.Str(s[last:m.Index]))
		last = m.Index + m.Length
		m, _ = re.FindNextMatch(m)
	}
	out = append(out, jsvalue.Str(s[last:]))
	return out, nil
}

func stringReplace(s string, pattern, repl jsvalue.Value, all bool) (jsvalue.Value, error) {
	replStr := ""
	replFn := jsvalue.Value{}
	useFn := repl.Kind() == jsvalue.KindCallable
	if useFn {
		replFn = repl
	} else {
		replStr = jsvalue.ToString(repl)
	}

	if pattern.Kind() != jsvalue.KindRegex {
		sub := jsvalue.ToString(pattern)
		idx := indexOf(s, sub)
		if idx < 0 {
			return jsvalue.Str(s), nil
		}
		if !all {
			rep := replStr
			if useFn {
				r, err := callCallback(replFn, jsvalue.Undefined, []jsvalue.Value{jsvalue.Str(sub), jsvalue.Num(float64(idx)), jsvalue.Str(s)})
				if err != nil {
					return jsvalue.Undefined, err
				}
				rep = jsvalue.ToString(r)
			}
			return jsvalue.Str(s[:idx] + rep + s[idx+len(sub):]), nil
		}
		var b []byte
		rest := s
		off := 0
		for {
			i := indexOf(rest, sub)
			if i < 0 {
				b = append(b, rest...)
				break
			}
			b = append(b, rest[:i]...)
			rep := replStr
			if useFn {
				r, err := callCallback(replFn, jsvalue.Undefined, []jsvalue.Value{jsvalue.Str(sub), jsvalue.Num(float64(off + i)), jsvalue.Str(s)})
				if err != nil {
					return jsvalue.Undefined, err
				}
				rep = jsvalue.ToString(r)
			}
			b = append(b, rep...)
			if sub == "" {
				if len(rest) == 0 {
					break
				}
				b = append(b, rest[0])
				rest = rest[1:]
				off += i + 1
				continue
			}
			rest = rest[i+len(sub):]
			off += i + len(sub)
		}
		return jsvalue.Str(string(b)), nil
	}

	r := pattern.Regex()
	global := containsRune(r.Flags, 'g') || all
	re, err := CompileRegex(r)
	if err != nil {
		return jsvalue.Undefined, err
	}
	var b []byte
	last := 0
	m, _ := re.FindStringMatch(s)
	for m != nil {
		b = append(b, s[last:m.Index]...)
		rep := replStr
		if useFn {
			res, err := callCallback(replFn, jsvalue.Undefined, []jsvalue.Value{jsvalue.Str(m.String()), jsvalue.Num(float64(m.Index)), jsvalue.Str(s)})
			if err != nil {
				return jsvalue.Undefined, err
			}
			rep = jsvalue.ToString(res)
		}
		b = append(b, rep...)
		last = m.Index + m.Length
		if !global {
			break
		}
		m, _ = re.FindNextMatch(m)
	}
	b = append(b, s[last:]...)
	return jsvalue.Str(string(b)), nil
}

func indexOf(s, sub string) int {
	if sub == "" {
		return 0
	}
	n := len(s)
	m := len(sub)
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == sub {
			return i
		}
	}
	return -1
}
