// JSON.parse/stringify are hand-rolled against jsvalue.Value rather than
// routed through encoding/json: Value is a custom tagged union with its
// own insertion-order property semantics that encoding/json's
// struct-tag/reflection model cannot target directly. This mirrors the
// teacher's own approach to bespoke grammars — js_parser/css_parser are
// both hand-written recursive-descent parsers rather than reflection- or
// grammar-generator-based.
package browser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

func installJSON(in *interp.Interpreter, window *jsvalue.Record) {
	j := jsproto.NewObjectRecord()
	j.Set("parse", native("parse", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		v, err := jsonParse(jsvalue.ToString(arg0(args)))
		if err != nil {
			return jsvalue.Undefined, err
		}
		return v, nil
	}))
	j.Set("stringify", native("stringify", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		indent := ""
		if len(args) > 2 {
			switch args[2].Kind() {
			case jsvalue.KindNumber:
				indent = strings.Repeat(" ", int(args[2].Num()))
			case jsvalue.KindString:
				indent = args[2].Str()
			}
		}
		var b strings.Builder
		ok := jsonStringify(&b, arg0(args), indent, "")
		if !ok {
			return jsvalue.Undefined, nil
		}
		return jsvalue.Str(b.String()), nil
	}))
	window.Set("JSON", jsvalue.FromRecord(j))
}

// jsonStringify reports false when v has no JSON representation
// (undefined, a function, ...), matching JSON.stringify(undefined).
func jsonStringify(b *strings.Builder, v jsvalue.Value, indent, cur string) bool {
	switch v.Kind() {
	case jsvalue.KindUndefined, jsvalue.KindCallable:
		return false
	case jsvalue.KindNull:
		b.WriteString("null")
		return true
	case jsvalue.KindBoolean:
		b.WriteString(jsvalue.ToString(v))
		return true
	case jsvalue.KindNumber:
		n := v.Num()
		if math.IsNaN(n) || math.IsInf(n, 0) {
			b.WriteString("null")
		} else {
			b.WriteString(jsvalue.NumberToString(n))
		}
		return true
	case jsvalue.KindString:
		writeJSONString(b, v.Str())
		return true
	case jsvalue.KindList:
		items := v.List().Items
		if len(items) == 0 {
			b.WriteString("[]")
			return true
		}
		next := cur + indent
		b.WriteString("[")
		for i, item := range items {
			if i > 0 {
				b.WriteString(",")
			}
			if indent != "" {
				b.WriteString("\n" + next)
			}
			if !jsonStringify(b, item, indent, next) {
				b.WriteString("null")
			}
		}
		if indent != "" {
			b.WriteString("\n" + cur)
		}
		b.WriteString("]")
		return true
	case jsvalue.KindRecord:
		r := v.Record()
		keys := r.Keys()
		var entries []string
		next := cur + indent
		for _, k := range keys {
			val, _ := r.Get(k)
			var sub strings.Builder
			if jsonStringify(&sub, val, indent, next) {
				entries = append(entries, k+":"+sub.String())
			}
		}
		if len(entries) == 0 {
			b.WriteString("{}")
			return true
		}
		b.WriteString("{")
		for i, e := range entries {
			if i > 0 {
				b.WriteString(",")
			}
			if indent != "" {
				b.WriteString("\n" + next)
			}
			colon := strings.IndexByte(e, ':')
			var keyBuf strings.Builder
			writeJSONString(&keyBuf, e[:colon])
			b.WriteString(keyBuf.String())
			b.WriteString(":")
			if indent != "" {
				b.WriteString(" ")
			}
			b.WriteString(e[colon+1:])
		}
		if indent != "" {
			b.WriteString("\n" + cur)
		}
		b.WriteString("}")
		return true
	default:
		return false
	}
}

func writeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}

type jsonParser struct {
	s   string
	pos int
}

func jsonParse(s string) (jsvalue.Value, error) {
	p := &jsonParser{s: s}
	p.skipSpace()
	v, err := p.parseValue()
	if err != nil {
		return jsvalue.Undefined, jsproto.NewTypeError("%s", err.Error())
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return jsvalue.Undefined, jsproto.NewTypeError("Unexpected non-whitespace character after JSON")
	}
	return v, nil
}

func (p *jsonParser) skipSpace() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *jsonParser) parseValue() (jsvalue.Value, error) {
	if p.pos >= len(p.s) {
		return jsvalue.Undefined, fmt.Errorf("Unexpected end of JSON input")
	}
	switch c := p.s[p.pos]; {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		s, err := p.parseString()
		if err != nil {
			return jsvalue.Undefined, err
		}
		return jsvalue.Str(s), nil
	case c == 't':
		return p.parseLiteral("true", jsvalue.Bool(true))
	case c == 'f':
		return p.parseLiteral("false", jsvalue.Bool(false))
	case c == 'n':
		return p.parseLiteral("null", jsvalue.Null)
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	}
	return jsvalue.Undefined, fmt.Errorf("Unexpected token %c in JSON", p.s[p.pos])
}

func (p *jsonParser) parseLiteral(lit string, v jsvalue.Value) (jsvalue.Value, error) {
	if p.pos+len(lit) > len(p.s) || p.s[p.pos:p.pos+len(lit)] != lit {
		return jsvalue.Undefined, fmt.Errorf("Unexpected token in JSON")
	}
	p.pos += len(lit)
	return v, nil
}

func (p *jsonParser) parseNumber() (jsvalue.Value, error) {
	start := p.pos
	if p.s[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.s) && isDigitInRadix(p.s[p.pos], 10) {
		p.pos++
	}
	if p.pos < len(p.s) && p.s[p.pos] == '.' {
		p.pos++
		for p.pos < len(p.s) && isDigitInRadix(p.s[p.pos], 10) {
			p.pos++
		}
	}
	if p.pos < len(p.s) && (p.s[p.pos] == 'e' || p.s[p.pos] == 'E') {
		p.pos++
		if p.pos < len(p.s) && (p.s[p.pos] == '+' || p.s[p.pos] == '-') {
			p.pos++
		}
		for p.pos < len(p.s) && isDigitInRadix(p.s[p.pos], 10) {
			p.pos++
		}
	}
	f, err := strconv.ParseFloat(p.s[start:p.pos], 64)
	if err != nil {
		return jsvalue.Undefined, err
	}
	return jsvalue.Num(f), nil
}

func (p *jsonParser) parseString() (string, error) {
	p.pos++ // opening quote
	var b strings.Builder
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if c == '"' {
			p.pos++
			return b.String(), nil
		}
		if c == '\\' {
			p.pos++
			if p.pos >= len(p.s) {
				break
			}
			switch p.s[p.pos] {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case '/':
				b.WriteByte('/')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case 'u':
				if p.pos+4 < len(p.s) {
					n, err := strconv.ParseUint(p.s[p.pos+1:p.pos+5], 16, 32)
					if err == nil {
						b.WriteRune(rune(n))
						p.pos += 4
					}
				}
			}
			p.pos++
			continue
		}
		b.WriteByte(c)
		p.pos++
	}
	return "", fmt.Errorf("Unterminated string in JSON")
}

func (p *jsonParser) parseArray() (jsvalue.Value, error) {
	p.pos++
	var items []jsvalue.Value
	p.skipSpace()
	if p.pos < len(p.s) && p.s[p.pos] == ']' {
		p.pos++
		return jsvalue.FromList(jsvalue.NewList(items)), nil
	}
	for {
		p.skipSpace()
		v, err := p.parseValue()
		if err != nil {
			return jsvalue.Undefined, err
		}
		items = append(items, v)
		p.skipSpace()
		if p.pos >= len(p.s) {
			return jsvalue.Undefined, fmt.Errorf("Unexpected end of JSON input")
		}
		if p.s[p.pos] == ',' {
			p.pos++
			continue
		}
		if p.s[p.pos] == ']' {
			p.pos++
			break
		}
		return jsvalue.Undefined, fmt.Errorf("Unexpected token in JSON array")
	}
	return jsvalue.FromList(jsvalue.NewList(items)), nil
}

func (p *jsonParser) parseObject() (jsvalue.Value, error) {
	p.pos++
	rec := jsproto.NewObjectRecord()
	p.skipSpace()
	if p.pos < len(p.s) && p.s[p.pos] == '}' {
		p.pos++
		return jsvalue.FromRecord(rec), nil
	}
	for {
		p.skipSpace()
		if p.pos >= len(p.s) || p.s[p.pos] != '"' {
			return jsvalue.Undefined, fmt.Errorf("Expected string key in JSON object")
		}
		key, err := p.parseString()
		if err != nil {
			return jsvalue.Undefined, err
		}
		p.skipSpace()
		if p.pos >= len(p.s) || p.s[p.pos] != ':' {
			return jsvalue.Undefined, fmt.Errorf("Expected ':' in JSON object")
		}
		p.pos++
		p.skipSpace()
		v, err := p.parseValue()
		if err != nil {
			return jsvalue.Undefined, err
		}
		rec.Set(key, v)
		p.skipSpace()
		if p.pos >= len(p.s) {
			return jsvalue.Undefined, fmt.Errorf("Unexpected end of JSON input")
		}
		if p.s[p.pos] == ',' {
			p.pos++
			continue
		}
		if p.s[p.pos] == '}' {
			p.pos++
			break
		}
		return jsvalue.Undefined, fmt.Errorf("Unexpected token in JSON object")
	}
	return jsvalue.FromRecord(rec), nil
}
