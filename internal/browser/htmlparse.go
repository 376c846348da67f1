package browser

import "strings"

// parseHTML is a best-effort tag-soup reader for cfg.HTML (spec §6 "html
// (initial document source)"). It is deliberately not a conforming HTML5
// parser — no tokenizer-state-machine, no implied-tag insertion beyond
// the head/body bucketing installDocument already does, and script/style
// bodies are not treated as raw text (a literal "<" inside one would be
// misread as a tag start). That matches spec §1's "not a real layout/
// rendering engine" non-goal: the façade only needs a plausible element
// tree for scripts to probe, not a byte-for-byte faithful reparse.
func parseHTML(ds *documentState, html string) []*domElement {
	toks := tokenizeHTML(html)
	return buildForest(ds, toks)
}

type htmlToken struct {
	closing   bool
	tag       string
	attrs     []attrPair
	selfClose bool
}

type attrPair struct{ name, value string }

var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

func tokenizeHTML(s string) []htmlToken {
	var toks []htmlToken
	n := len(s)
	i := 0
	for i < n {
		if s[i] != '<' {
			j := strings.IndexByte(s[i:], '<')
			if j < 0 {
				break
			}
			i += j
			continue
		}
		if strings.HasPrefix(s[i:], "<!--") {
			end := strings.Index(s[i:], "-->")
			if end < 0 {
				break
			}
			i += end + 3
			continue
		}
		if strings.HasPrefix(s[i:], "<!") {
			end := strings.IndexByte(s[i:], '>')
			if end < 0 {
				break
			}
			i += end + 1
			continue
		}
		j := i + 1
		closing := false
		if j < n && s[j] == '/' {
			closing = true
			j++
		}
		start := j
		for j < n && isTagNameByte(s[j]) {
			j++
		}
		if j == start {
			i++
			continue
		}
		tag := strings.ToLower(s[start:j])

		var attrs []attrPair
		selfClose := false
		for j < n && s[j] != '>' {
			for j < n && isSpace(s[j]) {
				j++
			}
			if j < n && s[j] == '/' {
				selfClose = true
				j++
				continue
			}
			if j >= n || s[j] == '>' {
				break
			}
			nameStart := j
			for j < n && s[j] != '=' && s[j] != '>' && !isSpace(s[j]) && s[j] != '/' {
				j++
			}
			name := s[nameStart:j]
			for j < n && isSpace(s[j]) {
				j++
			}
			value := ""
			if j < n && s[j] == '=' {
				j++
				for j < n && isSpace(s[j]) {
					j++
				}
				if j < n && (s[j] == '"' || s[j] == '\'') {
					quote := s[j]
					j++
					vs := j
					for j < n && s[j] != quote {
						j++
					}
					value = s[vs:j]
					if j < n {
						j++
					}
				} else {
					vs := j
					for j < n && !isSpace(s[j]) && s[j] != '>' {
						j++
					}
					value = s[vs:j]
				}
			}
			if name != "" {
				attrs = append(attrs, attrPair{strings.ToLower(name), value})
			}
		}
		if j < n && s[j] == '>' {
			j++
		}
		if closing {
			toks = append(toks, htmlToken{closing: true, tag: tag})
		} else {
			toks = append(toks, htmlToken{tag: tag, attrs: attrs, selfClose: selfClose || voidTags[tag]})
		}
		i = j
	}
	return toks
}

func isTagNameByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == ':'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// buildForest turns a flat token stream into a forest of domElements,
// using an explicit open-tag stack rather than recursion so a stray or
// mismatched close tag just unwinds to the nearest ancestor that matches
// (or is silently dropped if none does), the way real HTML parsers
// recover from malformed markup.
func buildForest(ds *documentState, toks []htmlToken) []*domElement {
	var stack []*domElement
	var roots []*domElement

	for _, t := range toks {
		if t.closing {
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].tag == strings.ToUpper(t.tag) {
					stack = stack[:i]
					break
				}
			}
			continue
		}

		el := newElementState(ds, t.tag)
		for _, a := range t.attrs {
			applyAttr(el, a.name, a.value)
		}
		if len(stack) > 0 {
			attachChild(stack[len(stack)-1], el)
		} else {
			roots = append(roots, el)
		}
		if !t.selfClose {
			stack = append(stack, el)
		}
	}
	return roots
}

// importParsed buckets a parsed forest into ds.head/ds.body, following an
// explicit <html>/<head>/<body> wrapper when present and otherwise
// dropping everything into <body> (spec §4.B document tree shape).
func (ds *documentState) importParsed(roots []*domElement) {
	var place func(el *domElement, into *domElement)
	place = func(el *domElement, into *domElement) {
		switch el.tag {
		case "HTML":
			for _, c := range append([]*domElement{}, el.kids...) {
				detach(c)
				place(c, nil)
			}
		case "HEAD":
			for _, c := range append([]*domElement{}, el.kids...) {
				detach(c)
				attachChild(ds.head, c)
			}
		case "BODY":
			for _, c := range append([]*domElement{}, el.kids...) {
				detach(c)
				attachChild(ds.body, c)
			}
		default:
			target := into
			if target == nil {
				target = ds.body
			}
			attachChild(target, el)
		}
	}
	for _, r := range roots {
		place(r, nil)
	}
}
