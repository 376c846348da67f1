package browser

import (
	"strings"

	"github.com/LOBYXLYX/javascript-interpreter/internal/interp"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsproto"
	"github.com/LOBYXLYX/javascript-interpreter/internal/jsvalue"
)

// documentState is the Go-side tree backing window.document (spec §4.B
// "Document facade"). Every domElement also owns a plain jsvalue.Record
// that scripts see; the Go struct carries what a Record alone can't hold
// cheaply (a parent pointer, a typed children slice, and the registered
// event listeners), the same split navigator.go/location.go use between a
// closure's captured Go state and the Record it publishes.
type documentState struct {
	in     *interp.Interpreter
	window *jsvalue.Record
	doc    *jsvalue.Record
	root   *domElement // <html>
	head   *domElement
	body   *domElement
	active *domElement
	byRec  map[*jsvalue.Record]*domElement
}

type domElement struct {
	doc       *documentState
	rec       *jsvalue.Record
	tag       string
	attrs     *jsvalue.Record
	parent    *domElement
	kids      []*domElement
	listeners map[string][]*jsvalue.Callable
	shadow    *domElement
	shadowMode string
}

// installDocument builds window.document: an element tree parsed (best
// effort — this is not a conforming HTML5 parser, see htmlparse.go) from
// cfg.HTML, plus createElement/getElementById/querySelector(All) and the
// minimal CSS subset spec §4.B names (#id, .class, tag, [name="..."]).
func installDocument(in *interp.Interpreter, window *jsvalue.Record, cfg Config) {
	ds := &documentState{in: in, window: window, byRec: make(map[*jsvalue.Record]*domElement)}

	ds.root = newElementState(ds, "html")
	ds.head = newElementState(ds, "head")
	ds.body = newElementState(ds, "body")
	attachChild(ds.root, ds.head)
	attachChild(ds.root, ds.body)

	if strings.TrimSpace(cfg.HTML) != "" {
		ds.importParsed(parseHTML(ds, cfg.HTML))
	}
	syncTree(ds.root)

	doc := jsproto.NewObjectRecord()
	doc.Class = "Document"
	ds.doc = doc

	doc.Set("documentElement", jsvalue.FromRecord(ds.root.rec))
	doc.Set("head", jsvalue.FromRecord(ds.head.rec))
	doc.Set("body", jsvalue.FromRecord(ds.body.rec))
	doc.Set("title", jsvalue.Str(""))
	doc.Set("cookie", jsvalue.Str(""))
	href := "https://" + cfg.Domain + "/"
	hostname := cfg.Domain
	if loc, ok := window.Get("location"); ok && loc.Kind() == jsvalue.KindRecord {
		if v, ok := loc.Record().Get("href"); ok {
			href = jsvalue.ToString(v)
		}
		if v, ok := loc.Record().Get("hostname"); ok {
			hostname = jsvalue.ToString(v)
		}
	}
	doc.Set("domain", jsvalue.Str(hostname))
	doc.Set("URL", jsvalue.Str(href))
	doc.Set("baseURI", jsvalue.Str(href))
	doc.Set("referrer", jsvalue.Str(""))
	doc.Set("readyState", jsvalue.Str("complete"))
	doc.Set("contentType", jsvalue.Str("text/html"))
	doc.Set("characterSet", jsvalue.Str("UTF-8"))
	doc.Set("fullscreen", jsvalue.Bool(false))
	doc.Set("hidden", jsvalue.Bool(false))
	doc.Set("visibilityState", jsvalue.Str("visible"))
	doc.Set("activeElement", jsvalue.FromRecord(ds.body.rec))
	ds.active = ds.body

	doc.Set("createElement", native("createElement", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		tag := jsvalue.ToString(arg0(args))
		el := newElementState(ds, tag)
		return jsvalue.FromRecord(el.rec), nil
	}))
	doc.Set("createTextNode", native("createTextNode", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		el := newElementState(ds, "#text")
		el.rec.Set("nodeType", jsvalue.Num(3))
		el.rec.Set("textContent", jsvalue.Str(jsvalue.ToString(arg0(args))))
		el.rec.Set("data", jsvalue.Str(jsvalue.ToString(arg0(args))))
		return jsvalue.FromRecord(el.rec), nil
	}))
	doc.Set("getElementById", native("getElementById", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		id := jsvalue.ToString(arg0(args))
		if el := findFirst(ds.root, func(e *domElement) bool { return idOf(e) == id }); el != nil {
			return jsvalue.FromRecord(el.rec), nil
		}
		return jsvalue.Null, nil
	}))
	doc.Set("getElementsByTagName", native("getElementsByTagName", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		tag := strings.ToUpper(jsvalue.ToString(arg0(args)))
		return jsvalue.FromList(jsvalue.NewList(toValues(findAll(ds.root, func(e *domElement) bool {
			return tag == "*" || e.tag == tag
		})))), nil
	}))
	doc.Set("getElementsByClassName", native("getElementsByClassName", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		cls := jsvalue.ToString(arg0(args))
		return jsvalue.FromList(jsvalue.NewList(toValues(findAll(ds.root, func(e *domElement) bool {
			return containsClass(classOf(e), cls)
		})))), nil
	}))
	doc.Set("getElementsByName", native("getElementsByName", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		name := jsvalue.ToString(arg0(args))
		return jsvalue.FromList(jsvalue.NewList(toValues(findAll(ds.root, func(e *domElement) bool {
			v, ok := e.attrs.Get("name")
			return ok && jsvalue.ToString(v) == name
		})))), nil
	}))
	doc.Set("querySelector", native("querySelector", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		sel := jsvalue.ToString(arg0(args))
		if el := findFirst(ds.root, func(e *domElement) bool { return matchesSelector(e, sel) }); el != nil {
			return jsvalue.FromRecord(el.rec), nil
		}
		return jsvalue.Null, nil
	}))
	doc.Set("querySelectorAll", native("querySelectorAll", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		sel := jsvalue.ToString(arg0(args))
		return jsvalue.FromList(jsvalue.NewList(toValues(findAll(ds.root, func(e *domElement) bool {
			return matchesSelector(e, sel)
		})))), nil
	}))

	docListeners := map[string][]*jsvalue.Callable{}
	doc.Set("addEventListener", native("addEventListener", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		addListener(docListeners, args)
		return jsvalue.Undefined, nil
	}))
	doc.Set("removeEventListener", native("removeEventListener", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		removeListener(docListeners, args)
		return jsvalue.Undefined, nil
	}))
	doc.Set("dispatchEvent", native("dispatchEvent", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return dispatchOn(in, docListeners, jsvalue.FromRecord(doc), arg0(args))
	}))

	defineBoth(in, window, "document", jsvalue.FromRecord(doc))
}

// newElementState allocates a fresh, detached element with the full
// property surface spec §4.B requires, and its native method bag.
func newElementState(ds *documentState, tag string) *domElement {
	tag = strings.ToUpper(tag)
	attrs := jsproto.NewObjectRecord()
	attrs.Class = "NamedNodeMap"
	attrs.Set("length", jsvalue.Num(0))

	rec := jsproto.NewObjectRecord()
	rec.Class = "HTMLElement"

	el := &domElement{doc: ds, rec: rec, tag: tag, attrs: attrs, listeners: map[string][]*jsvalue.Callable{}}
	ds.byRec[rec] = el

	rec.Set("tagName", jsvalue.Str(tag))
	rec.Set("nodeName", jsvalue.Str(tag))
	rec.Set("nodeType", jsvalue.Num(1))
	rec.Set("id", jsvalue.Str(""))
	rec.Set("className", jsvalue.Str(""))
	rec.Set("attributes", jsvalue.FromRecord(attrs))
	rec.Set("children", jsvalue.FromList(jsvalue.NewList(nil)))
	rec.Set("childNodes", jsvalue.FromList(jsvalue.NewList(nil)))
	rec.Set("parentNode", jsvalue.Null)
	rec.Set("parentElement", jsvalue.Null)
	rec.Set("style", jsvalue.FromRecord(jsproto.NewObjectRecord()))
	rec.Set("innerHTML", jsvalue.Str(""))
	rec.Set("textContent", jsvalue.Str(""))
	rec.Set("shadowRoot", jsvalue.Null)

	el.installMethods()
	return el
}

func (el *domElement) installMethods() {
	rec := el.rec
	rec.Set("setAttribute", native("setAttribute", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		if len(args) < 2 {
			return jsvalue.Undefined, nil
		}
		applyAttr(el, jsvalue.ToString(args[0]), jsvalue.ToString(args[1]))
		invalidateUp(el)
		return jsvalue.Undefined, nil
	}))
	rec.Set("getAttribute", native("getAttribute", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		v, ok := el.attrs.Get(strings.ToLower(jsvalue.ToString(arg0(args))))
		if !ok {
			return jsvalue.Null, nil
		}
		return v, nil
	}))
	rec.Set("hasAttribute", native("hasAttribute", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		_, ok := el.attrs.Get(strings.ToLower(jsvalue.ToString(arg0(args))))
		return jsvalue.Bool(ok), nil
	}))
	rec.Set("removeAttribute", native("removeAttribute", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		name := strings.ToLower(jsvalue.ToString(arg0(args)))
		if el.attrs.Delete(name) {
			el.attrs.Set("length", jsvalue.Num(float64(el.attrs.Len()-1)))
		}
		invalidateUp(el)
		return jsvalue.Undefined, nil
	}))
	rec.Set("appendChild", native("appendChild", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		child := elementOf(el.doc, arg0(args))
		if child == nil {
			return jsvalue.Undefined, jsproto.NewTypeError("appendChild requires a node")
		}
		reattach(child, el)
		invalidateUp(el)
		return arg0(args), nil
	}))
	rec.Set("removeChild", native("removeChild", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		child := elementOf(el.doc, arg0(args))
		if child != nil {
			detach(child)
			invalidateUp(el)
		}
		return arg0(args), nil
	}))
	rec.Set("remove", native("remove", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		parent := el.parent
		detach(el)
		if parent != nil {
			invalidateUp(parent)
		}
		return jsvalue.Undefined, nil
	}))
	rec.Set("addEventListener", native("addEventListener", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		addListener(el.listeners, args)
		return jsvalue.Undefined, nil
	}))
	rec.Set("removeEventListener", native("removeEventListener", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		removeListener(el.listeners, args)
		return jsvalue.Undefined, nil
	}))
	rec.Set("dispatchEvent", native("dispatchEvent", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return el.dispatch(arg0(args))
	}))
	rec.Set("focus", native("focus", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		prev := el.doc.active
		el.doc.active = el
		el.doc.doc.Set("activeElement", jsvalue.FromRecord(el.rec))
		if prev != nil && prev != el {
			prev.dispatch(newEventValue("blur", false, false))
		}
		_, err := el.dispatch(newEventValue("focus", false, false))
		return jsvalue.Undefined, err
	}))
	rec.Set("blur", native("blur", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		if el.doc.active == el {
			el.doc.active = el.doc.body
			el.doc.doc.Set("activeElement", jsvalue.FromRecord(el.doc.body.rec))
		}
		_, err := el.dispatch(newEventValue("blur", false, false))
		return jsvalue.Undefined, err
	}))
	rec.Set("attachShadow", native("attachShadow", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		mode := "open"
		if len(args) > 0 && args[0].Kind() == jsvalue.KindRecord {
			if v, ok := args[0].Record().Get("mode"); ok {
				mode = jsvalue.ToString(v)
			}
		}
		shadow := newElementState(el.doc, "#shadow-root")
		shadow.rec.Class = "ShadowRoot"
		shadow.rec.Set("host", jsvalue.FromRecord(rec))
		shadow.rec.Set("mode", jsvalue.Str(mode))
		el.shadow = shadow
		el.shadowMode = mode
		if mode == "open" {
			rec.Set("shadowRoot", jsvalue.FromRecord(shadow.rec))
		}
		invalidateUp(el)
		return jsvalue.FromRecord(shadow.rec), nil
	}))
	rec.Set("querySelector", native("querySelector", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		sel := jsvalue.ToString(arg0(args))
		if found := findFirst(el, func(e *domElement) bool { return e != el && matchesSelector(e, sel) }); found != nil {
			return jsvalue.FromRecord(found.rec), nil
		}
		return jsvalue.Null, nil
	}))
	rec.Set("querySelectorAll", native("querySelectorAll", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		sel := jsvalue.ToString(arg0(args))
		return jsvalue.FromList(jsvalue.NewList(toValues(findAll(el, func(e *domElement) bool {
			return e != el && matchesSelector(e, sel)
		})))), nil
	}))
	rec.Set("toHTML", native("toHTML", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Str(renderElement(el)), nil
	}))
	rec.Set("toString", native("toString", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		return jsvalue.Str("[object " + rec.Class + "]"), nil
	}))
	rec.Set("cloneNode", native("cloneNode", func(this jsvalue.Value, args []jsvalue.Value) (jsvalue.Value, error) {
		deep := len(args) > 0 && jsvalue.ToBoolean(args[0])
		clone := cloneDomElement(el, deep)
		syncTree(clone)
		return jsvalue.FromRecord(clone.rec), nil
	}))
}

func cloneDomElement(el *domElement, deep bool) *domElement {
	clone := newElementState(el.doc, el.tag)
	for _, k := range el.attrs.Keys() {
		if k == "length" {
			continue
		}
		v, _ := el.attrs.Get(k)
		applyAttr(clone, k, jsvalue.ToString(v))
	}
	if deep {
		for _, k := range el.kids {
			attachChild(clone, cloneDomElement(k, true))
		}
	}
	return clone
}

func idOf(el *domElement) string {
	v, _ := el.rec.Get("id")
	return jsvalue.ToString(v)
}

func classOf(el *domElement) string {
	v, _ := el.rec.Get("className")
	return jsvalue.ToString(v)
}

func applyAttr(el *domElement, name, value string) {
	name = strings.ToLower(name)
	if !el.attrs.Has(name) {
		el.attrs.Set("length", jsvalue.Num(float64(el.attrs.Len())))
	}
	el.attrs.Set(name, jsvalue.Str(value))
	el.attrs.Set("length", jsvalue.Num(float64(el.attrs.Len()-1)))
	switch name {
	case "id":
		el.rec.Set("id", jsvalue.Str(value))
	case "class":
		el.rec.Set("className", jsvalue.Str(value))
	}
}

func containsClass(classAttr, want string) bool {
	for _, c := range strings.Fields(classAttr) {
		if c == want {
			return true
		}
	}
	return false
}

// elementOf recovers the domElement backing a Record, via the owning
// document's registry (populated at newElementState time). A plain
// object literal a script passes where a node is expected simply isn't
// found, matching "not a node" the same way a real DOM would reject it.
func elementOf(ds *documentState, v jsvalue.Value) *domElement {
	if v.Kind() != jsvalue.KindRecord {
		return nil
	}
	return ds.byRec[v.Record()]
}

func attachChild(parent, child *domElement) {
	child.parent = parent
	parent.kids = append(parent.kids, child)
	child.rec.Set("parentNode", jsvalue.FromRecord(parent.rec))
	child.rec.Set("parentElement", jsvalue.FromRecord(parent.rec))
}

func detach(child *domElement) {
	parent := child.parent
	if parent == nil {
		return
	}
	for i, k := range parent.kids {
		if k == child {
			parent.kids = append(parent.kids[:i], parent.kids[i+1:]...)
			break
		}
	}
	child.parent = nil
	child.rec.Set("parentNode", jsvalue.Null)
	child.rec.Set("parentElement", jsvalue.Null)
}

// reattach detaches child from any current parent, reparents it under
// parent, and resyncs both subtrees' derived properties.
func reattach(child, parent *domElement) {
	if child.parent != nil {
		old := child.parent
		detach(child)
		invalidateUp(old)
	}
	attachChild(parent, child)
}

// syncTree rebuilds children/innerHTML bottom-up (post-order, so a
// parent's innerHTML always reflects its children's already-current
// serialization).
func syncTree(el *domElement) {
	for _, k := range el.kids {
		syncTree(k)
	}
	if el.shadow != nil {
		syncTree(el.shadow)
	}
	resyncSelf(el)
}

func resyncSelf(el *domElement) {
	items := toValues(el.kids)
	el.rec.Set("children", jsvalue.FromList(jsvalue.NewList(items)))
	el.rec.Set("childNodes", jsvalue.FromList(jsvalue.NewList(items)))
	el.rec.Set("innerHTML", jsvalue.Str(renderChildren(el)))
}

// invalidateUp resyncs el and walks up to the root, since every ancestor's
// innerHTML embeds el's own serialization.
func invalidateUp(el *domElement) {
	for e := el; e != nil; e = e.parent {
		resyncSelf(e)
	}
}

func toValues(els []*domElement) []jsvalue.Value {
	out := make([]jsvalue.Value, len(els))
	for i, e := range els {
		out[i] = jsvalue.FromRecord(e.rec)
	}
	return out
}

func findFirst(root *domElement, pred func(*domElement) bool) *domElement {
	if pred(root) {
		return root
	}
	if root.shadow != nil {
		if found := findFirst(root.shadow, pred); found != nil {
			return found
		}
	}
	for _, k := range root.kids {
		if found := findFirst(k, pred); found != nil {
			return found
		}
	}
	return nil
}

func findAll(root *domElement, pred func(*domElement) bool) []*domElement {
	var out []*domElement
	var walk func(*domElement)
	walk = func(e *domElement) {
		if pred(e) {
			out = append(out, e)
		}
		if e.shadow != nil {
			walk(e.shadow)
		}
		for _, k := range e.kids {
			walk(k)
		}
	}
	walk(root)
	return out
}

func renderElement(el *domElement) string {
	var b strings.Builder
	tag := strings.ToLower(el.tag)
	b.WriteString("<")
	b.WriteString(tag)
	for _, k := range el.attrs.Keys() {
		if k == "length" {
			continue
		}
		v, _ := el.attrs.Get(k)
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(jsvalue.ToString(v))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	if el.shadow != nil && el.shadowMode == "open" {
		b.WriteString(renderChildren(el.shadow))
	}
	b.WriteString(renderChildren(el))
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")
	return b.String()
}

func renderChildren(el *domElement) string {
	var b strings.Builder
	for _, k := range el.kids {
		b.WriteString(renderElement(k))
	}
	return b.String()
}

// matchesSelector implements the minimal CSS subset spec §4.B names:
// #id, .class, tag, [name="value"].
func matchesSelector(el *domElement, sel string) bool {
	sel = strings.TrimSpace(sel)
	switch {
	case sel == "*":
		return true
	case strings.HasPrefix(sel, "#"):
		return idOf(el) == sel[1:]
	case strings.HasPrefix(sel, "."):
		return containsClass(classOf(el), sel[1:])
	case strings.HasPrefix(sel, "[") && strings.HasSuffix(sel, "]"):
		inner := sel[1 : len(sel)-1]
		name, val, hasVal := splitAttrSelector(inner)
		v, ok := el.attrs.Get(strings.ToLower(name))
		if !ok {
			return false
		}
		if !hasVal {
			return true
		}
		return jsvalue.ToString(v) == val
	default:
		return strings.EqualFold(el.tag, sel)
	}
}

func splitAttrSelector(inner string) (name, value string, hasValue bool) {
	idx := strings.IndexByte(inner, '=')
	if idx < 0 {
		return strings.TrimSpace(inner), "", false
	}
	name = strings.TrimSpace(inner[:idx])
	value = strings.TrimSpace(inner[idx+1:])
	value = strings.Trim(value, `"'`)
	return name, value, true
}

func addListener(listeners map[string][]*jsvalue.Callable, args []jsvalue.Value) {
	if len(args) < 2 || args[1].Kind() != jsvalue.KindCallable {
		return
	}
	typ := jsvalue.ToString(args[0])
	listeners[typ] = append(listeners[typ], args[1].Callable())
}

func removeListener(listeners map[string][]*jsvalue.Callable, args []jsvalue.Value) {
	if len(args) < 2 || args[1].Kind() != jsvalue.KindCallable {
		return
	}
	typ := jsvalue.ToString(args[0])
	target := args[1].Callable()
	cbs := listeners[typ]
	for i, cb := range cbs {
		if cb == target {
			listeners[typ] = append(cbs[:i], cbs[i+1:]...)
			break
		}
	}
}

// dispatch implements the bubbling portion of spec §4.B's Event object:
// the event fires on el first, then (if bubbles and not stopped) on each
// ancestor in turn, matching how a real DOM's dispatchEvent walks up from
// the target.
func (el *domElement) dispatch(ev jsvalue.Value) (jsvalue.Value, error) {
	return dispatchOn(el.doc.in, nil, jsvalue.FromRecord(el.rec), ev, el)
}

// dispatchOn runs ev's listeners on target (and, if bubbles, up through
// target's ancestors when target is an element). listeners is the
// document-level listener map when target is the document; for an element
// target the element's own map is consulted via its el chain instead.
func dispatchOn(in *interp.Interpreter, docListeners map[string][]*jsvalue.Callable, target, ev jsvalue.Value, el ...*domElement) (jsvalue.Value, error) {
	evRec := ev.Record()
	if evRec == nil {
		return jsvalue.Bool(true), jsproto.NewTypeError("dispatchEvent requires an Event")
	}
	typ := jsvalue.ToString(mustGet(evRec, "type"))
	bubbles := jsvalue.ToBoolean(mustGet(evRec, "bubbles"))
	evRec.Set("target", target)

	var cur *domElement
	if len(el) > 0 {
		cur = el[0]
	}

	fire := func(listeners []*jsvalue.Callable, currentTarget jsvalue.Value) error {
		evRec.Set("currentTarget", currentTarget)
		for _, cb := range listeners {
			if jsvalue.ToBoolean(mustGet(evRec, "__stopImmediate__")) {
				break
			}
			if _, err := in.CallValue(jsvalue.FromCallable(cb), currentTarget, []jsvalue.Value{ev}); err != nil {
				return err
			}
		}
		return nil
	}

	if cur != nil {
		for e := cur; e != nil; e = e.parent {
			if err := fire(e.listeners[typ], jsvalue.FromRecord(e.rec)); err != nil {
				return jsvalue.Undefined, err
			}
			if !bubbles || jsvalue.ToBoolean(mustGet(evRec, "__stopPropagation__")) {
				break
			}
		}
	} else if docListeners != nil {
		if err := fire(docListeners[typ], target); err != nil {
			return jsvalue.Undefined, err
		}
	}

	return jsvalue.Bool(!jsvalue.ToBoolean(mustGet(evRec, "defaultPrevented"))), nil
}

func mustGet(r *jsvalue.Record, key string) jsvalue.Value {
	v, _ := r.Get(key)
	return v
}
