// Package memdom is an in-memory document host. It implements the pkg/dom
// interfaces without any rendering engine: layout comes from inline pixel
// styles, stylesheets injected into the tree are parsed and interpreted for
// their animation and transition timings, and completion events fire on a
// virtual clock. The package backs the test suite and the headless CLI,
// and doubles as a reference for what a real binding has to provide.
package memdom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mazznoer/csscolorparser"

	"github.com/hellenic-development/point-to/pkg/dom"
)

// Journal entry kinds.
const (
	KindAppend      = "append"
	KindRemove      = "remove"
	KindClassAdd    = "class-add"
	KindClassRemove = "class-remove"
	KindStyleSet    = "style-set"
	KindDispatch    = "dispatch"
	KindDrop        = "signal-drop"
)

// Entry is one recorded document mutation or event, stamped with the
// virtual time it happened at.
type Entry struct {
	At     time.Duration
	Kind   string
	Target string // short element description, e.g. "p.note" or "div#app"
	Detail string
}

// signal is a pending completion event on the virtual timeline.
type signal struct {
	due   time.Duration
	order int
	el    *Element
	event string
}

// Document is the in-memory host document.
type Document struct {
	root *Element
	head *Element
	body *Element

	now        time.Duration
	microtasks []func()
	signals    []*signal
	order      int

	supported map[string]bool
	sheets    []*sheet
	journal   []Entry
}

// New returns an empty document with the html/head/body skeleton and a
// style engine that supports unprefixed animations and transitions.
func New() *Document {
	d := &Document{supported: defaultSupport()}
	htmlEl := d.newElement("html")
	head := d.newElement("head")
	body := d.newElement("body")
	head.parent = htmlEl
	body.parent = htmlEl
	htmlEl.children = []*Element{head, body}
	d.root, d.head, d.body = htmlEl, head, body
	return d
}

func defaultSupport() map[string]bool {
	return map[string]bool{"animation": true, "transition": true}
}

// SetStyleSupport replaces the set of style properties the engine claims to
// support. Calling it with no arguments simulates an engine with neither
// animations nor transitions, which makes runs complete synchronously.
func (d *Document) SetStyleSupport(props ...string) {
	d.supported = make(map[string]bool, len(props))
	for _, p := range props {
		d.supported[p] = true
	}
}

// Select returns the elements matching a CSS selector, in tree order. The
// supported subset is compound selectors (tag, #id, .class) combined with
// descendant and child combinators, plus comma lists.
func (d *Document) Select(selector string) []dom.Element {
	var out []dom.Element
	d.walk(d.root, func(e *Element) {
		if matches(e, selector) {
			out = append(out, e)
		}
	})
	return out
}

// Body returns the document body.
func (d *Document) Body() dom.Element { return d.body }

// CreateElement creates a detached element with the given tag.
func (d *Document) CreateElement(tag string) dom.Element {
	return d.newElement(tag)
}

// Defer schedules fn to run before the clock next advances.
func (d *Document) Defer(fn func()) {
	d.microtasks = append(d.microtasks, fn)
}

// SupportsStyleProperty reports whether the simulated engine knows the
// property.
func (d *Document) SupportsStyleProperty(name string) bool {
	return d.supported[name]
}

// ComputedColor interprets the element's inline color property as a CSS
// color. The zoo of accepted notations (named colors, hex, rgb, hsl) is
// delegated to the csscolorparser engine, mirroring how a browser host
// would answer from its own style system.
func (d *Document) ComputedColor(el dom.Element) (r, g, b uint8, ok bool) {
	e, isMem := el.(*Element)
	if !isMem {
		return 0, 0, 0, false
	}
	v := strings.TrimSpace(e.styles["color"])
	if v == "" {
		return 0, 0, 0, false
	}
	c, err := csscolorparser.Parse(v)
	if err != nil {
		return 0, 0, 0, false
	}
	return channel(c.R), channel(c.G), channel(c.B), true
}

func channel(v float64) uint8 {
	n := math.Round(v * 255)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// Now returns the current virtual time.
func (d *Document) Now() time.Duration { return d.now }

// Flush runs every pending deferred callback, including ones scheduled by
// the callbacks themselves, without advancing the clock.
func (d *Document) Flush() {
	for len(d.microtasks) > 0 {
		pending := d.microtasks
		d.microtasks = nil
		for _, fn := range pending {
			fn()
		}
	}
}

// RunUntilIdle drives the document until nothing is left to do: deferred
// callbacks run first, then the clock advances to the next pending
// completion event and dispatches it, until both queues are empty. Events
// addressed to elements that have since been detached are dropped, the way
// a browser stops firing for removed nodes.
func (d *Document) RunUntilIdle() {
	for {
		d.Flush()
		if len(d.signals) == 0 {
			return
		}

		idx := 0
		for i, s := range d.signals {
			if s.due < d.signals[idx].due ||
				(s.due == d.signals[idx].due && s.order < d.signals[idx].order) {
				idx = i
			}
		}
		sig := d.signals[idx]
		d.signals = append(d.signals[:idx], d.signals[idx+1:]...)

		if sig.due > d.now {
			d.now = sig.due
		}
		if sig.el.attached() {
			sig.el.Dispatch(sig.event)
		} else {
			d.journalAdd(KindDrop, sig.el, sig.event)
		}
	}
}

// Journal returns a copy of every recorded mutation and event so far.
func (d *Document) Journal() []Entry {
	return append([]Entry(nil), d.journal...)
}

func (d *Document) newElement(tag string) *Element {
	return &Element{
		doc:       d,
		tag:       strings.ToLower(tag),
		attrs:     make(map[string]string),
		styles:    make(map[string]string),
		listeners: make(map[string][]func()),
	}
}

func (d *Document) walk(e *Element, fn func(*Element)) {
	fn(e)
	for _, c := range e.children {
		d.walk(c, fn)
	}
}

func (d *Document) schedule(el *Element, event string, delay time.Duration) {
	d.order++
	d.signals = append(d.signals, &signal{
		due:   d.now + delay,
		order: d.order,
		el:    el,
		event: event,
	})
}

// cancelSignals drops pending signals for the element and event name.
func (d *Document) cancelSignals(el *Element, event string) {
	kept := d.signals[:0]
	for _, s := range d.signals {
		if s.el == el && s.event == event {
			continue
		}
		kept = append(kept, s)
	}
	d.signals = kept
}

func (d *Document) journalAdd(kind string, el *Element, detail string) {
	d.journal = append(d.journal, Entry{
		At:     d.now,
		Kind:   kind,
		Target: describe(el),
		Detail: detail,
	})
}

// Element is a node in the in-memory tree. It implements dom.Element.
type Element struct {
	doc       *Document
	tag       string
	id        string
	classes   []string
	attrs     map[string]string
	styles    map[string]string
	text      string
	parent    *Element
	children  []*Element
	listeners map[string][]func()
	rect      *dom.Rect
}

// Tag returns the lower-case element name.
func (e *Element) Tag() string { return e.tag }

// ID returns the element id, or "".
func (e *Element) ID() string { return e.id }

// Classes returns a copy of the class list.
func (e *Element) Classes() []string {
	return append([]string(nil), e.classes...)
}

// Parent returns the parent element, or nil at the root.
func (e *Element) Parent() dom.Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// Attr returns an attribute value. The id and class attributes read from
// the element's live state.
func (e *Element) Attr(name string) string {
	switch name {
	case "id":
		return e.id
	case "class":
		return strings.Join(e.classes, " ")
	}
	return e.attrs[name]
}

// SetAttr sets an attribute. Tests use it to place declarative overrides.
func (e *Element) SetAttr(name, value string) {
	switch name {
	case "id":
		e.id = value
	case "class":
		e.classes = strings.Fields(value)
	default:
		e.attrs[name] = value
	}
}

// AddClass appends the class if the element does not already carry it. If
// the now-matching rules animate the element, the animation's end event is
// scheduled on the virtual clock.
func (e *Element) AddClass(name string) {
	if e.hasClass(name) {
		return
	}
	e.classes = append(e.classes, name)
	e.doc.journalAdd(KindClassAdd, e, name)
	e.doc.classAdded(e)
}

// RemoveClass removes the class. Pending animation-end events are cancelled
// when the element no longer matches any animating rule, the way removing
// an animation class mid-flight cancels the animation.
func (e *Element) RemoveClass(name string) {
	kept := e.classes[:0]
	found := false
	for _, c := range e.classes {
		if c == name {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	e.classes = kept
	if !found {
		return
	}
	e.doc.journalAdd(KindClassRemove, e, name)
	e.doc.classRemoved(e)
}

// Style reads an inline style property.
func (e *Element) Style(prop string) string { return e.styles[prop] }

// SetStyle writes an inline style property. Writing the current value is a
// no-op, and a changed value on an attached element engages any matching
// transition rule, scheduling its end event.
func (e *Element) SetStyle(prop, value string) {
	old := e.styles[prop]
	if old == value {
		return
	}
	if value == "" {
		delete(e.styles, prop)
	} else {
		e.styles[prop] = value
	}
	e.doc.journalAdd(KindStyleSet, e, prop+": "+value)
	e.doc.styleChanged(e, prop)
}

// Text returns the element's text content.
func (e *Element) Text() string { return e.text }

// SetText replaces the element's text content. On an attached style element
// this reparses the stylesheet.
func (e *Element) SetText(s string) {
	e.text = s
	if e.tag == "style" && e.attached() {
		e.doc.registerSheet(e)
	}
}

// Append attaches child as the last child of this element, detaching it
// from any previous parent first. Stylesheets in the attached subtree
// become active.
func (e *Element) Append(child dom.Element) {
	c, isMem := child.(*Element)
	if !isMem {
		panic("memdom: element belongs to a different host")
	}
	if c.parent != nil {
		c.detach()
	}
	c.parent = e
	e.children = append(e.children, c)
	e.doc.journalAdd(KindAppend, c, "to "+describe(e))
	if c.attached() {
		e.doc.registerStyleSubtree(c)
	}
}

// Remove detaches the element from its parent and deactivates stylesheets
// in its subtree.
func (e *Element) Remove() {
	if e.parent == nil {
		return
	}
	e.doc.unregisterStyleSubtree(e)
	e.detach()
	e.doc.journalAdd(KindRemove, e, "")
}

// Layout returns the element's box. An explicit SetRect wins; otherwise the
// box is read from the inline left/top/width/height pixel styles. Inline
// positions are taken as document coordinates.
func (e *Element) Layout() dom.Rect {
	if e.rect != nil {
		return *e.rect
	}
	return dom.Rect{
		X:      e.pxStyle("left"),
		Y:      e.pxStyle("top"),
		Width:  e.pxStyle("width"),
		Height: e.pxStyle("height"),
	}
}

// SetRect pins the element's box, overriding inline styles.
func (e *Element) SetRect(r dom.Rect) {
	e.rect = &r
}

// Once registers a one-shot listener for the named event.
func (e *Element) Once(event string, fn func()) {
	e.listeners[event] = append(e.listeners[event], fn)
}

// Dispatch fires the named event: listeners registered for it are removed
// and then invoked in registration order. Tests use it to deliver
// completion events by hand instead of running the clock.
func (e *Element) Dispatch(event string) {
	e.doc.journalAdd(KindDispatch, e, event)
	fns := e.listeners[event]
	delete(e.listeners, event)
	for _, fn := range fns {
		fn()
	}
}

func (e *Element) hasClass(name string) bool {
	for _, c := range e.classes {
		if c == name {
			return true
		}
	}
	return false
}

func (e *Element) attached() bool {
	for p := e; p != nil; p = p.parent {
		if p == e.doc.root {
			return true
		}
	}
	return false
}

func (e *Element) detach() {
	p := e.parent
	if p == nil {
		return
	}
	kept := p.children[:0]
	for _, c := range p.children {
		if c != e {
			kept = append(kept, c)
		}
	}
	p.children = kept
	e.parent = nil
}

func (e *Element) pxStyle(prop string) float64 {
	v := strings.TrimSpace(e.styles[prop])
	v = strings.TrimSuffix(v, "px")
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return f
}

// describe renders a short identity for journal entries: the tag plus the
// id when there is one, or the first class.
func describe(e *Element) string {
	if e.id != "" {
		return fmt.Sprintf("%s#%s", e.tag, e.id)
	}
	if len(e.classes) > 0 {
		return fmt.Sprintf("%s.%s", e.tag, e.classes[0])
	}
	return e.tag
}
