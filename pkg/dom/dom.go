// Package dom defines the host interfaces the pointing animation runs
// against. The library never touches a rendering engine directly: every
// document operation it needs (selection, class and style mutation, element
// creation, scheduling, computed styles) is expressed here and satisfied by
// a host binding, such as the in-memory document in pkg/memdom.
package dom

import "math"

// Element is a single node in the host document tree.
// Implementations are expected to be live views: mutations through one
// handle are visible through every other handle to the same node.
type Element interface {
	// Tag returns the lower-case element name, such as "div" or "p".
	Tag() string

	// ID returns the element id, or "" when the element has none.
	ID() string

	// Classes returns the element's class list in declaration order.
	Classes() []string

	// Parent returns the parent element, or nil at the document root.
	Parent() Element

	// Attr returns the value of the named attribute, or "" when absent.
	Attr(name string) string

	AddClass(name string)
	RemoveClass(name string)

	// Style reads an inline style property. It never consults stylesheets.
	Style(prop string) string

	// SetStyle writes an inline style property.
	SetStyle(prop, value string)

	Text() string
	SetText(s string)

	// Append attaches child as the last child of this element, detaching it
	// from any previous parent first.
	Append(child Element)

	// Remove detaches the element from its parent. Detached elements keep
	// their state and may be re-appended.
	Remove()

	// Layout returns the element's box in document coordinates, including
	// borders and padding.
	Layout() Rect

	// Once registers fn to run the next time the named event fires on this
	// element. The listener is removed before fn runs.
	Once(event string, fn func())
}

// Document is the host document the animation plays in.
type Document interface {
	// Select returns the elements matching a CSS selector, in tree order.
	Select(selector string) []Element

	// Body returns the document body, the parent of floating elements such
	// as the pointer orb.
	Body() Element

	// CreateElement creates a detached element with the given tag.
	CreateElement(tag string) Element

	// Defer schedules fn to run on the next tick of the host's event loop,
	// after the current call stack unwinds but before any timed event.
	Defer(fn func())

	// SupportsStyleProperty reports whether the host's style engine knows
	// the given property name, including vendor-prefixed forms.
	SupportsStyleProperty(name string) bool

	// ComputedColor returns the engine's interpretation of the element's
	// current text color. ok is false when the engine cannot produce one.
	ComputedColor(el Element) (r, g, b uint8, ok bool)
}

// Rect is an element box in document coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Point is a document coordinate rounded to whole pixels.
type Point struct {
	X int
	Y int
}

// Center returns the center of the element's current box, rounded to whole
// pixels. Boxes move as the document changes, so callers probe again at
// every moment the position matters rather than caching the result.
func Center(el Element) Point {
	r := el.Layout()
	return Point{
		X: int(math.Round(r.X + r.Width/2)),
		Y: int(math.Round(r.Y + r.Height/2)),
	}
}
