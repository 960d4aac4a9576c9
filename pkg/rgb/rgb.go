// Package rgb normalizes user color input into a single canonical form.
// Color specifications arrive in whatever notation the caller likes (named
// colors, hex, rgb(), hsl()); everything downstream of configuration works
// with plain 8-bit RGB triples resolved here exactly once.
package rgb

import (
	"fmt"
	"strings"

	"github.com/hellenic-development/point-to/pkg/dom"
)

// Color is a canonical RGB triple with 0-255 channels.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// Fallback is the color used when the host cannot interpret an input.
// Interpretation failures are cosmetic, so they degrade to a loud default
// instead of failing the run.
var Fallback = Color{R: 255, G: 255, B: 0}

// Hex returns the color in #RRGGBB notation.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String returns the hex form, for logs and debug output.
func (c Color) String() string {
	return c.Hex()
}

// ProbeClass marks the hidden probe element a Resolver parks in the
// document body. One probe serves the whole document for its lifetime.
const ProbeClass = "point-to-color-probe"

// Resolver turns color specifications into canonical triples by letting the
// host's style engine do the interpretation: the input is written to a
// hidden probe element's color property and the computed result read back.
// A Resolver is bound to one document and is not safe for concurrent use,
// which matches the single-threaded scheduling model of the host.
type Resolver struct {
	doc   dom.Document
	probe dom.Element
}

// NewResolver returns a resolver for the given document. The probe element
// is created lazily on first use; if an earlier resolver already parked one
// in the document it is reused.
func NewResolver(doc dom.Document) *Resolver {
	return &Resolver{doc: doc}
}

// Resolve interprets spec through the host's style engine and returns the
// canonical triple. Input the engine cannot interpret resolves to Fallback;
// Resolve never fails.
func (r *Resolver) Resolve(spec string) Color {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Fallback
	}

	probe := r.ensureProbe()

	// Clear before writing so an uninterpretable input cannot read back the
	// previous resolution as its own.
	probe.SetStyle("color", "")
	probe.SetStyle("color", spec)

	if red, green, blue, ok := r.doc.ComputedColor(probe); ok {
		return Color{R: red, G: green, B: blue}
	}
	return Fallback
}

func (r *Resolver) ensureProbe() dom.Element {
	if r.probe != nil {
		return r.probe
	}

	// Reuse a probe parked by an earlier resolver on the same document.
	if found := r.doc.Select("." + ProbeClass); len(found) > 0 {
		r.probe = found[0]
		return r.probe
	}

	probe := r.doc.CreateElement("div")
	probe.AddClass(ProbeClass)
	probe.SetStyle("display", "none")
	r.doc.Body().Append(probe)
	r.probe = probe
	return probe
}
