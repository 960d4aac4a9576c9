// Package scope derives deterministic per-pair identifiers from the
// structural position of elements in the document tree. The same identifier
// doubles as a CSS class, which is what lets several pointing runs share a
// page without their stylesheets interfering.
package scope

import (
	"strings"

	"github.com/hellenic-development/point-to/pkg/dom"
)

// Path returns the structural selector of an element: one segment per node
// from the root down to the element, joined with the child combinator.
// Each segment is the tag name plus the node's id when it has one, or its
// class list otherwise, so "html>body>div#app>p.note" names the first
// paragraph of that class inside #app.
func Path(el dom.Element) string {
	var segments []string
	for e := el; e != nil; e = e.Parent() {
		segments = append(segments, segment(e))
	}
	// Collected leaf-first; reverse into document order.
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, ">")
}

// Identifier returns the scope identifier for a source/target pair. It is a
// pure function of the two structural paths: pointing between the same pair
// always yields the same identifier, and structurally distinct pairs yield
// distinct ones. The result is safe to use as a CSS class name.
func Identifier(src, dst dom.Element) string {
	raw := Path(src) + ">>" + Path(dst)
	return strings.Map(safeRune, strings.ToLower(raw))
}

func segment(e dom.Element) string {
	s := e.Tag()
	if id := e.ID(); id != "" {
		return s + "#" + id
	}
	if classes := e.Classes(); len(classes) > 0 {
		return s + "." + strings.Join(classes, ".")
	}
	return s
}

// safeRune keeps characters valid inside a CSS class name and replaces
// everything else with a single filler. Combinators, id and class markers
// all collapse to the filler, which is fine: uniqueness comes from the
// path structure, not from the punctuation.
func safeRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z':
		return r
	case r >= '0' && r <= '9':
		return r
	case r == '-' || r == '_':
		return r
	}
	return '-'
}
