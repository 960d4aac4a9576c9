// Package pointto animates a visual lead from source elements to a target
// element in a document: the source flashes, a pointer orb travels from the
// source's center to the target's center, and the target flashes to close.
// Each run synthesizes its own scoped stylesheet, so any number of runs can
// share a page without interfering.
//
// The library performs no rendering of its own. It drives a host document
// through the interfaces in pkg/dom and advances on the completion events
// the host's style engine fires; pkg/memdom ships a deterministic in-memory
// host used by the tests and the CLI in cmd/point-to.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named pointto:
//
//	import "github.com/hellenic-development/point-to" // package pointto
//
// # Quick start
//
//	doc, err := memdom.Load(pageReader)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result := pointto.Point(doc, "p.note", pointto.Options{
//	    Target:  "#summary",
//	    Color:   "#3aa0ff",
//	    Opacity: 0.4,
//	})
//	doc.RunUntilIdle()
//	for _, err := range result.Skipped {
//	    log.Println(err)
//	}
//
// [PointTo] is the shorthand form when only the target matters:
//
//	pointto.PointTo(doc, "p.note", "#summary")
//
// # Declarative overrides
//
// Any recognized option can also be set per source element through
// data-point-to-* attributes, which take precedence over the caller's
// options. Attribute names are the kebab-case form of the option name:
//
//	<p class="note" data-point-to-target="#details"
//	   data-point-to-opacity="0.25">...</p>
//
// Empty attribute values are ignored rather than masking the caller's
// value.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// and skip diagnostics. A nil Logger silences all output.
//
//	type myLogger struct{}
//	func (l *myLogger) Infof(f string, a ...any)  { log.Printf("[INFO]  "+f, a...) }
//	func (l *myLogger) Warnf(f string, a ...any)  { log.Printf("[WARN]  "+f, a...) }
//	func (l *myLogger) Errorf(f string, a ...any) { log.Printf("[ERROR] "+f, a...) }
//
// # Hosts
//
// A host supplies selection, class and style mutation, element creation,
// next-tick scheduling, computed colors and completion events by
// implementing [pkg/dom.Document] and [pkg/dom.Element]. Hosts without
// animation or transition support still work: phases whose completion
// event can never fire complete synchronously instead of hanging.
package pointto
