// Package css synthesizes the per-run stylesheet for a pointing animation.
// Generation is pure text work: the package knows nothing about documents,
// timing or event sequencing, it only turns a resolved parameter set into
// CSS the host engine can play.
package css

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hellenic-development/point-to/pkg/rgb"
)

// Params is everything the synthesizer needs for one run's stylesheet.
// All fields are already resolved: colors are canonical triples and the
// structural paths and scope identifier come from the actual element pair.
type Params struct {
	Scope      string // scope identifier, used as class and keyframes suffix
	SourcePath string // structural selector of the source element
	TargetPath string // structural selector of the target element

	HighlightClass string
	PointerClass   string

	HighlightColor rgb.Color
	PointerColor   rgb.Color
	Opacity        float64 // pointer fill opacity, 0 < o <= 1

	HighlightDuration time.Duration
	PointerDuration   time.Duration
	PointerSize       int // orb diameter in pixels
}

// KeyframesName returns the name of the highlight keyframes for this run.
// Scoping the name keeps concurrent runs with different highlight colors
// from fighting over one animation definition.
func KeyframesName(p Params) string {
	return p.HighlightClass + "-" + p.Scope
}

// PointerSelector returns the selector the pointer orb is styled by. The
// orb carries both the configured pointer class and the scope identifier,
// so each run's orb picks up only its own geometry and color.
func PointerSelector(p Params) string {
	return "." + p.PointerClass + "." + p.Scope
}

// Stylesheet generates the complete scoped stylesheet for one run: the
// highlight keyframes, the rule binding them to the source and target
// structural paths, and the pointer orb rules.
func Stylesheet(p Params) string {
	var sb strings.Builder

	name := KeyframesName(p)
	highlight := rgba(p.HighlightColor, 0.5)

	// Highlight flash: transparent at rest, half-strength accent mid-cycle.
	sb.WriteString(fmt.Sprintf("@keyframes %s {\n", name))
	sb.WriteString("  0% { background-color: transparent; }\n")
	sb.WriteString(fmt.Sprintf("  50%% { background-color: %s; }\n", highlight))
	sb.WriteString("  100% { background-color: transparent; }\n")
	sb.WriteString("}\n\n")

	// Bind the flash to both endpoints through their structural paths, so a
	// shared highlight class on unrelated runs cannot trigger this rule.
	sb.WriteString(fmt.Sprintf("%s.%s,\n%s.%s {\n",
		p.SourcePath, p.HighlightClass, p.TargetPath, p.HighlightClass))
	sb.WriteString(fmt.Sprintf("  animation: %s %dms ease-in-out;\n",
		name, p.HighlightDuration.Milliseconds()))
	sb.WriteString("}\n\n")

	// The orb itself: absolutely positioned, travel animated by the host's
	// transition engine.
	orb := PointerSelector(p)
	ms := p.PointerDuration.Milliseconds()
	sb.WriteString(fmt.Sprintf("%s {\n", orb))
	sb.WriteString("  position: absolute;\n")
	sb.WriteString(fmt.Sprintf("  transition: left %dms ease-in-out, top %dms ease-in-out;\n", ms, ms))
	sb.WriteString("}\n\n")

	// The visible circle, centered on the orb's coordinate.
	sb.WriteString(fmt.Sprintf("%s::after {\n", orb))
	sb.WriteString("  content: \"\";\n")
	sb.WriteString("  display: block;\n")
	sb.WriteString(fmt.Sprintf("  width: %dpx;\n", p.PointerSize))
	sb.WriteString(fmt.Sprintf("  height: %dpx;\n", p.PointerSize))
	sb.WriteString(fmt.Sprintf("  margin-left: %dpx;\n", -p.PointerSize/2))
	sb.WriteString(fmt.Sprintf("  margin-top: %dpx;\n", -p.PointerSize/2))
	sb.WriteString("  border-radius: 50%;\n")
	sb.WriteString(fmt.Sprintf("  background-color: %s;\n", rgba(p.PointerColor, p.Opacity)))
	sb.WriteString("}\n")

	return sb.String()
}

// rgba formats a canonical color as a CSS rgba() value with the given alpha.
func rgba(c rgb.Color, alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, formatAlpha(alpha))
}

// formatAlpha trims trailing zeros so 0.50 renders as 0.5 and 1.00 as 1.
func formatAlpha(a float64) string {
	s := strconv.FormatFloat(a, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}
