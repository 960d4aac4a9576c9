package pointto

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hellenic-development/point-to/pkg/animator"
	"github.com/hellenic-development/point-to/pkg/dom"
	"github.com/hellenic-development/point-to/pkg/rgb"
	"github.com/hellenic-development/point-to/pkg/scope"
)

// Version is the library version, reported by the point-to CLI.
const Version = "1.0.2"

// Disable turns a phase off when assigned to one of the duration options.
// A zero duration means "use the default", so disabling is expressed with
// a negative value instead; declarative attributes use a literal "0".
const Disable time.Duration = -1

// Default values applied where an option is left unset.
const (
	defaultColor             = "yellow"
	defaultOpacity           = 0.5
	defaultHighlightDuration = 600 * time.Millisecond
	defaultPointerDuration   = 800 * time.Millisecond
	defaultPointerSize       = 20
	defaultHighlightClass    = "point-to-highlight"
	defaultPointerClass      = "point-to-pointer"
)

// attrPrefix namespaces the declarative per-element overrides.
const attrPrefix = "data-point-to-"

// Options configures a pointing run. The zero value of every field means
// "use the default"; any recognized field may additionally be overridden
// per source element through data-point-to-* attributes.
type Options struct {
	Target string // CSS selector of the element to point at

	Color   string  // accent for both flashes and the orb, any CSS notation
	Opacity float64 // orb fill opacity, 0 < o <= 1

	HighlightAnimationClass    string        // class toggled for the flashes
	HighlightAnimationDuration time.Duration // Disable turns the flashes off
	HighlightAnimationColor    string        // overrides Color for flashes

	PointerClass              string        // class carried by the orb
	PointerTransitionDuration time.Duration // Disable skips the travel wait
	PointerColor              string        // overrides Color for the orb
	PointerSize               int           // orb diameter in pixels

	// AnimationEndEvent and TransitionEndEvent override the completion
	// event names detected from the host's style engine. Leave empty to
	// detect.
	AnimationEndEvent  string
	TransitionEndEvent string

	// Debug retains each run's injected style node after completion and
	// logs phase transitions.
	Debug bool

	Logger Logger // nil = no logging

	// OnPhase, when set, observes every phase each run enters.
	OnPhase func(runID string, phase animator.Phase)
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result collects the outcome of one invocation. Sources that could not be
// configured are reported in Skipped and do not stop the others.
type Result struct {
	Sequences []*animator.Sequence // one in-flight run per configured source
	Skipped   []error              // per-source configuration failures
}

// Done reports whether every started run has completed.
func (r *Result) Done() bool {
	for _, s := range r.Sequences {
		if !s.Done() {
			return false
		}
	}
	return true
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

// DefaultOptions returns the options a run uses where the caller and the
// source element leave values unset.
func DefaultOptions() Options {
	return Options{
		Color:                      defaultColor,
		Opacity:                    defaultOpacity,
		HighlightAnimationClass:    defaultHighlightClass,
		HighlightAnimationDuration: defaultHighlightDuration,
		PointerClass:               defaultPointerClass,
		PointerTransitionDuration:  defaultPointerDuration,
		PointerSize:                defaultPointerSize,
	}
}

// Point starts a pointing run from every element matching the sources
// selector. Configuration failures (typically a target selector matching
// nothing) skip the affected source and are collected in the result; Point
// itself never fails.
func Point(doc dom.Document, sources string, opts Options) *Result {
	elements := doc.Select(sources)
	if len(elements) == 0 {
		err := fmt.Errorf("sources %q matched no element", sources)
		opts.logWarn("%v", err)
		return &Result{Skipped: []error{err}}
	}
	return PointElements(doc, elements, opts)
}

// PointTo is the shorthand form of Point: everything stays at its default
// except the target.
func PointTo(doc dom.Document, sources, target string) *Result {
	return Point(doc, sources, Options{Target: target})
}

// PointElements starts a pointing run from each of the given elements.
// Every element resolves its own configuration, so declarative overrides
// can send two sources to different targets in different colors within a
// single call.
func PointElements(doc dom.Document, elements []dom.Element, opts Options) *Result {
	result := &Result{}
	caps := dom.Detect(doc)
	resolver := rgb.NewResolver(doc)

	for _, el := range elements {
		cfg, err := resolveConfig(doc, el, opts, caps, resolver)
		if err != nil {
			opts.logWarn("Skipping %s: %v", scope.Path(el), err)
			result.Skipped = append(result.Skipped, err)
			continue
		}
		result.Sequences = append(result.Sequences, animator.Start(doc, cfg))
	}
	return result
}

// resolveConfig builds one source element's resolved configuration:
// defaults first, then the caller's options, then the element's own
// data-point-to-* attributes, later layers winning. Color strings resolve
// through the shared resolver only after all layers are merged, and the
// completion events fall back to what the host engine supports.
func resolveConfig(doc dom.Document, src dom.Element, opts Options, caps dom.Capabilities, resolver *rgb.Resolver) (animator.Config, error) {
	o := DefaultOptions()
	mergeOptions(&o, opts)
	mergeAttributes(&o, src)

	// Normalize out-of-range and sentinel values.
	if o.Opacity <= 0 || o.Opacity > 1 {
		o.Opacity = defaultOpacity
	}
	if o.HighlightAnimationDuration < 0 {
		o.HighlightAnimationDuration = 0
	}
	if o.PointerTransitionDuration < 0 {
		o.PointerTransitionDuration = 0
	}
	if o.PointerSize <= 0 {
		o.PointerSize = defaultPointerSize
	}

	if strings.TrimSpace(o.Target) == "" {
		return animator.Config{}, fmt.Errorf("no target configured")
	}
	targets := doc.Select(o.Target)
	if len(targets) == 0 {
		return animator.Config{}, fmt.Errorf("target %q matched no element", o.Target)
	}
	// The first match is the target, same as reading the offset of a
	// multi-element selection.
	target := targets[0]

	base := resolver.Resolve(o.Color)
	highlight := base
	if o.HighlightAnimationColor != "" {
		highlight = resolver.Resolve(o.HighlightAnimationColor)
	}
	pointer := base
	if o.PointerColor != "" {
		pointer = resolver.Resolve(o.PointerColor)
	}

	animEnd := o.AnimationEndEvent
	if animEnd == "" {
		animEnd = caps.AnimationEnd
	}
	transEnd := o.TransitionEndEvent
	if transEnd == "" {
		transEnd = caps.TransitionEnd
	}

	return animator.Config{
		Source:             src,
		Target:             target,
		HighlightClass:     o.HighlightAnimationClass,
		PointerClass:       o.PointerClass,
		HighlightColor:     highlight,
		PointerColor:       pointer,
		Opacity:            o.Opacity,
		HighlightDuration:  o.HighlightAnimationDuration,
		PointerDuration:    o.PointerTransitionDuration,
		PointerSize:        o.PointerSize,
		AnimationEndEvent:  animEnd,
		TransitionEndEvent: transEnd,
		Debug:              o.Debug,
		Logger:             o.Logger,
		OnPhase:            o.OnPhase,
	}, nil
}

// mergeOptions overlays the caller's explicitly set fields onto o.
func mergeOptions(o *Options, from Options) {
	if from.Target != "" {
		o.Target = from.Target
	}
	if from.Color != "" {
		o.Color = from.Color
	}
	if from.Opacity != 0 {
		o.Opacity = from.Opacity
	}
	if from.HighlightAnimationClass != "" {
		o.HighlightAnimationClass = from.HighlightAnimationClass
	}
	if from.HighlightAnimationDuration != 0 {
		o.HighlightAnimationDuration = from.HighlightAnimationDuration
	}
	if from.HighlightAnimationColor != "" {
		o.HighlightAnimationColor = from.HighlightAnimationColor
	}
	if from.PointerClass != "" {
		o.PointerClass = from.PointerClass
	}
	if from.PointerTransitionDuration != 0 {
		o.PointerTransitionDuration = from.PointerTransitionDuration
	}
	if from.PointerColor != "" {
		o.PointerColor = from.PointerColor
	}
	if from.PointerSize != 0 {
		o.PointerSize = from.PointerSize
	}
	if from.AnimationEndEvent != "" {
		o.AnimationEndEvent = from.AnimationEndEvent
	}
	if from.TransitionEndEvent != "" {
		o.TransitionEndEvent = from.TransitionEndEvent
	}
	if from.Debug {
		o.Debug = true
	}
	if from.Logger != nil {
		o.Logger = from.Logger
	}
	if from.OnPhase != nil {
		o.OnPhase = from.OnPhase
	}
}

// mergeAttributes overlays the element's non-empty declarative overrides
// onto o. Unrecognized attributes are ignored; values that fail to parse
// leave the merged value in place.
func mergeAttributes(o *Options, el dom.Element) {
	if v := override(el, "target"); v != "" {
		o.Target = v
	}
	if v := override(el, "color"); v != "" {
		o.Color = v
	}
	if v := override(el, "opacity"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 1 {
			o.Opacity = f
		}
	}
	if v := override(el, "highlightAnimationClass"); v != "" {
		o.HighlightAnimationClass = v
	}
	if v := override(el, "highlightAnimationDuration"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			o.HighlightAnimationDuration = time.Duration(ms) * time.Millisecond
		}
	}
	if v := override(el, "highlightAnimationColor"); v != "" {
		o.HighlightAnimationColor = v
	}
	if v := override(el, "pointerClass"); v != "" {
		o.PointerClass = v
	}
	if v := override(el, "pointerTransitionDuration"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			o.PointerTransitionDuration = time.Duration(ms) * time.Millisecond
		}
	}
	if v := override(el, "pointerColor"); v != "" {
		o.PointerColor = v
	}
	if v := override(el, "pointerSize"); v != "" {
		if px, err := strconv.Atoi(v); err == nil && px > 0 {
			o.PointerSize = px
		}
	}
}

// override reads the declarative attribute for an option name, e.g.
// "highlightAnimationDuration" -> data-point-to-highlight-animation-duration.
func override(el dom.Element, option string) string {
	return strings.TrimSpace(el.Attr(attrPrefix + toKebabCase(option)))
}

// toKebabCase converts an option name to its attribute spelling.
func toKebabCase(s string) string {
	var sb strings.Builder
	for i, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r + ('a' - 'A'))
		case r == ' ' || r == '_':
			sb.WriteByte('-')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
