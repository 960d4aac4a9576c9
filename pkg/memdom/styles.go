package memdom

import (
	"strconv"
	"strings"
	"time"

	douceur "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"

	"github.com/hellenic-development/point-to/pkg/dom"
)

// sheet is one active style element with its parsed rules.
type sheet struct {
	owner *Element
	rules []styleRule
}

// styleRule is the timing-relevant part of one qualified CSS rule: its
// selectors, the animation it starts, and the properties it transitions.
// Everything else in the declaration block is irrelevant to scheduling and
// is dropped at parse time.
type styleRule struct {
	selectors     []string
	hasAnimation  bool
	animationName string
	animationDur  time.Duration
	transitions   map[string]time.Duration // property (or "all") -> duration
}

// registerStyleSubtree activates every style element in the subtree.
func (d *Document) registerStyleSubtree(root *Element) {
	d.walk(root, func(e *Element) {
		if e.tag == "style" {
			d.registerSheet(e)
		}
	})
}

// unregisterStyleSubtree deactivates every style element in the subtree.
func (d *Document) unregisterStyleSubtree(root *Element) {
	d.walk(root, func(e *Element) {
		if e.tag == "style" {
			d.dropSheet(e)
		}
	})
}

// registerSheet parses the style element's text and replaces any earlier
// registration for the same element. Unparseable text deactivates the
// sheet, matching an engine that ignores broken stylesheets.
func (d *Document) registerSheet(owner *Element) {
	d.dropSheet(owner)
	rules := parseRules(owner.text)
	if len(rules) == 0 {
		return
	}
	d.sheets = append(d.sheets, &sheet{owner: owner, rules: rules})
}

func (d *Document) dropSheet(owner *Element) {
	kept := d.sheets[:0]
	for _, s := range d.sheets {
		if s.owner != owner {
			kept = append(kept, s)
		}
	}
	d.sheets = kept
}

// classAdded schedules the end event of any animation the element now
// matches. Animations only play on attached elements and only when the
// engine supports an animation property at all; the event name fired is
// the one belonging to the supported property, prefixed engines included.
func (d *Document) classAdded(e *Element) {
	if !e.attached() {
		return
	}
	event := dom.Detect(d).AnimationEnd
	if event == "" {
		return
	}
	for _, rule := range d.matchingRules(e) {
		if rule.hasAnimation {
			d.schedule(e, event, rule.animationDur)
		}
	}
}

// classRemoved cancels pending animation-end events once the element no
// longer matches any animating rule.
func (d *Document) classRemoved(e *Element) {
	event := dom.Detect(d).AnimationEnd
	if event == "" {
		return
	}
	for _, rule := range d.matchingRules(e) {
		if rule.hasAnimation {
			return
		}
	}
	d.cancelSignals(e, event)
}

// styleChanged schedules the end event of a transition covering the
// changed property, when the element is attached and some matching rule
// transitions it with a nonzero duration. Zero-duration transitions fire
// nothing, exactly like real engines.
func (d *Document) styleChanged(e *Element, prop string) {
	if !e.attached() {
		return
	}
	event := dom.Detect(d).TransitionEnd
	if event == "" {
		return
	}
	for _, rule := range d.matchingRules(e) {
		dur, covered := rule.transitions[prop]
		if !covered {
			dur, covered = rule.transitions["all"]
		}
		if covered && dur > 0 {
			d.schedule(e, event, dur)
		}
	}
}

func (d *Document) matchingRules(e *Element) []styleRule {
	var out []styleRule
	for _, s := range d.sheets {
		for _, rule := range s.rules {
			for _, sel := range rule.selectors {
				if matchesSingle(e, sel) {
					out = append(out, rule)
					break
				}
			}
		}
	}
	return out
}

// parseRules extracts the timing-relevant rules from stylesheet text.
// At-rules (keyframes bodies among them) carry no scheduling information
// and are skipped; broken text yields no rules.
func parseRules(text string) []styleRule {
	ss, err := parser.Parse(text)
	if err != nil {
		return nil
	}

	var out []styleRule
	for _, r := range ss.Rules {
		if r.Kind != douceur.QualifiedRule {
			continue
		}
		rule := styleRule{
			selectors:   r.Selectors,
			transitions: make(map[string]time.Duration),
		}
		for _, decl := range r.Declarations {
			switch strings.ToLower(decl.Property) {
			case "animation":
				name, dur := parseAnimationShorthand(decl.Value)
				rule.hasAnimation = true
				rule.animationName = name
				rule.animationDur = dur
			case "animation-name":
				rule.hasAnimation = true
				rule.animationName = strings.TrimSpace(decl.Value)
			case "animation-duration":
				if dur, ok := parseDuration(decl.Value); ok {
					rule.hasAnimation = true
					rule.animationDur = dur
				}
			case "transition":
				for prop, dur := range parseTransitionShorthand(decl.Value) {
					rule.transitions[prop] = dur
				}
			}
		}
		if rule.hasAnimation || len(rule.transitions) > 0 {
			out = append(out, rule)
		}
	}
	return out
}

// parseAnimationShorthand pulls the animation name and duration out of an
// animation shorthand value. The first time token is the duration (a
// second one would be the delay, which the scheduler ignores); the name is
// the first token that is neither a time nor a known keyword.
func parseAnimationShorthand(value string) (string, time.Duration) {
	var (
		name   string
		dur    time.Duration
		gotDur bool
	)
	for _, field := range strings.Fields(value) {
		if d, ok := parseDuration(field); ok {
			if !gotDur {
				dur = d
				gotDur = true
			}
			continue
		}
		if name == "" && !animationKeyword(field) {
			name = field
		}
	}
	return name, dur
}

// parseTransitionShorthand maps transitioned properties to durations from
// a transition shorthand value, one comma-separated entry per property.
func parseTransitionShorthand(value string) map[string]time.Duration {
	out := make(map[string]time.Duration)
	for _, part := range strings.Split(value, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		prop := strings.ToLower(fields[0])
		var dur time.Duration
		for _, f := range fields[1:] {
			if d, ok := parseDuration(f); ok {
				dur = d
				break
			}
		}
		out[prop] = dur
	}
	return out
}

// parseDuration reads a CSS time value: "600ms", "0.6s", "0s".
func parseDuration(tok string) (time.Duration, bool) {
	tok = strings.ToLower(strings.TrimSpace(tok))
	switch {
	case strings.HasSuffix(tok, "ms"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(tok, "ms"), 64)
		if err != nil {
			return 0, false
		}
		return time.Duration(f * float64(time.Millisecond)), true
	case strings.HasSuffix(tok, "s"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(tok, "s"), 64)
		if err != nil {
			return 0, false
		}
		return time.Duration(f * float64(time.Second)), true
	}
	return 0, false
}

var animationKeywords = map[string]bool{
	"ease": true, "ease-in": true, "ease-out": true, "ease-in-out": true,
	"linear": true, "step-start": true, "step-end": true,
	"normal": true, "reverse": true, "alternate": true, "alternate-reverse": true,
	"none": true, "forwards": true, "backwards": true, "both": true,
	"running": true, "paused": true, "infinite": true,
}

func animationKeyword(tok string) bool {
	if animationKeywords[strings.ToLower(tok)] {
		return true
	}
	// Iteration counts and bezier functions are not names either.
	if _, err := strconv.ParseFloat(tok, 64); err == nil {
		return true
	}
	return strings.HasPrefix(tok, "cubic-bezier(") || strings.HasPrefix(tok, "steps(")
}
