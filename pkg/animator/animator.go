// Package animator drives a single pointing run through its phases: flash
// the source, fly the orb to the target, flash the target, clean up. The
// machine never blocks and never spawns goroutines; it advances either
// synchronously or from completion-event callbacks delivered by the host,
// so all progress happens on the host's own event loop.
package animator

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hellenic-development/point-to/pkg/css"
	"github.com/hellenic-development/point-to/pkg/dom"
	"github.com/hellenic-development/point-to/pkg/rgb"
	"github.com/hellenic-development/point-to/pkg/scope"
)

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Phase identifies where a sequence currently is in its lifecycle.
type Phase int

const (
	// PhaseIdle is the zero value; a started sequence never reports it.
	PhaseIdle Phase = iota

	// PhaseHighlightSource plays the opening flash on the source element.
	PhaseHighlightSource

	// PhaseFlying moves the pointer orb from source center to target center.
	PhaseFlying

	// PhaseHighlightTarget plays the closing flash on the target element.
	PhaseHighlightTarget

	// PhaseDone means the run finished and released its document artifacts.
	PhaseDone
)

// String returns a short lower-case name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseHighlightSource:
		return "highlight-source"
	case PhaseFlying:
		return "flying"
	case PhaseHighlightTarget:
		return "highlight-target"
	case PhaseDone:
		return "done"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Config is the fully resolved configuration of one run. Colors are already
// canonical, durations already final (zero disables the phase's wait), and
// the completion-event names already reflect what the host engine fires
// (empty when it fires nothing).
type Config struct {
	Source dom.Element
	Target dom.Element

	HighlightClass string
	PointerClass   string

	HighlightColor rgb.Color
	PointerColor   rgb.Color
	Opacity        float64

	HighlightDuration time.Duration
	PointerDuration   time.Duration
	PointerSize       int

	AnimationEndEvent  string // "" = do not wait on highlight flashes
	TransitionEndEvent string // "" = do not wait on orb travel

	// Debug keeps the injected style node in the document after the run
	// finishes and logs phase transitions.
	Debug bool

	Logger Logger

	// OnPhase, when set, observes every phase the run enters.
	OnPhase func(runID string, phase Phase)
}

// Sequence is one in-flight pointing run. It owns the two transient
// document artifacts of a run, the pointer orb and the injected style node,
// and releases both when it completes.
type Sequence struct {
	id    string
	doc   dom.Document
	cfg   Config
	scope string
	phase Phase

	pointer dom.Element
	style   dom.Element
}

// Start injects the run's scoped stylesheet and begins the sequence with
// the source highlight. The returned Sequence may already have advanced
// past its first phases, or all of them, when their waits are disabled.
func Start(doc dom.Document, cfg Config) *Sequence {
	s := &Sequence{
		id:    uuid.NewString(),
		doc:   doc,
		cfg:   cfg,
		scope: scope.Identifier(cfg.Source, cfg.Target),
	}
	s.inject()
	s.enterHighlightSource()
	return s
}

// ID returns the run identifier used in log output.
func (s *Sequence) ID() string { return s.id }

// Phase returns the phase the sequence is currently in.
func (s *Sequence) Phase() Phase { return s.phase }

// Done reports whether the sequence has run to completion.
func (s *Sequence) Done() bool { return s.phase == PhaseDone }

// Scope returns the scope identifier derived from the element pair.
func (s *Sequence) Scope() string { return s.scope }

// Config returns the resolved configuration the sequence runs with.
func (s *Sequence) Config() Config { return s.cfg }

// StyleNode returns the injected style element. After completion it is nil
// unless the run was started in debug mode, which retains the node for
// inspection.
func (s *Sequence) StyleNode() dom.Element { return s.style }

// inject synthesizes the scoped stylesheet and appends it under the source
// element. The sequence keeps the handle: cleanup removes exactly this node
// and never touches style elements owned by anyone else.
func (s *Sequence) inject() {
	text := css.Stylesheet(css.Params{
		Scope:             s.scope,
		SourcePath:        scope.Path(s.cfg.Source),
		TargetPath:        scope.Path(s.cfg.Target),
		HighlightClass:    s.cfg.HighlightClass,
		PointerClass:      s.cfg.PointerClass,
		HighlightColor:    s.cfg.HighlightColor,
		PointerColor:      s.cfg.PointerColor,
		Opacity:           s.cfg.Opacity,
		HighlightDuration: s.cfg.HighlightDuration,
		PointerDuration:   s.cfg.PointerDuration,
		PointerSize:       s.cfg.PointerSize,
	})

	node := s.doc.CreateElement("style")
	node.SetText(text)
	s.cfg.Source.Append(node)
	s.style = node
}

func (s *Sequence) enterHighlightSource() {
	s.setPhase(PhaseHighlightSource)

	src := s.cfg.Source
	src.AddClass(s.cfg.HighlightClass)

	if s.cfg.HighlightDuration <= 0 || s.cfg.AnimationEndEvent == "" {
		// Nothing will fire; treat the flash as instantaneously complete.
		s.enterFlying()
		return
	}
	src.Once(s.cfg.AnimationEndEvent, s.enterFlying)
}

func (s *Sequence) enterFlying() {
	s.cfg.Source.RemoveClass(s.cfg.HighlightClass)
	s.setPhase(PhaseFlying)

	// Probe the source at this instant; the flash may have moved things.
	start := dom.Center(s.cfg.Source)

	orb := s.doc.CreateElement("div")
	orb.AddClass(s.cfg.PointerClass)
	orb.AddClass(s.scope)
	orb.SetStyle("left", px(start.X))
	orb.SetStyle("top", px(start.Y))
	s.doc.Body().Append(orb)
	s.pointer = orb

	wait := s.cfg.PointerDuration > 0 && s.cfg.TransitionEndEvent != ""

	// The destination write must land on a later tick than the initial
	// position, otherwise the engine coalesces the two and the orb appears
	// at the target with no travel in between.
	s.doc.Defer(func() {
		end := dom.Center(s.cfg.Target)
		moved := end != start
		if moved {
			orb.SetStyle("left", px(end.X))
			orb.SetStyle("top", px(end.Y))
		}
		if wait && moved {
			orb.Once(s.cfg.TransitionEndEvent, s.enterHighlightTarget)
			return
		}
		// No travel or no event to wait for: complete the phase now.
		s.enterHighlightTarget()
	})
}

func (s *Sequence) enterHighlightTarget() {
	s.setPhase(PhaseHighlightTarget)

	dst := s.cfg.Target
	dst.AddClass(s.cfg.HighlightClass)

	if s.pointer != nil {
		s.pointer.Remove()
		s.pointer = nil
	}

	if s.cfg.HighlightDuration <= 0 || s.cfg.AnimationEndEvent == "" {
		s.finish()
		return
	}
	dst.Once(s.cfg.AnimationEndEvent, s.finish)
}

func (s *Sequence) finish() {
	s.cfg.Target.RemoveClass(s.cfg.HighlightClass)

	if s.style != nil && !s.cfg.Debug {
		s.style.Remove()
		s.style = nil
	}

	s.setPhase(PhaseDone)
}

func (s *Sequence) setPhase(p Phase) {
	s.phase = p
	if s.cfg.Debug {
		s.logInfo("run %s: %s", s.id, p)
	}
	if s.cfg.OnPhase != nil {
		s.cfg.OnPhase(s.id, p)
	}
}

func (s *Sequence) logInfo(f string, a ...any) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Infof(f, a...)
	}
}

func px(v int) string {
	return fmt.Sprintf("%dpx", v)
}
