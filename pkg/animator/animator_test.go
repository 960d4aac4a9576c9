package animator

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hellenic-development/point-to/pkg/dom"
	"github.com/hellenic-development/point-to/pkg/memdom"
	"github.com/hellenic-development/point-to/pkg/rgb"
)

// buildStage assembles a document with a source paragraph centered at
// (140,135) and a target panel centered at (460,80).
func buildStage(t *testing.T) (*memdom.Document, dom.Element, dom.Element) {
	t.Helper()
	doc := memdom.New()

	app := doc.CreateElement("div")
	app.(*memdom.Element).SetAttr("id", "app")
	doc.Body().Append(app)

	src := doc.CreateElement("p")
	src.AddClass("note")
	src.SetStyle("left", "40px")
	src.SetStyle("top", "120px")
	src.SetStyle("width", "200px")
	src.SetStyle("height", "30px")
	app.Append(src)

	dst := doc.CreateElement("div")
	dst.(*memdom.Element).SetAttr("id", "summary")
	dst.SetStyle("left", "400px")
	dst.SetStyle("top", "40px")
	dst.SetStyle("width", "120px")
	dst.SetStyle("height", "80px")
	doc.Body().Append(dst)

	return doc, src, dst
}

func testConfig(src, dst dom.Element) Config {
	return Config{
		Source:             src,
		Target:             dst,
		HighlightClass:     "point-to-highlight",
		PointerClass:       "point-to-pointer",
		HighlightColor:     rgb.Color{R: 255, G: 255},
		PointerColor:       rgb.Color{R: 255, G: 255},
		Opacity:            0.5,
		HighlightDuration:  600 * time.Millisecond,
		PointerDuration:    800 * time.Millisecond,
		PointerSize:        20,
		AnimationEndEvent:  "animationend",
		TransitionEndEvent: "transitionend",
	}
}

func hasClass(el dom.Element, name string) bool {
	for _, c := range el.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Infof(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Warnf(format string, args ...any)  {}
func (l *recordingLogger) Errorf(format string, args ...any) {}

// TestStartWalksPhases drives one run step by step, delivering each
// completion event by hand and checking the document between steps.
func TestStartWalksPhases(t *testing.T) {
	doc, src, dst := buildStage(t)
	cfg := testConfig(src, dst)

	var phases []string
	var runIDs []string
	cfg.OnPhase = func(runID string, p Phase) {
		phases = append(phases, p.String())
		runIDs = append(runIDs, runID)
	}

	seq := Start(doc, cfg)

	if got := seq.Phase(); got != PhaseHighlightSource {
		t.Fatalf("Phase() = %v, want %v", got, PhaseHighlightSource)
	}
	if !hasClass(src, "point-to-highlight") {
		t.Error("source is missing the highlight class")
	}
	if seq.StyleNode() == nil {
		t.Fatal("StyleNode() = nil, want injected style element")
	}
	wantKeyframes := "@keyframes point-to-highlight-" + seq.Scope()
	if text := seq.StyleNode().Text(); !strings.Contains(text, wantKeyframes) {
		t.Errorf("injected stylesheet is missing %q", wantKeyframes)
	}

	// Opening flash completes.
	src.(*memdom.Element).Dispatch("animationend")

	if got := seq.Phase(); got != PhaseFlying {
		t.Fatalf("Phase() = %v, want %v", got, PhaseFlying)
	}
	if hasClass(src, "point-to-highlight") {
		t.Error("source still carries the highlight class while flying")
	}
	orbs := doc.Select(".point-to-pointer")
	if len(orbs) != 1 {
		t.Fatalf("Select(pointer) matched %d elements, want 1", len(orbs))
	}
	orb := orbs[0]
	if !hasClass(orb, seq.Scope()) {
		t.Error("orb is missing its scope class")
	}
	if got := orb.Style("left"); got != "140px" {
		t.Errorf("orb left = %q, want %q", got, "140px")
	}
	if got := orb.Style("top"); got != "135px" {
		t.Errorf("orb top = %q, want %q", got, "135px")
	}

	// The destination write lands on the next tick.
	doc.Flush()

	if got := orb.Style("left"); got != "460px" {
		t.Errorf("orb left = %q, want %q", got, "460px")
	}
	if got := orb.Style("top"); got != "80px" {
		t.Errorf("orb top = %q, want %q", got, "80px")
	}
	if got := seq.Phase(); got != PhaseFlying {
		t.Fatalf("Phase() = %v, want %v while travelling", got, PhaseFlying)
	}

	// Travel completes.
	orb.(*memdom.Element).Dispatch("transitionend")

	if got := seq.Phase(); got != PhaseHighlightTarget {
		t.Fatalf("Phase() = %v, want %v", got, PhaseHighlightTarget)
	}
	if !hasClass(dst, "point-to-highlight") {
		t.Error("target is missing the highlight class")
	}
	if rest := doc.Select(".point-to-pointer"); len(rest) != 0 {
		t.Errorf("Select(pointer) matched %d elements after travel, want 0", len(rest))
	}

	// Closing flash completes.
	dst.(*memdom.Element).Dispatch("animationend")

	if !seq.Done() {
		t.Fatalf("Done() = false after final event, phase %v", seq.Phase())
	}
	if hasClass(dst, "point-to-highlight") {
		t.Error("target still carries the highlight class after completion")
	}
	if seq.StyleNode() != nil {
		t.Error("StyleNode() retained after a non-debug run")
	}
	if rest := doc.Select("style"); len(rest) != 0 {
		t.Errorf("Select(style) matched %d elements after completion, want 0", len(rest))
	}

	wantPhases := []string{"highlight-source", "flying", "highlight-target", "done"}
	if len(phases) != len(wantPhases) {
		t.Fatalf("observed phases %v, want %v", phases, wantPhases)
	}
	for i := range wantPhases {
		if phases[i] != wantPhases[i] {
			t.Errorf("phases[%d] = %v, want %v", i, phases[i], wantPhases[i])
		}
	}
	for _, id := range runIDs {
		if id != seq.ID() {
			t.Errorf("OnPhase runID = %v, want %v", id, seq.ID())
		}
	}
}

func TestZeroDurationsCompleteSynchronously(t *testing.T) {
	doc, src, dst := buildStage(t)
	cfg := testConfig(src, dst)
	cfg.HighlightDuration = 0
	cfg.PointerDuration = 0

	seq := Start(doc, cfg)

	// Both flashes are instant, but the orb's destination write still
	// waits for the next tick.
	if got := seq.Phase(); got != PhaseFlying {
		t.Fatalf("Phase() = %v, want %v", got, PhaseFlying)
	}

	doc.Flush()

	if !seq.Done() {
		t.Fatalf("Done() = false after flush, phase %v", seq.Phase())
	}
	if rest := doc.Select(".point-to-pointer"); len(rest) != 0 {
		t.Errorf("Select(pointer) matched %d elements, want 0", len(rest))
	}
	if rest := doc.Select("style"); len(rest) != 0 {
		t.Errorf("Select(style) matched %d elements, want 0", len(rest))
	}
}

func TestEmptyEventNamesCompleteSynchronously(t *testing.T) {
	doc, src, dst := buildStage(t)
	cfg := testConfig(src, dst)
	cfg.AnimationEndEvent = ""
	cfg.TransitionEndEvent = ""

	seq := Start(doc, cfg)

	if got := seq.Phase(); got != PhaseFlying {
		t.Fatalf("Phase() = %v, want %v", got, PhaseFlying)
	}

	doc.Flush()

	if !seq.Done() {
		t.Fatalf("Done() = false after flush, phase %v", seq.Phase())
	}
}

func TestNoMovementSkipsTransitionWait(t *testing.T) {
	doc, src, _ := buildStage(t)

	// A target occupying the source's exact box gives the orb nowhere
	// to go.
	dst := doc.CreateElement("div")
	dst.(*memdom.Element).SetAttr("id", "mirror")
	dst.SetStyle("left", "40px")
	dst.SetStyle("top", "120px")
	dst.SetStyle("width", "200px")
	dst.SetStyle("height", "30px")
	doc.Body().Append(dst)

	cfg := testConfig(src, dst)
	seq := Start(doc, cfg)

	src.(*memdom.Element).Dispatch("animationend")
	doc.Flush()

	if got := seq.Phase(); got != PhaseHighlightTarget {
		t.Fatalf("Phase() = %v, want %v without travel", got, PhaseHighlightTarget)
	}
	if rest := doc.Select(".point-to-pointer"); len(rest) != 0 {
		t.Errorf("Select(pointer) matched %d elements, want 0", len(rest))
	}

	// Only the initial position was ever written to the orb.
	writes := 0
	for _, e := range doc.Journal() {
		if e.Kind == memdom.KindStyleSet && e.Target == "div.point-to-pointer" {
			writes++
		}
	}
	if writes != 2 {
		t.Errorf("orb received %d style writes, want 2", writes)
	}

	dst.(*memdom.Element).Dispatch("animationend")
	if !seq.Done() {
		t.Fatalf("Done() = false after final event, phase %v", seq.Phase())
	}
}

func TestDebugRetainsStyleNode(t *testing.T) {
	doc, src, dst := buildStage(t)
	lg := &recordingLogger{}

	cfg := testConfig(src, dst)
	cfg.HighlightDuration = 0
	cfg.PointerDuration = 0
	cfg.Debug = true
	cfg.Logger = lg

	seq := Start(doc, cfg)
	doc.Flush()

	if !seq.Done() {
		t.Fatalf("Done() = false after flush, phase %v", seq.Phase())
	}
	if seq.StyleNode() == nil {
		t.Error("StyleNode() = nil, want retained style element in debug mode")
	}
	if rest := doc.Select("style"); len(rest) != 1 {
		t.Errorf("Select(style) matched %d elements, want 1", len(rest))
	}

	if len(lg.lines) != 4 {
		t.Fatalf("logged %d lines, want 4", len(lg.lines))
	}
	if !strings.Contains(lg.lines[0], "highlight-source") {
		t.Errorf("first log line = %q, want phase name in it", lg.lines[0])
	}
	if !strings.Contains(lg.lines[0], seq.ID()) {
		t.Errorf("first log line = %q, want run id in it", lg.lines[0])
	}
}

func TestSequenceIdentities(t *testing.T) {
	doc, src, dst := buildStage(t)

	cfg := testConfig(src, dst)
	cfg.HighlightDuration = 0
	cfg.PointerDuration = 0

	a := Start(doc, cfg)
	doc.Flush()
	b := Start(doc, cfg)
	doc.Flush()

	if a.ID() == b.ID() {
		t.Errorf("ID() collided: %v", a.ID())
	}
	if len(a.ID()) != 36 {
		t.Errorf("ID() = %q, want UUID form", a.ID())
	}
	if a.Scope() != b.Scope() {
		t.Errorf("Scope() differs for the same pair: %v vs %v", a.Scope(), b.Scope())
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		name  string
		phase Phase
		want  string
	}{
		{name: "idle", phase: PhaseIdle, want: "idle"},
		{name: "highlight source", phase: PhaseHighlightSource, want: "highlight-source"},
		{name: "flying", phase: PhaseFlying, want: "flying"},
		{name: "highlight target", phase: PhaseHighlightTarget, want: "highlight-target"},
		{name: "done", phase: PhaseDone, want: "done"},
		{name: "unknown", phase: Phase(42), want: "phase(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.phase.String(); got != tt.want {
				t.Errorf("String() = %v, want %v", got, tt.want)
			}
		})
	}
}
