package dom

// Capabilities names the completion events the host's style engine fires.
// An empty name means the corresponding feature is unavailable and nothing
// will ever fire; callers must not wait on it.
type Capabilities struct {
	AnimationEnd  string // e.g. "animationend", "webkitAnimationEnd"
	TransitionEnd string // e.g. "transitionend", "webkitTransitionEnd"
}

// support pairs a style property with the end event its engine fires.
type support struct {
	prop  string
	event string
}

// Property probing tables, standard form first. Engines that only know a
// prefixed property fire the matching prefixed event.
var (
	animationSupport = []support{
		{"animation", "animationend"},
		{"WebkitAnimation", "webkitAnimationEnd"},
		{"MozAnimation", "animationend"},
		{"OAnimation", "oanimationend"},
		{"MSAnimation", "MSAnimationEnd"},
	}

	transitionSupport = []support{
		{"transition", "transitionend"},
		{"WebkitTransition", "webkitTransitionEnd"},
		{"MozTransition", "transitionend"},
		{"OTransition", "otransitionend"},
		{"MSTransition", "MSTransitionEnd"},
	}
)

// Detect probes the document's style engine and returns the completion
// event names it fires. Unsupported features come back as empty strings.
func Detect(doc Document) Capabilities {
	return Capabilities{
		AnimationEnd:  firstSupported(doc, animationSupport),
		TransitionEnd: firstSupported(doc, transitionSupport),
	}
}

func firstSupported(doc Document, table []support) string {
	for _, s := range table {
		if doc.SupportsStyleProperty(s.prop) {
			return s.event
		}
	}
	return ""
}
