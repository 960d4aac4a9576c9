package dom_test

import (
	"testing"

	"github.com/hellenic-development/point-to/pkg/dom"
	"github.com/hellenic-development/point-to/pkg/memdom"
)

func TestCenter(t *testing.T) {
	tests := []struct {
		name string
		rect dom.Rect
		want dom.Point
	}{
		{
			name: "whole numbers",
			rect: dom.Rect{X: 40, Y: 120, Width: 200, Height: 30},
			want: dom.Point{X: 140, Y: 135},
		},
		{
			name: "rounds half up",
			rect: dom.Rect{X: 0, Y: 0, Width: 5, Height: 5},
			want: dom.Point{X: 3, Y: 3},
		},
		{
			name: "negative origin",
			rect: dom.Rect{X: -10, Y: -10, Width: 4, Height: 4},
			want: dom.Point{X: -8, Y: -8},
		},
		{
			name: "zero box",
			rect: dom.Rect{},
			want: dom.Point{},
		},
		{
			name: "fractional layout",
			rect: dom.Rect{X: 10.2, Y: 10.2, Width: 10.2, Height: 10.2},
			want: dom.Point{X: 15, Y: 15},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := memdom.New()
			el := doc.CreateElement("div")
			el.(*memdom.Element).SetRect(tt.rect)
			if got := dom.Center(el); got != tt.want {
				t.Errorf("Center() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCenterFromStyles(t *testing.T) {
	doc := memdom.New()
	el := doc.CreateElement("div")
	el.SetStyle("left", "40px")
	el.SetStyle("top", "120px")
	el.SetStyle("width", "200px")
	el.SetStyle("height", "30px")
	doc.Body().Append(el)

	want := dom.Point{X: 140, Y: 135}
	if got := dom.Center(el); got != want {
		t.Errorf("Center() = %v, want %v", got, want)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		props     []string
		wantAnim  string
		wantTrans string
	}{
		{
			name:      "standard engine",
			props:     []string{"animation", "transition"},
			wantAnim:  "animationend",
			wantTrans: "transitionend",
		},
		{
			name:      "webkit only",
			props:     []string{"WebkitAnimation", "WebkitTransition"},
			wantAnim:  "webkitAnimationEnd",
			wantTrans: "webkitTransitionEnd",
		},
		{
			name:      "gecko fires unprefixed events",
			props:     []string{"MozAnimation", "MozTransition"},
			wantAnim:  "animationend",
			wantTrans: "transitionend",
		},
		{
			name:      "presto",
			props:     []string{"OAnimation", "OTransition"},
			wantAnim:  "oanimationend",
			wantTrans: "otransitionend",
		},
		{
			name:      "trident",
			props:     []string{"MSAnimation", "MSTransition"},
			wantAnim:  "MSAnimationEnd",
			wantTrans: "MSTransitionEnd",
		},
		{
			name:      "standard wins over prefixed",
			props:     []string{"WebkitAnimation", "animation", "WebkitTransition", "transition"},
			wantAnim:  "animationend",
			wantTrans: "transitionend",
		},
		{
			name:     "animations without transitions",
			props:    []string{"animation"},
			wantAnim: "animationend",
		},
		{
			name: "no engine at all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := memdom.New()
			doc.SetStyleSupport(tt.props...)
			caps := dom.Detect(doc)
			if caps.AnimationEnd != tt.wantAnim {
				t.Errorf("Detect().AnimationEnd = %v, want %v", caps.AnimationEnd, tt.wantAnim)
			}
			if caps.TransitionEnd != tt.wantTrans {
				t.Errorf("Detect().TransitionEnd = %v, want %v", caps.TransitionEnd, tt.wantTrans)
			}
		})
	}
}
