package rgb

import (
	"testing"

	"github.com/hellenic-development/point-to/pkg/memdom"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want Color
	}{
		{
			name: "named color",
			spec: "red",
			want: Color{R: 255},
		},
		{
			name: "hex",
			spec: "#3AA0FF",
			want: Color{R: 58, G: 160, B: 255},
		},
		{
			name: "short hex",
			spec: "#0f0",
			want: Color{G: 255},
		},
		{
			name: "rgb function",
			spec: "rgb(10, 20, 30)",
			want: Color{R: 10, G: 20, B: 30},
		},
		{
			name: "hsl function",
			spec: "hsl(120, 100%, 50%)",
			want: Color{G: 255},
		},
		{
			name: "surrounding spaces",
			spec: "  yellow  ",
			want: Color{R: 255, G: 255},
		},
		{
			name: "unknown keyword falls back",
			spec: "definitely-not-a-color",
			want: Fallback,
		},
		{
			name: "empty falls back",
			spec: "",
			want: Fallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := memdom.New()
			r := NewResolver(doc)
			if got := r.Resolve(tt.spec); got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestResolveReusesProbe(t *testing.T) {
	doc := memdom.New()

	first := NewResolver(doc)
	first.Resolve("red")
	first.Resolve("blue")

	// A second resolver on the same document adopts the existing probe
	// instead of appending another hidden element.
	second := NewResolver(doc)
	second.Resolve("green")

	probes := doc.Select("." + ProbeClass)
	if len(probes) != 1 {
		t.Fatalf("Select(probe) matched %d elements, want 1", len(probes))
	}
	if got := probes[0].Style("display"); got != "none" {
		t.Errorf("probe display = %q, want %q", got, "none")
	}
}

func TestResolveResetsStaleValue(t *testing.T) {
	doc := memdom.New()
	r := NewResolver(doc)

	if got, want := r.Resolve("red"), (Color{R: 255}); got != want {
		t.Fatalf("Resolve(red) = %v, want %v", got, want)
	}

	// The probe still carries red from the previous call. A failed
	// resolution must not leak it.
	if got := r.Resolve("definitely-not-a-color"); got != Fallback {
		t.Errorf("Resolve(invalid) = %v, want fallback %v", got, Fallback)
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want string
	}{
		{name: "yellow", c: Color{R: 255, G: 255}, want: "#FFFF00"},
		{name: "black", c: Color{}, want: "#000000"},
		{name: "mixed", c: Color{R: 58, G: 160, B: 255}, want: "#3AA0FF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Hex(); got != tt.want {
				t.Errorf("Hex() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFallbackIsYellow(t *testing.T) {
	want := Color{R: 255, G: 255}
	if Fallback != want {
		t.Errorf("Fallback = %v, want %v", Fallback, want)
	}
}
