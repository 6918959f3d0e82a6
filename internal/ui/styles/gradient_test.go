package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestBlendColors_Endpoints(t *testing.T) {
	from := lipgloss.Color("#000000")
	to := lipgloss.Color("#ffffff")

	colors := blendColors(3, from, to)
	if len(colors) != 3 {
		t.Fatalf("len = %d, want 3", len(colors))
	}
	if got := colorToHex(colors[0]); got != "#000000" {
		t.Errorf("first = %s, want #000000", got)
	}
	if got := colorToHex(colors[2]); got != "#ffffff" {
		t.Errorf("last = %s, want #ffffff", got)
	}
}

func TestBlendColors_Single(t *testing.T) {
	colors := blendColors(1, lipgloss.Color("#a78bfa"), lipgloss.Color("#f1a208"))
	if len(colors) != 1 {
		t.Fatalf("len = %d, want 1", len(colors))
	}
	if got := colorToHex(colors[0]); got != "#a78bfa" {
		t.Errorf("color = %s, want #a78bfa", got)
	}
}

func TestLipglossToColor_ANSIFallsBackToGray(t *testing.T) {
	if got := colorToHex(lipglossToColor(lipgloss.Color("240"))); got != "#808080" {
		t.Errorf("ANSI color = %s, want #808080", got)
	}
}

func TestGradientFill(t *testing.T) {
	if got := GradientFill("━", 0, T().Primary, T().Secondary); got != "" {
		t.Errorf("GradientFill(0) = %q, want empty", got)
	}
	got := GradientFill("━", 4, T().Primary, T().Secondary)
	if n := strings.Count(got, "━"); n != 4 {
		t.Errorf("cell count = %d, want 4", n)
	}
	if w := lipgloss.Width(got); w != 4 {
		t.Errorf("width = %d, want 4", w)
	}
}

func TestApplyBoldGradient(t *testing.T) {
	if got := ApplyBoldGradient("", T().Primary, T().Secondary); got != "" {
		t.Errorf("empty = %q", got)
	}
	got := ApplyBoldGradient("bpplay", T().Primary, T().Secondary)
	if w := lipgloss.Width(got); w != 6 {
		t.Errorf("width = %d, want 6", w)
	}
}

func TestGradient(t *testing.T) {
	if got := Gradient(0, T().Primary, T().Secondary); got != nil {
		t.Errorf("Gradient(0) = %v, want nil", got)
	}
	got := Gradient(5, lipgloss.Color("#a78bfa"), lipgloss.Color("#a78bfa"))
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	if got[0] != "#a78bfa" {
		t.Errorf("first = %s, want #a78bfa", got[0])
	}
}
