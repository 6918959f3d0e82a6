package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/bpplay/internal/breakpoint"
	"github.com/llehouerou/bpplay/internal/playback"
	"github.com/llehouerou/bpplay/internal/ui/testutil"
)

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		name       string
		position   time.Duration
		duration   time.Duration
		marks      []time.Duration
		wantFilled int
		wantMarks  int
	}{
		{"start", 0, time.Minute, nil, 0, 0},
		{"half", 30 * time.Second, time.Minute, nil, 10, 0},
		{"end", time.Minute, time.Minute, nil, 20, 0},
		{"unknown duration", 10 * time.Second, 0, []time.Duration{time.Second}, 0, 0},
		{"markers", 0, time.Minute, []time.Duration{15 * time.Second, 45 * time.Second}, 0, 2},
		{"marker at end", 0, time.Minute, []time.Duration{time.Minute}, 0, 1},
		{"marker over played part", 30 * time.Second, time.Minute, []time.Duration{6 * time.Second}, 9, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := testutil.StripANSI(RenderProgressBar(tt.position, tt.duration, tt.marks, 20))
			if w := lipgloss.Width(bar); w != 20 {
				t.Errorf("width = %d, want 20", w)
			}
			if got := strings.Count(bar, filledCell); got != tt.wantFilled {
				t.Errorf("filled = %d, want %d (%q)", got, tt.wantFilled, bar)
			}
			if got := strings.Count(bar, markerCell); got != tt.wantMarks {
				t.Errorf("markers = %d, want %d (%q)", got, tt.wantMarks, bar)
			}
		})
	}
}

func TestRenderProgressBar_ZeroWidth(t *testing.T) {
	if got := RenderProgressBar(0, time.Minute, nil, 0); got != "" {
		t.Errorf("RenderProgressBar(width 0) = %q, want empty", got)
	}
}

func TestRender(t *testing.T) {
	next := breakpoint.New(90*time.Second, "")
	s := State{
		Playback:    playback.StatePlaying,
		Title:       "Etude Op. 10",
		Position:    75 * time.Second,
		Duration:    3 * time.Minute,
		Volume:      80,
		Speed:       1.25,
		Breakpoints: []time.Duration{90 * time.Second},
		Next:        &next,
	}

	out := testutil.StripANSI(Render(s, 100))

	for _, want := range []string{playSymbol, "Etude Op. 10", "1:15 / 3:00", "vol  80%", "1.25x", "1:30 ▶"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
	if h := lipgloss.Height(out); h != Height {
		t.Errorf("height = %d, want %d", h, Height)
	}
	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w != 100 {
			t.Errorf("line width = %d, want 100: %q", w, line)
		}
	}
}

func TestRender_Empty(t *testing.T) {
	out := testutil.StripANSI(Render(State{Playback: playback.StateEmpty, Volume: 100, Speed: 1}, 80))
	if !strings.Contains(out, "No file loaded") {
		t.Errorf("Render() missing empty marker:\n%s", out)
	}
	if !strings.Contains(out, emptySymbol) {
		t.Errorf("Render() missing empty symbol:\n%s", out)
	}
}

func TestRender_NarrowHidesBar(t *testing.T) {
	out := testutil.StripANSI(Render(State{Playback: playback.StatePaused, Title: "x", Duration: time.Minute, Speed: 1}, 24))
	lines := strings.Split(out, "\n")
	if len(lines) != Height {
		t.Fatalf("height = %d, want %d", len(lines), Height)
	}
	progress := lines[2]
	if strings.Contains(progress, emptyCell) || !strings.Contains(progress, "0:00 / 1:00") {
		t.Errorf("narrow bar should only show times: %q", progress)
	}
}

func TestRenderSpeed(t *testing.T) {
	tests := map[float64]string{1: "1x", 0.5: "0.5x", 1.25: "1.25x"}
	for in, want := range tests {
		if got := RenderSpeed(in); got != want {
			t.Errorf("RenderSpeed(%v) = %q, want %q", in, got, want)
		}
	}
}
