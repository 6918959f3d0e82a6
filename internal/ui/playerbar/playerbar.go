// Package playerbar renders the transport bar: title, state, position and
// the progress bar with breakpoint markers.
package playerbar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/bpplay/internal/breakpoint"
	"github.com/llehouerou/bpplay/internal/playback"
	"github.com/llehouerou/bpplay/internal/ui/render"
	"github.com/llehouerou/bpplay/internal/ui/styles"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	emptySymbol = "■"
)

// minTitleWidth is the room kept for the title before the levels are hidden.
const minTitleWidth = 16

// Height is the rendered height: two content rows plus the border.
const Height = 4

// State holds everything needed to render the player bar.
type State struct {
	Playback    playback.State
	Title       string
	Position    time.Duration
	Duration    time.Duration
	Volume      int
	Speed       float64
	Breakpoints []time.Duration
	Prev, Next  *breakpoint.Breakpoint
}

// NewState reads the controller. bps are the breakpoints to mark on the bar.
func NewState(c *playback.Controller, title string, bps []breakpoint.Breakpoint) State {
	s := State{
		Playback: c.State(),
		Title:    title,
		Position: c.Position(),
		Duration: c.Duration(),
		Volume:   c.Volume(),
		Speed:    c.Speed(),
	}
	s.Breakpoints = make([]time.Duration, len(bps))
	for i, bp := range bps {
		s.Breakpoints[i] = bp.Timepoint
	}
	return s
}

// Render returns the bordered player bar for the given total width.
func Render(s State, width int) string {
	innerWidth := max(width-6, 0) // border + padding

	top := renderInfoLine(s, innerWidth)
	bottom := renderProgressLine(s, innerWidth)

	return styles.PanelStyle(s.Playback == playback.StatePlaying).
		Padding(0, 2).
		Width(width - 2).
		Render(top + "\n" + bottom)
}

func renderInfoLine(s State, width int) string {
	st := styles.T().S()

	status := emptySymbol
	statusStyle := st.Muted
	switch s.Playback {
	case playback.StatePlaying:
		status, statusStyle = playSymbol, st.Playing
	case playback.StatePaused:
		status = pauseSymbol
	case playback.StateEmpty:
	}

	title := s.Title
	if s.Playback == playback.StateEmpty {
		title = "No file loaded"
	}

	levels := RenderSpeed(s.Speed) + "   " + RenderVolume(s.Volume)
	right := ""
	if width >= len(levels)+minTitleWidth {
		right = st.Muted.Render(levels)
	}

	left := statusStyle.Render(status) + "  "
	titleWidth := max(width-lipgloss.Width(left)-lipgloss.Width(right)-1, 1)
	left += st.Title.Render(render.TruncateEllipsis(title, titleWidth))

	return render.Row(left, right, width)
}

func renderProgressLine(s State, width int) string {
	st := styles.T().S()
	timeStr := formatDuration(s.Position) + " / " + formatDuration(s.Duration)

	var neighbors []string
	if s.Prev != nil {
		neighbors = append(neighbors, "◀ "+breakpoint.FormatTimepoint(s.Prev.Timepoint))
	}
	if s.Next != nil {
		neighbors = append(neighbors, breakpoint.FormatTimepoint(s.Next.Timepoint)+" ▶")
	}
	around := strings.Join(neighbors, "  ")

	fixed := len(timeStr) + 3
	if around != "" {
		fixed += len([]rune(around)) + 3
	}
	barWidth := width - fixed
	if barWidth < minBarWidth {
		return st.Muted.Render(timeStr)
	}

	line := RenderProgressBar(s.Position, s.Duration, s.Breakpoints, barWidth) +
		"   " + st.Base.Render(timeStr)
	if around != "" {
		line += "   " + st.Marker.Render(around)
	}
	return line
}

// RenderVolume formats a volume percentage.
func RenderVolume(pct int) string {
	return fmt.Sprintf("vol %3d%%", pct)
}

// RenderSpeed formats a speed factor, e.g. "1.25x".
func RenderSpeed(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64) + "x"
}

func formatDuration(d time.Duration) string {
	return breakpoint.FormatTimepoint(d)
}
