package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/bpplay/internal/ui/styles"
)

const (
	filledCell = "━"
	emptyCell  = "─"
	markerCell = "┃"

	minBarWidth = 5
)

// RenderProgressBar draws a bar of width cells. The played part fades
// through the accent colors and every breakpoint gets a marker cell.
func RenderProgressBar(position, duration time.Duration, marks []time.Duration, width int) string {
	if width <= 0 {
		return ""
	}
	filled := cellFor(position, duration, width)

	marked := make([]bool, width)
	for _, m := range marks {
		if duration > 0 {
			marked[min(cellFor(m, duration, width), width-1)] = true
		}
	}

	t := styles.T()
	colors := styles.Gradient(filled, t.Primary, t.Secondary)
	emptyStyle := t.S().Subtle

	var b strings.Builder
	for i := range width {
		switch {
		case marked[i]:
			b.WriteString(t.S().Marker.Render(markerCell))
		case i < filled:
			b.WriteString(lipgloss.NewStyle().Foreground(colors[i]).Render(filledCell))
		default:
			b.WriteString(emptyStyle.Render(emptyCell))
		}
	}
	return b.String()
}

// cellFor maps d onto [0, width).
func cellFor(d, duration time.Duration, width int) int {
	if duration <= 0 || d <= 0 {
		return 0
	}
	ratio := float64(d) / float64(duration)
	return min(int(ratio*float64(width)), width)
}
