// Package popup renders modal overlays on top of the main view.
package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/bpplay/internal/ui/styles"
)

func maxLineWidth(s string) int {
	maxW := 0
	for line := range strings.SplitSeq(s, "\n") {
		w := lipgloss.Width(line)
		if w > maxW {
			maxW = w
		}
	}
	return maxW
}

// Center places pre-rendered content in the middle of the terminal.
func Center(content string, termWidth, termHeight int) string {
	lines := strings.Split(content, "\n")
	boxHeight := len(lines)
	boxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > boxWidth {
			boxWidth = w
		}
	}

	padTop := max((termHeight-boxHeight)/2, 0)
	padLeft := max((termWidth-boxWidth)/2, 0)

	var result strings.Builder
	for range padTop {
		result.WriteString(strings.Repeat(" ", termWidth) + "\n")
	}
	for _, line := range lines {
		result.WriteString(strings.Repeat(" ", padLeft))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}

// SizeConfig defines how a popup should be sized.
type SizeConfig struct {
	WidthPct  int // Percentage of screen width (0 = auto-fit)
	HeightPct int // Percentage of screen height (0 = auto-fit)
	MaxWidth  int // Maximum width in columns (0 = no limit)
}

// Common size configurations.
var (
	SizeHelp  = SizeConfig{MaxWidth: 70}
	SizeInput = SizeConfig{WidthPct: 60, MaxWidth: 80}
	SizeAuto  = SizeConfig{}
)

// RenderBordered wraps content in a rounded border and centers it.
func RenderBordered(content string, screenW, screenH int, size SizeConfig) string {
	width, height := calculateDimensions(content, screenW, screenH, size)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().BorderFocus).
		Width(width-2). // Account for border
		Height(height-2).
		Padding(1, 2)

	box := boxStyle.Render(content)
	return Center(box, screenW, screenH)
}

func calculateDimensions(content string, screenW, screenH int, size SizeConfig) (width, height int) {
	if size.WidthPct > 0 {
		width = screenW * size.WidthPct / 100
	} else {
		width = maxLineWidth(content) + 6 // padding + border
	}
	if size.MaxWidth > 0 {
		width = min(width, size.MaxWidth)
	}
	width = min(width, screenW-4)

	if size.HeightPct > 0 {
		height = screenH * size.HeightPct / 100
	} else {
		height = strings.Count(content, "\n") + 1 + 4 // padding + border
	}
	height = min(height, screenH-4)
	return width, height
}

// Compose overlays content on top of a base view.
// Non-space characters in overlay replace the base at the same position.
// This function is ANSI-aware and handles styled text correctly.
func Compose(base, popupView string, width, _ int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(popupView, "\n")

	for i, overlayLine := range overlayLines {
		if i >= len(baseLines) {
			break
		}

		// Strip ANSI to find visible content bounds
		plainOverlay := ansi.Strip(overlayLine)
		if strings.TrimSpace(plainOverlay) == "" {
			continue // empty line (visually)
		}

		// Find visible start position (count display columns of leading spaces)
		startCol := 0
		for _, r := range plainOverlay {
			if r != ' ' {
				break
			}
			startCol++ // ASCII space is always 1 column
		}

		// Calculate end position using display width
		trimmed := strings.TrimRight(plainOverlay, " ")
		endCol := ansi.StringWidth(trimmed)

		// Extract the overlay content (with ANSI codes intact)
		overlayContent := ansi.Cut(overlayLine, startCol, endCol)

		// Build new line: base prefix + overlay content + base suffix
		baseLine := baseLines[i]
		baseWidth := ansi.StringWidth(ansi.Strip(baseLine))

		// Pad base line if needed
		if baseWidth < width {
			baseLine += strings.Repeat(" ", width-baseWidth)
		}

		// Construct result: base[0:startCol] + overlay + base[endCol:]
		// When cutting through a wide character (like emoji), ansi.Cut may return
		// a shorter or longer string. We need to pad or trim to maintain alignment.
		prefix := ansi.Cut(baseLine, 0, startCol)
		prefixWidth := ansi.StringWidth(ansi.Strip(prefix))
		if prefixWidth < startCol {
			// Wide char was excluded from prefix - pad with spaces
			prefix += strings.Repeat(" ", startCol-prefixWidth)
		}

		result := prefix + overlayContent
		if endCol < width {
			suffix := ansi.Cut(baseLine, endCol, width)
			suffixPlain := ansi.Strip(suffix)
			suffixWidth := ansi.StringWidth(suffixPlain)
			expectedSuffixWidth := width - endCol
			if suffixWidth > expectedSuffixWidth {
				// Wide char was included in suffix but shouldn't be fully visible
				// Replace the first char (the wide char) with a space and trim
				// Use ansi.Cut to skip the extra width at the start
				suffix = " " + ansi.Cut(suffix, suffixWidth-expectedSuffixWidth+1, suffixWidth)
			} else if suffixWidth < expectedSuffixWidth {
				// Pad if suffix is too short
				result += strings.Repeat(" ", expectedSuffixWidth-suffixWidth)
			}
			result += suffix
		}

		baseLines[i] = result
	}

	return strings.Join(baseLines, "\n")
}
