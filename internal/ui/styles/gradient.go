package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// ApplyBoldGradient renders bold text with a horizontal color gradient.
func ApplyBoldGradient(text string, from, to lipgloss.Color) string {
	if text == "" {
		return ""
	}

	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return renderClusters(clusters, true, from, to)
}

// GradientFill renders n copies of cell fading from one color to the
// other. It is used for the played part of the progress bar.
func GradientFill(cell string, n int, from, to lipgloss.Color) string {
	if n <= 0 {
		return ""
	}
	clusters := make([]string, n)
	for i := range clusters {
		clusters[i] = cell
	}
	return renderClusters(clusters, false, from, to)
}

// Gradient returns n colors fading from one color to the other.
func Gradient(n int, from, to lipgloss.Color) []lipgloss.Color {
	if n <= 0 {
		return nil
	}
	blended := blendColors(n, from, to)
	colors := make([]lipgloss.Color, n)
	for i, c := range blended {
		colors[i] = lipgloss.Color(colorToHex(c))
	}
	return colors
}

func renderClusters(clusters []string, bold bool, from, to lipgloss.Color) string {
	if len(clusters) == 0 {
		return ""
	}

	colors := Gradient(len(clusters), from, to)

	var b strings.Builder
	for i, cluster := range clusters {
		style := lipgloss.NewStyle().Foreground(colors[i])
		if bold {
			style = style.Bold(true)
		}
		b.WriteString(style.Render(cluster))
	}
	return b.String()
}

// blendColors returns size colors blended between from and to in HCL space.
func blendColors(size int, from, to lipgloss.Color) []color.Color {
	c1, _ := colorful.MakeColor(lipglossToColor(from))
	if size < 2 {
		return []color.Color{c1}
	}
	c2, _ := colorful.MakeColor(lipglossToColor(to))

	colors := make([]color.Color, size)
	for i := range size {
		t := float64(i) / float64(size-1)
		colors[i] = c1.BlendHcl(c2, t).Clamped()
	}
	return colors
}

// lipglossToColor converts a hex lipgloss.Color; ANSI colors fall back to gray.
func lipglossToColor(c lipgloss.Color) color.Color {
	hex := string(c)
	if len(hex) == 7 && hex[0] == '#' {
		col, err := colorful.Hex(hex)
		if err == nil {
			return col
		}
	}
	return color.RGBA{R: 128, G: 128, B: 128, A: 255}
}

func colorToHex(c color.Color) string {
	if cf, ok := c.(colorful.Color); ok {
		return cf.Hex()
	}
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
