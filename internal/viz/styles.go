package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	panel    lipgloss.Style
	selected lipgloss.Style
	marker   lipgloss.Style
	near     lipgloss.Style
	far      lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	key      lipgloss.Style
	hint     lipgloss.Style
	high     lipgloss.Style
	mid      lipgloss.Style
	low      lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		subtitle: lipgloss.NewStyle().Foreground(t.Muted),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Faint).
			Padding(0, 1),
		selected: lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		marker:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		near:     lipgloss.NewStyle().Foreground(t.Secondary),
		far:      lipgloss.NewStyle().Foreground(t.Faint),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		key:      lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		hint:     lipgloss.NewStyle().Foreground(t.Muted),
		high:     lipgloss.NewStyle().Foreground(t.Error),
		mid:      lipgloss.NewStyle().Foreground(t.Warning),
		low:      lipgloss.NewStyle().Foreground(t.Success),
	}
}

// centerText pads s with spaces to width cells, truncating wide labels.
func centerText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	left := (width - runewidth.StringWidth(s)) / 2
	return runewidth.FillRight(strings.Repeat(" ", left)+s, width)
}

// gauge renders a bar filled to fraction, colored by how full it is.
func (s styles) gauge(fraction float64, width int) string {
	filled := int(fraction*float64(width) + 0.5)
	filled = max(0, min(filled, width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case fraction > 0.7:
		return s.high.Render(bar)
	case fraction > 0.3:
		return s.mid.Render(bar)
	}
	return s.low.Render(bar)
}

// sparkline renders the last width values as block characters.
func (s styles) sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	hi := values[0]
	for _, v := range values {
		hi = max(hi, v)
	}
	if hi == 0 {
		hi = 1
	}

	var result strings.Builder
	for _, v := range values {
		norm := v / hi
		idx := max(0, min(int(norm*float64(len(chars)-1)), len(chars)-1))
		c := string(chars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(s.high.Render(c))
		case norm > 0.3:
			result.WriteString(s.mid.Render(c))
		default:
			result.WriteString(s.low.Render(c))
		}
	}
	return result.String()
}

func (s styles) keyHint(key, desc string) string {
	return s.key.Render(key) + s.hint.Render(" "+desc+"  ")
}
