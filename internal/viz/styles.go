package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const statsWidth = 42

// Styles are the lipgloss styles of one theme.
type Styles struct {
	Canvas  lipgloss.Style
	Stats   lipgloss.Style
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Active  lipgloss.Style
	Graph   lipgloss.Style
	Help    lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
	Prompt  lipgloss.Style
	Error   lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Canvas: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),
		Stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(0, 2).
			Width(statsWidth),
		Header:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1),
		Label:   lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		Value:   lipgloss.NewStyle().Foreground(t.Text),
		Active:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Graph:   lipgloss.NewStyle().Foreground(t.Accent),
		Help:    lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		Running: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Paused:  lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Prompt:  lipgloss.NewStyle().Foreground(t.Accent),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
	}
}

// ParamBar draws value against a 0..2*initial scale, so the initial value
// sits in the middle.
func ParamBar(value, initial float64, width int) string {
	ratio := 0.5
	if initial != 0 {
		ratio = value / (2 * initial)
	}
	if ratio > 1 {
		ratio = 1
	} else if ratio < 0 {
		ratio = 0
	}
	filled := int(ratio * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

// formatValue keeps small tunables such as air resistance readable.
func formatValue(v float64) string {
	if v != 0 && v < 0.01 && v > -0.01 {
		return fmt.Sprintf("%.2e", v)
	}
	return fmt.Sprintf("%.3g", v)
}
